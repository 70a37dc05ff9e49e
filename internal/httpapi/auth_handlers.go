package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sfmontas/intitiative-planning/internal/auth"
	"github.com/sfmontas/intitiative-planning/internal/ids"
	"github.com/sfmontas/intitiative-planning/internal/obs"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (a *API) handleAuthToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	if !a.loginLimiter.Allow(clientIP(r)) {
		obs.ObserveLogin("rate_limited")
		writeError(w, http.StatusTooManyRequests, "too many login attempts")
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	principal, err := a.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			obs.ObserveLogin("invalid_credentials")
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, auth.ErrIdentityDisabled):
			obs.ObserveLogin("disabled")
			writeError(w, http.StatusForbidden, "inactive user")
		default:
			obs.ObserveLogin("error")
			writeError(w, http.StatusInternalServerError, "authentication error")
		}
		return
	}

	token, expiresAt, err := a.auth.IssueToken(principal.Identity, 0)
	if err != nil {
		obs.ObserveLogin("error")
		writeError(w, http.StatusInternalServerError, "token generation failed")
		return
	}

	obs.ObserveLogin("ok")
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}
	writeJSON(w, http.StatusOK, principal.Identity)
}

func (a *API) handlePermissions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	perms, err := a.auth.PermissionCatalog(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"permissions": perms})
}

type initiativeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (a *API) handleInitiatives(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	principal, err := a.requirePermission(r.Context(), auth.PermInitiativeDefine)
	if err != nil {
		respondAuthzError(w, err)
		return
	}

	var req initiativeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":          ids.New(),
		"name":        req.Name,
		"description": req.Description,
		"defined_by":  principal.Identity.Username,
	})
}
