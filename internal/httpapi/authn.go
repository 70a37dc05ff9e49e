package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/sfmontas/intitiative-planning/internal/auth"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

var publicPaths = []string{
	"/v1/auth/token",
	"/metrics",
	"/healthz",
	"/readyz",
	"/v1/info",
	"/",
}

// withAuth validates the bearer token on every non-public request and puts
// the resolved principal into the request context. Validation re-resolves the
// subject from the store, so a deleted or disabled account is cut off on its
// next request.
func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions || isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(r.Header.Get(authHeader))
		if err != nil {
			unauthorized(w)
			return
		}

		principal, err := a.auth.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrMalformedToken),
				errors.Is(err, auth.ErrInvalidSignature),
				errors.Is(err, auth.ErrExpired),
				errors.Is(err, auth.ErrMissingSubject),
				errors.Is(err, auth.ErrUnknownSubject):
				// One message for every token rejection; the reason stays
				// server-side.
				unauthorized(w)
			case errors.Is(err, auth.ErrIdentityDisabled):
				writeError(w, http.StatusForbidden, "inactive user")
			default:
				writeError(w, http.StatusInternalServerError, "authentication error")
			}
			return
		}

		ctx := auth.ContextWithPrincipal(r.Context(), principal)
		ctx = auth.ContextWithToken(ctx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requirePermission runs the authorization stage of the pipeline and returns
// the authorized principal.
func (a *API) requirePermission(ctx context.Context, perm uuid.UUID) (auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return auth.Principal{}, auth.ErrUnknownSubject
	}
	return auth.Authorize(principal, perm)
}

func respondAuthzError(w http.ResponseWriter, err error) {
	if errors.Is(err, auth.ErrForbidden) {
		writeError(w, http.StatusForbidden, "user does not have access")
		return
	}
	unauthorized(w)
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, "could not validate credentials")
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}
