package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// IssueToken signs a bearer token for a previously authenticated identity.
// A non-positive ttl falls back to the configured access-token lifetime.
// The payload carries only the subject and timestamps; permissions are
// re-resolved from the store at validation time.
func (s *Service) IssueToken(identity Identity, ttl time.Duration) (string, time.Time, error) {
	subject := strings.TrimSpace(identity.Username)
	if subject == "" {
		return "", time.Time{}, errors.New("auth: identity has no username")
	}
	if ttl <= 0 {
		ttl = s.accessTTL
	}

	now := s.now().UTC()
	expiresAt := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken verifies a presented token and resolves its subject back
// through the credential store. Rejections are typed: structural decode
// failures, bad signatures, expiry, a missing subject, a subject that no
// longer resolves, and a disabled identity are all distinct errors.
//
// The store round-trip on every validation is deliberate: a deleted or
// disabled account is denied on its next request without a revocation list.
func (s *Service) ValidateToken(ctx context.Context, token string) (Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Principal{}, ErrMalformedToken
	}

	// Claims are validated by hand below: the signature decides first, then
	// subject, then expiry against the injected clock.
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return Principal{}, ErrMalformedToken
		}
		// Signature mismatch or wrong algorithm: the token was not produced
		// by this process's key.
		return Principal{}, ErrInvalidSignature
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return Principal{}, ErrMalformedToken
	}
	if claims.Issuer != s.issuer {
		return Principal{}, ErrInvalidSignature
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return Principal{}, ErrMissingSubject
	}
	if claims.ExpiresAt == nil {
		return Principal{}, ErrMalformedToken
	}
	if s.now().UTC().After(claims.ExpiresAt.Time) {
		return Principal{}, ErrExpired
	}

	cred, err := s.store.Lookup(ctx, subject)
	switch {
	case errors.Is(err, ErrNotFound):
		return Principal{}, ErrUnknownSubject
	case err != nil:
		return Principal{}, fmt.Errorf("resolve subject: %w", err)
	}
	if !cred.Active {
		return Principal{}, ErrIdentityDisabled
	}
	return NewPrincipal(cred.Identity), nil
}
