package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	defaultIssuer    = "initiative-planning"
	defaultAccessTTL = 15 * time.Minute
)

// Service composes the credential store, secret verifier, token issuer and
// validator behind the four core operations: Authenticate, IssueToken,
// ValidateToken and Authorize. It holds no mutable state after construction
// and is safe for concurrent use.
type Service struct {
	store     CredentialStore
	secret    []byte
	issuer    string
	accessTTL time.Duration
	now       func() time.Time
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service) error

// WithSigningSecret sets the process-wide HMAC signing key. Required.
func WithSigningSecret(secret []byte) ServiceOption {
	return func(s *Service) error {
		if len(secret) == 0 {
			return errors.New("auth: signing secret is empty")
		}
		s.secret = append([]byte(nil), secret...)
		return nil
	}
}

// WithIssuer overrides the issuer claim stamped into tokens.
func WithIssuer(issuer string) ServiceOption {
	return func(s *Service) error {
		if v := strings.TrimSpace(issuer); v != "" {
			s.issuer = v
		}
		return nil
	}
}

// WithAccessTTL overrides the default token lifetime used when IssueToken is
// called without an explicit ttl.
func WithAccessTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) error {
		if ttl > 0 {
			s.accessTTL = ttl
		}
		return nil
	}
}

// WithClock overrides the time source. Useful for tests.
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) error {
		if fn != nil {
			s.now = fn
		}
		return nil
	}
}

// NewService constructs the core. The store and a signing secret are
// mandatory; everything else has defaults.
func NewService(store CredentialStore, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, errors.New("auth: credential store is required")
	}
	svc := &Service{
		store:     store,
		issuer:    defaultIssuer,
		accessTTL: defaultAccessTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		if err := opt(svc); err != nil {
			return nil, err
		}
	}
	if len(svc.secret) == 0 {
		return nil, errors.New("auth: signing secret is required")
	}
	return svc, nil
}

// Authenticate turns a username/password pair into a principal. Unknown
// usernames and wrong passwords come back as the same ErrInvalidCredentials,
// and both cost one hash verification so neither is observable by timing.
func (s *Service) Authenticate(ctx context.Context, username, password string) (Principal, error) {
	username = strings.TrimSpace(username)

	cred, err := s.store.Lookup(ctx, username)
	switch {
	case errors.Is(err, ErrNotFound):
		// Burn a verification against a fixed hash before rejecting.
		VerifySecret(password, dummyHash)
		return Principal{}, ErrInvalidCredentials
	case err != nil:
		return Principal{}, fmt.Errorf("lookup credential: %w", err)
	}

	if !VerifySecret(password, cred.PasswordHash) {
		return Principal{}, ErrInvalidCredentials
	}
	if !cred.Active {
		return Principal{}, ErrIdentityDisabled
	}
	return NewPrincipal(cred.Identity), nil
}

// Authorize applies the permission check to a previously authenticated
// principal. Present as a method for symmetry with the other operations;
// the decision itself needs nothing from the service.
func (s *Service) Authorize(p Principal, required Permission) (Principal, error) {
	return Authorize(p, required.ID)
}

// PermissionCatalog lists the grantable permissions known to the store.
func (s *Service) PermissionCatalog(ctx context.Context) ([]Permission, error) {
	return s.store.Permissions(ctx)
}
