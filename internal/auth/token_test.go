package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func issueFor(t *testing.T, svc *Service, username string, ttl time.Duration) string {
	t.Helper()
	token, _, err := svc.IssueToken(Identity{Username: username}, ttl)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	return token
}

func TestIssueTokenDefaultsTTL(t *testing.T) {
	clock := newFakeClock()
	svc, err := NewService(testStore(t),
		WithSigningSecret([]byte("unit-test-secret")),
		WithAccessTTL(30*time.Minute),
		WithClock(clock.Now),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, expiresAt, err := svc.IssueToken(Identity{Username: "alice"}, 0)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if got, want := expiresAt, clock.Now().Add(30*time.Minute); !got.Equal(want) {
		t.Fatalf("expiry %v, want %v", got, want)
	}

	if _, _, err := svc.IssueToken(Identity{}, time.Minute); err == nil {
		t.Fatal("expected error for identity without username")
	}
}

func TestValidateTokenExpiry(t *testing.T) {
	clock := newFakeClock()
	svc := testService(t, clock)
	ctx := context.Background()

	token := issueFor(t, svc, "alice", 15*time.Minute)

	if _, err := svc.ValidateToken(ctx, token); err != nil {
		t.Fatalf("fresh token rejected: %v", err)
	}

	clock.Advance(15*time.Minute + time.Second)
	if _, err := svc.ValidateToken(ctx, token); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestValidateTokenTamperedSignature(t *testing.T) {
	svc := testService(t, newFakeClock())
	token := issueFor(t, svc, "alice", 15*time.Minute)

	// Flip one character in the middle of the signature segment.
	dot := strings.LastIndex(token, ".")
	sig := []byte(token[dot+1:])
	i := len(sig) / 2
	if sig[i] == 'A' {
		sig[i] = 'B'
	} else {
		sig[i] = 'A'
	}
	tampered := token[:dot+1] + string(sig)

	if _, err := svc.ValidateToken(context.Background(), tampered); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestValidateTokenForeignKey(t *testing.T) {
	clock := newFakeClock()
	svc := testService(t, clock)

	other, err := NewService(testStore(t),
		WithSigningSecret([]byte("a different secret")),
		WithIssuer("test-issuer"),
		WithClock(clock.Now),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	token := issueFor(t, other, "alice", 15*time.Minute)

	if _, err := svc.ValidateToken(context.Background(), token); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestValidateTokenMalformed(t *testing.T) {
	svc := testService(t, newFakeClock())
	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d", "%%%.%%%.%%%"} {
		if _, err := svc.ValidateToken(context.Background(), token); !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("token %q: expected ErrMalformedToken, got %v", token, err)
		}
	}
}

func TestValidateTokenMissingSubject(t *testing.T) {
	clock := newFakeClock()
	svc := testService(t, clock)

	// Structurally valid and correctly signed, but with no subject claim.
	now := clock.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    "test-issuer",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unit-test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.ValidateToken(context.Background(), token); !errors.Is(err, ErrMissingSubject) {
		t.Fatalf("expected ErrMissingSubject, got %v", err)
	}

	// A missing subject wins over expiry: the subject is extracted before
	// the expiry comparison.
	expired := jwt.RegisteredClaims{
		Issuer:    "test-issuer",
		IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte("unit-test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.ValidateToken(context.Background(), token); !errors.Is(err, ErrMissingSubject) {
		t.Fatalf("expected ErrMissingSubject, got %v", err)
	}
}

func TestValidateTokenMissingExpiry(t *testing.T) {
	clock := newFakeClock()
	svc := testService(t, clock)

	claims := jwt.RegisteredClaims{
		Issuer:   "test-issuer",
		Subject:  "alice",
		IssuedAt: jwt.NewNumericDate(clock.Now().UTC()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unit-test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.ValidateToken(context.Background(), token); !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
}

func TestValidateTokenUnknownSubject(t *testing.T) {
	svc := testService(t, newFakeClock())
	token := issueFor(t, svc, "ghost", 15*time.Minute)

	if _, err := svc.ValidateToken(context.Background(), token); !errors.Is(err, ErrUnknownSubject) {
		t.Fatalf("expected ErrUnknownSubject, got %v", err)
	}
}

func TestValidateTokenDisabledSubject(t *testing.T) {
	svc := testService(t, newFakeClock())

	// The account was active when the token was minted, then disabled.
	// Re-resolving the subject on every validation denies it immediately.
	token := issueFor(t, svc, "mallory", 15*time.Minute)

	if _, err := svc.ValidateToken(context.Background(), token); !errors.Is(err, ErrIdentityDisabled) {
		t.Fatalf("expected ErrIdentityDisabled, got %v", err)
	}
}
