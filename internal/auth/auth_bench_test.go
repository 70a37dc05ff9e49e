package auth

import (
	"context"
	"testing"
)

// The two rejection paths should cost the same: a lookup miss still burns a
// bcrypt verification. Compare these two benchmarks to check the property.

func BenchmarkAuthenticateWrongPassword(b *testing.B) {
	svc := benchService(b)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = svc.Authenticate(ctx, "alice", "wrong")
	}
}

func BenchmarkAuthenticateUnknownUser(b *testing.B) {
	svc := benchService(b)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = svc.Authenticate(ctx, "nobody", "wrong")
	}
}

func benchService(b *testing.B) *Service {
	b.Helper()
	hash, err := HashSecret("correct horse")
	if err != nil {
		b.Fatalf("HashSecret: %v", err)
	}
	store := NewMemoryStore([]StoredCredential{
		{Identity: Identity{Username: "alice", Active: true}, PasswordHash: hash},
	}, nil)
	svc, err := NewService(store, WithSigningSecret([]byte("bench-secret")))
	if err != nil {
		b.Fatalf("NewService: %v", err)
	}
	return svc
}
