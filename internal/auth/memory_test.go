package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestMemoryStoreLookup(t *testing.T) {
	perm := uuid.New()
	store := NewMemoryStore([]StoredCredential{
		{Identity: Identity{Username: " alice ", Active: true, Permissions: []uuid.UUID{perm}}},
		{Identity: Identity{Username: ""}},
	}, nil)

	cred, err := store.Lookup(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if cred.Username != "alice" {
		t.Fatalf("unexpected username: %q", cred.Username)
	}

	if _, err := store.Lookup(context.Background(), "bob"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreLookupReturnsSnapshot(t *testing.T) {
	perm := uuid.New()
	store := NewMemoryStore([]StoredCredential{
		{Identity: Identity{Username: "alice", Active: true, Permissions: []uuid.UUID{perm}}},
	}, nil)

	first, _ := store.Lookup(context.Background(), "alice")
	first.Permissions[0] = uuid.Nil

	second, _ := store.Lookup(context.Background(), "alice")
	if second.Permissions[0] != perm {
		t.Fatal("mutating a lookup result must not affect the store")
	}
}
