package auth

import (
	"context"
	"strings"
)

var _ CredentialStore = (*MemoryStore)(nil)

// MemoryStore is an immutable in-memory CredentialStore. It is built once
// and only read afterwards, so it needs no locking.
type MemoryStore struct {
	users map[string]StoredCredential
	perms []Permission
}

// NewMemoryStore copies the given credentials and permission catalog into a
// read-only store. Usernames are matched case-sensitively after trimming.
func NewMemoryStore(creds []StoredCredential, perms []Permission) *MemoryStore {
	users := make(map[string]StoredCredential, len(creds))
	for _, c := range creds {
		c.Username = strings.TrimSpace(c.Username)
		if c.Username == "" {
			continue
		}
		c.Permissions = clonePermissionIDs(c.Permissions)
		users[c.Username] = c
	}
	catalog := make([]Permission, len(perms))
	copy(catalog, perms)
	return &MemoryStore{users: users, perms: catalog}
}

func (s *MemoryStore) Lookup(_ context.Context, username string) (StoredCredential, error) {
	cred, ok := s.users[strings.TrimSpace(username)]
	if !ok {
		return StoredCredential{}, ErrNotFound
	}
	// Hand out a private copy of the slice so callers cannot mutate the store.
	cred.Permissions = clonePermissionIDs(cred.Permissions)
	return cred, nil
}

func (s *MemoryStore) Permissions(context.Context) ([]Permission, error) {
	out := make([]Permission, len(s.perms))
	copy(out, s.perms)
	return out, nil
}
