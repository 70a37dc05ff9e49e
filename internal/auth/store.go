package auth

import "context"

// CredentialStore is the external lookup collaborator the core depends on.
// Implementations must be safe for concurrent reads.
type CredentialStore interface {
	// Lookup resolves a username to its stored credential, or ErrNotFound.
	Lookup(ctx context.Context, username string) (StoredCredential, error)

	// Permissions lists the permission catalog.
	Permissions(ctx context.Context) ([]Permission, error)
}
