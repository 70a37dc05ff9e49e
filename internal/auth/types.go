package auth

import "github.com/google/uuid"

// Identity is the immutable snapshot of a user as the credential store knows
// it. Lookups return a fresh copy; callers never share mutable state.
type Identity struct {
	Username    string      `json:"username"`
	DisplayName string      `json:"display_name,omitempty"`
	Email       string      `json:"email,omitempty"`
	Active      bool        `json:"active"`
	Permissions []uuid.UUID `json:"permissions"`
}

// StoredCredential is an Identity plus its salted secret hash. It never
// leaves the authenticator boundary.
type StoredCredential struct {
	Identity
	PasswordHash string
}

// Permission is a grantable capability. Authorization compares IDs only;
// Key is a human-readable name kept for display.
type Permission struct {
	ID  uuid.UUID `json:"id"`
	Key string    `json:"key"`
}
