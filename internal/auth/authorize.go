package auth

import "github.com/google/uuid"

// Principal is an identity proven to be the caller for the current request,
// either by password authentication or by token validation. It carries the
// permission set preloaded for membership checks.
type Principal struct {
	Identity    Identity
	permissions map[uuid.UUID]struct{}
}

// NewPrincipal builds a principal from a resolved identity.
func NewPrincipal(identity Identity) Principal {
	set := make(map[uuid.UUID]struct{}, len(identity.Permissions))
	for _, id := range identity.Permissions {
		set[id] = struct{}{}
	}
	identity.Permissions = clonePermissionIDs(identity.Permissions)
	return Principal{Identity: identity, permissions: set}
}

// HasPermission reports whether the principal holds the exact permission.
// There is no hierarchy and no wildcard; empty sets deny everything.
func (p Principal) HasPermission(id uuid.UUID) bool {
	_, ok := p.permissions[id]
	return ok
}

// Authorize is the allow/deny decision: it returns the principal unchanged
// when it holds the required permission and ErrForbidden otherwise. It is a
// pure membership check; the caller guarantees the principal came from a
// currently-active identity.
func Authorize(p Principal, required uuid.UUID) (Principal, error) {
	if !p.HasPermission(required) {
		return Principal{}, ErrForbidden
	}
	return p, nil
}

func clonePermissionIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return nil
	}
	out := make([]uuid.UUID, len(ids))
	copy(out, ids)
	return out
}
