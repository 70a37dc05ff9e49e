package auth

import "github.com/google/uuid"

// PermInitiativeDefine grants the ability to define planning initiatives.
var PermInitiativeDefine = uuid.MustParse("b388caf0-baa3-4bd2-8e13-feb2fa7be097")

// BuiltinPermissions is the catalog seeded into fresh stores. Permissions are
// an open set resolved from the store at runtime; nothing in the core depends
// on this list being complete.
var BuiltinPermissions = []Permission{
	{ID: PermInitiativeDefine, Key: "initiative.define"},
}
