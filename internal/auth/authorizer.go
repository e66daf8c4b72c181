package auth

import "blogapi/internal/model"

// Authorization predicates consumed by the HTTP handlers. All of them are
// pure and total: they never fail and never touch the store. A false result
// maps to a Forbidden outcome, which callers must keep distinct from the
// Unauthenticated outcome of a failed token check.

// CanModify reports whether actor may mutate a resource owned by ownerID.
// Superusers may mutate anything; owners may mutate their own resources.
// A nil owner means the resource is unowned and only superusers may touch it.
func CanModify(actor *model.User, ownerID *uint) bool {
	if actor.IsSuperuser {
		return true
	}
	return ownerID != nil && actor.ID == *ownerID
}

// CanListUsers reports whether actor may enumerate all user accounts.
func CanListUsers(actor *model.User) bool {
	return actor.IsSuperuser
}

// CanViewUser reports whether actor may read the user record targetID.
func CanViewUser(actor *model.User, targetID uint) bool {
	return actor.IsSuperuser || actor.ID == targetID
}
