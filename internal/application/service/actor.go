package service

import "github.com/google/uuid"

// Actor is the authenticated caller of a service operation
type Actor struct {
	UserID uuid.UUID
	Admin  bool
}

// CanAccess reports whether the actor may see a record owned by ownerID
func (a Actor) CanAccess(ownerID uuid.UUID) bool {
	return a.Admin || a.UserID == ownerID
}

// scope returns the user filter for list queries; admins list everything
func (a Actor) scope() uuid.UUID {
	if a.Admin {
		return uuid.Nil
	}
	return a.UserID
}
