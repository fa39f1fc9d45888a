package service

import (
	"github.com/Freeeeeet/tutorlink/internal/model"
	"github.com/google/uuid"
)

// Actor is the authenticated caller every lifecycle operation acts on behalf of.
type Actor struct {
	ID   uuid.UUID
	Role model.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

// Is reports whether the caller is the given account.
func (a Actor) Is(accountID uuid.UUID) bool {
	return a.ID != uuid.Nil && a.ID == accountID
}

func requireAdmin(a Actor) error {
	if !a.IsAdmin() {
		return newError(ErrForbidden, "Admin access required")
	}
	return nil
}

func requireCaller(a Actor) error {
	if a.ID == uuid.Nil {
		return newError(ErrUnauthenticated, "Authentication required")
	}
	return nil
}
