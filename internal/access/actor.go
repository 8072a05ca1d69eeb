// Package access decides whether an actor may perform an action on a
// resource. Every check is a pure function of the actor's roles and blocked
// flag and of the fields already loaded on the resource; nothing here touches
// the database.
package access

import (
	"slices"

	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"
	"github.com/google/uuid"
)

// Actor is the user performing an operation. The zero value is the anonymous
// actor.
type Actor struct {
	ID      uuid.UUID
	Roles   []string
	Blocked bool
}

// Anonymous returns the unauthenticated actor.
func Anonymous() Actor {
	return Actor{}
}

// FromUser builds an actor from a loaded account. A nil user is anonymous.
func FromUser(u *models.User) Actor {
	if u == nil {
		return Anonymous()
	}
	return Actor{
		ID:      u.ID,
		Roles:   u.GetRoles(),
		Blocked: u.IsBlocked,
	}
}

func (a Actor) IsAuthenticated() bool {
	return a.ID != uuid.Nil
}

// HasRole reports whether an authenticated actor holds role. The base user
// role is implied for every authenticated actor.
func (a Actor) HasRole(role string) bool {
	if !a.IsAuthenticated() {
		return false
	}
	if role == models.RoleUser {
		return true
	}
	return slices.Contains(a.Roles, role)
}

func (a Actor) IsAdmin() bool {
	return a.HasRole(models.RoleAdmin)
}

// Is reports whether the actor is the authenticated user with the given id.
func (a Actor) Is(id uuid.UUID) bool {
	return a.IsAuthenticated() && a.ID == id
}
