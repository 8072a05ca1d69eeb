package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User is an account inside one tenant. Roles are stored as a JSON list;
// the base "user" role is implied and never needs to be persisted.
type User struct {
	ID        uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID  string                      `gorm:"size:50;not null;uniqueIndex:idx_users_tenant_email;uniqueIndex:idx_users_tenant_nickname" json:"-"`
	Email     string                      `gorm:"not null;size:180;uniqueIndex:idx_users_tenant_email" json:"email"`
	Nickname  string                      `gorm:"not null;size:40;uniqueIndex:idx_users_tenant_nickname" json:"nickname"`
	Password  string                      `gorm:"not null" json:"-"`
	Roles     datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'" json:"roles"`
	IsBlocked bool                        `gorm:"not null;default:false" json:"is_blocked"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

// GetRoles returns the stored roles plus the implied base role.
func (u *User) GetRoles() []string {
	roles := make([]string, 0, len(u.Roles)+1)
	for _, r := range u.Roles {
		if !slices.Contains(roles, r) {
			roles = append(roles, r)
		}
	}
	if !slices.Contains(roles, RoleUser) {
		roles = append(roles, RoleUser)
	}
	return roles
}

func (u *User) HasRole(role string) bool {
	return slices.Contains(u.GetRoles(), role)
}

// AddRole appends role unless the user already holds it.
func (u *User) AddRole(role string) {
	if slices.Contains(u.Roles, role) {
		return
	}
	u.Roles = append(u.Roles, role)
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}
