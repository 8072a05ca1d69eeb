package models

import (
	"time"

	"github.com/google/uuid"
)

// Project groups reports and the users allowed to see them. The manager is
// always part of Members.
type Project struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID  string    `gorm:"size:50;not null;index" json:"-"`
	Name      string    `gorm:"not null;size:64" json:"name"`
	ManagerID uuid.UUID `gorm:"type:uuid;not null;index" json:"manager_id"`
	Manager   *User     `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Members   []User    `gorm:"many2many:project_members;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasMember reports whether userID is the manager or one of the loaded members.
func (p *Project) HasMember(userID uuid.UUID) bool {
	if userID == uuid.Nil {
		return false
	}
	if p.ManagerID == userID {
		return true
	}
	for _, m := range p.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// AddMember appends u to Members unless already present.
func (p *Project) AddMember(u User) bool {
	for _, m := range p.Members {
		if m.ID == u.ID {
			return false
		}
	}
	p.Members = append(p.Members, u)
	return true
}

