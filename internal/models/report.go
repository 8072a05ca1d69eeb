package models

import (
	"time"

	"github.com/google/uuid"
)

// Report is an issue filed by a user, optionally inside a project.
type Report struct {
	ID           uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID     string       `gorm:"size:50;not null;index" json:"-"`
	Title        string       `gorm:"not null;size:255" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	Status       ReportStatus `gorm:"not null;default:1;index" json:"status"`
	AuthorID     uuid.UUID    `gorm:"type:uuid;not null;index" json:"author_id"`
	Author       *User        `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CategoryID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"category_id"`
	Category     *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags         []Tag        `gorm:"many2many:report_tags;constraint:OnDelete:CASCADE" json:"tags"`
	ProjectID    *uuid.UUID   `gorm:"type:uuid;index" json:"project_id"`
	Project      *Project     `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	AssignedToID *uuid.UUID   `gorm:"type:uuid;index" json:"assigned_to_id"`
	AssignedTo   *User        `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (r *Report) IsArchived() bool {
	return r.Status == StatusArchived
}
