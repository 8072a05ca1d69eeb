package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is required reference data on every report.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID  string    `gorm:"size:50;not null;uniqueIndex:idx_categories_tenant_title" json:"-"`
	Title     string    `gorm:"not null;size:64;uniqueIndex:idx_categories_tenant_title" json:"title"`
	Slug      string    `gorm:"not null;size:64" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Slug = Slugify(c.Title)
	return nil
}

// Tag is optional, multi-valued reference data on reports.
type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID  string    `gorm:"size:50;not null;uniqueIndex:idx_tags_tenant_title" json:"-"`
	Title     string    `gorm:"not null;size:64;uniqueIndex:idx_tags_tenant_title" json:"title"`
	Slug      string    `gorm:"not null;size:64" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tag) BeforeSave(tx *gorm.DB) error {
	t.Slug = Slugify(t.Title)
	return nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases s and collapses every run of non-alphanumerics to "-".
func Slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
