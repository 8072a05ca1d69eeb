package filters

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DBLookup resolves filter ids inside one tenant.
type DBLookup struct {
	db       *gorm.DB
	tenantID string
}

func NewDBLookup(db *gorm.DB, tenantID string) *DBLookup {
	return &DBLookup{db: db, tenantID: tenantID}
}

func (l *DBLookup) Category(id uuid.UUID) (*models.Category, error) {
	var c models.Category
	return first(l.db.Scopes(tenant.ForTenant(l.tenantID)).Where("id = ?", id), &c)
}

func (l *DBLookup) Tag(id uuid.UUID) (*models.Tag, error) {
	var t models.Tag
	return first(l.db.Scopes(tenant.ForTenant(l.tenantID)).Where("id = ?", id), &t)
}

func (l *DBLookup) Project(id uuid.UUID) (*models.Project, error) {
	var p models.Project
	return first(l.db.Scopes(tenant.ForTenant(l.tenantID)).Preload("Members").Where("id = ?", id), &p)
}

func first[T any](q *gorm.DB, dest *T) (*T, error) {
	if err := q.First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return dest, nil
}
