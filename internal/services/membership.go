package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// memberProjectIDs returns the ids of the tenant's projects userID belongs
// to. The anonymous user belongs to none.
func memberProjectIDs(db *gorm.DB, tenantID string, userID uuid.UUID) ([]uuid.UUID, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var ids []uuid.UUID
	err := db.Table("project_members").
		Joins("JOIN projects ON projects.id = project_members.project_id").
		Where("project_members.user_id = ? AND projects.tenant_id = ?", userID, tenantID).
		Order("project_members.project_id").
		Pluck("project_members.project_id", &ids).Error
	return ids, err
}
