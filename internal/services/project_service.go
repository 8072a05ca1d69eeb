package services

import (
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/access"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/config"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectService struct {
	db      *gorm.DB
	perPage int
}

func NewProjectService(db *gorm.DB, cfg *config.Config) *ProjectService {
	return &ProjectService{db: db, perPage: cfg.ItemsPerPage}
}

// List returns the projects actor is a member of, or every project for an
// admin.
func (s *ProjectService) List(tenantID string, actor access.Actor, page int) (*dto.PageResponse[models.Project], error) {
	q := s.db.Model(&models.Project{}).Scopes(tenant.ForTenant(tenantID))
	if !actor.IsAdmin() {
		ids, err := memberProjectIDs(s.db, tenantID, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load project membership: %w", err)
		}
		if len(ids) == 0 {
			resp := dto.NewPage[models.Project](nil, 0, NewPage(page, s.perPage).Number, s.perPage)
			return &resp, nil
		}
		q = q.Where("id IN ?", ids)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	p := NewPage(page, s.perPage)
	var projects []models.Project
	if err := q.Session(&gorm.Session{}).
		Preload("Manager").
		Order("created_at DESC").
		Limit(p.Size).Offset(p.Offset()).
		Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	resp := dto.NewPage(projects, total, p.Number, p.Size)
	return &resp, nil
}

// Get loads a project with its manager and members.
func (s *ProjectService) Get(tenantID string, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := s.db.Scopes(tenant.ForTenant(tenantID)).
		Preload("Manager").Preload("Members").
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}
	return &project, nil
}

// Create makes creator the manager and first member, grants the
// project_manager role and adds any members listed by nickname.
func (s *ProjectService) Create(tenantID string, creatorID uuid.UUID, req *dto.ProjectRequest) (*models.Project, error) {
	name, err := validProjectName(req.Name)
	if err != nil {
		return nil, err
	}

	var creator models.User
	if err := s.db.Scopes(tenant.ForTenant(tenantID)).First(&creator, "id = ?", creatorID).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	others, err := s.usersByNickname(tenantID, ParseNicknames(req.Members))
	if err != nil {
		return nil, err
	}

	project := models.Project{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      name,
		ManagerID: creator.ID,
	}
	project.AddMember(creator)
	for _, u := range others {
		project.AddMember(u)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Manager", "Members.*").Create(&project).Error; err != nil {
			return err
		}
		if creator.HasRole(models.RoleProjectManager) {
			return nil
		}
		creator.AddRole(models.RoleProjectManager)
		return tx.Model(&creator).Update("roles", creator.Roles).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	project.Manager = &creator
	return &project, nil
}

func (s *ProjectService) Rename(tenantID string, project *models.Project, req *dto.ProjectRequest) (*models.Project, error) {
	name, err := validProjectName(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Project{}).
		Scopes(tenant.ForTenant(tenantID)).
		Where("id = ?", project.ID).
		Update("name", name).Error; err != nil {
		return nil, fmt.Errorf("failed to rename project: %w", err)
	}
	project.Name = name
	return project, nil
}

// AddMembers adds the users named in a comma-separated nickname list.
// Malformed or unknown nicknames and existing members are skipped. It returns
// the users actually added.
func (s *ProjectService) AddMembers(tenantID string, project *models.Project, nicknames string) ([]models.User, error) {
	users, err := s.usersByNickname(tenantID, ParseNicknames(nicknames))
	if err != nil {
		return nil, err
	}

	var added []models.User
	for _, u := range users {
		if project.HasMember(u.ID) {
			continue
		}
		added = append(added, u)
	}
	if len(added) == 0 {
		return nil, nil
	}

	if err := s.db.Model(project).Omit("Members.*").Association("Members").Append(added); err != nil {
		return nil, fmt.Errorf("failed to add members: %w", err)
	}
	return added, nil
}

// RemoveMember drops userID from the project and unassigns the project's
// reports assigned to them. The manager cannot be removed.
func (s *ProjectService) RemoveMember(tenantID string, project *models.Project, userID uuid.UUID) error {
	if userID == project.ManagerID {
		return ErrManagerRemoval
	}
	if !project.HasMember(userID) {
		return ErrNotMember
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM project_members WHERE project_id = ? AND user_id = ?", project.ID, userID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Report{}).
			Scopes(tenant.ForTenant(tenantID)).
			Where("project_id = ? AND assigned_to_id = ?", project.ID, userID).
			Update("assigned_to_id", nil).Error
	})
}

// Delete removes the project. Its reports stay, detached from any project.
func (s *ProjectService) Delete(tenantID string, project *models.Project) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Report{}).
			Scopes(tenant.ForTenant(tenantID)).
			Where("project_id = ?", project.ID).
			Updates(map[string]interface{}{"project_id": nil, "assigned_to_id": nil}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_members WHERE project_id = ?", project.ID).Error; err != nil {
			return err
		}
		return tx.Scopes(tenant.ForTenant(tenantID)).Delete(&models.Project{}, "id = ?", project.ID).Error
	})
}

func (s *ProjectService) usersByNickname(tenantID string, nicknames []string) ([]models.User, error) {
	if len(nicknames) == 0 {
		return nil, nil
	}
	var users []models.User
	if err := s.db.Scopes(tenant.ForTenant(tenantID)).
		Where("nickname IN ?", nicknames).
		Order("nickname").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to look up members: %w", err)
	}
	return users, nil
}

func validProjectName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || len(name) > 64 {
		return "", fmt.Errorf("%w: name is required and must be at most 64 characters", ErrValidation)
	}
	return name, nil
}

// managesProject reports whether userID manages any project in the tenant.
func managesProject(db *gorm.DB, tenantID string, userID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&models.Project{}).
		Scopes(tenant.ForTenant(tenantID)).
		Where("manager_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}
