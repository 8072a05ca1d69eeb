package services

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/access"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/config"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/filters"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/query"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportService struct {
	db       *gorm.DB
	comments *CommentService
	perPage  int
}

func NewReportService(db *gorm.DB, cfg *config.Config) *ReportService {
	return &ReportService{db: db, comments: NewCommentService(db, cfg), perPage: cfg.ReportsPerPage}
}

// List returns one page of the reports actor may see, narrowed by raw.
func (s *ReportService) List(tenantID string, actor access.Actor, raw filters.Raw, page int) (*dto.PageResponse[models.Report], error) {
	normalized, err := filters.Normalize(filters.NewDBLookup(s.db, tenantID), raw)
	if err != nil {
		return nil, err
	}

	projects, err := memberProjectIDs(s.db, tenantID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project membership: %w", err)
	}

	set := query.NewClauseSet()
	query.ComposeReportQuery(set, actor, projects, normalized)

	q := s.db.Model(&models.Report{}).
		Scopes(tenant.ForTenantTable("reports", tenantID), query.Scope(set))

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	p := NewPage(page, s.perPage)
	var reports []models.Report
	if err := q.Session(&gorm.Session{}).
		Preload("Author").Preload("Category").Preload("Tags").Preload("Project").Preload("AssignedTo").
		Order("reports.created_at DESC").
		Limit(p.Size).Offset(p.Offset()).
		Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	resp := dto.NewPage(reports, total, p.Number, p.Size)
	return &resp, nil
}

// Get loads a report with everything its access checks need.
func (s *ReportService) Get(tenantID string, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	err := s.db.Scopes(tenant.ForTenant(tenantID)).
		Preload("Author").Preload("Category").Preload("Tags").Preload("Project.Members").Preload("AssignedTo").
		First(&report, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, ErrReportNotFound)
	}
	return &report, nil
}

func (s *ReportService) Create(tenantID string, authorID uuid.UUID, req *dto.ReportRequest) (*models.Report, error) {
	report := models.Report{
		ID:       uuid.New(),
		TenantID: tenantID,
		AuthorID: authorID,
		Status:   models.StatusPending,
	}
	if err := s.apply(tenantID, &report, req); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		tags, err := findOrCreateTags(tx, tenantID, ParseTitles(req.Tags))
		if err != nil {
			return err
		}
		report.Tags = tags
		return tx.Omit("Tags.*").Create(&report).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

func (s *ReportService) Update(tenantID string, report *models.Report, req *dto.ReportRequest) (*models.Report, error) {
	if err := s.apply(tenantID, report, req); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		tags, err := findOrCreateTags(tx, tenantID, ParseTitles(req.Tags))
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(report).Error; err != nil {
			return err
		}
		return tx.Model(report).Association("Tags").Replace(tags)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	return s.Get(tenantID, report.ID)
}

// Delete removes the report with its comments and tag links.
func (s *ReportService) Delete(tenantID string, report *models.Report) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.comments.WithTx(tx).DeleteByReport(tenantID, report.ID); err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM report_tags WHERE report_id = ?", report.ID).Error; err != nil {
			return err
		}
		return tx.Scopes(tenant.ForTenant(tenantID)).Delete(&models.Report{}, "id = ?", report.ID).Error
	})
}

// ToggleArchive archives an open report and moves an archived one back to
// completed.
func (s *ReportService) ToggleArchive(tenantID string, report *models.Report) (*models.Report, error) {
	next := models.StatusArchived
	if report.IsArchived() {
		next = models.StatusCompleted
	}

	if err := s.db.Model(&models.Report{}).
		Scopes(tenant.ForTenant(tenantID)).
		Where("id = ?", report.ID).
		Update("status", next).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle archive: %w", err)
	}
	report.Status = next
	return report, nil
}

// apply validates req and copies it onto report. A new project is checked
// against the author's memberships and an assignee against the project's.
func (s *ReportService) apply(tenantID string, report *models.Report, req *dto.ReportRequest) error {
	title := strings.TrimSpace(req.Title)
	if title == "" || len(title) > 255 {
		return fmt.Errorf("%w: title is required and must be at most 255 characters", ErrValidation)
	}
	if req.CategoryID == uuid.Nil {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}

	var category models.Category
	if err := s.db.Scopes(tenant.ForTenant(tenantID)).First(&category, "id = ?", req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %w", ErrValidation, ErrCategoryNotFound)
		}
		return err
	}

	var projectID *uuid.UUID
	if req.ProjectID != nil && *req.ProjectID != uuid.Nil {
		// An unchanged project stays valid even if the author has since left it.
		unchanged := report.ProjectID != nil && *report.ProjectID == *req.ProjectID
		if !unchanged {
			projects, err := memberProjectIDs(s.db, tenantID, report.AuthorID)
			if err != nil {
				return err
			}
			if !slices.Contains(projects, *req.ProjectID) {
				return fmt.Errorf("%w: project is not one of the author's projects", ErrValidation)
			}
		}
		id := *req.ProjectID
		projectID = &id
	}

	var assignee *uuid.UUID
	if req.AssignedToID != nil && *req.AssignedToID != uuid.Nil {
		if projectID == nil {
			return fmt.Errorf("%w: an assignee requires a project", ErrValidation)
		}
		members, err := memberIDs(s.db, *projectID)
		if err != nil {
			return err
		}
		if !slices.Contains(members, *req.AssignedToID) {
			return fmt.Errorf("%w: assignee must be a member of the project", ErrValidation)
		}
		id := *req.AssignedToID
		assignee = &id
	}

	if req.Status != nil {
		status := models.ReportStatus(*req.Status)
		if !status.Valid() {
			return fmt.Errorf("%w: unknown status %d", ErrValidation, *req.Status)
		}
		report.Status = status
	}

	report.Title = title
	report.Description = strings.TrimSpace(req.Description)
	report.CategoryID = category.ID
	report.Category = &category
	report.ProjectID = projectID
	report.Project = nil
	report.AssignedToID = assignee
	report.AssignedTo = nil
	return nil
}

func memberIDs(db *gorm.DB, projectID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Table("project_members").
		Where("project_id = ?", projectID).
		Pluck("user_id", &ids).Error
	return ids, err
}

// findOrCreateTags resolves titles case-insensitively, creating missing tags.
func findOrCreateTags(tx *gorm.DB, tenantID string, titles []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(titles))
	for _, title := range titles {
		var tag models.Tag
		err := tx.Scopes(tenant.ForTenant(tenantID)).Where("LOWER(title) = LOWER(?)", title).First(&tag).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			tag = models.Tag{ID: uuid.New(), TenantID: tenantID, Title: title}
			if err := tx.Create(&tag).Error; err != nil {
				return nil, fmt.Errorf("failed to create tag %q: %w", title, err)
			}
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
