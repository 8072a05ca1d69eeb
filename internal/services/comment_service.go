package services

import (
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/config"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentService struct {
	db      *gorm.DB
	perPage int
}

func NewCommentService(db *gorm.DB, cfg *config.Config) *CommentService {
	return &CommentService{db: db, perPage: cfg.ItemsPerPage}
}

// ListByReport returns the report's comments, newest first.
func (s *CommentService) ListByReport(tenantID string, reportID uuid.UUID, page int) (*dto.PageResponse[models.Comment], error) {
	q := s.db.Model(&models.Comment{}).
		Scopes(tenant.ForTenant(tenantID)).
		Where("report_id = ?", reportID)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	p := NewPage(page, s.perPage)
	var comments []models.Comment
	if err := q.Session(&gorm.Session{}).
		Preload("Author").
		Order("created_at DESC").
		Limit(p.Size).Offset(p.Offset()).
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	resp := dto.NewPage(comments, total, p.Number, p.Size)
	return &resp, nil
}

// Get loads a comment with its report, which the archive lock depends on.
func (s *CommentService) Get(tenantID string, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.Scopes(tenant.ForTenant(tenantID)).
		Preload("Author").Preload("Report").
		First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, ErrCommentNotFound)
	}
	return &comment, nil
}

func (s *CommentService) Create(tenantID string, authorID uuid.UUID, report *models.Report, req *dto.CommentRequest) (*models.Comment, error) {
	content, err := validContent(req.Content)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:       uuid.New(),
		TenantID: tenantID,
		Content:  content,
		AuthorID: authorID,
		ReportID: report.ID,
	}
	if err := s.db.Omit("Author", "Report").Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	comment.Report = report
	return &comment, nil
}

func (s *CommentService) Update(tenantID string, comment *models.Comment, req *dto.CommentRequest) (*models.Comment, error) {
	content, err := validContent(req.Content)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Comment{}).
		Scopes(tenant.ForTenant(tenantID)).
		Where("id = ?", comment.ID).
		Update("content", content).Error; err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	comment.Content = content
	return comment, nil
}

func (s *CommentService) Delete(tenantID string, comment *models.Comment) error {
	return s.db.Scopes(tenant.ForTenant(tenantID)).Delete(&models.Comment{}, "id = ?", comment.ID).Error
}

// WithTx returns a copy of the service that runs on tx, so cascades can join
// a caller's transaction.
func (s *CommentService) WithTx(tx *gorm.DB) *CommentService {
	return &CommentService{db: tx, perPage: s.perPage}
}

// DeleteByAuthor removes every comment written by userID.
func (s *CommentService) DeleteByAuthor(tenantID string, userID uuid.UUID) error {
	return s.db.Scopes(tenant.ForTenant(tenantID)).Where("author_id = ?", userID).Delete(&models.Comment{}).Error
}

// DeleteByReport removes every comment on reportID.
func (s *CommentService) DeleteByReport(tenantID string, reportID uuid.UUID) error {
	return s.db.Scopes(tenant.ForTenant(tenantID)).Where("report_id = ?", reportID).Delete(&models.Comment{}).Error
}

// DeleteOnReportsBy removes every comment on the reports authorID wrote.
func (s *CommentService) DeleteOnReportsBy(tenantID string, authorID uuid.UUID) error {
	authored := s.db.Model(&models.Report{}).
		Select("id").
		Where("tenant_id = ? AND author_id = ?", tenantID, authorID)
	return s.db.Scopes(tenant.ForTenant(tenantID)).
		Where("report_id IN (?)", authored).
		Delete(&models.Comment{}).Error
}

func validContent(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if content == "" || len(content) > 255 {
		return "", fmt.Errorf("%w: content is required and must be at most 255 characters", ErrValidation)
	}
	return content, nil
}
