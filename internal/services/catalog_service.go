package services

import (
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) List(tenantID string) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Scopes(tenant.ForTenant(tenantID)).Order("title").Find(&categories).Error
	return categories, err
}

func (s *CategoryService) Get(tenantID string, id uuid.UUID) (*models.Category, error) {
	var c models.Category
	if err := s.db.Scopes(tenant.ForTenant(tenantID)).First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrCategoryNotFound)
	}
	return &c, nil
}

func (s *CategoryService) Create(tenantID string, req *dto.CatalogRequest) (*models.Category, error) {
	title, err := validCatalogTitle(s.db, &models.Category{}, tenantID, req.Title, uuid.Nil)
	if err != nil {
		return nil, err
	}
	c := models.Category{ID: uuid.New(), TenantID: tenantID, Title: title}
	if err := s.db.Create(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &c, nil
}

func (s *CategoryService) Update(tenantID string, c *models.Category, req *dto.CatalogRequest) (*models.Category, error) {
	title, err := validCatalogTitle(s.db, &models.Category{}, tenantID, req.Title, c.ID)
	if err != nil {
		return nil, err
	}
	c.Title = title
	if err := s.db.Save(c).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return c, nil
}

// Delete refuses while any report still uses the category.
func (s *CategoryService) Delete(tenantID string, c *models.Category) error {
	var count int64
	if err := s.db.Model(&models.Report{}).
		Scopes(tenant.ForTenant(tenantID)).
		Where("category_id = ?", c.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.db.Scopes(tenant.ForTenant(tenantID)).Delete(&models.Category{}, "id = ?", c.ID).Error
}

type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

func (s *TagService) List(tenantID string) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.Scopes(tenant.ForTenant(tenantID)).Order("title").Find(&tags).Error
	return tags, err
}

func (s *TagService) Get(tenantID string, id uuid.UUID) (*models.Tag, error) {
	var t models.Tag
	if err := s.db.Scopes(tenant.ForTenant(tenantID)).First(&t, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrTagNotFound)
	}
	return &t, nil
}

func (s *TagService) Create(tenantID string, req *dto.CatalogRequest) (*models.Tag, error) {
	title, err := validCatalogTitle(s.db, &models.Tag{}, tenantID, req.Title, uuid.Nil)
	if err != nil {
		return nil, err
	}
	t := models.Tag{ID: uuid.New(), TenantID: tenantID, Title: title}
	if err := s.db.Create(&t).Error; err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return &t, nil
}

func (s *TagService) Update(tenantID string, t *models.Tag, req *dto.CatalogRequest) (*models.Tag, error) {
	title, err := validCatalogTitle(s.db, &models.Tag{}, tenantID, req.Title, t.ID)
	if err != nil {
		return nil, err
	}
	t.Title = title
	if err := s.db.Save(t).Error; err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}
	return t, nil
}

// Delete removes the tag and detaches it from every report.
func (s *TagService) Delete(tenantID string, t *models.Tag) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM report_tags WHERE tag_id = ?", t.ID).Error; err != nil {
			return err
		}
		return tx.Scopes(tenant.ForTenant(tenantID)).Delete(&models.Tag{}, "id = ?", t.ID).Error
	})
}

// validCatalogTitle trims raw and checks it is unique (case-insensitive)
// among the tenant's rows of model, ignoring the row with id except.
func validCatalogTitle(db *gorm.DB, model interface{}, tenantID, raw string, except uuid.UUID) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" || len(title) > maxTitleLen {
		return "", fmt.Errorf("%w: title is required and must be at most %d characters", ErrValidation, maxTitleLen)
	}

	var count int64
	if err := db.Model(model).
		Scopes(tenant.ForTenant(tenantID)).
		Where("LOWER(title) = LOWER(?) AND id <> ?", title, except).
		Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrTitleTaken
	}
	return title, nil
}
