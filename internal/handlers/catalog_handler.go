package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/filters"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/services"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves categories and tags. Reads are public; writes sit
// behind AdminRequired.
type CatalogHandler struct {
	categories *services.CategoryService
	tags       *services.TagService
	reports    *services.ReportService
}

func NewCatalogHandler(categories *services.CategoryService, tags *services.TagService, reports *services.ReportService) *CatalogHandler {
	return &CatalogHandler{categories: categories, tags: tags, reports: reports}
}

// CategoryDetail is a category with the page of its reports the actor may see.
type CategoryDetail struct {
	Category *models.Category                  `json:"category"`
	Reports  *dto.PageResponse[models.Report] `json:"reports"`
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categories.List(tenant.GetTenantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": categories})
}

func (h *CatalogHandler) ShowCategory(c *fiber.Ctx) error {
	category, ok, err := h.loadCategory(c)
	if !ok {
		return err
	}

	raw := filters.Raw{CategoryID: category.ID.String()}
	reports, err := h.reports.List(tenant.GetTenantID(c), middleware.CurrentActor(c), raw, c.QueryInt("page", 1))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(CategoryDetail{Category: category, Reports: reports})
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CatalogRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	category, err := h.categories.Create(tenant.GetTenantID(c), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	category, ok, err := h.loadCategory(c)
	if !ok {
		return err
	}

	var req dto.CatalogRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	updated, err := h.categories.Update(tenant.GetTenantID(c), category, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(updated)
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	category, ok, err := h.loadCategory(c)
	if !ok {
		return err
	}
	if err := h.categories.Delete(tenant.GetTenantID(c), category); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Category deleted"})
}

func (h *CatalogHandler) ListTags(c *fiber.Ctx) error {
	tags, err := h.tags.List(tenant.GetTenantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": tags})
}

func (h *CatalogHandler) ShowTag(c *fiber.Ctx) error {
	tag, ok, err := h.loadTag(c)
	if !ok {
		return err
	}
	return c.JSON(tag)
}

func (h *CatalogHandler) CreateTag(c *fiber.Ctx) error {
	var req dto.CatalogRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	tag, err := h.tags.Create(tenant.GetTenantID(c), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

func (h *CatalogHandler) UpdateTag(c *fiber.Ctx) error {
	tag, ok, err := h.loadTag(c)
	if !ok {
		return err
	}

	var req dto.CatalogRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	updated, err := h.tags.Update(tenant.GetTenantID(c), tag, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(updated)
}

func (h *CatalogHandler) DeleteTag(c *fiber.Ctx) error {
	tag, ok, err := h.loadTag(c)
	if !ok {
		return err
	}
	if err := h.tags.Delete(tenant.GetTenantID(c), tag); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Tag deleted"})
}

func (h *CatalogHandler) loadCategory(c *fiber.Ctx) (*models.Category, bool, error) {
	id, valid := pathID(c, "id")
	if !valid {
		return nil, false, notFound(c, services.ErrCategoryNotFound.Error())
	}
	category, err := h.categories.Get(tenant.GetTenantID(c), id)
	if errors.Is(err, services.ErrCategoryNotFound) {
		return nil, false, notFound(c, err.Error())
	}
	if err != nil {
		return nil, false, writeError(c, err)
	}
	return category, true, nil
}

func (h *CatalogHandler) loadTag(c *fiber.Ctx) (*models.Tag, bool, error) {
	id, valid := pathID(c, "id")
	if !valid {
		return nil, false, notFound(c, services.ErrTagNotFound.Error())
	}
	tag, err := h.tags.Get(tenant.GetTenantID(c), id)
	if err != nil {
		return nil, false, writeError(c, err)
	}
	return tag, true, nil
}
