package handlers

import (
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/access"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/services"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

type ProjectHandler struct {
	projects *services.ProjectService
}

func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	page, err := h.projects.List(tenant.GetTenantID(c), middleware.CurrentActor(c), c.QueryInt("page", 1))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(page)
}

func (h *ProjectHandler) Show(c *fiber.Ctx) error {
	project, ok, err := h.load(c)
	if !ok {
		return err
	}
	if ok, err := authorize(c, access.KindProject, access.ActionView, project); !ok {
		return err
	}
	return c.JSON(project)
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	if ok, err := authorize(c, access.KindProject, access.ActionCreate, nil); !ok {
		return err
	}

	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	project, err := h.projects.Create(tenant.GetTenantID(c), middleware.CurrentActor(c).ID, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	project, ok, err := h.load(c)
	if !ok {
		return err
	}
	if ok, err := authorize(c, access.KindProject, access.ActionEdit, project); !ok {
		return err
	}

	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	updated, err := h.projects.Rename(tenant.GetTenantID(c), project, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(updated)
}

func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	project, ok, err := h.load(c)
	if !ok {
		return err
	}
	if ok, err := authorize(c, access.KindProject, access.ActionDelete, project); !ok {
		return err
	}

	if err := h.projects.Delete(tenant.GetTenantID(c), project); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Project deleted"})
}

// AddMembers adds users by nickname and returns the ones actually added.
func (h *ProjectHandler) AddMembers(c *fiber.Ctx) error {
	project, ok, err := h.load(c)
	if !ok {
		return err
	}
	if ok, err := authorize(c, access.KindProject, access.ActionEdit, project); !ok {
		return err
	}

	var req dto.AddMembersRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	added, err := h.projects.AddMembers(tenant.GetTenantID(c), project, req.Nicknames)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"added": added})
}

func (h *ProjectHandler) RemoveMember(c *fiber.Ctx) error {
	project, ok, err := h.load(c)
	if !ok {
		return err
	}
	if ok, err := authorize(c, access.KindProject, access.ActionEdit, project); !ok {
		return err
	}

	userID, valid := pathID(c, "userId")
	if !valid {
		return notFound(c, services.ErrUserNotFound.Error())
	}
	if err := h.projects.RemoveMember(tenant.GetTenantID(c), project, userID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Member removed"})
}

func (h *ProjectHandler) load(c *fiber.Ctx) (*models.Project, bool, error) {
	id, valid := pathID(c, "id")
	if !valid {
		return nil, false, notFound(c, services.ErrProjectNotFound.Error())
	}
	project, err := h.projects.Get(tenant.GetTenantID(c), id)
	if err != nil {
		return nil, false, writeError(c, err)
	}
	return project, true, nil
}
