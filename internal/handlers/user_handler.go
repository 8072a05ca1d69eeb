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

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	page, err := h.users.List(tenant.GetTenantID(c), c.QueryInt("page", 1))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(page)
}

func (h *UserHandler) Show(c *fiber.Ctx) error {
	user, ok, err := h.load(c)
	if !ok {
		return err
	}
	return c.JSON(services.ToUserResponse(user))
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	user, ok, err := h.load(c)
	if !ok {
		return err
	}
	if ok, err := authorize(c, access.KindUser, access.ActionEdit, user); !ok {
		return err
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	updated, err := h.users.Update(tenant.GetTenantID(c), middleware.CurrentActor(c), user, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(services.ToUserResponse(updated))
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	user, ok, err := h.load(c)
	if !ok {
		return err
	}
	if ok, err := authorize(c, access.KindUser, access.ActionEdit, user); !ok {
		return err
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.users.ChangePassword(tenant.GetTenantID(c), middleware.CurrentActor(c), user, &req); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Password changed"})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	user, ok, err := h.load(c)
	if !ok {
		return err
	}
	if ok, err := authorize(c, access.KindUser, access.ActionDelete, user); !ok {
		return err
	}

	if err := h.users.Delete(tenant.GetTenantID(c), middleware.CurrentActor(c), user); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted"})
}

// Promote, Demote and ToggleBlock sit behind AdminRequired.

func (h *UserHandler) Promote(c *fiber.Ctx) error {
	user, ok, err := h.load(c)
	if !ok {
		return err
	}
	updated, err := h.users.Promote(tenant.GetTenantID(c), user)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(services.ToUserResponse(updated))
}

func (h *UserHandler) Demote(c *fiber.Ctx) error {
	user, ok, err := h.load(c)
	if !ok {
		return err
	}
	updated, err := h.users.Demote(tenant.GetTenantID(c), middleware.CurrentActor(c), user)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(services.ToUserResponse(updated))
}

func (h *UserHandler) ToggleBlock(c *fiber.Ctx) error {
	user, ok, err := h.load(c)
	if !ok {
		return err
	}
	updated, err := h.users.ToggleBlock(tenant.GetTenantID(c), user)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(services.ToUserResponse(updated))
}

func (h *UserHandler) load(c *fiber.Ctx) (*models.User, bool, error) {
	id, valid := pathID(c, "id")
	if !valid {
		return nil, false, notFound(c, services.ErrUserNotFound.Error())
	}
	user, err := h.users.Get(tenant.GetTenantID(c), id)
	if err != nil {
		return nil, false, writeError(c, err)
	}
	return user, true, nil
}
