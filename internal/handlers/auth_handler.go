package handlers

import (
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/services"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

// FeatureClosedRegistration disables self sign-up for a tenant.
const FeatureClosedRegistration = "closed_registration"

type AuthHandler struct {
	authService *services.AuthService
	registry    *tenant.Registry
}

func NewAuthHandler(authService *services.AuthService, registry *tenant.Registry) *AuthHandler {
	return &AuthHandler{authService: authService, registry: registry}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	if h.registry.HasFeature(tenant.GetTenantID(c), FeatureClosedRegistration) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Registration is closed for this tenant",
		})
	}

	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Register(tenant.GetTenantID(c), &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Login(tenant.GetTenantID(c), &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Refresh(tenant.GetTenantID(c), &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.authService.Logout(tenant.GetTenantID(c), &req); err != nil {
		return writeError(c, err)
	}

	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}
