package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Paths that don't require tenant identification.
var tenantSkipPaths = []string{
	"/api/health",
	"/metrics",
}

// TenantMiddleware resolves tenant_id from the X-Tenant-ID header or the
// tenant_id query param. A request carrying only a bearer token is passed
// on so TenantFromClaims can use the verified claim.
func TenantMiddleware(registry *tenant.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		for _, skip := range tenantSkipPaths {
			if strings.HasPrefix(path, skip) {
				return c.Next()
			}
		}

		// 1. X-Tenant-ID header
		tenantID := c.Get("X-Tenant-ID")
		if tenantID != "" {
			if !registry.Exists(tenantID) {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
					Error:   true,
					Message: "Invalid X-Tenant-ID: " + tenantID,
				})
			}
			c.Locals("tenant_id", tenantID)
			return c.Next()
		}

		// 2. Query param
		tenantID = c.Query("tenant_id")
		if tenantID != "" {
			if !registry.Exists(tenantID) {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
					Error:   true,
					Message: "Invalid tenant_id: " + tenantID,
				})
			}
			c.Locals("tenant_id", tenantID)
			return c.Next()
		}

		// 3. Bearer token, resolved after verification
		if strings.HasPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ") {
			return c.Next()
		}

		return tenantRequired(c)
	}
}

// TenantFromClaims runs after the JWT middleware. When no tenant was sent
// explicitly it takes tenant_id from the verified token.
func TenantFromClaims(registry *tenant.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tenant.GetTenantID(c) != "" {
			return c.Next()
		}

		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return tenantRequired(c)
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return tenantRequired(c)
		}
		tenantID, _ := claims["tenant_id"].(string)
		if tenantID == "" {
			return tenantRequired(c)
		}
		if !registry.Exists(tenantID) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Invalid tenant_id claim: " + tenantID,
			})
		}
		c.Locals("tenant_id", tenantID)
		return c.Next()
	}
}

func tenantRequired(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "X-Tenant-ID header is required",
	})
}
