package middleware

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/access"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const actorKey = "actor"

// ActorLoader turns the verified token into the acting account. Requests
// without a token carry the anonymous actor. The account is reloaded on
// every request so role and block changes apply immediately.
func ActorLoader(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(actorKey, access.Anonymous())

		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return c.Next()
		}

		tenantID := tenant.GetTenantID(c)
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if claimed, _ := claims["tenant_id"].(string); claimed != "" && claimed != tenantID {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error: true, Message: "Unauthorized: token issued for another tenant",
				})
			}
		}

		userID, err := tenant.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.Scopes(tenant.ForTenant(tenantID)).First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error: true, Message: "Unauthorized: account no longer exists",
				})
			}
			slog.Error("failed to load actor", "tenant_id", tenantID, "actor_id", userID.String(), "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}

		c.Locals(actorKey, access.FromUser(&user))
		return c.Next()
	}
}

// CurrentActor returns the actor set by ActorLoader, or the anonymous actor.
func CurrentActor(c *fiber.Ctx) access.Actor {
	if a, ok := c.Locals(actorKey).(access.Actor); ok {
		return a
	}
	return access.Anonymous()
}

// RequireActor rejects anonymous requests.
func RequireActor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CurrentActor(c).IsAuthenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		return c.Next()
	}
}
