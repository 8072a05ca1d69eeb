package middleware

import (
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired lets through actors holding the admin role. It must run
// after ActorLoader.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := CurrentActor(c)
		if !actor.IsAuthenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !actor.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
