package middleware

import (
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

// Metrics counts requests by method, matched route pattern and status.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		metrics.IncRequest(c.Method(), c.Route().Path, status)
		return err
	}
}
