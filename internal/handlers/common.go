package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/access"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/services"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var voters = access.NewDefaultManager()

// authorize runs the access check for the current actor and writes a 403 on
// denial. ok is false when the handler must return err immediately.
func authorize(c *fiber.Ctx, kind access.Kind, action access.Action, subject any) (ok bool, err error) {
	actor := middleware.CurrentActor(c)
	decision := voters.Decide(actor, kind, action, subject)
	metrics.IncAccessDecision(string(kind), string(action), decision.String())

	if decision.Allowed() {
		return true, nil
	}

	slog.Info("access denied",
		"tenant_id", tenant.GetTenantID(c),
		"actor_id", actor.ID.String(),
		"kind", string(kind),
		"action", string(action),
		"decision", decision.String(),
	)
	return false, c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
		Error: true, Message: "Access denied",
	})
}

// writeError maps service errors onto HTTP statuses.
func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrReportNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTagNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrCategoryNotFound):
		// a missing category on a report payload is an input error; the
		// category routes handle their own 404 before reaching here
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrNicknameTaken),
		errors.Is(err, services.ErrTitleTaken),
		errors.Is(err, services.ErrCategoryInUse),
		errors.Is(err, services.ErrManagerRemoval),
		errors.Is(err, services.ErrNotMember),
		errors.Is(err, services.ErrUserManagesProject),
		errors.Is(err, services.ErrSelfDelete),
		errors.Is(err, services.ErrSelfDemote),
		errors.Is(err, services.ErrBlockedPromotion),
		errors.Is(err, services.ErrBlockAdmin):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrWrongPassword):
		status = fiber.StatusForbidden
	}

	if status == fiber.StatusInternalServerError {
		slog.Error("request failed",
			"tenant_id", tenant.GetTenantID(c),
			"actor_id", middleware.CurrentActor(c).ID.String(),
			"action", c.Method()+" "+c.Route().Path,
			"error", err,
		)
		return c.Status(status).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: message})
}

// pathID parses a uuid route param. Malformed ids read as not found.
func pathID(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
