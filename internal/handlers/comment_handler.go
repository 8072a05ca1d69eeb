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

type CommentHandler struct {
	reports  *services.ReportService
	comments *services.CommentService
}

func NewCommentHandler(reports *services.ReportService, comments *services.CommentService) *CommentHandler {
	return &CommentHandler{reports: reports, comments: comments}
}

// ListByReport pages the comments of a report the actor may view.
func (h *CommentHandler) ListByReport(c *fiber.Ctx) error {
	report, ok, err := h.loadReport(c)
	if !ok {
		return err
	}
	if ok, err := authorize(c, access.KindReport, access.ActionView, report); !ok {
		return err
	}

	page, err := h.comments.ListByReport(tenant.GetTenantID(c), report.ID, c.QueryInt("page", 1))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(page)
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	report, ok, err := h.loadReport(c)
	if !ok {
		return err
	}
	if ok, err := authorize(c, access.KindReport, access.ActionComment, report); !ok {
		return err
	}

	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	comment, err := h.comments.Create(tenant.GetTenantID(c), middleware.CurrentActor(c).ID, report, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *CommentHandler) Update(c *fiber.Ctx) error {
	comment, ok, err := h.load(c)
	if !ok {
		return err
	}
	if ok, err := authorize(c, access.KindComment, access.ActionEdit, comment); !ok {
		return err
	}

	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	updated, err := h.comments.Update(tenant.GetTenantID(c), comment, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(updated)
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	comment, ok, err := h.load(c)
	if !ok {
		return err
	}
	if ok, err := authorize(c, access.KindComment, access.ActionDelete, comment); !ok {
		return err
	}

	if err := h.comments.Delete(tenant.GetTenantID(c), comment); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Comment deleted"})
}

func (h *CommentHandler) loadReport(c *fiber.Ctx) (*models.Report, bool, error) {
	id, valid := pathID(c, "id")
	if !valid {
		return nil, false, notFound(c, services.ErrReportNotFound.Error())
	}
	report, err := h.reports.Get(tenant.GetTenantID(c), id)
	if err != nil {
		return nil, false, writeError(c, err)
	}
	return report, true, nil
}

func (h *CommentHandler) load(c *fiber.Ctx) (*models.Comment, bool, error) {
	id, valid := pathID(c, "id")
	if !valid {
		return nil, false, notFound(c, services.ErrCommentNotFound.Error())
	}
	comment, err := h.comments.Get(tenant.GetTenantID(c), id)
	if err != nil {
		return nil, false, writeError(c, err)
	}
	return comment, true, nil
}
