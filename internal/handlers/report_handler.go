package handlers

import (
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/access"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/filters"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/services"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reports  *services.ReportService
	comments *services.CommentService
}

func NewReportHandler(reports *services.ReportService, comments *services.CommentService) *ReportHandler {
	return &ReportHandler{reports: reports, comments: comments}
}

// ReportDetail is a report with the first page of its comments.
type ReportDetail struct {
	Report   *models.Report                     `json:"report"`
	Comments *dto.PageResponse[models.Comment] `json:"comments"`
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	var raw filters.Raw
	if err := c.QueryParser(&raw); err != nil {
		return badRequest(c, "Invalid filters")
	}

	page, err := h.reports.List(tenant.GetTenantID(c), middleware.CurrentActor(c), raw, c.QueryInt("page", 1))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(page)
}

func (h *ReportHandler) Show(c *fiber.Ctx) error {
	report, ok, err := h.load(c)
	if !ok {
		return err
	}
	if ok, err := authorize(c, access.KindReport, access.ActionView, report); !ok {
		return err
	}

	comments, err := h.comments.ListByReport(tenant.GetTenantID(c), report.ID, 1)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ReportDetail{Report: report, Comments: comments})
}

func (h *ReportHandler) Create(c *fiber.Ctx) error {
	if ok, err := authorize(c, access.KindReport, access.ActionCreate, nil); !ok {
		return err
	}

	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	report, err := h.reports.Create(tenant.GetTenantID(c), middleware.CurrentActor(c).ID, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ReportHandler) Update(c *fiber.Ctx) error {
	report, ok, err := h.load(c)
	if !ok {
		return err
	}
	if ok, err := authorize(c, access.KindReport, access.ActionEdit, report); !ok {
		return err
	}

	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	updated, err := h.reports.Update(tenant.GetTenantID(c), report, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(updated)
}

func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	report, ok, err := h.load(c)
	if !ok {
		return err
	}
	if ok, err := authorize(c, access.KindReport, access.ActionDelete, report); !ok {
		return err
	}

	if err := h.reports.Delete(tenant.GetTenantID(c), report); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Report deleted"})
}

func (h *ReportHandler) ToggleArchive(c *fiber.Ctx) error {
	report, ok, err := h.load(c)
	if !ok {
		return err
	}
	if ok, err := authorize(c, access.KindReport, access.ActionToggleArchive, report); !ok {
		return err
	}

	updated, err := h.reports.ToggleArchive(tenant.GetTenantID(c), report)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(updated)
}

// load fetches the :id report. ok is false when a response was written.
func (h *ReportHandler) load(c *fiber.Ctx) (*models.Report, bool, error) {
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
