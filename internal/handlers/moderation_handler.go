package handlers

import (
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ModerationHandler struct {
	moderationService *services.ModerationService
	paging            Paging
}

func NewModerationHandler(moderationService *services.ModerationService, paging Paging) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService, paging: paging}
}

func (h *ModerationHandler) CreateReport(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	var req dto.CreateReportRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	report, err := h.moderationService.SubmitReport(c.UserContext(), services.SubmitReportInput{
		ReporterID:      userID,
		ActionType:      models.ReportActionType(req.ActionType),
		TargetPostID:    optionalUUID(req.TargetPostID),
		TargetCommentID: optionalUUID(req.TargetCommentID),
		ReasonCategory:  models.ReasonCategory(req.ReasonCategory),
		CustomText:      req.CustomReasonText,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateReportResponse{ActionID: report.ID})
}

func (h *ModerationHandler) ListReports(c *fiber.Ctx) error {
	var q dto.ReportListQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	page, err := h.paging.resolve(q.PageQuery)
	if err != nil {
		return respondError(c, err)
	}

	var status *models.ReportStatus
	if q.StatusFilter != "" {
		s := models.ReportStatus(q.StatusFilter)
		status = &s
	}

	reports, total, err := h.moderationService.ListReports(c.UserContext(), status, page)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.ListResponse[models.Report]{
		Data:       reports,
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	})
}

func (h *ModerationHandler) ResolveReport(c *fiber.Ctx) error {
	operatorID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	reportID, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req dto.ResolveReportRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	in := services.ResolveReportInput{
		ReportID:   reportID,
		OperatorID: operatorID,
		Status:     models.ReportStatus(req.NewReportStatus),
	}
	if p := req.Penalty; p != nil {
		in.Penalty = &services.ReportPenalty{
			UserID:         uuid.MustParse(p.UserID),
			PenaltyType:    models.PenaltyType(p.PenaltyType),
			ReasonCategory: models.ReasonCategory(p.Reason),
			CustomText:     p.CustomReasonText,
			DurationDays:   p.DurationDays,
		}
	}

	result, err := h.moderationService.ResolveReport(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.ResolveReportResponse{Report: result.Report, Penalty: result.Penalty})
}

// optionalUUID converts an already validated id.
func optionalUUID(s *string) *uuid.UUID {
	if s == nil {
		return nil
	}
	id := uuid.MustParse(*s)
	return &id
}
