package handlers

import (
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PenaltyHandler struct {
	moderationService *services.ModerationService
	paging            Paging
}

func NewPenaltyHandler(moderationService *services.ModerationService, paging Paging) *PenaltyHandler {
	return &PenaltyHandler{moderationService: moderationService, paging: paging}
}

func (h *PenaltyHandler) Issue(c *fiber.Ctx) error {
	issuerID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	targetID, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req dto.IssuePenaltyRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	penalty, err := h.moderationService.IssuePenalty(c.UserContext(), services.IssuePenaltyInput{
		TargetUserID:   targetID,
		IssuedByUserID: issuerID,
		PenaltyType:    models.PenaltyType(req.PenaltyType),
		ReasonCategory: models.ReasonCategory(req.ReasonCategory),
		CustomText:     req.CustomReasonText,
		DurationDays:   req.DurationDays,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(penalty)
}

func (h *PenaltyHandler) SetStatus(c *fiber.Ctx) error {
	penaltyID, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req dto.PenaltyStatusRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	penalty, err := h.moderationService.SetPenaltyActive(c.UserContext(), penaltyID, *req.IsActive)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(penalty)
}

func (h *PenaltyHandler) ListForUser(c *fiber.Ctx) error {
	userID, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var q dto.PageQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	page, err := h.paging.resolve(q)
	if err != nil {
		return respondError(c, err)
	}

	penalties, total, err := h.moderationService.ListPenalties(c.UserContext(), userID, page)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.ListResponse[models.Penalty]{
		Data:       penalties,
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	})
}

func (h *PenaltyHandler) BanStatus(c *fiber.Ctx) error {
	userID, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	banned, err := h.moderationService.IsCurrentlyBanned(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.BanStatusResponse{UserID: userID, Banned: banned})
}
