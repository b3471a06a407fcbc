package handlers

import (
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AchievementHandler struct {
	moderationService *services.ModerationService
}

func NewAchievementHandler(moderationService *services.ModerationService) *AchievementHandler {
	return &AchievementHandler{moderationService: moderationService}
}

func (h *AchievementHandler) ListForUser(c *fiber.Ctx) error {
	userID, err := uuidParam(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}

	achievements, err := h.moderationService.Achievements(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(achievements)
}

func (h *AchievementHandler) Evaluate(c *fiber.Ctx) error {
	userID, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	granted := h.moderationService.EvaluateAchievements(c.UserContext(), userID)
	if granted == nil {
		granted = []string{}
	}

	return c.JSON(dto.EvaluateResponse{UserID: userID, Granted: granted})
}
