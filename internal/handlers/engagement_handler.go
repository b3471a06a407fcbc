package handlers

import (
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EngagementHandler struct {
	moderationService *services.ModerationService
}

func NewEngagementHandler(moderationService *services.ModerationService) *EngagementHandler {
	return &EngagementHandler{moderationService: moderationService}
}

func (h *EngagementHandler) LikePost(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	postID, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	res, err := h.moderationService.LikePost(c.UserContext(), userID, postID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.LikeResponse{Count: res.Count, CurrentUserHasLiked: res.Active})
}

func (h *EngagementHandler) HonorComment(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	commentID, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	res, err := h.moderationService.HonorComment(c.UserContext(), userID, commentID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.HonorResponse{Count: res.Count, CurrentUserHasHonored: res.Active})
}

func (h *EngagementHandler) ViewPost(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	postID, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	count, err := h.moderationService.ViewPost(c.UserContext(), userID, postID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.ViewResponse{Count: count})
}

// Summary is public; the liked flag is only filled for authenticated callers.
func (h *EngagementHandler) Summary(c *fiber.Ctx) error {
	postID, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var viewer *uuid.UUID
	if id, ok := middleware.CurrentUserID(c); ok {
		viewer = &id
	}

	summary, err := h.moderationService.PostEngagement(c.UserContext(), postID, viewer)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.EngagementSummaryResponse{
		PostID:              postID,
		Likes:               summary.Likes,
		Views:               summary.Views,
		CurrentUserHasLiked: summary.Liked,
	})
}
