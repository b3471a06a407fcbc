package middleware

import (
	"context"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/apperror"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BanChecker interface {
	IsCurrentlyBanned(ctx context.Context, userID uuid.UUID) (bool, error)
}

// BanGate blocks users with an effectively active ban from member actions.
func BanGate(bans BanChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := CurrentUserID(c)
		if !ok {
			return reject(c, apperror.ErrUnauthenticated)
		}

		banned, err := bans.IsCurrentlyBanned(c.UserContext(), userID)
		if err != nil {
			slog.Error("ban check failed", "user_id", userID.String(), "error", err)
			return reject(c, apperror.ErrInternal)
		}
		if banned {
			return reject(c, apperror.ErrUserBanned)
		}
		return c.Next()
	}
}
