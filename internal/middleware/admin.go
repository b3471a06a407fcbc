package middleware

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/roles"
	"github.com/gofiber/fiber/v2"
)

const roleKey = "role"

// OperatorRequired loads the caller's role from the user store and lets
// admins and super-admins through. It must run after JWTProtected.
func OperatorRequired(users repository.UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := CurrentUserID(c)
		if !ok {
			return reject(c, apperror.ErrUnauthenticated)
		}

		user, err := users.GetUser(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return reject(c, apperror.ErrUnauthenticated)
			}
			slog.Error("operator lookup failed", "user_id", userID.String(), "error", err)
			return reject(c, apperror.ErrInternal)
		}

		if !roles.IsOperator(user.Role) {
			return reject(c, apperror.ErrOperatorRequired)
		}
		c.Locals(roleKey, user.Role)
		return c.Next()
	}
}
