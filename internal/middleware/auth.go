package middleware

import (
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const userIDKey = "user_id"

// JWTProtected validates the bearer token and stores the subject's id for
// CurrentUserID. Tokens are issued by the identity service and share the
// HS256 secret.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			userID, err := subject(c)
			if err != nil {
				return reject(c, apperror.ErrUnauthenticated)
			}
			c.Locals(userIDKey, userID)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return reject(c, apperror.ErrUnauthenticated)
		},
	})
}

// OptionalJWT authenticates the request only when an Authorization header is
// present. A malformed token is still rejected.
func OptionalJWT(cfg *config.Config) fiber.Handler {
	protected := JWTProtected(cfg)
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return c.Next()
		}
		return protected(c)
	}
}

// CurrentUserID returns the authenticated user's id.
func CurrentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(userIDKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func subject(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, apperror.ErrUnauthenticated
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return uuid.Nil, apperror.ErrUnauthenticated
	}
	return uuid.Parse(sub)
}

func reject(c *fiber.Ctx, e *apperror.Error) error {
	return c.Status(e.Status()).JSON(dto.ErrorResponse{
		Error:   true,
		Code:    e.Code,
		Message: e.Message,
	})
}
