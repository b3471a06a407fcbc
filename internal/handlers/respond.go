package handlers

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/validation"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// respondError writes the classified error. Unclassified errors are logged,
// reported to Sentry and returned as a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	appErr := apperror.From(err)
	if appErr.Kind == apperror.KindInternal {
		slog.Error("request failed",
			"request_id", requestID(c),
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
	}
	return c.Status(appErr.Status()).JSON(dto.ErrorResponse{
		Error:   true,
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}

func currentUser(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		return uuid.Nil, apperror.ErrUnauthenticated
	}
	return id, nil
}

func uuidParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperror.Validation("INVALID_ID", name+" must be a UUID")
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperror.Validation("INVALID_BODY", "Invalid request body")
	}
	return validation.Struct(dst)
}

// Paging turns ?page=&limit= into a repository.Page.
type Paging struct {
	DefaultLimit int
	MaxLimit     int
}

func NewPaging(cfg *config.Config) Paging {
	return Paging{DefaultLimit: cfg.DefaultPageSize, MaxLimit: cfg.MaxPageSize}
}

func (p Paging) resolve(q dto.PageQuery) (repository.Page, error) {
	page := repository.Page{Page: q.Page, Limit: q.Limit}
	if page.Page == 0 {
		page.Page = 1
	}
	if page.Limit == 0 {
		page.Limit = p.DefaultLimit
	}
	if page.Limit > p.MaxLimit {
		return page, apperror.Validation("INVALID_LIMIT", "limit must be between 1 and the maximum page size")
	}
	return page, nil
}

func parseQuery(c *fiber.Ctx, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return apperror.Validation("INVALID_QUERY", "Invalid query parameters")
	}
	return validation.Struct(dst)
}
