package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	users repository.UserStore,
	bans middleware.BanChecker,
	healthHandler *handlers.HealthHandler,
	moderationHandler *handlers.ModerationHandler,
	penaltyHandler *handlers.PenaltyHandler,
	engagementHandler *handlers.EngagementHandler,
	achievementHandler *handlers.AchievementHandler,
) {
	api := app.Group("/api")

	// General API rate limiter, per IP
	if cfg.RateLimitPerMinute > 0 {
		api.Use(limiter.New(limiter.Config{
			Max:               cfg.RateLimitPerMinute,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
					Error: true, Code: "RATE_LIMITED", Message: "Too many requests",
				})
			},
		}))
	}

	api.Get("/health", healthHandler.Check)

	// Public
	api.Get("/achievements/:user_id", achievementHandler.ListForUser)
	api.Get("/posts/:id/engagement", middleware.OptionalJWT(cfg), engagementHandler.Summary)

	// Member actions: authenticated and not banned
	member := []fiber.Handler{middleware.JWTProtected(cfg), middleware.BanGate(bans)}
	api.Post("/reports", append(member, moderationHandler.CreateReport)...)
	api.Post("/posts/comments/:id/honor", append(member, engagementHandler.HonorComment)...)
	api.Post("/posts/:id/like", append(member, engagementHandler.LikePost)...)
	api.Post("/posts/:id/view", append(member, engagementHandler.ViewPost)...)

	// Operator panel
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.OperatorRequired(users))
	admin.Get("/content-reports", moderationHandler.ListReports)
	admin.Put("/content-reports/:id/action", moderationHandler.ResolveReport)
	admin.Post("/users/:id/penalties", penaltyHandler.Issue)
	admin.Get("/users/:id/penalties", penaltyHandler.ListForUser)
	admin.Get("/users/:id/ban-status", penaltyHandler.BanStatus)
	admin.Post("/users/:id/achievements/evaluate", achievementHandler.Evaluate)
	admin.Put("/penalties/:id/status", penaltyHandler.SetStatus)
}
