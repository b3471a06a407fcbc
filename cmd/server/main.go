package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.AppEnv)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(db)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.StdoutHandler(cfg.AppEnv),
		pgLogHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetention(), cleanupDone)

	// Repositories
	users := repository.NewUserRepository(db)
	reports := repository.NewReportRepository(db)
	penalties := repository.NewPenaltyRepository(db)
	edges := repository.NewEngagementRepository(db)
	achievements := repository.NewAchievementRepository(db)

	// Services
	reportService := services.NewReportService(reports, users)
	penaltyService := services.NewPenaltyService(penalties, users)
	engagementService := services.NewEngagementService(edges, users)
	achievementService := services.NewAchievementService(achievements, users)
	moderationService := services.NewModerationService(reportService, penaltyService, engagementService, achievementService)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := achievementService.Seed(seedCtx); err != nil {
		slog.Error("achievement catalog seed failed", "error", err)
		os.Exit(1)
	}
	cancelSeed()

	// Handlers
	paging := handlers.NewPaging(cfg)
	healthHandler := handlers.NewHealthHandler(db)
	moderationHandler := handlers.NewModerationHandler(moderationService, paging)
	penaltyHandler := handlers.NewPenaltyHandler(moderationService, paging)
	engagementHandler := handlers.NewEngagementHandler(moderationService)
	achievementHandler := handlers.NewAchievementHandler(moderationService)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	routes.Setup(app, cfg, users, moderationService,
		healthHandler, moderationHandler, penaltyHandler, engagementHandler, achievementHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

// customErrorHandler covers errors that escape the handlers: unmatched
// routes, body limit violations and recovered panics.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	errCode := apperror.ErrInternal.Code
	message := apperror.ErrInternal.Message

	var fe *fiber.Error
	var ae *apperror.Error
	switch {
	case errors.As(err, &ae):
		code, errCode, message = ae.Status(), ae.Code, ae.Message
	case errors.As(err, &fe):
		code, message = fe.Code, fe.Message
		errCode = fiberErrorCode(fe.Code)
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error",
			"request_id", c.Locals("requestid"),
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		errCode = apperror.ErrInternal.Code
		message = apperror.ErrInternal.Message
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Code:    errCode,
		Message: message,
	})
}

func fiberErrorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "ROUTE_NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusTooManyRequests:
		return "RATE_LIMITED"
	default:
		return "HTTP_ERROR"
	}
}
