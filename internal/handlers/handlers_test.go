package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/repository/memory"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/roles"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type server struct {
	app          *fiber.App
	dir          *memory.Directory
	penalties    *memory.Penalties
	achievements *memory.Achievements

	member models.User
	author models.User
	admin  models.User
}

func newServer(t *testing.T) *server {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:       testSecret,
		CORSOrigins:     "*",
		DefaultPageSize: 20,
		MaxPageSize:     50,
	}

	s := &server{
		dir:          memory.NewDirectory(),
		penalties:    memory.NewPenalties(),
		achievements: memory.NewAchievements(),
	}
	s.member = s.dir.AddUser(models.User{Username: "alice", Role: roles.Member, Level: 1})
	s.author = s.dir.AddUser(models.User{Username: "bob", Role: roles.Member, Level: 1})
	s.admin = s.dir.AddUser(models.User{Username: "dana", Role: roles.Admin, Level: 1})

	reportSvc := services.NewReportService(memory.NewReports(), s.dir)
	penaltySvc := services.NewPenaltyService(s.penalties, s.dir)
	engagementSvc := services.NewEngagementService(memory.NewEngagement(), s.dir)
	achievementSvc := services.NewAchievementService(s.achievements, s.dir)
	require.NoError(t, achievementSvc.Seed(t.Context()))
	moderation := services.NewModerationService(reportSvc, penaltySvc, engagementSvc, achievementSvc)

	paging := handlers.NewPaging(cfg)
	s.app = fiber.New()
	routes.Setup(s.app, cfg, s.dir, moderation,
		handlers.NewHealthHandler(nil),
		handlers.NewModerationHandler(moderation, paging),
		handlers.NewPenaltyHandler(moderation, paging),
		handlers.NewEngagementHandler(moderation),
		handlers.NewAchievementHandler(moderation),
	)
	return s
}

func token(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func (s *server) do(t *testing.T, method, path string, as *models.User, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		req.Header.Set("Authorization", "Bearer "+token(t, as.ID))
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func errorCode(t *testing.T, raw []byte) string {
	t.Helper()
	body := decode[dto.ErrorResponse](t, raw)
	assert.True(t, body.Error)
	assert.NotEmpty(t, body.Message)
	return body.Code
}
