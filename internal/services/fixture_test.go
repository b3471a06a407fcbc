package services

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/repository/memory"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/roles"
)

type fixture struct {
	dir          *memory.Directory
	reports      *memory.Reports
	penalties    *memory.Penalties
	edges        *memory.Engagement
	achievements *memory.Achievements

	reportSvc      *ReportService
	penaltySvc     *PenaltyService
	engagementSvc  *EngagementService
	achievementSvc *AchievementService
	moderation     *ModerationService

	member      models.User
	otherMember models.User
	admin       models.User
	otherAdmin  models.User
	super       models.User
	otherSuper  models.User
}

var fixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		dir:          memory.NewDirectory(),
		reports:      memory.NewReports(),
		penalties:    memory.NewPenalties(),
		edges:        memory.NewEngagement(),
		achievements: memory.NewAchievements(),
	}

	f.reportSvc = NewReportService(f.reports, f.dir)
	f.penaltySvc = NewPenaltyService(f.penalties, f.dir)
	f.penaltySvc.now = func() time.Time { return fixedNow }
	f.engagementSvc = NewEngagementService(f.edges, f.dir)
	f.achievementSvc = NewAchievementService(f.achievements, f.dir)
	f.achievementSvc.now = func() time.Time { return fixedNow }
	f.moderation = NewModerationService(f.reportSvc, f.penaltySvc, f.engagementSvc, f.achievementSvc)

	f.member = f.dir.AddUser(models.User{Username: "alice", Role: roles.Member, Level: 1})
	f.otherMember = f.dir.AddUser(models.User{Username: "bob", Role: roles.Member, Level: 1})
	f.admin = f.dir.AddUser(models.User{Username: "dana", Role: roles.Admin, Level: 1})
	f.otherAdmin = f.dir.AddUser(models.User{Username: "erin", Role: roles.Admin, Level: 1})
	f.super = f.dir.AddUser(models.User{Username: "root", Role: roles.SuperAdmin, Level: 1})
	f.otherSuper = f.dir.AddUser(models.User{Username: "root2", Role: roles.SuperAdmin, Level: 1})

	return f
}

func ptr[T any](v T) *T {
	return &v
}
