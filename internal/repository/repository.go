// Package repository defines the storage ports used by the moderation
// services and their GORM/PostgreSQL implementations. Uniqueness rules that
// guard against concurrent duplicates are enforced by the database and
// surface as ErrDuplicate.
package repository

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/models"
	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Page is a 1-based page request.
type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

type ReportFilter struct {
	Status *models.ReportStatus
}

type ReportStore interface {
	// Create returns ErrDuplicate when the reporter already has a PENDING
	// report for the same target.
	Create(ctx context.Context, report *models.Report) error
	Get(ctx context.Context, id uuid.UUID) (*models.Report, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus) (*models.Report, error)
	// List orders by created_at descending.
	List(ctx context.Context, filter ReportFilter, page Page) ([]models.Report, int64, error)
}

type PenaltyStore interface {
	Create(ctx context.Context, penalty *models.Penalty) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Penalty, error)
	// ListForUser orders by issued_at descending.
	ListForUser(ctx context.Context, userID uuid.UUID, page Page) ([]models.Penalty, int64, error)
	// ActiveBans returns ban penalties whose manual flag is set. Expiry is
	// left to the caller.
	ActiveBans(ctx context.Context, userID uuid.UUID) ([]models.Penalty, error)
}

type EngagementStore interface {
	Exists(ctx context.Context, actorID uuid.UUID, kind models.EngagementType, targetID uuid.UUID) (bool, error)
	// Insert returns ErrDuplicate if the edge already exists.
	Insert(ctx context.Context, edge *models.EngagementEdge) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, actorID uuid.UUID, kind models.EngagementType, targetID uuid.UUID) (bool, error)
	Count(ctx context.Context, kind models.EngagementType, targetID uuid.UUID) (int64, error)
}

type AchievementStore interface {
	Catalog(ctx context.Context) ([]models.Achievement, error)
	SeedCatalog(ctx context.Context, achievements []models.Achievement) error
	Grants(ctx context.Context, userID uuid.UUID) ([]models.AchievementGrant, error)
	HasGrant(ctx context.Context, userID uuid.UUID, achievementID string) (bool, error)
	// Grant inserts if missing and reports whether a row was created.
	Grant(ctx context.Context, grant *models.AchievementGrant) (bool, error)
}

type UserStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ContentStore resolves the author of forum content.
type ContentStore interface {
	PostAuthor(ctx context.Context, postID uuid.UUID) (uuid.UUID, error)
	CommentAuthor(ctx context.Context, commentID uuid.UUID) (uuid.UUID, error)
}

// StatsStore supplies the aggregates achievement rules are checked against.
type StatsStore interface {
	TournamentCount(ctx context.Context, userID uuid.UUID) (int64, error)
	SolvedCount(ctx context.Context, userID uuid.UUID) (int64, error)
	Level(ctx context.Context, userID uuid.UUID) (int64, error)
	// LeaderboardPosition is 1-based; 0 means unranked.
	LeaderboardPosition(ctx context.Context, userID uuid.UUID) (int64, error)
	TeamTournamentCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

var (
	_ ReportStore      = (*ReportRepository)(nil)
	_ PenaltyStore     = (*PenaltyRepository)(nil)
	_ EngagementStore  = (*EngagementRepository)(nil)
	_ AchievementStore = (*AchievementRepository)(nil)
	_ UserStore        = (*UserRepository)(nil)
	_ ContentStore     = (*UserRepository)(nil)
	_ StatsStore       = (*UserRepository)(nil)
)
