package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/repository"
	"github.com/google/uuid"
)

const (
	AchievementFirstTournament = "first_tournament"
	AchievementFirstSolve      = "first_solve"
	AchievementLevelFive       = "level_5"
	AchievementTopFive         = "top_5_leaderboard"
	AchievementTeamPlayer      = "team_tournament"
)

// Rule grants AchievementID when Satisfied holds for the aggregate returned
// by Lookup. Lookups fetch; predicates only compare.
type Rule struct {
	AchievementID string
	Lookup        func(ctx context.Context, stats repository.StatsStore, userID uuid.UUID) (int64, error)
	Satisfied     func(value int64) bool
}

func atLeast(n int64) func(int64) bool {
	return func(v int64) bool { return v >= n }
}

// DefaultRules is the fixed rule set. Adding an achievement means adding an
// entry here and to DefaultCatalog.
var DefaultRules = []Rule{
	{
		AchievementID: AchievementFirstTournament,
		Lookup: func(ctx context.Context, stats repository.StatsStore, id uuid.UUID) (int64, error) {
			return stats.TournamentCount(ctx, id)
		},
		Satisfied: atLeast(1),
	},
	{
		AchievementID: AchievementFirstSolve,
		Lookup: func(ctx context.Context, stats repository.StatsStore, id uuid.UUID) (int64, error) {
			return stats.SolvedCount(ctx, id)
		},
		Satisfied: atLeast(1),
	},
	{
		AchievementID: AchievementLevelFive,
		Lookup: func(ctx context.Context, stats repository.StatsStore, id uuid.UUID) (int64, error) {
			return stats.Level(ctx, id)
		},
		Satisfied: atLeast(5),
	},
	{
		AchievementID: AchievementTopFive,
		Lookup: func(ctx context.Context, stats repository.StatsStore, id uuid.UUID) (int64, error) {
			return stats.LeaderboardPosition(ctx, id)
		},
		Satisfied: func(pos int64) bool { return pos >= 1 && pos <= 5 },
	},
	{
		AchievementID: AchievementTeamPlayer,
		Lookup: func(ctx context.Context, stats repository.StatsStore, id uuid.UUID) (int64, error) {
			return stats.TeamTournamentCount(ctx, id)
		},
		Satisfied: atLeast(1),
	},
}

var DefaultCatalog = []models.Achievement{
	{ID: AchievementFirstTournament, Name: "Contender", Description: "Participate in any tournament", Icon: "trophy"},
	{ID: AchievementFirstSolve, Name: "Problem Solver", Description: "Solve at least one problem", Icon: "check"},
	{ID: AchievementLevelFive, Name: "Rising Star", Description: "Reach level 5", Icon: "star"},
	{ID: AchievementTopFive, Name: "Elite", Description: "Place in the top 5 of the leaderboard", Icon: "crown"},
	{ID: AchievementTeamPlayer, Name: "Team Player", Description: "Take part in a tournament as part of a team", Icon: "users"},
}

type AchievementStatus struct {
	models.Achievement
	Unlocked   bool       `json:"unlocked"`
	ObtainedAt *time.Time `json:"obtained_at,omitempty"`
}

type AchievementService struct {
	store repository.AchievementStore
	stats repository.StatsStore
	rules []Rule
	now   func() time.Time
}

// NewAchievementService uses DefaultRules unless rules are given.
func NewAchievementService(store repository.AchievementStore, stats repository.StatsStore, rules ...Rule) *AchievementService {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &AchievementService{store: store, stats: stats, rules: rules, now: time.Now}
}

func (s *AchievementService) Seed(ctx context.Context) error {
	return s.store.SeedCatalog(ctx, DefaultCatalog)
}

// Evaluate checks every rule for the user and grants what is missing. Each
// rule is independent: a failing lookup or grant is logged and the remaining
// rules still run. It returns the ids granted by this call.
func (s *AchievementService) Evaluate(ctx context.Context, userID uuid.UUID) []string {
	var granted []string
	for _, rule := range s.rules {
		ok, err := s.applyRule(ctx, rule, userID)
		if err != nil {
			slog.Warn("achievement rule failed", "rule", rule.AchievementID, "user_id", userID.String(), "error", err)
			continue
		}
		if ok {
			granted = append(granted, rule.AchievementID)
		}
	}
	if len(granted) > 0 {
		slog.Info("achievements granted", "user_id", userID.String(), "achievements", granted)
	}
	return granted
}

func (s *AchievementService) applyRule(ctx context.Context, rule Rule, userID uuid.UUID) (granted bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			granted, err = false, fmt.Errorf("panic: %v", r)
		}
	}()

	has, err := s.store.HasGrant(ctx, userID, rule.AchievementID)
	if err != nil {
		return false, err
	}
	if has {
		return false, nil
	}

	value, err := rule.Lookup(ctx, s.stats, userID)
	if err != nil {
		return false, err
	}
	if !rule.Satisfied(value) {
		return false, nil
	}

	return s.store.Grant(ctx, &models.AchievementGrant{
		UserID:        userID,
		AchievementID: rule.AchievementID,
		ObtainedAt:    s.now().UTC(),
	})
}

// ListForUser returns the whole catalog annotated with the user's unlocks.
func (s *AchievementService) ListForUser(ctx context.Context, userID uuid.UUID) ([]AchievementStatus, error) {
	catalog, err := s.store.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	grants, err := s.store.Grants(ctx, userID)
	if err != nil {
		return nil, err
	}

	obtained := make(map[string]time.Time, len(grants))
	for _, g := range grants {
		obtained[g.AchievementID] = g.ObtainedAt
	}

	result := make([]AchievementStatus, 0, len(catalog))
	for _, a := range catalog {
		status := AchievementStatus{Achievement: a}
		if at, ok := obtained[a.ID]; ok {
			status.Unlocked = true
			status.ObtainedAt = &at
		}
		result = append(result, status)
	}
	return result, nil
}
