package repository

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

func (r *AchievementRepository) Catalog(ctx context.Context) ([]models.Achievement, error) {
	var achievements []models.Achievement
	if err := r.db.WithContext(ctx).Order("id").Find(&achievements).Error; err != nil {
		return nil, fmt.Errorf("failed to load achievements: %w", err)
	}
	return achievements, nil
}

// SeedCatalog upserts catalog rows so name/description edits ship with deploys.
func (r *AchievementRepository) SeedCatalog(ctx context.Context, achievements []models.Achievement) error {
	if len(achievements) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "icon"}),
	}).Create(&achievements).Error
	if err != nil {
		return fmt.Errorf("failed to seed achievements: %w", err)
	}
	return nil
}

func (r *AchievementRepository) Grants(ctx context.Context, userID uuid.UUID) ([]models.AchievementGrant, error) {
	var grants []models.AchievementGrant
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&grants).Error; err != nil {
		return nil, fmt.Errorf("failed to load achievement grants: %w", err)
	}
	return grants, nil
}

func (r *AchievementRepository) HasGrant(ctx context.Context, userID uuid.UUID, achievementID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.AchievementGrant{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up achievement grant: %w", err)
	}
	return n > 0, nil
}

// Grant is safe to race: the composite key plus ON CONFLICT DO NOTHING means
// concurrent evaluations of the same user insert at most one row.
func (r *AchievementRepository) Grant(ctx context.Context, grant *models.AchievementGrant) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(grant)
	if result.Error != nil {
		return false, fmt.Errorf("failed to grant achievement: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
