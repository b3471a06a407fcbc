package repository

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PenaltyRepository struct {
	db *gorm.DB
}

func NewPenaltyRepository(db *gorm.DB) *PenaltyRepository {
	return &PenaltyRepository{db: db}
}

func (r *PenaltyRepository) Create(ctx context.Context, penalty *models.Penalty) error {
	if penalty.ID == uuid.Nil {
		penalty.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(penalty).Error; err != nil {
		return fmt.Errorf("failed to create penalty: %w", err)
	}
	return nil
}

func (r *PenaltyRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Penalty, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Penalty{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update penalty: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var penalty models.Penalty
	if err := r.db.WithContext(ctx).First(&penalty, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload penalty: %w", err)
	}
	return &penalty, nil
}

func (r *PenaltyRepository) ListForUser(ctx context.Context, userID uuid.UUID, page Page) ([]models.Penalty, int64, error) {
	var penalties []models.Penalty
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Penalty{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count penalties: %w", err)
	}
	if err := query.Order("issued_at DESC").Limit(page.Limit).Offset(page.Offset()).Find(&penalties).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list penalties: %w", err)
	}
	return penalties, total, nil
}

func (r *PenaltyRepository) ActiveBans(ctx context.Context, userID uuid.UUID) ([]models.Penalty, error) {
	var bans []models.Penalty
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND penalty_type IN ?", userID, true,
			[]models.PenaltyType{models.PenaltyTempBan, models.PenaltyPermaBan}).
		Find(&bans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load bans: %w", err)
	}
	return bans, nil
}
