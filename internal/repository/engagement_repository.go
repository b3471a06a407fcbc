package repository

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EngagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) *EngagementRepository {
	return &EngagementRepository{db: db}
}

func (r *EngagementRepository) Exists(ctx context.Context, actorID uuid.UUID, kind models.EngagementType, targetID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.EngagementEdge{}).
		Where("actor_user_id = ? AND target_type = ? AND target_id = ?", actorID, kind, targetID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up engagement: %w", err)
	}
	return n > 0, nil
}

// Insert relies on the composite primary key; a concurrent insert of the same
// edge fails here instead of producing a second row.
func (r *EngagementRepository) Insert(ctx context.Context, edge *models.EngagementEdge) error {
	if err := r.db.WithContext(ctx).Create(edge).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert engagement: %w", err)
	}
	return nil
}

func (r *EngagementRepository) Delete(ctx context.Context, actorID uuid.UUID, kind models.EngagementType, targetID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("actor_user_id = ? AND target_type = ? AND target_id = ?", actorID, kind, targetID).
		Delete(&models.EngagementEdge{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete engagement: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *EngagementRepository) Count(ctx context.Context, kind models.EngagementType, targetID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.EngagementEdge{}).
		Where("target_type = ? AND target_id = ?", kind, targetID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count engagement: %w", err)
	}
	return n, nil
}
