package models

import (
	"time"

	"github.com/google/uuid"
)

// Achievement is a catalog entry; ids are stable strings referenced by rules.
type Achievement struct {
	ID          string    `gorm:"size:50;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:500" json:"description"`
	Icon        string    `gorm:"size:50" json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// AchievementGrant is append-only.
type AchievementGrant struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	AchievementID string    `gorm:"size:50;primaryKey" json:"achievement_id"`
	ObtainedAt    time.Time `gorm:"not null" json:"obtained_at"`
}

func (AchievementGrant) TableName() string {
	return "achievement_grants"
}
