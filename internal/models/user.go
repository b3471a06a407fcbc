package models

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/roles"
	"github.com/google/uuid"
)

// User is owned by the identity service. Moderation only reads the role,
// level and team, and links penalties and achievement grants to the id.
type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username  string     `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Role      roles.Role `gorm:"not null;default:0" json:"role"`
	Level     int        `gorm:"not null;default:1" json:"level"`
	XP        int        `gorm:"not null;default:0;index" json:"xp"`
	TeamID    *uuid.UUID `gorm:"type:uuid;index" json:"team_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
