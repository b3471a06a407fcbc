package models

import (
	"time"

	"github.com/google/uuid"
)

type PenaltyType string

const (
	PenaltyWarning  PenaltyType = "WARNING"
	PenaltyTempBan  PenaltyType = "TEMP_BAN"
	PenaltyPermaBan PenaltyType = "PERMA_BAN"
)

func (t PenaltyType) Valid() bool {
	return t == PenaltyWarning || t == PenaltyTempBan || t == PenaltyPermaBan
}

// IsBan reports whether the penalty blocks the user from the platform.
func (t PenaltyType) IsBan() bool {
	return t == PenaltyTempBan || t == PenaltyPermaBan
}

// Penalty is never deleted; operators deactivate it instead. Expiry is not
// stored as a state, see EffectivelyActive.
type Penalty struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index:idx_penalties_user_issued,priority:1" json:"user_id"`
	PenaltyType      PenaltyType    `gorm:"size:20;not null" json:"penalty_type"`
	ReasonCategory   ReasonCategory `gorm:"size:50;not null" json:"reason_category"`
	CustomReasonText *string        `gorm:"size:1000" json:"custom_reason_text,omitempty"`
	IssuedByUserID   uuid.UUID      `gorm:"type:uuid;not null" json:"issued_by_user_id"`
	ReportID         *uuid.UUID     `gorm:"type:uuid;index" json:"report_id,omitempty"`
	IssuedAt         time.Time      `gorm:"not null;index:idx_penalties_user_issued,priority:2,sort:desc" json:"issued_at"`
	ExpiresAt        *time.Time     `json:"expires_at"`
	IsActive         bool           `gorm:"not null" json:"is_active"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (Penalty) TableName() string {
	return "penalties"
}

// EffectivelyActive combines the manual flag with the computed expiry.
func (p *Penalty) EffectivelyActive(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	return p.ExpiresAt == nil || now.Before(*p.ExpiresAt)
}
