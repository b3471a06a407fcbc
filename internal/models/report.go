package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportActionType string

const (
	ReportPost    ReportActionType = "REPORT_POST"
	ReportComment ReportActionType = "REPORT_COMMENT"
)

type ReportStatus string

const (
	ReportPending   ReportStatus = "PENDING"
	ReportResolved  ReportStatus = "RESOLVED"
	ReportDismissed ReportStatus = "DISMISSED"
)

// IsTerminal reports whether an operator has acted on the report.
func (s ReportStatus) IsTerminal() bool {
	return s == ReportResolved || s == ReportDismissed
}

type ReasonCategory string

const (
	ReasonSpam                 ReasonCategory = "SPAM"
	ReasonHarassment           ReasonCategory = "HARASSMENT"
	ReasonHateSpeech           ReasonCategory = "HATE_SPEECH"
	ReasonInappropriateContent ReasonCategory = "INAPPROPRIATE_CONTENT"
	ReasonCheating             ReasonCategory = "CHEATING"
	ReasonImpersonation        ReasonCategory = "IMPERSONATION"
	ReasonOther                ReasonCategory = "OTHER"
)

// ReasonCategories is the accepted set, in display order.
var ReasonCategories = []ReasonCategory{
	ReasonSpam,
	ReasonHarassment,
	ReasonHateSpeech,
	ReasonInappropriateContent,
	ReasonCheating,
	ReasonImpersonation,
	ReasonOther,
}

func (r ReasonCategory) Valid() bool {
	for _, c := range ReasonCategories {
		if c == r {
			return true
		}
	}
	return false
}

// Report is an abuse report against a post or a comment. TargetID mirrors
// whichever of TargetPostID/TargetCommentID is set so the pending-uniqueness
// index never has to compare NULLs.
type Report struct {
	ID               uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReporterUserID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"reporter_user_id"`
	ActionType       ReportActionType `gorm:"size:20;not null" json:"action_type"`
	TargetPostID     *uuid.UUID       `gorm:"type:uuid;index" json:"target_post_id,omitempty"`
	TargetCommentID  *uuid.UUID       `gorm:"type:uuid;index" json:"target_comment_id,omitempty"`
	TargetID         uuid.UUID        `gorm:"type:uuid;not null" json:"-"`
	TargetUserID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"target_user_id"`
	ReasonCategory   ReasonCategory   `gorm:"size:50;not null" json:"reason_category"`
	CustomReasonText *string          `gorm:"size:1000" json:"custom_reason_text,omitempty"`
	Status           ReportStatus     `gorm:"size:20;not null;index" json:"status"`
	CreatedAt        time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func (Report) TableName() string {
	return "reports"
}
