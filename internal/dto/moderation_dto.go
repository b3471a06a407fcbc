package dto

import (
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/models"
	"github.com/google/uuid"
)

type CreateReportRequest struct {
	ActionType       string  `json:"action_type" validate:"required,oneof=REPORT_POST REPORT_COMMENT"`
	TargetPostID     *string `json:"target_post_id,omitempty" validate:"omitempty,uuid"`
	TargetCommentID  *string `json:"target_comment_id,omitempty" validate:"omitempty,uuid"`
	ReasonCategory   string  `json:"reason_category" validate:"required"`
	CustomReasonText *string `json:"custom_reason_text,omitempty" validate:"omitempty,max=1000"`
}

type CreateReportResponse struct {
	ActionID uuid.UUID `json:"action_id"`
}

type ReportListQuery struct {
	PageQuery
	StatusFilter string `query:"status_filter" validate:"omitempty,oneof=PENDING RESOLVED DISMISSED"`
}

type ResolvePenaltyRequest struct {
	UserID           string  `json:"user_id_to_penalize" validate:"required,uuid"`
	PenaltyType      string  `json:"penalty_type" validate:"required,oneof=WARNING TEMP_BAN PERMA_BAN"`
	Reason           string  `json:"reason" validate:"required"`
	CustomReasonText *string `json:"custom_reason_text,omitempty" validate:"omitempty,max=1000"`
	DurationDays     *int    `json:"duration_days,omitempty"`
}

type ResolveReportRequest struct {
	NewReportStatus string                 `json:"new_report_status" validate:"required,oneof=RESOLVED DISMISSED"`
	Penalty         *ResolvePenaltyRequest `json:"penalty,omitempty"`
}

type ResolveReportResponse struct {
	Report  *models.Report  `json:"report"`
	Penalty *models.Penalty `json:"penalty,omitempty"`
}

type IssuePenaltyRequest struct {
	PenaltyType      string  `json:"penalty_type" validate:"required,oneof=WARNING TEMP_BAN PERMA_BAN"`
	ReasonCategory   string  `json:"reason_category" validate:"required"`
	CustomReasonText *string `json:"custom_reason_text,omitempty" validate:"omitempty,max=1000"`
	DurationDays     *int    `json:"duration_days,omitempty"`
}

type PenaltyStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type BanStatusResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Banned bool      `json:"banned"`
}
