package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/repository"
	"github.com/google/uuid"
)

const maxCustomReasonLength = 1000

type SubmitReportInput struct {
	ReporterID      uuid.UUID
	ActionType      models.ReportActionType
	TargetPostID    *uuid.UUID
	TargetCommentID *uuid.UUID
	ReasonCategory  models.ReasonCategory
	CustomText      *string
}

// ReportService owns the report lifecycle: PENDING on submission, then
// RESOLVED or DISMISSED by an operator. Operators may move a report between
// the two terminal states to correct a decision.
type ReportService struct {
	reports repository.ReportStore
	content repository.ContentStore
}

func NewReportService(reports repository.ReportStore, content repository.ContentStore) *ReportService {
	return &ReportService{reports: reports, content: content}
}

func (s *ReportService) Submit(ctx context.Context, in SubmitReportInput) (*models.Report, error) {
	targetID, err := reportTarget(in)
	if err != nil {
		return nil, err
	}
	if !in.ReasonCategory.Valid() {
		return nil, apperror.Validation("INVALID_REASON", "reason_category is not a known category")
	}
	customText, err := normalizeCustomText(in.CustomText)
	if err != nil {
		return nil, err
	}

	var authorID uuid.UUID
	switch in.ActionType {
	case models.ReportPost:
		authorID, err = s.content.PostAuthor(ctx, targetID)
	case models.ReportComment:
		authorID, err = s.content.CommentAuthor(ctx, targetID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.ErrContentNotFound
		}
		return nil, fmt.Errorf("resolve report target: %w", err)
	}
	if authorID == in.ReporterID {
		return nil, apperror.ErrSelfReport
	}

	report := &models.Report{
		ReporterUserID:   in.ReporterID,
		ActionType:       in.ActionType,
		TargetPostID:     in.TargetPostID,
		TargetCommentID:  in.TargetCommentID,
		TargetID:         targetID,
		TargetUserID:     authorID,
		ReasonCategory:   in.ReasonCategory,
		CustomReasonText: customText,
		Status:           models.ReportPending,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.ErrDuplicatePending
		}
		return nil, err
	}
	return report, nil
}

func (s *ReportService) Get(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	report, err := s.reports.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.ErrReportNotFound
	}
	return report, err
}

func (s *ReportService) Resolve(ctx context.Context, id uuid.UUID, status models.ReportStatus) (*models.Report, error) {
	if !status.IsTerminal() {
		return nil, apperror.ErrInvalidStatus
	}
	report, err := s.reports.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.ErrReportNotFound
	}
	return report, err
}

func (s *ReportService) List(ctx context.Context, status *models.ReportStatus, page repository.Page) ([]models.Report, int64, error) {
	if status != nil {
		switch *status {
		case models.ReportPending, models.ReportResolved, models.ReportDismissed:
		default:
			return nil, 0, apperror.Validation("INVALID_STATUS_FILTER", "status_filter must be PENDING, RESOLVED or DISMISSED")
		}
	}
	return s.reports.List(ctx, repository.ReportFilter{Status: status}, page)
}

// reportTarget checks that exactly the id matching the action type is set.
func reportTarget(in SubmitReportInput) (uuid.UUID, error) {
	switch in.ActionType {
	case models.ReportPost:
		if in.TargetPostID == nil || in.TargetCommentID != nil {
			return uuid.Nil, apperror.Validation("INVALID_TARGET", "REPORT_POST requires target_post_id only")
		}
		return *in.TargetPostID, nil
	case models.ReportComment:
		if in.TargetCommentID == nil || in.TargetPostID != nil {
			return uuid.Nil, apperror.Validation("INVALID_TARGET", "REPORT_COMMENT requires target_comment_id only")
		}
		return *in.TargetCommentID, nil
	default:
		return uuid.Nil, apperror.Validation("INVALID_ACTION_TYPE", "action_type must be REPORT_POST or REPORT_COMMENT")
	}
}

func normalizeCustomText(text *string) (*string, error) {
	if text == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*text)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > maxCustomReasonLength {
		return nil, apperror.Validation("REASON_TOO_LONG", fmt.Sprintf("custom_reason_text must be at most %d characters", maxCustomReasonLength))
	}
	return &trimmed, nil
}
