package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/repository"
	"github.com/google/uuid"
)

type ReportPenalty struct {
	UserID         uuid.UUID
	PenaltyType    models.PenaltyType
	ReasonCategory models.ReasonCategory
	CustomText     *string
	DurationDays   *int
}

type ResolveReportInput struct {
	ReportID   uuid.UUID
	OperatorID uuid.UUID
	Status     models.ReportStatus
	Penalty    *ReportPenalty
}

type ResolveReportResult struct {
	Report  *models.Report
	Penalty *models.Penalty
}

// ModerationService is the use-case layer over the report, penalty,
// engagement and achievement services.
type ModerationService struct {
	reports      *ReportService
	penalties    *PenaltyService
	engagement   *EngagementService
	achievements *AchievementService
}

func NewModerationService(reports *ReportService, penalties *PenaltyService, engagement *EngagementService, achievements *AchievementService) *ModerationService {
	return &ModerationService{
		reports:      reports,
		penalties:    penalties,
		engagement:   engagement,
		achievements: achievements,
	}
}

func (m *ModerationService) SubmitReport(ctx context.Context, in SubmitReportInput) (*models.Report, error) {
	return m.reports.Submit(ctx, in)
}

func (m *ModerationService) ListReports(ctx context.Context, status *models.ReportStatus, page repository.Page) ([]models.Report, int64, error) {
	return m.reports.List(ctx, status, page)
}

// ResolveReport sets the report's terminal status and optionally issues a
// penalty linked to it. All checks, including the penalty's role check, run
// before the first write.
func (m *ModerationService) ResolveReport(ctx context.Context, in ResolveReportInput) (*ResolveReportResult, error) {
	if !in.Status.IsTerminal() {
		return nil, apperror.ErrInvalidStatus
	}
	if _, err := m.reports.Get(ctx, in.ReportID); err != nil {
		return nil, err
	}

	var penalty *models.Penalty
	if in.Penalty != nil {
		reportID := in.ReportID
		prepared, err := m.penalties.Prepare(ctx, IssuePenaltyInput{
			TargetUserID:   in.Penalty.UserID,
			IssuedByUserID: in.OperatorID,
			PenaltyType:    in.Penalty.PenaltyType,
			ReasonCategory: in.Penalty.ReasonCategory,
			CustomText:     in.Penalty.CustomText,
			DurationDays:   in.Penalty.DurationDays,
			ReportID:       &reportID,
		})
		if err != nil {
			return nil, err
		}
		penalty = prepared
	}

	report, err := m.reports.Resolve(ctx, in.ReportID, in.Status)
	if err != nil {
		return nil, err
	}
	if penalty != nil {
		if err := m.penalties.Commit(ctx, penalty); err != nil {
			return nil, err
		}
	}
	return &ResolveReportResult{Report: report, Penalty: penalty}, nil
}

func (m *ModerationService) IssuePenalty(ctx context.Context, in IssuePenaltyInput) (*models.Penalty, error) {
	return m.penalties.Issue(ctx, in)
}

func (m *ModerationService) SetPenaltyActive(ctx context.Context, penaltyID uuid.UUID, active bool) (*models.Penalty, error) {
	return m.penalties.SetActive(ctx, penaltyID, active)
}

func (m *ModerationService) ListPenalties(ctx context.Context, userID uuid.UUID, page repository.Page) ([]models.Penalty, int64, error) {
	return m.penalties.ListForUser(ctx, userID, page)
}

func (m *ModerationService) IsCurrentlyBanned(ctx context.Context, userID uuid.UUID) (bool, error) {
	return m.penalties.IsCurrentlyBanned(ctx, userID)
}

func (m *ModerationService) LikePost(ctx context.Context, actorID, postID uuid.UUID) (*ToggleResult, error) {
	res, err := m.engagement.ToggleLike(ctx, actorID, postID)
	if err != nil {
		return nil, err
	}
	m.afterEngagement(ctx, actorID, res.OwnerID)
	return res, nil
}

func (m *ModerationService) HonorComment(ctx context.Context, actorID, commentID uuid.UUID) (*ToggleResult, error) {
	res, err := m.engagement.ToggleHonor(ctx, actorID, commentID)
	if err != nil {
		return nil, err
	}
	m.afterEngagement(ctx, actorID, res.OwnerID)
	return res, nil
}

func (m *ModerationService) ViewPost(ctx context.Context, actorID, postID uuid.UUID) (int64, error) {
	return m.engagement.RecordView(ctx, actorID, postID)
}

func (m *ModerationService) PostEngagement(ctx context.Context, postID uuid.UUID, viewerID *uuid.UUID) (*EngagementSummary, error) {
	return m.engagement.Summary(ctx, postID, viewerID)
}

// afterEngagement re-evaluates achievements for both sides of the event.
func (m *ModerationService) afterEngagement(ctx context.Context, actorID, ownerID uuid.UUID) {
	m.achievements.Evaluate(ctx, actorID)
	if ownerID != uuid.Nil && ownerID != actorID {
		m.achievements.Evaluate(ctx, ownerID)
	}
}

func (m *ModerationService) Achievements(ctx context.Context, userID uuid.UUID) ([]AchievementStatus, error) {
	return m.achievements.ListForUser(ctx, userID)
}

// EvaluateAchievements runs the evaluator on demand, e.g. after an external
// event such as a tournament enrollment.
func (m *ModerationService) EvaluateAchievements(ctx context.Context, userID uuid.UUID) []string {
	return m.achievements.Evaluate(ctx, userID)
}
