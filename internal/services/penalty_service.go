package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/roles"
	"github.com/google/uuid"
)

// MaxBanDays caps TEMP_BAN durations at ten years.
const MaxBanDays = 3650

type IssuePenaltyInput struct {
	TargetUserID   uuid.UUID
	IssuedByUserID uuid.UUID
	PenaltyType    models.PenaltyType
	ReasonCategory models.ReasonCategory
	CustomText     *string
	DurationDays   *int
	ReportID       *uuid.UUID
}

type PenaltyService struct {
	penalties repository.PenaltyStore
	users     repository.UserStore
	now       func() time.Time
}

func NewPenaltyService(penalties repository.PenaltyStore, users repository.UserStore) *PenaltyService {
	return &PenaltyService{penalties: penalties, users: users, now: time.Now}
}

// Prepare runs every validation and authorization check for an issuance and
// returns the penalty that would be written. Nothing is persisted.
func (s *PenaltyService) Prepare(ctx context.Context, in IssuePenaltyInput) (*models.Penalty, error) {
	if !in.PenaltyType.Valid() {
		return nil, apperror.Validation("INVALID_PENALTY_TYPE", "penalty_type must be WARNING, TEMP_BAN or PERMA_BAN")
	}
	if !in.ReasonCategory.Valid() {
		return nil, apperror.Validation("INVALID_REASON", "reason_category is not a known category")
	}
	customText, err := normalizeCustomText(in.CustomText)
	if err != nil {
		return nil, err
	}
	if in.PenaltyType == models.PenaltyTempBan {
		if in.DurationDays == nil || *in.DurationDays < 1 || *in.DurationDays > MaxBanDays {
			return nil, apperror.ErrInvalidDuration
		}
	}
	if in.TargetUserID == in.IssuedByUserID {
		return nil, apperror.ErrSelfAction
	}

	issuer, err := s.users.GetUser(ctx, in.IssuedByUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.ErrUnauthenticated
		}
		return nil, fmt.Errorf("load issuer: %w", err)
	}
	target, err := s.users.GetUser(ctx, in.TargetUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, fmt.Errorf("load penalty target: %w", err)
	}
	if !roles.CanActOn(issuer.Role, target.Role) {
		return nil, apperror.ErrForbidden
	}

	issuedAt := s.now().UTC()
	penalty := &models.Penalty{
		UserID:           target.ID,
		PenaltyType:      in.PenaltyType,
		ReasonCategory:   in.ReasonCategory,
		CustomReasonText: customText,
		IssuedByUserID:   issuer.ID,
		ReportID:         in.ReportID,
		IssuedAt:         issuedAt,
		IsActive:         true,
	}
	if in.PenaltyType == models.PenaltyTempBan {
		expiresAt := issuedAt.AddDate(0, 0, *in.DurationDays)
		penalty.ExpiresAt = &expiresAt
	}
	return penalty, nil
}

// Commit persists a penalty produced by Prepare.
func (s *PenaltyService) Commit(ctx context.Context, penalty *models.Penalty) error {
	return s.penalties.Create(ctx, penalty)
}

func (s *PenaltyService) Issue(ctx context.Context, in IssuePenaltyInput) (*models.Penalty, error) {
	penalty, err := s.Prepare(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.Commit(ctx, penalty); err != nil {
		return nil, err
	}
	return penalty, nil
}

// SetActive is a correction action; the operator gate in front of it is the
// only authorization applied.
func (s *PenaltyService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Penalty, error) {
	penalty, err := s.penalties.SetActive(ctx, id, active)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.ErrPenaltyNotFound
	}
	return penalty, err
}

func (s *PenaltyService) ListForUser(ctx context.Context, userID uuid.UUID, page repository.Page) ([]models.Penalty, int64, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, 0, apperror.ErrUserNotFound
		}
		return nil, 0, fmt.Errorf("load user: %w", err)
	}
	return s.penalties.ListForUser(ctx, userID, page)
}

// IsCurrentlyBanned reports whether any ban penalty on the user is
// effectively active right now.
func (s *PenaltyService) IsCurrentlyBanned(ctx context.Context, userID uuid.UUID) (bool, error) {
	bans, err := s.penalties.ActiveBans(ctx, userID)
	if err != nil {
		return false, err
	}
	now := s.now()
	for i := range bans {
		if bans[i].PenaltyType.IsBan() && bans[i].EffectivelyActive(now) {
			return true, nil
		}
	}
	return false, nil
}
