package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/repository"
	"github.com/google/uuid"
)

type ToggleResult struct {
	Active bool
	Count  int64
	// OwnerID is the author of the engaged content.
	OwnerID uuid.UUID
}

type EngagementSummary struct {
	Likes int64
	Views int64
	Liked bool
}

// errEdgeRaced means another request changed the edge between our read and
// our write.
var errEdgeRaced = errors.New("engagement edge changed concurrently")

// EngagementService records likes, views and honors as unique edges. Counts
// are derived from the edges on every call.
type EngagementService struct {
	edges   repository.EngagementStore
	content repository.ContentStore
}

func NewEngagementService(edges repository.EngagementStore, content repository.ContentStore) *EngagementService {
	return &EngagementService{edges: edges, content: content}
}

func (s *EngagementService) ToggleLike(ctx context.Context, actorID, postID uuid.UUID) (*ToggleResult, error) {
	ownerID, err := s.author(ctx, models.PostLike, postID)
	if err != nil {
		return nil, err
	}
	res, err := s.Toggle(ctx, actorID, models.PostLike, postID)
	if err != nil {
		return nil, err
	}
	res.OwnerID = ownerID
	return res, nil
}

func (s *EngagementService) ToggleHonor(ctx context.Context, actorID, commentID uuid.UUID) (*ToggleResult, error) {
	ownerID, err := s.author(ctx, models.CommentHonor, commentID)
	if err != nil {
		return nil, err
	}
	if ownerID == actorID {
		return nil, apperror.ErrCannotHonorOwnContent
	}
	res, err := s.Toggle(ctx, actorID, models.CommentHonor, commentID)
	if err != nil {
		return nil, err
	}
	res.OwnerID = ownerID
	return res, nil
}

// Toggle flips the actor's edge on the target. If the store reports that a
// concurrent request got there first, the toggle is re-read and retried once.
func (s *EngagementService) Toggle(ctx context.Context, actorID uuid.UUID, kind models.EngagementType, targetID uuid.UUID) (*ToggleResult, error) {
	active, err := s.flip(ctx, actorID, kind, targetID)
	if errors.Is(err, errEdgeRaced) {
		active, err = s.flip(ctx, actorID, kind, targetID)
	}
	if err != nil {
		if errors.Is(err, errEdgeRaced) {
			return nil, apperror.ErrToggleConflict
		}
		return nil, err
	}

	count, err := s.edges.Count(ctx, kind, targetID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Active: active, Count: count}, nil
}

func (s *EngagementService) flip(ctx context.Context, actorID uuid.UUID, kind models.EngagementType, targetID uuid.UUID) (bool, error) {
	exists, err := s.edges.Exists(ctx, actorID, kind, targetID)
	if err != nil {
		return false, err
	}

	if exists {
		removed, err := s.edges.Delete(ctx, actorID, kind, targetID)
		if err != nil {
			return false, err
		}
		if !removed {
			return false, errEdgeRaced
		}
		return false, nil
	}

	err = s.edges.Insert(ctx, &models.EngagementEdge{
		ActorUserID: actorID,
		TargetType:  kind,
		TargetID:    targetID,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return false, errEdgeRaced
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RecordView counts a viewer once per post; repeat views are no-ops.
func (s *EngagementService) RecordView(ctx context.Context, actorID, postID uuid.UUID) (int64, error) {
	if _, err := s.author(ctx, models.PostView, postID); err != nil {
		return 0, err
	}
	err := s.edges.Insert(ctx, &models.EngagementEdge{
		ActorUserID: actorID,
		TargetType:  models.PostView,
		TargetID:    postID,
	})
	if err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return 0, err
	}
	return s.edges.Count(ctx, models.PostView, postID)
}

// Summary returns a post's counts. viewerID may be nil for anonymous callers.
func (s *EngagementService) Summary(ctx context.Context, postID uuid.UUID, viewerID *uuid.UUID) (*EngagementSummary, error) {
	if _, err := s.author(ctx, models.PostLike, postID); err != nil {
		return nil, err
	}
	likes, err := s.edges.Count(ctx, models.PostLike, postID)
	if err != nil {
		return nil, err
	}
	views, err := s.edges.Count(ctx, models.PostView, postID)
	if err != nil {
		return nil, err
	}
	summary := &EngagementSummary{Likes: likes, Views: views}
	if viewerID != nil {
		summary.Liked, err = s.edges.Exists(ctx, *viewerID, models.PostLike, postID)
		if err != nil {
			return nil, err
		}
	}
	return summary, nil
}

func (s *EngagementService) author(ctx context.Context, kind models.EngagementType, targetID uuid.UUID) (uuid.UUID, error) {
	var (
		ownerID uuid.UUID
		err     error
	)
	switch kind {
	case models.PostLike, models.PostView:
		ownerID, err = s.content.PostAuthor(ctx, targetID)
	case models.CommentHonor:
		ownerID, err = s.content.CommentAuthor(ctx, targetID)
	default:
		return uuid.Nil, apperror.Validation("INVALID_TARGET_TYPE", "unknown engagement type")
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return uuid.Nil, apperror.ErrContentNotFound
		}
		return uuid.Nil, fmt.Errorf("resolve engagement target: %w", err)
	}
	return ownerID, nil
}
