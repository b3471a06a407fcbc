package services

import (
	"context"
	"sync"
	"testing"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementService_ToggleLikeParity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	postID := f.dir.AddPost(f.otherMember.ID)

	for i := 1; i <= 7; i++ {
		res, err := f.engagementSvc.ToggleLike(ctx, f.member.ID, postID)
		require.NoError(t, err)
		wantActive := i%2 == 1
		assert.Equal(t, wantActive, res.Active, "toggle %d", i)
		if wantActive {
			assert.EqualValues(t, 1, res.Count)
		} else {
			assert.EqualValues(t, 0, res.Count)
		}
		assert.Equal(t, f.otherMember.ID, res.OwnerID)
	}
}

func TestEngagementService_LikeCountsDistinctActors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	postID := f.dir.AddPost(f.otherMember.ID)

	for _, actor := range []uuid.UUID{f.member.ID, f.admin.ID, f.super.ID} {
		_, err := f.engagementSvc.ToggleLike(ctx, actor, postID)
		require.NoError(t, err)
	}
	res, err := f.engagementSvc.ToggleLike(ctx, f.admin.ID, postID)
	require.NoError(t, err)
	assert.False(t, res.Active)
	assert.EqualValues(t, 2, res.Count)
}

func TestEngagementService_LikeOwnPostAllowed(t *testing.T) {
	f := newFixture(t)
	postID := f.dir.AddPost(f.member.ID)

	res, err := f.engagementSvc.ToggleLike(context.Background(), f.member.ID, postID)

	require.NoError(t, err)
	assert.True(t, res.Active)
}

func TestEngagementService_HonorOwnCommentRejected(t *testing.T) {
	f := newFixture(t)
	commentID := f.dir.AddComment(f.member.ID)

	_, err := f.engagementSvc.ToggleHonor(context.Background(), f.member.ID, commentID)

	assert.ErrorIs(t, err, apperror.ErrCannotHonorOwnContent)
	count, _ := f.edges.Count(context.Background(), models.CommentHonor, commentID)
	assert.Zero(t, count)
}

func TestEngagementService_HonorToggle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	commentID := f.dir.AddComment(f.otherMember.ID)

	on, err := f.engagementSvc.ToggleHonor(ctx, f.member.ID, commentID)
	require.NoError(t, err)
	assert.True(t, on.Active)
	assert.EqualValues(t, 1, on.Count)

	off, err := f.engagementSvc.ToggleHonor(ctx, f.member.ID, commentID)
	require.NoError(t, err)
	assert.False(t, off.Active)
	assert.EqualValues(t, 0, off.Count)
}

func TestEngagementService_MissingContent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engagementSvc.ToggleLike(ctx, f.member.ID, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrContentNotFound)

	_, err = f.engagementSvc.ToggleHonor(ctx, f.member.ID, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrContentNotFound)

	_, err = f.engagementSvc.Summary(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, apperror.ErrContentNotFound)
}

func TestEngagementService_RetryAfterLostInsert(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	postID := f.dir.AddPost(f.otherMember.ID)

	// A competing toggle lands between our existence check and our insert.
	f.edges.BeforeInsert = func() {
		f.edges.BeforeInsert = nil
		require.NoError(t, f.edges.Insert(ctx, &models.EngagementEdge{
			ActorUserID: f.member.ID,
			TargetType:  models.PostLike,
			TargetID:    postID,
		}))
	}

	res, err := f.engagementSvc.ToggleLike(ctx, f.member.ID, postID)

	require.NoError(t, err)
	// Two toggles in total: the state is back to not liked.
	assert.False(t, res.Active)
	assert.EqualValues(t, 0, res.Count)
}

func TestEngagementService_PersistentRaceIsConflict(t *testing.T) {
	f := newFixture(t)
	postID := f.dir.AddPost(f.otherMember.ID)
	svc := NewEngagementService(alwaysRacing{f.edges}, f.dir)

	_, err := svc.ToggleLike(context.Background(), f.member.ID, postID)

	assert.ErrorIs(t, err, apperror.ErrToggleConflict)
}

func TestEngagementService_ConcurrentTogglesKeepParity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	postID := f.dir.AddPost(f.otherMember.ID)

	const n = 50
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.engagementSvc.ToggleLike(ctx, f.member.ID, postID)
			if err != nil {
				assert.ErrorIs(t, err, apperror.ErrToggleConflict)
				return
			}
			mu.Lock()
			applied++
			mu.Unlock()
		}()
	}
	wg.Wait()

	liked, err := f.edges.Exists(ctx, f.member.ID, models.PostLike, postID)
	require.NoError(t, err)
	assert.Equal(t, applied%2 == 1, liked)

	count, err := f.edges.Count(ctx, models.PostLike, postID)
	require.NoError(t, err)
	assert.LessOrEqual(t, count, int64(1))
}

func TestEngagementService_ViewsAreIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	postID := f.dir.AddPost(f.otherMember.ID)

	for i := 0; i < 3; i++ {
		views, err := f.engagementSvc.RecordView(ctx, f.member.ID, postID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, views)
	}
	views, err := f.engagementSvc.RecordView(ctx, f.admin.ID, postID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, views)
}

func TestEngagementService_Summary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	postID := f.dir.AddPost(f.otherMember.ID)

	_, err := f.engagementSvc.ToggleLike(ctx, f.member.ID, postID)
	require.NoError(t, err)
	_, err = f.engagementSvc.RecordView(ctx, f.member.ID, postID)
	require.NoError(t, err)
	_, err = f.engagementSvc.RecordView(ctx, f.admin.ID, postID)
	require.NoError(t, err)

	anon, err := f.engagementSvc.Summary(ctx, postID, nil)
	require.NoError(t, err)
	assert.Equal(t, &EngagementSummary{Likes: 1, Views: 2}, anon)

	mine, err := f.engagementSvc.Summary(ctx, postID, &f.member.ID)
	require.NoError(t, err)
	assert.True(t, mine.Liked)

	theirs, err := f.engagementSvc.Summary(ctx, postID, &f.admin.ID)
	require.NoError(t, err)
	assert.False(t, theirs.Liked)
}

// alwaysRacing loses every insert to a competitor that is gone again by
// the next read.
type alwaysRacing struct {
	*memory.Engagement
}

func (alwaysRacing) Exists(context.Context, uuid.UUID, models.EngagementType, uuid.UUID) (bool, error) {
	return false, nil
}

func (alwaysRacing) Insert(context.Context, *models.EngagementEdge) error {
	return repository.ErrDuplicate
}
