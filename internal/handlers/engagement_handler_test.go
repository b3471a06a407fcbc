package handlers_test

import (
	"net/http"
	"testing"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/repository/memory"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikePost_Toggles(t *testing.T) {
	s := newServer(t)
	postID := s.dir.AddPost(s.author.ID)
	path := "/api/posts/" + postID.String() + "/like"

	status, raw := s.do(t, http.MethodPost, path, &s.member, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, dto.LikeResponse{Count: 1, CurrentUserHasLiked: true}, decode[dto.LikeResponse](t, raw))

	status, raw = s.do(t, http.MethodPost, path, &s.member, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, dto.LikeResponse{Count: 0, CurrentUserHasLiked: false}, decode[dto.LikeResponse](t, raw))
}

func TestHonorComment(t *testing.T) {
	s := newServer(t)
	commentID := s.dir.AddComment(s.author.ID)

	status, raw := s.do(t, http.MethodPost, "/api/posts/comments/"+commentID.String()+"/honor", &s.member, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, dto.HonorResponse{Count: 1, CurrentUserHasHonored: true}, decode[dto.HonorResponse](t, raw))

	status, raw = s.do(t, http.MethodPost, "/api/posts/comments/"+commentID.String()+"/honor", &s.author, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "CANNOT_HONOR_OWN_CONTENT", errorCode(t, raw))
}

func TestEngagement_NotFoundAndBadID(t *testing.T) {
	s := newServer(t)

	status, raw := s.do(t, http.MethodPost, "/api/posts/"+uuid.NewString()+"/like", &s.member, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "CONTENT_NOT_FOUND", errorCode(t, raw))

	status, raw = s.do(t, http.MethodPost, "/api/posts/not-a-uuid/like", &s.member, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_ID", errorCode(t, raw))
}

func TestViewsAndSummary(t *testing.T) {
	s := newServer(t)
	postID := s.dir.AddPost(s.author.ID)
	base := "/api/posts/" + postID.String()

	for i := 0; i < 2; i++ {
		status, raw := s.do(t, http.MethodPost, base+"/view", &s.member, nil)
		require.Equal(t, http.StatusOK, status)
		assert.EqualValues(t, 1, decode[dto.ViewResponse](t, raw).Count)
	}
	_, _ = s.do(t, http.MethodPost, base+"/like", &s.member, nil)

	status, raw := s.do(t, http.MethodGet, base+"/engagement", nil, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	anon := decode[dto.EngagementSummaryResponse](t, raw)
	assert.EqualValues(t, 1, anon.Likes)
	assert.EqualValues(t, 1, anon.Views)
	assert.False(t, anon.CurrentUserHasLiked)

	status, raw = s.do(t, http.MethodGet, base+"/engagement", &s.member, nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[dto.EngagementSummaryResponse](t, raw).CurrentUserHasLiked)
}

func TestAchievements(t *testing.T) {
	s := newServer(t)
	s.dir.SetStats(s.member.ID, memory.Stats{Tournaments: 1})

	status, raw := s.do(t, http.MethodPost, "/api/admin/users/"+s.member.ID.String()+"/achievements/evaluate", &s.admin, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, []string{services.AchievementFirstTournament}, decode[dto.EvaluateResponse](t, raw).Granted)

	status, raw = s.do(t, http.MethodGet, "/api/achievements/"+s.member.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	list := decode[[]services.AchievementStatus](t, raw)
	require.Len(t, list, len(services.DefaultCatalog))
	for _, a := range list {
		assert.Equal(t, a.ID == services.AchievementFirstTournament, a.Unlocked, a.ID)
	}
}

func TestLikeTriggersOwnerAchievements(t *testing.T) {
	s := newServer(t)
	owner := s.dir.AddUser(models.User{Username: "veteran", Level: 7})
	postID := s.dir.AddPost(owner.ID)

	status, _ := s.do(t, http.MethodPost, "/api/posts/"+postID.String()+"/like", &s.member, nil)
	require.Equal(t, http.StatusOK, status)

	has, err := s.achievements.HasGrant(t.Context(), owner.ID, services.AchievementLevelFive)
	require.NoError(t, err)
	assert.True(t, has)
}
