package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportBody(commentID uuid.UUID) map[string]any {
	return map[string]any{
		"action_type":       "REPORT_COMMENT",
		"target_comment_id": commentID.String(),
		"reason_category":   "HARASSMENT",
	}
}

func TestCreateReport_RequiresToken(t *testing.T) {
	s := newServer(t)
	commentID := s.dir.AddComment(s.author.ID)

	status, raw := s.do(t, http.MethodPost, "/api/reports", nil, reportBody(commentID))

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHENTICATED", errorCode(t, raw))
}

func TestCreateReport_CreatedThenDuplicate(t *testing.T) {
	s := newServer(t)
	commentID := s.dir.AddComment(s.author.ID)

	status, raw := s.do(t, http.MethodPost, "/api/reports", &s.member, reportBody(commentID))
	require.Equal(t, http.StatusCreated, status, string(raw))
	created := decode[dto.CreateReportResponse](t, raw)
	assert.NotEqual(t, uuid.Nil, created.ActionID)

	status, raw = s.do(t, http.MethodPost, "/api/reports", &s.member, reportBody(commentID))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE_PENDING", errorCode(t, raw))
}

func TestCreateReport_Errors(t *testing.T) {
	s := newServer(t)
	ownComment := s.dir.AddComment(s.member.ID)
	otherComment := s.dir.AddComment(s.author.ID)

	cases := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"self report", reportBody(ownComment), http.StatusForbidden, "SELF_REPORT"},
		{"missing target", reportBody(uuid.New()), http.StatusNotFound, "CONTENT_NOT_FOUND"},
		{"bad action type", map[string]any{"action_type": "REPORT_USER", "target_comment_id": otherComment.String(), "reason_category": "SPAM"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad uuid", map[string]any{"action_type": "REPORT_COMMENT", "target_comment_id": "abc", "reason_category": "SPAM"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown reason", map[string]any{"action_type": "REPORT_COMMENT", "target_comment_id": otherComment.String(), "reason_category": "RUDE"}, http.StatusBadRequest, "INVALID_REASON"},
		{"both targets", map[string]any{"action_type": "REPORT_COMMENT", "target_comment_id": otherComment.String(), "target_post_id": uuid.NewString(), "reason_category": "SPAM"}, http.StatusBadRequest, "INVALID_TARGET"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, raw := s.do(t, http.MethodPost, "/api/reports", &s.member, tc.body)
			assert.Equal(t, tc.status, status, string(raw))
			assert.Equal(t, tc.code, errorCode(t, raw))
		})
	}
}

func TestCreateReport_BannedUserBlocked(t *testing.T) {
	s := newServer(t)
	commentID := s.dir.AddComment(s.author.ID)
	s.penalties.Put(models.Penalty{
		ID:          uuid.New(),
		UserID:      s.member.ID,
		PenaltyType: models.PenaltyPermaBan,
		IsActive:    true,
		IssuedAt:    time.Now().Add(-time.Hour),
	})

	status, raw := s.do(t, http.MethodPost, "/api/reports", &s.member, reportBody(commentID))

	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "USER_BANNED", errorCode(t, raw))
}

func TestAdminRoutes_RequireOperator(t *testing.T) {
	s := newServer(t)

	status, raw := s.do(t, http.MethodGet, "/api/admin/content-reports", &s.member, nil)

	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "OPERATOR_REQUIRED", errorCode(t, raw))
}

func TestListReports(t *testing.T) {
	s := newServer(t)
	for i := 0; i < 3; i++ {
		status, _ := s.do(t, http.MethodPost, "/api/reports", &s.member, reportBody(s.dir.AddComment(s.author.ID)))
		require.Equal(t, http.StatusCreated, status)
	}

	status, raw := s.do(t, http.MethodGet, "/api/admin/content-reports?page=1&limit=2&status_filter=PENDING", &s.admin, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	list := decode[dto.ListResponse[models.Report]](t, raw)
	assert.Len(t, list.Data, 2)
	assert.Equal(t, dto.Pagination{Page: 1, Limit: 2, Total: 3, TotalPages: 2}, list.Pagination)

	status, raw = s.do(t, http.MethodGet, "/api/admin/content-reports?limit=500", &s.admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_LIMIT", errorCode(t, raw))

	status, raw = s.do(t, http.MethodGet, "/api/admin/content-reports?status_filter=OPEN", &s.admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, raw))
}

func TestResolveReport_WithTempBan(t *testing.T) {
	s := newServer(t)
	commentID := s.dir.AddComment(s.author.ID)
	_, raw := s.do(t, http.MethodPost, "/api/reports", &s.member, reportBody(commentID))
	reportID := decode[dto.CreateReportResponse](t, raw).ActionID

	status, raw := s.do(t, http.MethodPut, "/api/admin/content-reports/"+reportID.String()+"/action", &s.admin, map[string]any{
		"new_report_status": "RESOLVED",
		"penalty": map[string]any{
			"user_id_to_penalize": s.author.ID.String(),
			"penalty_type":        "TEMP_BAN",
			"reason":              "HARASSMENT",
			"duration_days":       7,
		},
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	resolved := decode[dto.ResolveReportResponse](t, raw)
	assert.Equal(t, models.ReportResolved, resolved.Report.Status)
	require.NotNil(t, resolved.Penalty)
	require.NotNil(t, resolved.Penalty.ExpiresAt)
	assert.Equal(t, resolved.Penalty.IssuedAt.AddDate(0, 0, 7), *resolved.Penalty.ExpiresAt)
	assert.True(t, resolved.Penalty.IsActive)

	status, raw = s.do(t, http.MethodGet, "/api/admin/users/"+s.author.ID.String()+"/ban-status", &s.admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[dto.BanStatusResponse](t, raw).Banned)

	// the banned author can no longer engage
	status, raw = s.do(t, http.MethodPost, "/api/posts/"+s.dir.AddPost(s.member.ID).String()+"/like", &s.author, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "USER_BANNED", errorCode(t, raw))
}

func TestResolveReport_InvalidStatus(t *testing.T) {
	s := newServer(t)
	_, raw := s.do(t, http.MethodPost, "/api/reports", &s.member, reportBody(s.dir.AddComment(s.author.ID)))
	reportID := decode[dto.CreateReportResponse](t, raw).ActionID

	status, raw := s.do(t, http.MethodPut, "/api/admin/content-reports/"+reportID.String()+"/action", &s.admin, map[string]any{
		"new_report_status": "PENDING",
	})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, raw))
}

func TestResolveReport_NotFound(t *testing.T) {
	s := newServer(t)

	status, raw := s.do(t, http.MethodPut, "/api/admin/content-reports/"+uuid.NewString()+"/action", &s.admin, map[string]any{
		"new_report_status": "DISMISSED",
	})

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "REPORT_NOT_FOUND", errorCode(t, raw))
}
