package dto

import "github.com/google/uuid"

type LikeResponse struct {
	Count               int64 `json:"count"`
	CurrentUserHasLiked bool  `json:"currentUserHasLiked"`
}

type HonorResponse struct {
	Count                 int64 `json:"count"`
	CurrentUserHasHonored bool  `json:"currentUserHasHonored"`
}

type ViewResponse struct {
	Count int64 `json:"count"`
}

type EngagementSummaryResponse struct {
	PostID              uuid.UUID `json:"post_id"`
	Likes               int64     `json:"likes"`
	Views               int64     `json:"views"`
	CurrentUserHasLiked bool      `json:"currentUserHasLiked"`
}

type EvaluateResponse struct {
	UserID  uuid.UUID `json:"user_id"`
	Granted []string  `json:"granted"`
}
