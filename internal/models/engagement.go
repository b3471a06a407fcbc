package models

import (
	"time"

	"github.com/google/uuid"
)

type EngagementType string

const (
	PostLike     EngagementType = "POST_LIKE"
	PostView     EngagementType = "POST_VIEW"
	CommentHonor EngagementType = "COMMENT_HONOR"
)

func (t EngagementType) Valid() bool {
	return t == PostLike || t == PostView || t == CommentHonor
}

// EngagementEdge records that an actor performed an action on a target. The
// composite primary key is the uniqueness constraint toggles rely on; counts
// are always derived from the rows, never stored.
type EngagementEdge struct {
	ActorUserID uuid.UUID      `gorm:"type:uuid;primaryKey" json:"actor_user_id"`
	TargetType  EngagementType `gorm:"size:20;primaryKey;index:idx_engagement_target,priority:1" json:"target_type"`
	TargetID    uuid.UUID      `gorm:"type:uuid;primaryKey;index:idx_engagement_target,priority:2" json:"target_id"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (EngagementEdge) TableName() string {
	return "engagement_edges"
}
