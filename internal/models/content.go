package models

import (
	"time"

	"github.com/google/uuid"
)

// Post and Comment belong to the forum service. Only the columns moderation
// reads (authorship) are mapped here.
type Post struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Title     string    `gorm:"size:255" json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

func (Post) TableName() string {
	return "posts"
}

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index" json:"post_id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}

// TournamentParticipant and SolvedProblem are written by the tournament
// service; achievement aggregates are computed from them.
type TournamentParticipant struct {
	TournamentID uuid.UUID  `gorm:"type:uuid;primaryKey" json:"tournament_id"`
	UserID       uuid.UUID  `gorm:"type:uuid;primaryKey;index" json:"user_id"`
	TeamID       *uuid.UUID `gorm:"type:uuid;index" json:"team_id,omitempty"`
	JoinedAt     time.Time  `json:"joined_at"`
}

func (TournamentParticipant) TableName() string {
	return "tournament_participants"
}

type SolvedProblem struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	QuestionID uuid.UUID `gorm:"type:uuid;primaryKey" json:"question_id"`
	SolvedAt   time.Time `json:"solved_at"`
}

func (SolvedProblem) TableName() string {
	return "solved_problems"
}
