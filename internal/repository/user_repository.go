package repository

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository reads the identity, forum and tournament tables owned by
// other services. It never writes to them.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) PostAuthor(ctx context.Context, postID uuid.UUID) (uuid.UUID, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Select("id", "author_id").First(&post, "id = ?", postID).Error; err != nil {
		if notFound(err) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to load post: %w", err)
	}
	return post.AuthorID, nil
}

func (r *UserRepository) CommentAuthor(ctx context.Context, commentID uuid.UUID) (uuid.UUID, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Select("id", "author_id").First(&comment, "id = ?", commentID).Error; err != nil {
		if notFound(err) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to load comment: %w", err)
	}
	return comment.AuthorID, nil
}

func (r *UserRepository) TournamentCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.TournamentParticipant{}).Where("user_id = ?", userID).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count tournaments: %w", err)
	}
	return n, nil
}

func (r *UserRepository) TeamTournamentCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.TournamentParticipant{}).
		Where("user_id = ? AND team_id IS NOT NULL", userID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count team tournaments: %w", err)
	}
	return n, nil
}

func (r *UserRepository) SolvedCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.SolvedProblem{}).Where("user_id = ?", userID).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count solved problems: %w", err)
	}
	return n, nil
}

func (r *UserRepository) Level(ctx context.Context, userID uuid.UUID) (int64, error) {
	user, err := r.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int64(user.Level), nil
}

func (r *UserRepository) LeaderboardPosition(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `
		SELECT position FROM (
			SELECT id, RANK() OVER (ORDER BY xp DESC) AS position
			FROM users
		) ranked
		WHERE id = ?
	`
	var positions []int64
	if err := r.db.WithContext(ctx).Raw(query, userID).Scan(&positions).Error; err != nil {
		return 0, fmt.Errorf("failed to compute leaderboard position: %w", err)
	}
	if len(positions) == 0 {
		return 0, nil
	}
	return positions[0], nil
}
