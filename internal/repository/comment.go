package repository

import (
	"context"

	"minix/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines persistence operations for comments and comment likes.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID uint) ([]models.Comment, error)
	ListByPosts(ctx context.Context, postIDs []uint) (map[uint][]models.Comment, error)
	Like(ctx context.Context, userID, commentID uint) error
	Unlike(ctx context.Context, userID, commentID uint) error
	IsLiked(ctx context.Context, userID, commentID uint) (bool, error)
	CountLikes(ctx context.Context, commentID uint) (int, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// applyCommentDetails adds a subquery to fetch the like count in a single query.
func (r *commentRepository) applyCommentDetails(db *gorm.DB) *gorm.DB {
	return db.Select("comments.*, " +
		"(SELECT COUNT(*) FROM comment_likes WHERE comment_likes.comment_id = comments.id) as likes_count")
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListByPost returns a post's comments in creation order with author and
// like count populated.
func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.applyCommentDetails(r.db.WithContext(ctx)).
		Preload("User").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// ListByPosts fetches the comments for a set of posts in one query and groups
// them by post ID, in creation order within each group.
func (r *commentRepository) ListByPosts(ctx context.Context, postIDs []uint) (map[uint][]models.Comment, error) {
	grouped := make(map[uint][]models.Comment, len(postIDs))
	if len(postIDs) == 0 {
		return grouped, nil
	}

	var comments []models.Comment
	err := r.applyCommentDetails(r.db.WithContext(ctx)).
		Preload("User").
		Where("comments.post_id IN ?", postIDs).
		Order("comments.created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	for _, c := range comments {
		grouped[c.PostID] = append(grouped[c.PostID], c)
	}
	return grouped, nil
}

// Like inserts the comment like edge, silently absorbing duplicates.
func (r *commentRepository) Like(ctx context.Context, userID, commentID uint) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.CommentLike{UserID: userID, CommentID: commentID}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Unlike removes the comment like edge. Removing an absent like is a no-op.
func (r *commentRepository) Unlike(ctx context.Context, userID, commentID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&models.CommentLike{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// CountLikes returns the fresh like total for a comment.
func (r *commentRepository) CountLikes(ctx context.Context, commentID uint) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return int(count), nil
}

func (r *commentRepository) IsLiked(ctx context.Context, userID, commentID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
