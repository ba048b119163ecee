package models

import "time"

// Post represents a published post. Posts are immutable after creation; the
// only mutation the API exposes is deletion by the owning user.
type Post struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	UserID   uint    `gorm:"not null;index" json:"user_id"`
	User     User    `gorm:"foreignKey:UserID" json:"-"`
	Text     string  `gorm:"type:text;not null" json:"text"`
	ImageURL *string `json:"image_url"`
	// LikesCount is not persisted; computed at query time from the likes table.
	LikesCount int       `gorm:"->;-:migration" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// Like records that a user liked a post. The (user, post) pair is unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment represents a comment on a post. Like posts, comments are immutable
// after creation and disappear only when their post is deleted.
type Comment struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	PostID uint   `gorm:"not null;index" json:"post_id"`
	UserID uint   `gorm:"not null" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Text   string `gorm:"column:comment;type:text;not null" json:"comment"`
	// LikesCount is not persisted; computed at query time from comment_likes.
	LikesCount int       `gorm:"->;-:migration" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// CommentLike records that a user liked a comment. The (user, comment) pair
// is unique; inserts that would violate it are silently absorbed.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_like_user_comment" json:"user_id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_like_user_comment" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Follower is a directed edge in the follow graph: follower_id follows
// following_id. The pair is unique; there is deliberately no self-follow
// guard at this layer.
type Follower struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follow_edge" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follow_edge" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName keeps the historical table name for follow edges.
func (Follower) TableName() string {
	return "followers"
}
