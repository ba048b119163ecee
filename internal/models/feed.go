package models

import "time"

// FeedComment is the comment projection embedded in global feed entries and
// in the add-comment response.
type FeedComment struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	AvatarURL *string   `json:"avatar_url"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	Likes     int       `json:"likes"`
}

// OwnComment is the reduced comment projection used by /my-posts.
type OwnComment struct {
	Username  string    `json:"username"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedPost is a post pre-joined with its author's display fields, a live
// like count, and its comments in creation order.
type FeedPost struct {
	ID        uint          `json:"id"`
	UserID    uint          `json:"user_id"`
	Author    string        `json:"author"`
	Username  string        `json:"username"`
	AvatarURL *string       `json:"avatar_url"`
	Text      string        `json:"text"`
	ImageURL  *string       `json:"image_url"`
	CreatedAt time.Time     `json:"created_at"`
	Likes     int           `json:"likes"`
	Comments  []FeedComment `json:"comments"`
}

// OwnPost mirrors FeedPost with the reduced comment projection.
type OwnPost struct {
	ID        uint         `json:"id"`
	UserID    uint         `json:"user_id"`
	Author    string       `json:"author"`
	Username  string       `json:"username"`
	AvatarURL *string      `json:"avatar_url"`
	Text      string       `json:"text"`
	ImageURL  *string      `json:"image_url"`
	CreatedAt time.Time    `json:"created_at"`
	Likes     int          `json:"likes"`
	Comments  []OwnComment `json:"comments"`
}

// CreatedPost is the add-post response: a feed entry with the zero-valued
// likedBy list clients expect on a fresh post.
type CreatedPost struct {
	FeedPost
	LikedBy []uint `json:"likedBy"`
}
