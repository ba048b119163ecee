// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"minix/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options controls the volume of generated data.
type Options struct {
	Users           int
	PostsPerUser    int
	CommentsPerPost int
	MaxDays         int
}

// DefaultOptions returns a small but lively data set.
func DefaultOptions() Options {
	return Options{
		Users:           12,
		PostsPerUser:    4,
		CommentsPerPost: 3,
		MaxDays:         90,
	}
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rnd  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// spreadCreatedAt returns a timestamp scattered over the configured window so
// feeds look lived-in instead of minted in one burst.
func (f *Factory) spreadCreatedAt() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	return time.Now().
		Add(-time.Duration(f.rnd.Intn(maxDays)) * 24 * time.Hour).
		Add(-time.Duration(f.rnd.Intn(24)) * time.Hour).
		Add(-time.Duration(f.rnd.Intn(60)) * time.Minute)
}

// CreateUser persists a fake user. Every seeded account shares the password
// "password" so seeded users are easy to log in as during development.
func (f *Factory) CreateUser() (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	avatar := fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID())
	user := &models.User{
		Name:      gofakeit.Name(),
		Username:  gofakeit.Username(),
		Password:  string(hashed),
		Location:  fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
		Birthdate: gofakeit.DateRange(time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC)).Format("2006-01-02"),
		AvatarURL: &avatar,
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a fake post for the given user, with an image roughly
// half of the time.
func (f *Factory) CreatePost(user *models.User) (*models.Post, error) {
	post := &models.Post{
		UserID:    user.ID,
		Text:      gofakeit.Paragraph(1, 3, 8, " "),
		CreatedAt: f.spreadCreatedAt(),
	}
	if f.rnd.Intn(2) == 0 {
		img := fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		post.ImageURL = &img
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a fake comment on the given post.
func (f *Factory) CreateComment(post *models.Post, user *models.User) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:    post.ID,
		UserID:    user.ID,
		Text:      gofakeit.Sentence(f.rnd.Intn(12) + 3),
		CreatedAt: post.CreatedAt.Add(time.Duration(f.rnd.Intn(72)) * time.Hour),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// LikePost records a like edge, ignoring duplicates.
func (f *Factory) LikePost(user *models.User, post *models.Post) error {
	return f.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error
}

// LikeComment records a comment like edge, ignoring duplicates.
func (f *Factory) LikeComment(user *models.User, comment *models.Comment) error {
	return f.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.CommentLike{UserID: user.ID, CommentID: comment.ID}).Error
}

// Follow records a follow edge, ignoring duplicates.
func (f *Factory) Follow(follower, following *models.User) error {
	return f.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Follower{FollowerID: follower.ID, FollowingID: following.ID}).Error
}

// Run populates the database with a connected data set: users who post,
// comment on and like each other's content, and follow each other.
func (f *Factory) Run() error {
	users := make([]*models.User, 0, f.opts.Users)
	for i := 0; i < f.opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seeding user: %w", err)
		}
		users = append(users, user)
	}

	var posts []*models.Post
	for _, user := range users {
		for i := 0; i < f.opts.PostsPerUser; i++ {
			post, err := f.CreatePost(user)
			if err != nil {
				return fmt.Errorf("seeding post: %w", err)
			}
			posts = append(posts, post)
		}
	}

	for _, post := range posts {
		for i := 0; i < f.opts.CommentsPerPost; i++ {
			commenter := users[f.rnd.Intn(len(users))]
			comment, err := f.CreateComment(post, commenter)
			if err != nil {
				return fmt.Errorf("seeding comment: %w", err)
			}
			if f.rnd.Intn(3) == 0 {
				if err := f.LikeComment(users[f.rnd.Intn(len(users))], comment); err != nil {
					return fmt.Errorf("seeding comment like: %w", err)
				}
			}
		}
		likers := f.rnd.Intn(len(users))
		for i := 0; i < likers; i++ {
			if err := f.LikePost(users[f.rnd.Intn(len(users))], post); err != nil {
				return fmt.Errorf("seeding like: %w", err)
			}
		}
	}

	for _, follower := range users {
		follows := f.rnd.Intn(len(users) / 2)
		for i := 0; i < follows; i++ {
			following := users[f.rnd.Intn(len(users))]
			if following.ID == follower.ID {
				continue
			}
			if err := f.Follow(follower, following); err != nil {
				return fmt.Errorf("seeding follow: %w", err)
			}
		}
	}

	return nil
}
