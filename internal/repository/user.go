package repository

import (
	"context"
	"errors"
	"strings"

	"minix/internal/cache"
	"minix/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Search(ctx context.Context, query string) ([]models.UserSummary, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// userCacheRecord is the cache encoding of a user row. User strips the
// password hash from its JSON form, but a cached row has to round-trip
// losslessly: callers mutate the returned struct and Save it back, so a
// missing hash would be written to the database.
type userCacheRecord struct {
	User         models.User `json:"user"`
	PasswordHash string      `json:"password_hash"`
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var rec userCacheRecord
	key := cache.UserKey(id)

	err := cache.CacheAside(ctx, key, &rec, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&rec.User, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User")
			}
			return models.NewInternalError(err)
		}
		rec.PasswordHash = rec.User.Password
		return nil
	})

	if err != nil {
		return nil, err
	}
	user := rec.User
	user.Password = rec.PasswordHash
	return &user, nil
}

// GetByUsername returns (nil, nil) when no user exists, so callers can give a
// uniform response for unknown usernames and wrong passwords.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewValidationError("Username already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewValidationError("Username already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

// Search matches the query as a case-insensitive substring of either the
// username or the display name.
func (r *userRepository) Search(ctx context.Context, query string) ([]models.UserSummary, error) {
	like := "%" + strings.ToLower(query) + "%"
	var users []models.UserSummary
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id, name, username, avatar_url").
		Where("LOWER(username) LIKE ? OR LOWER(name) LIKE ?", like, like).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
