// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account. The username is the login identity
// and must be unique; the password column always holds a bcrypt hash.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Location  string    `json:"location"`
	Birthdate string    `json:"birthdate"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile is the read projection of a user's own account returned by GET /profile.
type Profile struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Username  string  `json:"username"`
	Location  string  `json:"location"`
	Birthdate string  `json:"birthdate"`
	AvatarURL *string `json:"avatar_url"`
}

// UserSummary is the projection returned by user search.
type UserSummary struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

// Subscription is an append-only record of a plan purchase. Plan, price and
// period are stored exactly as submitted; there is no catalog to validate
// against.
type Subscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Plan      string    `json:"plan"`
	Price     float64   `json:"price"`
	Period    string    `json:"period"`
	CreatedAt time.Time `json:"created_at"`
}
