package models

import (
	"time"
)

type User struct {
	UserID                 string    `json:"id" db:"user_id"`
	Email                  string    `json:"email" db:"email"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	Name                   string    `json:"name" db:"name"`
	Status                 string    `json:"status" db:"status"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
	Posts                  []string  `json:"posts,omitempty" db:"-"`
}

// Creator is the owner summary embedded in post responses and broadcast
// events instead of the full user record.
type Creator struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type Post struct {
	PostID    string    `json:"id" db:"post_id"`
	CreatorID string    `json:"creatorId" db:"creator_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Creator   *Creator  `json:"creator,omitempty" db:"creator"`
}
