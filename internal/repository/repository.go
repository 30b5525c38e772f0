package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"blogfeed/internal/models"
)

// ErrNotFound marks a lookup that resolved no row. Callers classify it;
// any other error is an infrastructure fault.
var ErrNotFound = errors.New("not found")

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateStatus(ctx context.Context, userID, status string) error
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
	AddPostToIndex(ctx context.Context, userID, postID string) error
	RemovePostFromIndex(ctx context.Context, userID, postID string) error
	GetPostIndex(ctx context.Context, userID string) ([]string, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetByIDWithCreator(ctx context.Context, postID string) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]models.Post, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
}

type Repository struct {
	User UserRepository
	Post PostRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User: NewUserRepository(db),
		Post: NewPostRepository(db),
	}
}
