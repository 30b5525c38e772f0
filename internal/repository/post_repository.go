package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"blogfeed/internal/models"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
        INSERT INTO posts
        (post_id, creator_id, title, content, image_url, created_at, updated_at)
        VALUES
        (:post_id, :creator_id, :title, :content, :image_url, :created_at, :updated_at)
    `

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// GetByID loads a post with the creator left as a bare reference.
func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

// GetByIDWithCreator loads a post with the creator summary resolved.
func (r *PostRepositoryImpl) GetByIDWithCreator(ctx context.Context, postID string) (*models.Post, error) {
	query := `
        SELECT p.post_id, p.creator_id, p.title, p.content, p.image_url, p.created_at, p.updated_at,
               u.user_id AS "creator.id", u.name AS "creator.name"
        FROM posts p
        JOIN users u ON u.user_id = p.creator_id
        WHERE p.post_id = $1
    `

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

// List returns one page of posts, newest first, creators resolved.
func (r *PostRepositoryImpl) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	query := `
        SELECT p.post_id, p.creator_id, p.title, p.content, p.image_url, p.created_at, p.updated_at,
               u.user_id AS "creator.id", u.name AS "creator.name"
        FROM posts p
        JOIN users u ON u.user_id = p.creator_id
        ORDER BY p.created_at DESC
        LIMIT $1 OFFSET $2
    `

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Count(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts`)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return count, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = :title,
			content = :content,
			image_url = :image_url,
			updated_at = :updated_at
		WHERE post_id = :post_id
	`

	post.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", post.PostID, ErrNotFound)
	}

	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", postID, ErrNotFound)
	}

	return nil
}
