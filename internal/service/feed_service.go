package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"blogfeed/internal/broadcast"
	"blogfeed/internal/config"
	"blogfeed/internal/models"
	"blogfeed/internal/repository"
	"blogfeed/internal/storage"
)

type CreatePostRequest struct {
	Title     string
	Content   string
	ImageURL  string
	CreatorID string
}

type UpdatePostRequest struct {
	PostID      string
	Title       string
	Content     string
	ImageURL    string
	RequesterID string
}

// FeedService is the post workflow: every mutation runs as a short chain
// of store calls and, on success, one broadcast publish.
type FeedService interface {
	ListPosts(ctx context.Context, page int) ([]models.Post, int, error)
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, *models.Creator, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	UpdatePost(ctx context.Context, req UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID, requesterID string) error
	GetStatus(ctx context.Context, userID string) (string, error)
	UpdateStatus(ctx context.Context, userID, status string) error
}

type feedService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	images   *storage.ImageStore
	hub      Broadcaster
	cfg      *config.Config
}

func NewFeedService(postRepo repository.PostRepository, userRepo repository.UserRepository, images *storage.ImageStore, hub Broadcaster, cfg *config.Config) FeedService {
	return &feedService{
		postRepo: postRepo,
		userRepo: userRepo,
		images:   images,
		hub:      hub,
		cfg:      cfg,
	}
}

// ListPosts returns one page of posts, newest first, plus the total count
// across the whole store.
func (s *feedService) ListPosts(ctx context.Context, page int) ([]models.Post, int, error) {
	if page < 1 {
		page = 1
	}

	perPage := s.cfg.PageSize
	if perPage < 1 {
		perPage = 2
	}

	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	posts, err := s.postRepo.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}

	if posts == nil {
		posts = []models.Post{}
	}

	return posts, total, nil
}

// CreatePost persists the post, then mirrors it into the creator's post
// index. The two writes are not transactional: a failed index write
// leaves the post row behind and reports a fault.
func (s *feedService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, *models.Creator, error) {
	if req.ImageURL == "" {
		return nil, nil, Invalid("No image provided.")
	}

	post := &models.Post{
		CreatorID: req.CreatorID,
		Title:     req.Title,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, req.CreatorID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.userRepo.AddPostToIndex(ctx, user.UserID, post.PostID); err != nil {
		return nil, nil, err
	}

	creator := &models.Creator{ID: user.UserID, Name: user.Name}

	eventPost := *post
	eventPost.Creator = creator
	s.hub.Publish(broadcast.Event{Action: broadcast.ActionCreate, Post: eventPost})

	return post, creator, nil
}

func (s *feedService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.postRepo.GetByIDWithCreator(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Post not found.")
		}
		return nil, err
	}

	return post, nil
}

// UpdatePost overwrites title, content and image of an owned post. The
// ownership check runs before any mutation; a replaced image file is
// unlinked in the background.
func (s *feedService) UpdatePost(ctx context.Context, req UpdatePostRequest) (*models.Post, error) {
	if req.ImageURL == "" {
		return nil, Invalid("No image provided.")
	}

	post, err := s.postRepo.GetByIDWithCreator(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Post not found.")
		}
		return nil, err
	}

	if post.Creator == nil || post.Creator.ID != req.RequesterID {
		return nil, Unauthorized("Not authorized.")
	}

	if req.ImageURL != post.ImageURL {
		s.removeImage(post.ImageURL)
	}

	post.Title = req.Title
	post.Content = req.Content
	post.ImageURL = req.ImageURL

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	s.hub.Publish(broadcast.Event{Action: broadcast.ActionUpdate, Post: post})

	return post, nil
}

// DeletePost removes an owned post, its image file and its index entry,
// then announces the deletion by id.
func (s *feedService) DeletePost(ctx context.Context, postID, requesterID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFound("Post not found.")
		}
		return err
	}

	if post.CreatorID != requesterID {
		return Unauthorized("Not authorized.")
	}

	s.removeImage(post.ImageURL)

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFound("Post not found.")
		}
		return err
	}

	// the ownership check above proved requesterID == post.CreatorID, so
	// the index entry is removed from the requester's own record
	if err := s.userRepo.RemovePostFromIndex(ctx, requesterID, postID); err != nil {
		return err
	}

	s.hub.Publish(broadcast.Event{Action: broadcast.ActionDelete, Post: postID})

	return nil
}

// GetStatus reads the requester's status line. A missing user reads as an
// identity problem here, not as a 404.
func (s *feedService) GetStatus(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", Unauthorized("User not found.")
		}
		return "", err
	}

	return user.Status, nil
}

func (s *feedService) UpdateStatus(ctx context.Context, userID, status string) error {
	if strings.TrimSpace(status) == "" {
		return Invalid("Status must not be empty.")
	}

	err := s.userRepo.UpdateStatus(ctx, userID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Unauthorized("User not found.")
		}
		return err
	}

	return nil
}

// removeImage unlinks an image file in the background. The outcome never
// reaches the caller; failures are only logged.
func (s *feedService) removeImage(imageURL string) {
	go func() {
		if err := s.images.Remove(imageURL); err != nil {
			log.Printf("feed: failed to remove image %s: %v", imageURL, err)
		}
	}()
}
