package service

import (
	"blogfeed/internal/broadcast"
	"blogfeed/internal/config"
	"blogfeed/internal/repository"
	"blogfeed/internal/storage"
)

// Broadcaster pushes post mutation events to every connected listener.
// Delivery is best-effort; a publish never fails a request.
type Broadcaster interface {
	Publish(event broadcast.Event)
}

type Service struct {
	Feed FeedService
	Auth AuthService
}

func NewService(rep *repository.Repository, cfg *config.Config, images *storage.ImageStore, hub Broadcaster) *Service {
	return &Service{
		Feed: NewFeedService(rep.Post, rep.User, images, hub, cfg),
		Auth: NewAuthService(rep.User, cfg),
	}
}
