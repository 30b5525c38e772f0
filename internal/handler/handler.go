package handlers

import (
	"github.com/go-playground/validator/v10"

	"blogfeed/internal/config"
	"blogfeed/internal/database"
	"blogfeed/internal/repository"
	"blogfeed/internal/service"
	"blogfeed/internal/storage"
)

type Handlers struct {
	FeedService service.FeedService
	AuthService service.AuthService
	UserRepo    repository.UserRepository
	Cfg         *config.Config
	Images      *storage.ImageStore
	DB          *database.DB
	Validate    *validator.Validate
}

func NewHandlers(repo *repository.Repository, services *service.Service, cfg *config.Config, images *storage.ImageStore, db *database.DB) *Handlers {
	return &Handlers{
		FeedService: services.Feed,
		AuthService: services.Auth,
		UserRepo:    repo.User,
		Cfg:         cfg,
		Images:      images,
		DB:          db,
		Validate:    validator.New(),
	}
}
