package app

import (
	"log"

	"blogfeed/internal/broadcast"
	"blogfeed/internal/config"
	"blogfeed/internal/database"
	"blogfeed/internal/repository"
	"blogfeed/internal/service"
	"blogfeed/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service, *broadcast.Hub, *storage.ImageStore) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// upload dir for post images
	images, err := storage.NewImageStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize image store: %v", err)
	}

	// process-wide broadcast hub, started in main
	hub := broadcast.NewHub()

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, images, hub)

	return db, repo, services, hub, images
}
