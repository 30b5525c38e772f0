package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"blogfeed/cmd/app"
	"blogfeed/internal/config"
	handlers "blogfeed/internal/handler"
	"blogfeed/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	db, repo, services, hub, images := app.App(cfg)
	defer db.CloseDB()

	go hub.Run()

	handler := handlers.NewHandlers(repo, services, cfg, images, db)

	// setting up routes
	r := mux.NewRouter()

	r.HandleFunc("/health", handler.Health).Methods(http.MethodGet)
	r.HandleFunc("/ws", hub.ServeWS)
	r.PathPrefix("/images/").Handler(
		http.StripPrefix("/images/", http.FileServer(http.Dir(images.Dir()))))

	r.HandleFunc("/api/auth/register", handler.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", handler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/refresh-token", handler.RefreshToken).Methods(http.MethodPost)

	r.HandleFunc("/api/posts", handler.GetPosts).Methods(http.MethodGet)
	r.HandleFunc("/api/posts", handler.CreatePost).Methods(http.MethodPost)
	r.HandleFunc("/api/posts/{postId}", handler.GetPost).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/{postId}", handler.UpdatePost).Methods(http.MethodPut)
	r.HandleFunc("/api/posts/{postId}", handler.DeletePost).Methods(http.MethodDelete)

	r.HandleFunc("/api/status", handler.GetStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/status", handler.UpdateStatus).Methods(http.MethodPatch)
	r.HandleFunc("/api/me", handler.GetCurrentUser).Methods(http.MethodGet)

	handlerChain := middleware.Chain(
		r,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(cfg),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Server listening on %s", addr)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
