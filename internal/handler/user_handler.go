package handlers

import (
	"errors"
	"net/http"

	"blogfeed/internal/models"
	"blogfeed/internal/repository"
)

type UserResponse struct {
	User models.User `json:"user"`
}

// GetCurrentUser returns the authenticated user's record with its post
// index resolved.
func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Not authenticated.", http.StatusUnauthorized)
		return
	}

	user, err := h.UserRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "User not found.", http.StatusUnauthorized)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	posts, err := h.UserRepo.GetPostIndex(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	user.Posts = posts

	WriteJSON(w, UserResponse{User: *user}, http.StatusOK)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		WriteError(w, "database unavailable", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, MessageResponse{Message: "OK"}, http.StatusOK)
}
