package handlers

import (
	"encoding/json"
	"net/http"

	"blogfeed/internal/service"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=5"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body.", http.StatusUnprocessableEntity)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Validation failed, entered data is incorrect.", http.StatusUnprocessableEntity)
		return
	}

	user, err := h.AuthService.Register(r.Context(), service.RegisterRequest{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, RegisterResponse{Message: "User created.", UserID: user.UserID}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body.", http.StatusUnprocessableEntity)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Validation failed, entered data is incorrect.", http.StatusUnprocessableEntity)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       user.UserID,
	}, http.StatusOK)
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body.", http.StatusUnprocessableEntity)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Validation failed, entered data is incorrect.", http.StatusUnprocessableEntity)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       user.UserID,
	}, http.StatusOK)
}
