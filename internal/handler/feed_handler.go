package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"blogfeed/internal/models"
	"blogfeed/internal/service"
)

type PostsResponse struct {
	Message    string        `json:"message"`
	Posts      []models.Post `json:"posts"`
	TotalItems int           `json:"totalItems"`
}

type PostResponse struct {
	Message string      `json:"message"`
	Post    models.Post `json:"post"`
}

type CreatePostResponse struct {
	Message string         `json:"message"`
	Post    models.Post    `json:"post"`
	Creator models.Creator `json:"creator"`
}

type StatusResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type postBody struct {
	Title   string `validate:"required,min=5"`
	Content string `validate:"required,min=5"`
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	posts, totalItems, err := h.FeedService.ListPosts(r.Context(), page)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, PostsResponse{
		Message:    "Posts fetched.",
		Posts:      posts,
		TotalItems: totalItems,
	}, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Not authenticated.", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Invalid form data.", http.StatusUnprocessableEntity)
		return
	}

	body := postBody{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	}
	if err := h.Validate.Struct(body); err != nil {
		WriteError(w, "Validation failed, entered data is incorrect.", http.StatusUnprocessableEntity)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "No image provided.", http.StatusUnprocessableEntity)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		WriteError(w, "Unsupported image type. Allowed: JPEG, PNG, GIF, WebP", http.StatusUnprocessableEntity)
		return
	}

	imageURL, err := h.Images.Save(file, header.Filename)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	post, creator, err := h.FeedService.CreatePost(r.Context(), service.CreatePostRequest{
		Title:     body.Title,
		Content:   body.Content,
		ImageURL:  imageURL,
		CreatorID: userID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, CreatePostResponse{
		Message: "Post created successfully.",
		Post:    *post,
		Creator: *creator,
	}, http.StatusCreated)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	post, err := h.FeedService.GetPost(r.Context(), postID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, PostResponse{Message: "Post fetched.", Post: *post}, http.StatusOK)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Not authenticated.", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
			WriteError(w, "Invalid form data.", http.StatusUnprocessableEntity)
			return
		}
	} else if err := r.ParseForm(); err != nil {
		WriteError(w, "Invalid form data.", http.StatusUnprocessableEntity)
		return
	}

	body := postBody{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	}
	if err := h.Validate.Struct(body); err != nil {
		WriteError(w, "Validation failed, entered data is incorrect.", http.StatusUnprocessableEntity)
		return
	}

	// a freshly uploaded file wins; otherwise the image field carries the
	// path of an already stored image
	imageURL := r.FormValue("image")
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if !allowedImageTypes[contentType] {
			WriteError(w, "Unsupported image type. Allowed: JPEG, PNG, GIF, WebP", http.StatusUnprocessableEntity)
			return
		}

		imageURL, err = h.Images.Save(file, header.Filename)
		if err != nil {
			WriteError(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	if imageURL == "" {
		WriteError(w, "No image provided.", http.StatusUnprocessableEntity)
		return
	}

	post, err := h.FeedService.UpdatePost(r.Context(), service.UpdatePostRequest{
		PostID:      postID,
		Title:       body.Title,
		Content:     body.Content,
		ImageURL:    imageURL,
		RequesterID: userID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, PostResponse{Message: "Post updated.", Post: *post}, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Not authenticated.", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]

	if err := h.FeedService.DeletePost(r.Context(), postID, userID); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, MessageResponse{Message: "Post deleted."}, http.StatusOK)
}

func (h *Handlers) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Not authenticated.", http.StatusUnauthorized)
		return
	}

	status, err := h.FeedService.GetStatus(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, StatusResponse{Message: "Status fetched.", Status: status}, http.StatusOK)
}

func (h *Handlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Not authenticated.", http.StatusUnauthorized)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body.", http.StatusUnprocessableEntity)
		return
	}

	if err := h.FeedService.UpdateStatus(r.Context(), userID, req.Status); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, StatusResponse{Message: "Status updated.", Status: req.Status}, http.StatusOK)
}
