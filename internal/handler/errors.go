package handlers

import (
	"encoding/json"
	"net/http"

	"blogfeed/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError maps a classified workflow error onto the response;
// anything unclassified surfaces as a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	WriteError(w, err.Error(), service.StatusOf(err))
}
