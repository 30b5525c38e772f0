package service

import (
	"errors"
	"net/http"
)

// StatusError classifies a workflow failure with the HTTP status it maps
// to. Errors without a classification surface as a 500.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

func Invalid(message string) error {
	return &StatusError{Code: http.StatusUnprocessableEntity, Message: message}
}

func NotFound(message string) error {
	return &StatusError{Code: http.StatusNotFound, Message: message}
}

func Unauthorized(message string) error {
	return &StatusError{Code: http.StatusUnauthorized, Message: message}
}

// StatusOf returns the HTTP status carried by err, or 500 when err is not
// a classified StatusError.
func StatusOf(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code
	}
	return http.StatusInternalServerError
}
