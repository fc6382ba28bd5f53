package handlers

import (
	"errors"
	"net/http"

	"server-utilities/pkg/future"
	"server-utilities/pkg/lambda"
)

// statusForError maps envelope and background errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, lambda.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, lambda.ErrMissingBody),
		errors.Is(err, lambda.ErrEncoding),
		errors.Is(err, lambda.ErrDecode):
		return http.StatusBadRequest
	case errors.Is(err, future.ErrServiceClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
