package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fernwood/blog-api/internal/api/shared"
	"github.com/fernwood/blog-api/internal/domain"
	"github.com/fernwood/blog-api/internal/service"
	"github.com/fernwood/blog-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, store.ErrPostNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case domain.IsValidationError(err),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error (store/driver failures and the like)
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, store.ErrPostNotFound):
		return "Post not found"

	case domain.IsValidationError(err):
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return "Validation error: " + validationErr.Error()
		}
		return "Validation error: " + err.Error()

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid post data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes an error response for the given error, deriving the
// status code and a safe message from the error type. When message is empty,
// the safe message for the error is used.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	statusCode := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, statusCode, message, err)
}

// SanitizeValidationError removes sensitive details from validator/v10
// errors and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'CreatePostRequest.Title' Error:Field validation
	// for 'Title' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
