package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/seedroom/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodePlayerNotFound   = "PLAYER_NOT_FOUND"
	CodeRoomNotFound     = "ROOM_NOT_FOUND"
	CodeRoomExists       = "ROOM_EXISTS"
	CodeCapacityExceeded = "CAPACITY_EXCEEDED"
	CodeSeedUnavailable  = "SEED_UNAVAILABLE"
	CodeNotCreator       = "NOT_CREATOR"
	CodeNotInRoom        = "NOT_IN_ROOM"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status err maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return &httpError{http.StatusBadRequest, APIError{CodeValidationFailed, ve.Message, ve.Field}}
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodePlayerNotFound, Message: "Player not found"}}
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeRoomNotFound, Message: "Room not found"}}
	case errors.Is(err, model.ErrRoomExists):
		return &httpError{http.StatusConflict, APIError{Code: CodeRoomExists, Message: "A room for this seed already exists"}}
	case errors.Is(err, model.ErrCapacityExceeded):
		return &httpError{http.StatusServiceUnavailable, APIError{Code: CodeCapacityExceeded, Message: "Too many rooms are open, try again later"}}
	case errors.Is(err, model.ErrSeedUnavailable):
		return &httpError{http.StatusBadGateway, APIError{Code: CodeSeedUnavailable, Message: "Seed generation is unavailable, try again later"}}
	case errors.Is(err, model.ErrNotCreator):
		return &httpError{http.StatusForbidden, APIError{Code: CodeNotCreator, Message: "Only the room creator can do this"}}
	case errors.Is(err, model.ErrNotInRoom):
		return &httpError{http.StatusConflict, APIError{Code: CodeNotInRoom, Message: "Not in this room"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
