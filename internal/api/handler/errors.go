package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/seedroom/internal/api/apierr"
	requestlog "github.com/mcoot/seedroom/internal/middleware"
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// fail writes err and logs it when it maps to an internal error.
// Expected failures like validation or not-found are not faults.
func fail(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if apierr.Status(err) == http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("request_id", requestlog.RequestID(r.Context())),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	WriteError(w, err)
}

// decode reads a JSON body into dst. An empty body leaves dst untouched.
func decode(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return NewInvalidRequestError("invalid request body")
}
