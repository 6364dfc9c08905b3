package testutil

import (
	"io"
	"log/slog"
	"testing"

	"github.com/mcoot/seedroom/internal/model"
)

// NopLogger returns a logger that discards all output.
// Use this in tests to avoid log noise.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// DefaultSettings returns the settings preselected in the create form
func DefaultSettings(t testing.TB) model.Settings {
	t.Helper()
	settings, err := model.ParseSettings(model.DefaultSettingsForm())
	if err != nil {
		t.Fatalf("default settings do not parse: %v", err)
	}
	return settings
}
