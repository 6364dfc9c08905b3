package seed

import (
	"context"

	"github.com/mcoot/seedroom/internal/model"
)

// PermalinkBase is prefixed to a hash to link to the generated seed
const PermalinkBase = "https://alttpr.com/en/h/"

// Provider generates a seed for a set of game settings. Implementations
// return an error wrapping model.ErrSeedUnavailable when generation fails.
type Provider interface {
	Generate(ctx context.Context, settings model.Settings) (*model.Seed, error)
}

// Permalink returns the public page of a generated seed
func Permalink(hash string) string {
	return PermalinkBase + hash
}
