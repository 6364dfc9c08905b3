package seed

import (
	"context"
	"fmt"

	"github.com/mcoot/seedroom/internal/dependencies/clock"
	"github.com/mcoot/seedroom/internal/dependencies/random"
	"github.com/mcoot/seedroom/internal/model"
)

// LocalHashLength is the length of hashes made up by LocalProvider
const LocalHashLength = 10

// LocalProvider invents seed hashes without contacting a generator. It is
// used for development and tests.
type LocalProvider struct {
	random random.Random
	clock  clock.Clock
}

var _ Provider = (*LocalProvider)(nil)

// NewLocalProvider creates a LocalProvider
func NewLocalProvider(random random.Random, clock clock.Clock) *LocalProvider {
	return &LocalProvider{random: random, clock: clock}
}

// Generate returns a random hash, honouring context cancellation
func (p *LocalProvider) Generate(ctx context.Context, _ model.Settings) (*model.Seed, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrSeedUnavailable, err)
	}
	hash := p.random.Hash(LocalHashLength)
	return &model.Seed{
		Hash:        hash,
		Permalink:   Permalink(hash),
		GeneratedAt: p.clock.Now(),
	}, nil
}
