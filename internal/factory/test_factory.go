package factory

import (
	"time"

	"github.com/mcoot/seedroom/internal/dependencies/mocks"
	"github.com/mcoot/seedroom/internal/services/seed"
	"github.com/mcoot/seedroom/internal/storage/memory"
	"github.com/mcoot/seedroom/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Memory     *memory.Storage
}

// TestConfig returns the configuration used by NewTestApp
func TestConfig() Config {
	return Config{
		Logger:       testutil.NopLogger(),
		SeedProvider: SeedProviderLocal,
	}
}

// NewTestApp creates an App with mocked time and randomness, memory storage
// and locally generated seeds
func NewTestApp() *TestApp {
	return NewTestAppWithConfig(TestConfig())
}

// NewTestAppWithConfig is NewTestApp with component settings overridden
func NewTestAppWithConfig(cfg Config) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := cfg.Logger
	if logger == nil {
		logger = testutil.NopLogger()
	}

	seeds := seed.NewLocalProvider(mockRandom, mockClock)
	app := newWithDependencies(store, seeds, mockClock, mockRandom, cfg, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Memory:     store,
	}
}
