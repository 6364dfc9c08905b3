package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mcoot/seedroom/internal/dependencies/clock"
	"github.com/mcoot/seedroom/internal/model"
)

// maxResponseSize bounds how much of a generator response is read. The
// response carries a large patch payload that is skipped while decoding.
const maxResponseSize = 64 << 20

// HTTPConfig configures the remote seed generator
type HTTPConfig struct {
	// BaseURL is the generator root; seeds are requested from BaseURL + "/seed"
	BaseURL string
}

// DefaultHTTPConfig returns the public generator configuration
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		BaseURL: "https://alttpr.com",
	}
}

// HTTPProvider requests seeds from an alttpr-compatible generator
type HTTPProvider struct {
	baseURL    string
	httpClient *http.Client
	clock      clock.Clock
}

var _ Provider = (*HTTPProvider)(nil)

// NewHTTPProvider creates a provider for the given generator. Request
// deadlines come from the caller's context.
func NewHTTPProvider(cfg HTTPConfig, httpClient *http.Client, clock clock.Clock) *HTTPProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultHTTPConfig().BaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &HTTPProvider{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		clock:      clock,
	}
}

// generateRequest is the generator's settings payload
type generateRequest struct {
	Difficulty string `json:"difficulty"`
	Enemizer   bool   `json:"enemizer"`
	Goal       string `json:"goal"`
	Lang       string `json:"lang"`
	Logic      string `json:"logic"`
	Mode       string `json:"mode"`
	Spoilers   bool   `json:"spoilers"`
	Tournament bool   `json:"tournament"`
	Variation  string `json:"variation"`
	Weapons    string `json:"weapons"`
}

// generateResponse holds the only field kept from a generator response
type generateResponse struct {
	Hash string `json:"hash"`
}

func newGenerateRequest(s model.Settings) generateRequest {
	return generateRequest{
		Difficulty: string(s.Difficulty),
		Enemizer:   s.Enemizer,
		Goal:       string(s.Goal),
		Lang:       s.Lang,
		Logic:      string(s.Logic),
		Mode:       string(s.Mode),
		Spoilers:   s.Spoilers,
		Tournament: s.Tournament,
		Variation:  string(s.Variation),
		Weapons:    string(s.Weapons),
	}
}

// Generate posts the settings to the generator and returns the seed hash
func (p *HTTPProvider) Generate(ctx context.Context, settings model.Settings) (*model.Seed, error) {
	data, err := json.Marshal(newGenerateRequest(settings))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal seed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/seed", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create seed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrSeedUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: generator returned HTTP %d", model.ErrSeedUnavailable, resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", model.ErrSeedUnavailable, err)
	}
	if out.Hash == "" {
		return nil, fmt.Errorf("%w: response has no hash", model.ErrSeedUnavailable)
	}

	return &model.Seed{
		Hash:        out.Hash,
		Permalink:   Permalink(out.Hash),
		GeneratedAt: p.clock.Now(),
	}, nil
}
