package chat

import (
	"errors"
	"strings"

	"github.com/mcoot/seedroom/internal/model"
)

// ErrEmptyHash is returned when a channel is requested for an empty seed hash
var ErrEmptyHash = errors.New("chat channel requires a seed hash")

// Provider derives the chat channel attached to a seed
type Provider interface {
	ForSeed(hash string) (model.ChatChannel, error)
}

const (
	// DefaultTlkBaseURL is the public tlk.io root
	DefaultTlkBaseURL = "https://tlk.io/"
	// ChannelPrefix is prepended to the seed hash to name a channel
	ChannelPrefix = "alttr_"
)

// TlkProvider names tlk.io channels after the seed hash. Channels are
// created by tlk.io on first visit, so no request is made.
type TlkProvider struct {
	baseURL string
}

var _ Provider = (*TlkProvider)(nil)

// NewTlkProvider creates a provider rooted at baseURL, or the public tlk.io
// root when baseURL is empty
func NewTlkProvider(baseURL string) *TlkProvider {
	if baseURL == "" {
		baseURL = DefaultTlkBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &TlkProvider{baseURL: baseURL}
}

// ForSeed returns the channel for hash
func (p *TlkProvider) ForSeed(hash string) (model.ChatChannel, error) {
	if hash == "" {
		return model.ChatChannel{}, ErrEmptyHash
	}
	name := ChannelPrefix + hash
	return model.ChatChannel{
		Name: name,
		URL:  p.baseURL + name,
	}, nil
}
