package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForSeed(t *testing.T) {
	p := NewTlkProvider("")

	ch, err := p.ForSeed("abc123")
	require.NoError(t, err)
	assert.Equal(t, "alttr_abc123", ch.Name)
	assert.Equal(t, "https://tlk.io/alttr_abc123", ch.URL)
}

func TestForSeedCustomBase(t *testing.T) {
	p := NewTlkProvider("http://chat.local")

	ch, err := p.ForSeed("x")
	require.NoError(t, err)
	assert.Equal(t, "http://chat.local/alttr_x", ch.URL)
}

func TestForSeedEmptyHash(t *testing.T) {
	_, err := NewTlkProvider("").ForSeed("")
	assert.ErrorIs(t, err, ErrEmptyHash)
}
