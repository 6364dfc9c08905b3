package random

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	r := New()

	h := r.Hash(10)
	assert.Len(t, h, 10)
	for _, c := range h {
		assert.True(t, strings.ContainsRune(HashAlphabet, c), "unexpected %q", c)
	}

	assert.Empty(t, r.Hash(0))
	assert.NotEqual(t, r.Hash(16), r.Hash(16))
}
