package random

import (
	"crypto/rand"
	"math/big"
)

// HashAlphabet is the character set of generated seed hashes
const HashAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Random generates the random identifiers used by the local seed provider
type Random interface {
	// Hash returns a random string of the given length drawn from HashAlphabet
	Hash(length int) string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Hash draws each character independently from HashAlphabet
func (r *CryptoRandom) Hash(length int) string {
	if length <= 0 {
		return ""
	}
	limit := big.NewInt(int64(len(HashAlphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(err)
		}
		out[i] = HashAlphabet[n.Int64()]
	}
	return string(out)
}
