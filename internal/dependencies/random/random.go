package random

import (
	"crypto/rand"
	"math/big"
)

// IDAlphabet is the character set for generated game identifiers.
// Ambiguous characters are excluded.
const IDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Random provides random number generation that can be mocked for
// testing. Deck shuffling and game ID generation both go through it so
// tests can force deterministic deals.
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// ID generates a random identifier of the given length from IDAlphabet
	ID(length int) string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a cryptographically random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		return 0
	}
	return int(v.Int64())
}

// ID generates a random identifier of the given length.
func (r *CryptoRandom) ID(length int) string {
	if length <= 0 {
		return ""
	}
	out := make([]byte, length)
	for i := range out {
		out[i] = IDAlphabet[r.Intn(len(IDAlphabet))]
	}
	return string(out)
}
