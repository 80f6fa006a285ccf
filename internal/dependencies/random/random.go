package random

import (
	"crypto/rand"
	"math/big"
)

// Random provides random values that can be mocked for testing
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// Int63n returns a random int64 in [0, n)
	Int63n(n int64) int64

	// String generates a random string of the given length from the given alphabet
	String(length int, alphabet string) string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

func (r *CryptoRandom) Intn(n int) int {
	return int(r.Int63n(int64(n)))
}

// Int63n returns 0 for non-positive n
func (r *CryptoRandom) Int63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		return 0
	}
	return v.Int64()
}

func (r *CryptoRandom) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	chars := []rune(alphabet)
	out := make([]rune, length)
	for i := range out {
		out[i] = chars[r.Intn(len(chars))]
	}
	return string(out)
}
