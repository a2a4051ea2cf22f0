// Package wordlist generates human-friendly session identifiers: a few
// random words from a fixed list, joined by hyphens, per spec.md 2.6.
package wordlist

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// DefaultWordCount is the number of words joined into a production
// session id.
const DefaultWordCount = 3

// New generates the default three-word session id, e.g. "amber-river-kestrel".
func New() (string, error) {
	return Generate(DefaultWordCount)
}

// Generate produces an n-word hyphenated id drawn from words. n must be
// at least 1. Tests use this to exercise word counts other than the
// production default.
func Generate(n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("wordlist: word count must be >= 1, got %d", n)
	}
	picked := make([]string, n)
	for i := 0; i < n; i++ {
		w, err := randomWord()
		if err != nil {
			return "", err
		}
		picked[i] = w
	}
	return strings.Join(picked, "-"), nil
}

func randomWord() (string, error) {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(words))))
	if err != nil {
		return "", fmt.Errorf("wordlist: drawing random index: %w", err)
	}
	return words[idx.Int64()], nil
}
