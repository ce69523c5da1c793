// Package similarity derives the session user-similarity vector from
// interaction history and composes the four-factor good-neighbor score.
package similarity

import "strings"

// PairKey is the canonical key for an unordered item pair: both ids
// joined in lexicographic order.
type PairKey string

// NewPairKey builds the canonical key for the pair (a, b).
func NewPairKey(a, b string) PairKey {
	if b < a {
		a, b = b, a
	}

	return PairKey(a + "\x1f" + b)
}

// Split returns the two ids of the pair.
func (k PairKey) Split() (string, string) {
	a, b, _ := strings.Cut(string(k), "\x1f")

	return a, b
}
