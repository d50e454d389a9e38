// Package analysis measures password quality: entropy, strength grade, weak
// structural patterns, positional similarity and symbol frequency.
//
// Every function here is pure and safe for concurrent use.
package analysis

import (
	"math"
	"unicode/utf8"

	"github.com/5w1tchy/passwarden/internal/charset"
)

// Entropy returns log2(alphabet size) * length in bits; 0 for an empty password.
// It is an upper bound on randomness, not the Shannon entropy of the actual runes.
func Entropy(password string) float64 {
	if password == "" {
		return 0
	}
	size := charset.SizeOf(password)
	if size == 0 {
		// only caseless letters: nothing to size the space with
		return 0
	}
	return math.Log2(float64(size)) * float64(utf8.RuneCountInString(password))
}
