package analysis

import "github.com/5w1tchy/passwarden/internal/pwerr"

// SymbolFrequency counts occurrences of each rune in password.
func SymbolFrequency(password string) (map[rune]int, error) {
	if password == "" {
		return nil, pwerr.Invalid("password", "must not be empty")
	}
	freq := make(map[rune]int)
	for _, r := range password {
		freq[r]++
	}
	return freq, nil
}
