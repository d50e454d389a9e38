package analysis

import "github.com/5w1tchy/passwarden/internal/charset"

// Report bundles every analysis of one password.
type Report struct {
	Length    int            `json:"length"`
	Alphabet  int            `json:"alphabet_size"`
	Strength  StrengthResult `json:"strength"`
	Patterns  []Pattern      `json:"patterns"`
	Frequency map[string]int `json:"frequency"`
}

// Analyze runs Strength, DetectPatterns and SymbolFrequency over password.
// It fails like DetectPatterns for empty or whitespace-only input.
func Analyze(password string) (Report, error) {
	patterns, err := DetectPatterns(password)
	if err != nil {
		return Report{}, err
	}
	strength, err := Strength(password)
	if err != nil {
		return Report{}, err
	}
	freq, err := SymbolFrequency(password)
	if err != nil {
		return Report{}, err
	}
	byString := make(map[string]int, len(freq))
	for r, n := range freq {
		byString[string(r)] = n
	}
	return Report{
		Length:    len([]rune(password)),
		Alphabet:  charset.SizeOf(password),
		Strength:  strength,
		Patterns:  patterns,
		Frequency: byString,
	}, nil
}
