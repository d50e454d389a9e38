package analysis

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/5w1tchy/passwarden/internal/charset"
	"github.com/5w1tchy/passwarden/internal/pwerr"
)

// Pattern is a weak structure found in a password.
type Pattern int

const (
	None Pattern = iota
	RepeatingCharacters
	SequentialNumbers
	DateFormat
	AlternatingPattern
	LowDiversity
	RepeatedPattern
	SequentialLetters
)

var patternNames = map[Pattern]string{
	None:                "None",
	RepeatingCharacters: "RepeatingCharacters",
	SequentialNumbers:   "SequentialNumbers",
	DateFormat:          "DateFormat",
	AlternatingPattern:  "AlternatingPattern",
	LowDiversity:        "LowDiversity",
	RepeatedPattern:     "RepeatedPattern",
	SequentialLetters:   "SequentialLetters",
}

func (p Pattern) String() string {
	if n, ok := patternNames[p]; ok {
		return n
	}
	return fmt.Sprintf("Pattern(%d)", int(p))
}

func (p Pattern) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// detectors run in this order; the order is visible in DetectPatterns' result.
var detectors = []struct {
	pattern Pattern
	match   func([]rune) bool
}{
	{RepeatingCharacters, hasRepeatingRun},
	{SequentialNumbers, hasSequentialNumbers},
	{DateFormat, hasDate},
	{AlternatingPattern, hasAlternatingBlock},
	{LowDiversity, hasLowDiversity},
	{RepeatedPattern, isPeriodic},
	{SequentialLetters, hasSequentialLetters},
}

// DetectPatterns returns every pattern found in password in detection order,
// or [None] when nothing matched.
func DetectPatterns(password string) ([]Pattern, error) {
	if strings.TrimSpace(password) == "" {
		return nil, pwerr.Invalid("password", "must not be empty or whitespace")
	}
	rs := []rune(password)
	var found []Pattern
	for _, d := range detectors {
		if d.match(rs) {
			found = append(found, d.pattern)
		}
	}
	if len(found) == 0 {
		found = append(found, None)
	}
	return found, nil
}

// hasRepeatingRun: the same rune three or more times in a row.
func hasRepeatingRun(rs []rune) bool {
	run := 1
	for i := 1; i < len(rs); i++ {
		if rs[i] == rs[i-1] {
			run++
			if run >= 3 {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

func hasSequentialNumbers(rs []rune) bool {
	if !hasRunOf(rs, 3, unicode.IsDigit) {
		return false
	}
	return isSequential(filter(rs, unicode.IsDigit))
}

func hasSequentialLetters(rs []rune) bool {
	if !hasRunOf(rs, 3, isASCIILetter) {
		return false
	}
	return isSequential(filter(rs, func(r rune) bool { return !unicode.IsDigit(r) }))
}

// isSequential reports whether rs is at least three alphanumeric runes that
// step by exactly +1 throughout or by exactly -1 throughout.
func isSequential(rs []rune) bool {
	if len(rs) < 3 {
		return false
	}
	ascending, descending := true, true
	for i := 1; i < len(rs); i++ {
		if !charset.IsAlphanumeric(rs[i-1]) || !charset.IsAlphanumeric(rs[i]) {
			return false
		}
		switch rs[i] - rs[i-1] {
		case 1:
			descending = false
		case -1:
			ascending = false
		default:
			return false
		}
		if !ascending && !descending {
			return false
		}
	}
	return true
}

// hasAlternatingBlock: a block of one or two runes repeated at least three times in a row.
func hasAlternatingBlock(rs []rune) bool {
	for i := range rs {
		for k := 1; k <= 2; k++ {
			if i+3*k > len(rs) {
				break
			}
			if equalRunes(rs[i:i+k], rs[i+k:i+2*k]) && equalRunes(rs[i:i+k], rs[i+2*k:i+3*k]) {
				return true
			}
		}
	}
	return false
}

func hasLowDiversity(rs []rune) bool {
	distinct := make(map[rune]struct{}, len(rs))
	for _, r := range rs {
		distinct[r] = struct{}{}
	}
	return len(distinct) < len(rs)/2
}

// isPeriodic: the whole password is a prefix of two or more runes repeated at least twice.
func isPeriodic(rs []rune) bool {
	n := len(rs)
	for p := 2; p <= n/2; p++ {
		if n%p != 0 {
			continue
		}
		ok := true
		for i := p; i < n; i++ {
			if rs[i] != rs[i%p] {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func hasRunOf(rs []rune, min int, pred func(rune) bool) bool {
	run := 0
	for _, r := range rs {
		if pred(r) {
			run++
			if run >= min {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

func filter(rs []rune, keep func(rune) bool) []rune {
	out := make([]rune, 0, len(rs))
	for _, r := range rs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
