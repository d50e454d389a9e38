package generator

import (
	"strings"
	"unicode"

	"github.com/5w1tchy/passwarden/internal/charset"
	"github.com/5w1tchy/passwarden/internal/pwerr"
)

// substitutions maps a lowercase letter to its leetspeak candidates.
var substitutions = map[rune][]string{
	'a': {"@", "4", "A"},
	'b': {"8", "B"},
	'c': {"(", "{", "C"},
	'd': {"D", "|)", "cl"},
	'e': {"3", "E"},
	'f': {"F", "|="},
	'g': {"9", "G", "&"},
	'h': {"H", "#", "|-|"},
	'i': {"1", "!", "I"},
	'j': {"J", "_|"},
	'k': {"K", "|<"},
	'l': {"1", "|", "L"},
	'm': {"M", `|\/|`},
	'n': {"N", `|\|`},
	'o': {"0", "O", "()"},
	'p': {"P", "|*"},
	'q': {"Q", "9"},
	'r': {"R", "|2"},
	's': {"5", "$", "S"},
	't': {"7", "+", "T"},
	'u': {"U", "|_|"},
	'v': {"V", `\/`},
	'w': {"W", `\/\/`, "VV"},
	'x': {"X", "><"},
	'y': {"Y", "`/"},
	'z': {"2", "Z"},
}

// Substitutions returns a copy of the candidate list for letter, or nil.
func Substitutions(letter rune) []string {
	c := substitutions[unicode.ToLower(letter)]
	if c == nil {
		return nil
	}
	return append([]string(nil), c...)
}

// GenerateFromPhrase replaces every letter of phrase with a random candidate
// from the substitution table. Only letters are accepted: digits, symbols and
// spaces are rejected.
func (g *Generator) GenerateFromPhrase(phrase string) (string, error) {
	if phrase == "" {
		return "", pwerr.Invalid("phrase", "must not be empty")
	}
	for _, r := range phrase {
		if unicode.IsDigit(r) || !charset.IsAlphanumeric(r) {
			return "", pwerr.Invalid("phrase", "must contain letters only")
		}
	}

	fused := strings.ToLower(strings.ReplaceAll(phrase, " ", ""))
	var sb strings.Builder
	for _, r := range fused {
		cands, ok := substitutions[r]
		if !ok {
			return "", pwerr.Invalid("phrase", "has a letter without substitutions: "+string(r))
		}
		sb.WriteString(cands[g.intN(len(cands))])
	}
	return sb.String(), nil
}
