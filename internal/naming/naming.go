// Package naming reformats a space separated phrase into a naming convention
// such as camelCase or SCREAMING_SNAKE.
package naming

import (
	"fmt"
	"strings"

	"github.com/5w1tchy/passwarden/internal/pwerr"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Convention int

const (
	Camel Convention = iota
	Pascal
	Snake
	ScreamingSnake
	Kebab
	Train
	Dot
	Upper
	Lower
)

type wordCase int

const (
	lowerCase wordCase = iota
	upperCase
	titleCase
	camelCase // first word lower, the rest title
)

var conventions = [...]struct {
	name string
	cs   wordCase
	sep  string
}{
	Camel:          {"camel", camelCase, ""},
	Pascal:         {"pascal", titleCase, ""},
	Snake:          {"snake", lowerCase, "_"},
	ScreamingSnake: {"screaming_snake", upperCase, "_"},
	Kebab:          {"kebab", lowerCase, "-"},
	Train:          {"train", titleCase, "-"},
	Dot:            {"dot", lowerCase, "."},
	Upper:          {"upper", upperCase, ""},
	Lower:          {"lower", lowerCase, ""},
}

func (c Convention) valid() bool { return c >= Camel && c <= Lower }

func (c Convention) String() string {
	if !c.valid() {
		return fmt.Sprintf("Convention(%d)", int(c))
	}
	return conventions[c].name
}

func (c Convention) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Convention) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Parse accepts a convention name ignoring case and '-', '_' or space separators,
// so "screaming-snake", "ScreamingSnake" and "SCREAMING_SNAKE" are all ScreamingSnake.
func Parse(s string) (Convention, error) {
	squash := strings.NewReplacer("-", "", "_", "", " ", "")
	want := squash.Replace(strings.ToLower(strings.TrimSpace(s)))
	for i, c := range conventions {
		if squash.Replace(c.name) == want {
			return Convention(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown naming convention %q", pwerr.ErrInvalidArgument, s)
}

// Apply reformats phrase, whose words are separated by spaces, into c.
// An unknown convention returns phrase unchanged.
func Apply(c Convention, phrase string) string {
	if !c.valid() {
		return phrase
	}
	conv := conventions[c]
	words := strings.Fields(phrase)

	// Casers keep state and must not be shared between goroutines.
	lower := cases.Lower(language.Und)
	upper := cases.Upper(language.Und)
	title := cases.Title(language.Und)

	for i, w := range words {
		switch {
		case conv.cs == lowerCase, conv.cs == camelCase && i == 0:
			words[i] = lower.String(w)
		case conv.cs == upperCase:
			words[i] = upper.String(w)
		default:
			words[i] = title.String(w)
		}
	}
	return strings.Join(words, conv.sep)
}
