package generator

import (
	"math"
	"strings"

	"github.com/5w1tchy/passwarden/internal/charset"
	"github.com/5w1tchy/passwarden/internal/pwerr"
)

// GenerationRules are exact per-class character counts.
type GenerationRules struct {
	Lowercase int `json:"lowercase"`
	Uppercase int `json:"uppercase"`
	Digits    int `json:"digits"`
	Special   int `json:"special"`
}

func (r GenerationRules) Length() int { return r.Lowercase + r.Uppercase + r.Digits + r.Special }

// Validate rejects negative counts and counts whose total does not fit in an
// int.
func (r GenerationRules) Validate() error {
	switch {
	case r.Lowercase < 0:
		return pwerr.Invalid("lowercase", "must not be negative")
	case r.Uppercase < 0:
		return pwerr.Invalid("uppercase", "must not be negative")
	case r.Digits < 0:
		return pwerr.Invalid("digits", "must not be negative")
	case r.Special < 0:
		return pwerr.Invalid("special", "must not be negative")
	}
	total := 0
	for _, n := range [...]int{r.Lowercase, r.Uppercase, r.Digits, r.Special} {
		if n > math.MaxInt-total {
			return pwerr.Invalid("rules", "total length overflows")
		}
		total += n
	}
	return nil
}

// Generate builds a password with exactly the requested class counts. Each
// pass visits lowercase, uppercase, digit and special in order; a class still
// under target gets a coin flip, and on heads one random character of that
// class is appended. Passes repeat until the total length is reached.
func (g *Generator) Generate(rules GenerationRules) (string, error) {
	if err := rules.Validate(); err != nil {
		return "", err
	}

	classes := [...]struct {
		alphabet string
		want     int
	}{
		{charset.Lowercase, rules.Lowercase},
		{charset.Uppercase, rules.Uppercase},
		{charset.Digits, rules.Digits},
		{charset.Specials, rules.Special},
	}
	var have [len(classes)]int

	total := rules.Length()
	var sb strings.Builder
	sb.Grow(total)
	for n := 0; n < total; {
		for i, c := range classes {
			if have[i] >= c.want || !g.coin() {
				continue
			}
			sb.WriteString(g.pick(c.alphabet))
			have[i]++
			n++
		}
	}
	return sb.String(), nil
}
