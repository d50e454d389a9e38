package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/5w1tchy/passwarden/internal/analysis"
	"github.com/5w1tchy/passwarden/internal/charset"
	"github.com/5w1tchy/passwarden/internal/pwerr"
	"go.uber.org/zap"
)

const reliableLength = 20

var randomAlphabets = [...]string{charset.Digits, charset.Lowercase, charset.Uppercase, charset.Specials}

// randomSymbols picks a class uniformly for every position, then a character within it.
func (g *Generator) randomSymbols(n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteString(g.pick(randomAlphabets[g.intN(len(randomAlphabets))]))
	}
	return sb.String()
}

// GenerateReliableRandom draws 20 character candidates until one has the
// maximum strength score and is not known to the breach checker. Strength is
// checked first so only acceptable candidates cost a lookup.
//
// The loop has no attempt limit; it ends on success, on ctx cancellation
// (returning ctx.Err()), or on the first lookup error.
func (g *Generator) GenerateReliableRandom(ctx context.Context) (string, error) {
	if g.checker == nil {
		return "", ErrNoBreachChecker
	}
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		pw := g.randomSymbols(reliableLength)
		s, err := analysis.Strength(pw)
		if err != nil || s.Score < analysis.MaxScore {
			continue
		}

		hit, err := g.checker.IsCompromised(ctx, pw)
		if err != nil {
			if cerr := ctx.Err(); cerr != nil {
				return "", cerr
			}
			if errors.Is(err, pwerr.ErrBreachLookup) {
				return "", err
			}
			return "", fmt.Errorf("%w: %w", pwerr.ErrBreachLookup, err)
		}
		if hit {
			g.log.Debug("candidate found in breach corpus; retrying", zap.Int("attempt", attempt))
			continue
		}
		return pw, nil
	}
}
