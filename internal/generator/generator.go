// Package generator produces passwords: from per-class counts, as fully
// random strength-checked strings, from a phrase via leetspeak substitution,
// and as mnemonic word combinations.
//
// A Generator is safe for concurrent use. It owns its random source and its
// word list cache; nothing is shared between Generators.
package generator

import (
	crand "crypto/rand"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/5w1tchy/passwarden/internal/breach"
	"github.com/5w1tchy/passwarden/internal/pwerr"
	"github.com/5w1tchy/passwarden/internal/wordsource"
	"go.uber.org/zap"
)

var (
	ErrNoBreachChecker = fmt.Errorf("%w: no breach checker configured", pwerr.ErrUnconfigured)
	ErrEmptyWordList   = fmt.Errorf("%w: word list needs at least two entries", pwerr.ErrUnconfigured)
)

type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand

	checker breach.Checker
	source  wordsource.Source
	log     *zap.Logger

	wordsMu sync.Mutex
	words   *wordsource.Data
}

type Option func(*Generator)

// WithRand replaces the random source. The Generator serializes access to it.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		if r != nil {
			g.rng = r
		}
	}
}

// WithSeed makes output reproducible. Tests only.
func WithSeed(seed uint64) Option {
	return func(g *Generator) { g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

func WithBreachChecker(c breach.Checker) Option { return func(g *Generator) { g.checker = c } }

func WithWordSource(s wordsource.Source) Option {
	return func(g *Generator) {
		if s != nil {
			g.source = s
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// New returns a Generator drawing from a ChaCha8 stream seeded by crypto/rand
// and composing mnemonics from the embedded word lists.
func New(opts ...Option) *Generator {
	g := &Generator{
		source: wordsource.Embedded(),
		log:    zap.NewNop(),
	}
	for _, o := range opts {
		o(g)
	}
	if g.rng == nil {
		var seed [32]byte
		// crypto/rand.Read never returns an error on supported platforms
		_, _ = crand.Read(seed[:])
		g.rng = rand.New(rand.NewChaCha8(seed))
	}
	g.log = g.log.With(zap.String("component", "generator"))
	return g
}

// intN returns a uniform int in [0, n).
func (g *Generator) intN(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.IntN(n)
}

// pick returns one byte of an ASCII alphabet as a string.
func (g *Generator) pick(alphabet string) string {
	i := g.intN(len(alphabet))
	return alphabet[i : i+1]
}

func (g *Generator) coin() bool { return g.intN(2) == 0 }
