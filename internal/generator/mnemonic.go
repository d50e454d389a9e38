package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/5w1tchy/passwarden/internal/charset"
	"github.com/5w1tchy/passwarden/internal/naming"
	"github.com/5w1tchy/passwarden/internal/wordsource"
)

// GenerateMnemonic joins "{adjective} {noun} {verb} {special}{digit}" and
// formats it with convention.
func (g *Generator) GenerateMnemonic(ctx context.Context, convention naming.Convention) (string, error) {
	data, err := g.wordData(ctx)
	if err != nil {
		return "", err
	}

	picked := make(map[wordsource.Category]string, 3)
	for _, c := range []wordsource.Category{wordsource.Nouns, wordsource.Adjectives, wordsource.Verbs} {
		w, err := g.sampleWord(data.Words(c))
		if err != nil {
			return "", fmt.Errorf("%s: %w", c, err)
		}
		picked[c] = w
	}

	phrase := strings.Join([]string{
		picked[wordsource.Adjectives],
		picked[wordsource.Nouns],
		picked[wordsource.Verbs],
		g.pick(charset.Specials) + g.pick(charset.Digits),
	}, " ")
	return naming.Apply(convention, phrase), nil
}

// sampleWord draws a 1-based index from [1, len(words)): the first entry of
// every list is never chosen.
func (g *Generator) sampleWord(words []string) (string, error) {
	if len(words) < 2 {
		return "", ErrEmptyWordList
	}
	return words[1+g.intN(len(words)-1)], nil
}

// wordData loads the word lists on first use. A failed load is not cached,
// so a cancelled request does not poison later ones.
func (g *Generator) wordData(ctx context.Context) (wordsource.Data, error) {
	g.wordsMu.Lock()
	defer g.wordsMu.Unlock()
	if g.words != nil {
		return *g.words, nil
	}
	d, err := g.source.Load(ctx)
	if err != nil {
		return wordsource.Data{}, fmt.Errorf("load word lists: %w", err)
	}
	g.words = &d
	return d, nil
}
