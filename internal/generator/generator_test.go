package generator

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unicode"

	"github.com/5w1tchy/passwarden/internal/analysis"
	"github.com/5w1tchy/passwarden/internal/breach"
	"github.com/5w1tchy/passwarden/internal/charset"
	"github.com/5w1tchy/passwarden/internal/naming"
	"github.com/5w1tchy/passwarden/internal/pwerr"
	"github.com/5w1tchy/passwarden/internal/wordsource"
)

func TestGenerateCounts(t *testing.T) {
	g := New(WithSeed(1))
	cases := []GenerationRules{
		{},
		{Lowercase: 1},
		{Lowercase: 5, Uppercase: 3, Digits: 2, Special: 4},
		{Digits: 12},
		{Lowercase: 0, Uppercase: 0, Digits: 0, Special: 9},
		{Lowercase: 20, Uppercase: 20, Digits: 20, Special: 20},
	}
	for _, rules := range cases {
		for i := 0; i < 20; i++ {
			pw, err := g.Generate(rules)
			if err != nil {
				t.Fatalf("Generate(%+v): %v", rules, err)
			}
			if got := len(pw); got != rules.Length() {
				t.Fatalf("len = %d, want %d (%q)", got, rules.Length(), pw)
			}
			if charset.Count(pw, charset.Lower) != rules.Lowercase ||
				charset.Count(pw, charset.Upper) != rules.Uppercase ||
				charset.Count(pw, charset.Digit) != rules.Digits ||
				charset.Count(pw, charset.Special) != rules.Special {
				t.Fatalf("Generate(%+v) = %q: wrong class counts", rules, pw)
			}
		}
	}
}

func TestGenerateEmptyRules(t *testing.T) {
	pw, err := New().Generate(GenerationRules{})
	if err != nil || pw != "" {
		t.Fatalf("Generate(zero) = %q, %v", pw, err)
	}
}

func TestGenerateRejectsNegative(t *testing.T) {
	g := New()
	for _, rules := range []GenerationRules{
		{Lowercase: -1},
		{Uppercase: -1},
		{Digits: -3},
		{Lowercase: 4, Special: -1},
	} {
		if _, err := g.Generate(rules); !errors.Is(err, pwerr.ErrInvalidArgument) {
			t.Errorf("Generate(%+v) err = %v, want invalid argument", rules, err)
		}
	}
}

func TestGenerateRejectsOverflowingTotal(t *testing.T) {
	g := New()
	for _, rules := range []GenerationRules{
		{Lowercase: math.MaxInt, Uppercase: 1},
		{Lowercase: math.MaxInt, Uppercase: math.MaxInt, Digits: 7},
		{Digits: math.MaxInt - 2, Special: 3},
	} {
		pw, err := g.Generate(rules)
		if !errors.Is(err, pwerr.ErrInvalidArgument) {
			t.Errorf("Generate(%+v) = %q, %v, want invalid argument", rules, pw, err)
		}
	}
}

func TestGenerateOrderVaries(t *testing.T) {
	g := New(WithSeed(7))
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		pw, _ := g.Generate(GenerationRules{Lowercase: 2, Digits: 2})
		shape := strings.Map(func(r rune) rune {
			if unicode.IsDigit(r) {
				return 'd'
			}
			return 'l'
		}, pw)
		seen[shape] = true
	}
	if len(seen) < 2 {
		t.Fatalf("class order never varied: %v", seen)
	}
}

func TestGenerateConcurrent(t *testing.T) {
	g := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := g.Generate(GenerationRules{Lowercase: 3, Special: 3}); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func never() breach.Checker {
	return breach.CheckerFunc(func(context.Context, string) (bool, error) { return false, nil })
}

func TestGenerateReliableRandom(t *testing.T) {
	var calls atomic.Int32
	chk := breach.CheckerFunc(func(ctx context.Context, pw string) (bool, error) {
		// first acceptable candidate is reported as breached
		return calls.Add(1) == 1, nil
	})
	g := New(WithSeed(3), WithBreachChecker(chk))

	pw, err := g.GenerateReliableRandom(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n := len([]rune(pw)); n != 20 {
		t.Fatalf("len = %d, want 20", n)
	}
	s, _ := analysis.Strength(pw)
	if s.Score != analysis.MaxScore {
		t.Fatalf("score = %d, want %d", s.Score, analysis.MaxScore)
	}
	if calls.Load() != 2 {
		t.Fatalf("checker calls = %d, want 2", calls.Load())
	}
}

func TestGenerateReliableRandomOnlyChecksStrongCandidates(t *testing.T) {
	chk := breach.CheckerFunc(func(ctx context.Context, pw string) (bool, error) {
		if s, _ := analysis.Strength(pw); s.Score != analysis.MaxScore {
			t.Errorf("weak candidate %q reached the checker", pw)
		}
		return false, nil
	})
	g := New(WithBreachChecker(chk))
	for i := 0; i < 10; i++ {
		if _, err := g.GenerateReliableRandom(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
}

func TestGenerateReliableRandomNoChecker(t *testing.T) {
	_, err := New().GenerateReliableRandom(context.Background())
	if !errors.Is(err, ErrNoBreachChecker) || !errors.Is(err, pwerr.ErrUnconfigured) {
		t.Fatalf("err = %v", err)
	}
}

func TestGenerateReliableRandomLookupError(t *testing.T) {
	boom := errors.New("dial tcp: refused")
	g := New(WithBreachChecker(breach.CheckerFunc(func(context.Context, string) (bool, error) {
		return false, boom
	})))
	_, err := g.GenerateReliableRandom(context.Background())
	if !errors.Is(err, pwerr.ErrBreachLookup) || !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestGenerateReliableRandomCancel(t *testing.T) {
	// everything is breached: only cancellation can end the loop
	always := breach.CheckerFunc(func(ctx context.Context, _ string) (bool, error) {
		return true, nil
	})
	g := New(WithBreachChecker(always))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := g.GenerateReliableRandom(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestGenerateFromPhrase(t *testing.T) {
	g := New(WithSeed(11))
	for _, phrase := range []string{"password", "Zebra", "qwerty"} {
		for i := 0; i < 20; i++ {
			pw, err := g.GenerateFromPhrase(phrase)
			if err != nil {
				t.Fatalf("GenerateFromPhrase(%q): %v", phrase, err)
			}
			if !matchesSubstitutions(strings.ToLower(phrase), pw) {
				t.Fatalf("GenerateFromPhrase(%q) = %q: not built from substitution candidates", phrase, pw)
			}
		}
	}
}

// matchesSubstitutions reports whether out can be split into one candidate per letter.
func matchesSubstitutions(letters, out string) bool {
	if letters == "" {
		return out == ""
	}
	for _, c := range substitutions[rune(letters[0])] {
		if strings.HasPrefix(out, c) && matchesSubstitutions(letters[1:], out[len(c):]) {
			return true
		}
	}
	return false
}

func TestGenerateFromPhraseRejects(t *testing.T) {
	g := New()
	for _, phrase := range []string{"", "abc1", "hello!", "pass-word", "two words", " leading"} {
		if _, err := g.GenerateFromPhrase(phrase); !errors.Is(err, pwerr.ErrInvalidArgument) {
			t.Errorf("GenerateFromPhrase(%q) err = %v, want invalid argument", phrase, err)
		}
	}
	if _, err := g.GenerateFromPhrase("straße"); !errors.Is(err, pwerr.ErrInvalidArgument) {
		t.Errorf("letter without substitutions should be rejected, got %v", err)
	}
}

func TestSubstitutionsCopy(t *testing.T) {
	c := Substitutions('A')
	if len(c) != 3 {
		t.Fatalf("Substitutions('A') = %v", c)
	}
	c[0] = "x"
	if substitutions['a'][0] != "@" {
		t.Fatal("Substitutions leaked the table")
	}
	if Substitutions('1') != nil {
		t.Fatal("digit has no substitutions")
	}
}

type staticWords struct {
	data  wordsource.Data
	err   error
	loads atomic.Int32
}

func (s *staticWords) Load(ctx context.Context) (wordsource.Data, error) {
	s.loads.Add(1)
	return s.data, s.err
}

func TestGenerateMnemonicNeverPicksFirstWord(t *testing.T) {
	src := &staticWords{data: wordsource.Data{
		Nouns:      []string{"zeroNoun", "tiger"},
		Adjectives: []string{"zeroAdj", "brave"},
		Verbs:      []string{"zeroVerb", "jumps"},
	}}
	g := New(WithSeed(5), WithWordSource(src))
	for i := 0; i < 100; i++ {
		pw, err := g.GenerateMnemonic(context.Background(), naming.Snake)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(pw, "brave_tiger_jumps_") {
			t.Fatalf("GenerateMnemonic = %q", pw)
		}
		tail := strings.TrimPrefix(pw, "brave_tiger_jumps_")
		if len(tail) != 2 || charset.Classify(rune(tail[0])) != charset.Special || !unicode.IsDigit(rune(tail[1])) {
			t.Fatalf("bad special/digit suffix in %q", pw)
		}
	}
	if n := src.loads.Load(); n != 1 {
		t.Fatalf("word source loaded %d times, want 1", n)
	}
}

func TestGenerateMnemonicConventions(t *testing.T) {
	src := &staticWords{data: wordsource.Data{
		Nouns:      []string{"-", "tiger"},
		Adjectives: []string{"-", "brave"},
		Verbs:      []string{"-", "jumps"},
	}}
	g := New(WithWordSource(src))
	cases := map[naming.Convention]string{
		naming.Camel:          "braveTigerJumps",
		naming.Pascal:         "BraveTigerJumps",
		naming.ScreamingSnake: "BRAVE_TIGER_JUMPS_",
		naming.Kebab:          "brave-tiger-jumps-",
		naming.Train:          "Brave-Tiger-Jumps-",
		naming.Dot:            "brave.tiger.jumps.",
		naming.Upper:          "BRAVETIGERJUMPS",
		naming.Lower:          "bravetigerjumps",
	}
	for conv, prefix := range cases {
		pw, err := g.GenerateMnemonic(context.Background(), conv)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(pw, prefix) {
			t.Errorf("%s: %q does not start with %q", conv, pw, prefix)
		}
	}
}

func TestGenerateMnemonicShortList(t *testing.T) {
	src := &staticWords{data: wordsource.Data{
		Nouns:      []string{"only"},
		Adjectives: []string{"a", "b"},
		Verbs:      []string{"a", "b"},
	}}
	_, err := New(WithWordSource(src)).GenerateMnemonic(context.Background(), naming.Lower)
	if !errors.Is(err, ErrEmptyWordList) {
		t.Fatalf("err = %v, want ErrEmptyWordList", err)
	}
}

func TestGenerateMnemonicLoadErrorNotCached(t *testing.T) {
	src := &staticWords{err: context.Canceled}
	g := New(WithWordSource(src))
	if _, err := g.GenerateMnemonic(context.Background(), naming.Lower); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	src.err = nil
	src.data = wordsource.Data{Nouns: []string{"a", "b"}, Adjectives: []string{"a", "b"}, Verbs: []string{"a", "b"}}
	if _, err := g.GenerateMnemonic(context.Background(), naming.Lower); err != nil {
		t.Fatalf("second attempt: %v", err)
	}
}

func TestGenerateMnemonicEmbedded(t *testing.T) {
	pw, err := New().GenerateMnemonic(context.Background(), naming.Pascal)
	if err != nil {
		t.Fatal(err)
	}
	if pw == "" || strings.ContainsAny(pw, " ") {
		t.Fatalf("GenerateMnemonic(Pascal) = %q", pw)
	}
}
