package bruteforce

import (
	"errors"
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/5w1tchy/passwarden/internal/pwerr"
)

func TestEstimateSeconds(t *testing.T) {
	got, err := Estimate("aaaaaa", 1e9, Seconds)
	if err != nil {
		t.Fatal(err)
	}
	want := math.Pow(26, 6) / 1e9
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestEstimateUnits(t *testing.T) {
	secs, _ := Estimate("Abc123!?", 1e6, Seconds)
	for u := Years; u <= Seconds; u++ {
		per, _ := u.Seconds()
		got, err := Estimate("Abc123!?", 1e6, u)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-secs/per)/got > 1e-12 {
			t.Errorf("%v: got %v, want %v", u, got, secs/per)
		}
	}
}

func TestEstimateLongPasswordDoesNotOverflow(t *testing.T) {
	pw := strings.Repeat("aA1!", 40) // 94^160, far past uint64
	got, err := Estimate(pw, 1e12, Years)
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(got) || got <= 0 {
		t.Fatalf("unexpected estimate %v", got)
	}
	want := new(big.Int).Exp(big.NewInt(94), big.NewInt(160), nil)
	if Combinations(pw).Cmp(want) != 0 {
		t.Fatal("combination count is not exact")
	}

	huge := strings.Repeat("aA1!", 100)
	got, _ = Estimate(huge, 1, Seconds)
	if !math.IsInf(got, 1) {
		t.Fatalf("expected +Inf for 94^400 seconds, got %v", got)
	}
}

func TestEstimateInvalid(t *testing.T) {
	cases := []struct {
		pw    string
		speed float64
		unit  TimeUnit
	}{
		{"", 1, Seconds},
		{"   ", 1, Seconds},
		{"abc", 0, Seconds},
		{"abc", -5, Seconds},
		{"abc", math.NaN(), Seconds},
		{"abc", 1, TimeUnit(42)},
	}
	for _, tc := range cases {
		if _, err := Estimate(tc.pw, tc.speed, tc.unit); !errors.Is(err, pwerr.ErrInvalidArgument) {
			t.Errorf("Estimate(%q, %v, %v): expected ErrInvalidArgument, got %v", tc.pw, tc.speed, tc.unit, err)
		}
	}
}

func TestEstimatorEstimateFor(t *testing.T) {
	e := NewEstimator(SpeedTable{SHA1: 1e9})
	got, err := e.EstimateFor("aaaaaa", SHA1, Seconds)
	if err != nil {
		t.Fatal(err)
	}
	if want := math.Pow(26, 6) / 1e9; math.Abs(got-want) > 1e-12 {
		t.Fatalf("got %v, want %v", got, want)
	}
	if _, err := e.EstimateFor("aaaaaa", Bcrypt, Seconds); !errors.Is(err, pwerr.ErrUnconfigured) {
		t.Fatalf("expected ErrUnconfigured, got %v", err)
	}
}

func TestParseTimeUnit(t *testing.T) {
	for in, want := range map[string]TimeUnit{"Days": Days, "day": Days, "SECONDS": Seconds, " year ": Years} {
		got, err := ParseTimeUnit(in)
		if err != nil || got != want {
			t.Errorf("ParseTimeUnit(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseTimeUnit("fortnights"); err == nil {
		t.Fatal("expected error")
	}
}
