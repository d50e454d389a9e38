// Package bruteforce estimates how long an exhaustive search needs to reach a
// password, from its alphabet size, its length and an attack speed.
package bruteforce

import (
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/5w1tchy/passwarden/internal/charset"
	"github.com/5w1tchy/passwarden/internal/pwerr"
)

// Estimate returns alphabet^length / attemptsPerSecond expressed in unit.
// The combination count is exact; a result beyond float64 range is +Inf.
func Estimate(password string, attemptsPerSecond float64, unit TimeUnit) (float64, error) {
	if strings.TrimSpace(password) == "" {
		return 0, pwerr.Invalid("password", "must not be empty or whitespace")
	}
	if !(attemptsPerSecond > 0) {
		return 0, pwerr.Invalid("attemptsPerSecond", "must be greater than zero")
	}
	perUnit, ok := unit.Seconds()
	if !ok {
		return 0, pwerr.Invalid("unit", "is not a known time unit")
	}

	combos := Combinations(password)
	t := new(big.Float).SetInt(combos)
	t.Quo(t, big.NewFloat(attemptsPerSecond))
	t.Quo(t, big.NewFloat(perUnit))
	f, _ := t.Float64()
	return f, nil
}

// Combinations returns alphabet size raised to the rune length of password.
func Combinations(password string) *big.Int {
	size := big.NewInt(int64(charset.SizeOf(password)))
	n := big.NewInt(int64(utf8.RuneCountInString(password)))
	return new(big.Int).Exp(size, n, nil)
}

// Estimator resolves named hash algorithms through a SpeedTable.
type Estimator struct {
	speeds SpeedTable
}

func NewEstimator(speeds SpeedTable) *Estimator {
	return &Estimator{speeds: speeds}
}

// Speed returns the configured attempts per second for alg.
func (e *Estimator) Speed(alg HashAlgorithm) (float64, error) {
	v, ok := e.speeds[alg]
	if !ok {
		return 0, fmt.Errorf("%w: no cracking speed for %s", pwerr.ErrUnconfigured, alg)
	}
	return v, nil
}

// EstimateFor is Estimate with the attack speed looked up for alg.
func (e *Estimator) EstimateFor(password string, alg HashAlgorithm, unit TimeUnit) (float64, error) {
	speed, err := e.Speed(alg)
	if err != nil {
		return 0, err
	}
	return Estimate(password, speed, unit)
}
