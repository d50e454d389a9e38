package bruteforce

import (
	"fmt"
	"strings"

	"github.com/5w1tchy/passwarden/internal/pwerr"
)

// TimeUnit selects the unit an estimate is reported in.
type TimeUnit int

const (
	Years TimeUnit = iota
	Months
	Weeks
	Days
	Hours
	Minutes
	Seconds
)

var units = [...]struct {
	name    string
	seconds float64
}{
	Years:   {"years", 31557600},
	Months:  {"months", 2629743},
	Weeks:   {"weeks", 604800},
	Days:    {"days", 86400},
	Hours:   {"hours", 3600},
	Minutes: {"minutes", 60},
	Seconds: {"seconds", 1},
}

func (u TimeUnit) valid() bool { return u >= Years && u <= Seconds }

func (u TimeUnit) String() string {
	if !u.valid() {
		return fmt.Sprintf("TimeUnit(%d)", int(u))
	}
	return units[u].name
}

// Seconds returns how many seconds one u lasts.
func (u TimeUnit) Seconds() (float64, bool) {
	if !u.valid() {
		return 0, false
	}
	return units[u].seconds, true
}

// ParseTimeUnit accepts the unit name in any case, singular or plural.
func ParseTimeUnit(s string) (TimeUnit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, u := range units {
		if s == u.name || s+"s" == u.name {
			return TimeUnit(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown time unit %q", pwerr.ErrInvalidArgument, s)
}

// HashAlgorithm names a hash whose cracking speed is configured in a SpeedTable.
type HashAlgorithm string

const (
	MD5     HashAlgorithm = "MD5"
	SHA1    HashAlgorithm = "SHA1"
	SHA2224 HashAlgorithm = "SHA2224"
	SHA3224 HashAlgorithm = "SHA3224"
	Bcrypt  HashAlgorithm = "bcrypt"
	Scrypt  HashAlgorithm = "scrypt"
)

// Algorithms lists the known algorithms in their canonical spelling.
var Algorithms = []HashAlgorithm{MD5, SHA1, SHA2224, SHA3224, Bcrypt, Scrypt}

// ParseHashAlgorithm matches s case-insensitively, ignoring '-' and '_'.
func ParseHashAlgorithm(s string) (HashAlgorithm, error) {
	norm := func(v string) string {
		return strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(v)))
	}
	want := norm(s)
	for _, a := range Algorithms {
		if norm(string(a)) == want {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: unknown hash algorithm %q", pwerr.ErrInvalidArgument, s)
}
