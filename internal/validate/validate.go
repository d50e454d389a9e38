// Package validate checks passwords against caller supplied policies:
// length and class requirements, a regular expression, and a stop list.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/5w1tchy/passwarden/internal/charset"
	"github.com/5w1tchy/passwarden/internal/pwerr"
)

// Rules is a password policy. Length bounds are inclusive and counted in runes.
type Rules struct {
	MinLength        int  `json:"min_length"`
	MaxLength        int  `json:"max_length"`
	RequireLowercase bool `json:"require_lowercase"`
	RequireUppercase bool `json:"require_uppercase"`
	RequireDigit     bool `json:"require_digit"`
	RequireSpecial   bool `json:"require_special"`
}

// ValidateRules reports whether password satisfies rules. MinLength must be
// strictly below MaxLength.
func ValidateRules(password string, rules Rules) (bool, error) {
	if rules.MinLength >= rules.MaxLength {
		return false, pwerr.Invalid("min_length", "must be less than max_length")
	}
	n := utf8.RuneCountInString(password)
	if n < rules.MinLength || n > rules.MaxLength {
		return false, nil
	}
	classes := charset.ClassesOf(password)
	switch {
	case rules.RequireLowercase && !classes.Has(charset.Lower):
		return false, nil
	case rules.RequireUppercase && !classes.Has(charset.Upper):
		return false, nil
	case rules.RequireDigit && !classes.Has(charset.Digit):
		return false, nil
	case rules.RequireSpecial && !classes.Has(charset.Special):
		return false, nil
	}
	return true, nil
}

// MatchesPattern reports whether expr matches anywhere in password.
func MatchesPattern(password, expr string) (bool, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return false, pwerr.Invalid("pattern", err.Error())
	}
	return re.MatchString(password), nil
}

// NotInStopList reports whether password contains none of the stop words.
// Empty entries are ignored.
func NotInStopList(password string, stopList []string) bool {
	for _, w := range stopList {
		if w != "" && strings.Contains(password, w) {
			return false
		}
	}
	return true
}

// RequireBounded trims s and checks its rune length against [min, max].
func RequireBounded(name, s string, min, max int) (string, error) {
	s = strings.TrimSpace(s)
	if n := utf8.RuneCountInString(s); n < min || n > max {
		return "", pwerr.Invalid(name, "must be between "+strconv.Itoa(min)+" and "+strconv.Itoa(max)+" characters")
	}
	return s, nil
}

// RequirePassword checks length without trimming; whitespace is significant in a password.
func RequirePassword(name, pw string, max int) error {
	if pw == "" {
		return pwerr.Invalid(name, "must not be empty")
	}
	if utf8.RuneCountInString(pw) > max {
		return pwerr.Invalid(name, "must be at most "+strconv.Itoa(max)+" characters")
	}
	return nil
}
