// Package charset classifies runes into the four password character classes and
// sizes the search space a password draws from.
package charset

import "unicode"

// Class is one of the four character buckets.
type Class uint8

const (
	Lower Class = 1 << iota
	Upper
	Digit
	Special
)

// Search-space contribution of each class when present at least once.
const (
	LowerSize   = 26
	UpperSize   = 26
	DigitSize   = 10
	SpecialSize = 32
)

// Alphabets used by the generators. Specials match the 30 symbols the generator draws from.
const (
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits    = "0123456789"
	Specials  = `!@#$%^&*()-_=+[]{};:'"\|,<.>/?`
)

func (c Class) String() string {
	switch c {
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	case Digit:
		return "digit"
	case Special:
		return "special"
	default:
		return "unknown"
	}
}

// Set is a bitmask of classes.
type Set uint8

func (s Set) Has(c Class) bool { return s&Set(c) != 0 }

// Classify returns the class of r, or 0 for a letter that has no case
// (it is a letter, so not special, but neither lower nor upper).
func Classify(r rune) Class {
	switch {
	case unicode.IsLower(r):
		return Lower
	case unicode.IsUpper(r):
		return Upper
	case unicode.IsDigit(r):
		return Digit
	case !IsAlphanumeric(r):
		return Special
	default:
		return 0
	}
}

// IsAlphanumeric reports whether r is a letter or a decimal digit.
func IsAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// ClassesOf returns every class present in password.
func ClassesOf(password string) Set {
	var s Set
	for _, r := range password {
		s |= Set(Classify(r))
	}
	return s
}

// Size returns the summed alphabet size of the classes in s.
func (s Set) Size() int {
	n := 0
	if s.Has(Lower) {
		n += LowerSize
	}
	if s.Has(Upper) {
		n += UpperSize
	}
	if s.Has(Digit) {
		n += DigitSize
	}
	if s.Has(Special) {
		n += SpecialSize
	}
	return n
}

// SizeOf is ClassesOf(password).Size(). Presence based: one digit counts the
// same 10 as ten digits.
func SizeOf(password string) int {
	return ClassesOf(password).Size()
}

// Count returns how many runes of password fall into class c.
func Count(password string, c Class) int {
	n := 0
	for _, r := range password {
		if Classify(r) == c {
			n++
		}
	}
	return n
}
