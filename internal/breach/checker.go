// Package breach decides whether a password appears in a corpus of leaked
// passwords. Every checker works on the uppercase SHA-1 of the password and
// never sends or stores the plaintext.
package breach

import (
	"context"

	"github.com/5w1tchy/passwarden/internal/security/password"
)

// Checker reports whether a password is known to be compromised.
type Checker interface {
	IsCompromised(ctx context.Context, pw string) (bool, error)
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context, pw string) (bool, error)

func (f CheckerFunc) IsCompromised(ctx context.Context, pw string) (bool, error) { return f(ctx, pw) }

// Chain asks each checker in order and stops at the first positive answer.
// The first error aborts the chain.
type Chain []Checker

func (c Chain) IsCompromised(ctx context.Context, pw string) (bool, error) {
	for _, chk := range c {
		if chk == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return false, err
		}
		hit, err := chk.IsCompromised(ctx, pw)
		if err != nil {
			return false, err
		}
		if hit {
			return true, nil
		}
	}
	return false, nil
}

// prefixLen is the k-anonymity range size used by the range API and the SQL mirror.
const prefixLen = 5

// split returns the 5 character range prefix and 35 character suffix of the password's SHA-1.
func split(pw string) (prefix, suffix string) {
	h := password.SHA1Hex(pw)
	return h[:prefixLen], h[prefixLen:]
}
