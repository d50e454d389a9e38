package password

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes passwords and checks a password against a stored hash.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) (bool, error)
}

// Argon2id produces PHC strings like `$argon2id$v=19$m=131072,t=3,p=1$...`.
type Argon2id struct {
	Params Params
}

func NewArgon2id(p Params) *Argon2id { return &Argon2id{Params: p} }

func (a *Argon2id) Hash(plain string) (string, error) {
	p := argon2id.Params{
		Memory:      a.Params.Memory,
		Iterations:  a.Params.Iterations,
		Parallelism: a.Params.Parallelism,
		SaltLength:  a.Params.SaltLength,
		KeyLength:   a.Params.KeyLength,
	}
	return argon2id.CreateHash(plain, &p)
}

// Verify compares through the salt and parameters embedded in phc, so hashing
// plain again and comparing strings would never match.
func (a *Argon2id) Verify(plain, phc string) (bool, error) {
	return argon2id.ComparePasswordAndHash(plain, phc)
}

// NeedsRehash reports whether phc was made with weaker parameters than a's.
func (a *Argon2id) NeedsRehash(phc string) bool {
	stored, _, _, err := argon2id.DecodeHash(phc)
	if err != nil {
		// Can't parse: treat as needs rehash.
		return true
	}
	return stored.Memory < a.Params.Memory ||
		stored.Iterations < a.Params.Iterations ||
		stored.Parallelism < a.Params.Parallelism ||
		stored.SaltLength < a.Params.SaltLength ||
		stored.KeyLength < a.Params.KeyLength
}

// Bcrypt hashes with golang.org/x/crypto/bcrypt at Cost (bcrypt.DefaultCost when 0).
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(plain string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b Bcrypt) Verify(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}

// SHA1 is the unsalted uppercase-hex SHA-1 used to index breach corpora.
// Deterministic, so Verify is Hash(plain) == hash.
type SHA1 struct{}

func (SHA1) Hash(plain string) (string, error) { return SHA1Hex(plain), nil }

func (SHA1) Verify(plain, hash string) (bool, error) {
	want := strings.ToUpper(strings.TrimSpace(hash))
	return subtle.ConstantTimeCompare([]byte(SHA1Hex(plain)), []byte(want)) == 1, nil
}

// SHA1Hex returns the 40 character uppercase hex SHA-1 of plain.
func SHA1Hex(plain string) string {
	sum := sha1.Sum([]byte(plain))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// New returns the hasher registered under name: "argon2id" (default), "bcrypt" or "sha1".
func New(name string, p Params) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "argon2id":
		return NewArgon2id(p), nil
	case "bcrypt":
		return Bcrypt{}, nil
	case "sha1":
		return SHA1{}, nil
	default:
		return nil, fmt.Errorf("unknown hasher %q", name)
	}
}
