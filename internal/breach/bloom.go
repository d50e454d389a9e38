package breach

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/5w1tchy/passwarden/internal/security/password"
	"github.com/bits-and-blooms/bloom/v3"
)

// BloomChecker answers from an in-memory bloom filter of breached SHA-1 hashes.
// A false positive only costs the generator one extra candidate.
type BloomChecker struct {
	filter *bloom.BloomFilter
}

// NewBloomChecker sizes a filter for n hashes at false positive rate fp.
func NewBloomChecker(n uint, fp float64) *BloomChecker {
	if n == 0 {
		n = 1
	}
	return &BloomChecker{filter: bloom.NewWithEstimates(n, fp)}
}

// AddHash inserts a 40 character hex SHA-1.
func (b *BloomChecker) AddHash(sha1Hex string) error {
	h, err := normalizeHash(sha1Hex)
	if err != nil {
		return err
	}
	b.filter.AddString(h)
	return nil
}

// Add inserts a plaintext password.
func (b *BloomChecker) Add(pw string) {
	b.filter.AddString(password.SHA1Hex(pw))
}

func (b *BloomChecker) IsCompromised(ctx context.Context, pw string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return b.filter.TestString(password.SHA1Hex(pw)), nil
}

// LoadBloom reads a corpus in ScanCorpus format. It returns the number of hashes added.
func LoadBloom(r io.Reader, n uint, fp float64) (*BloomChecker, int, error) {
	b := NewBloomChecker(n, fp)
	added := 0
	err := ScanCorpus(r, func(hash string, _ int) error {
		b.filter.AddString(hash)
		added++
		return nil
	})
	if err != nil {
		return nil, added, err
	}
	return b, added, nil
}

// ScanCorpus reads one hash per line, optionally as HASH:COUNT, and calls fn
// with the uppercase hash and its count (1 when absent). Blank lines, '#'
// comments and zero counts are skipped.
func ScanCorpus(r io.Reader, fn func(hash string, count int) error) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		h, cnt, hasCount := strings.Cut(text, ":")
		count := 1
		if hasCount {
			c, err := strconv.Atoi(strings.TrimSpace(cnt))
			if err != nil || c < 0 {
				return fmt.Errorf("line %d: bad count %q", line, cnt)
			}
			if c == 0 {
				continue
			}
			count = c
		}
		hash, err := normalizeHash(h)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := fn(hash, count); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return sc.Err()
}

func normalizeHash(sha1Hex string) (string, error) {
	h := strings.ToUpper(strings.TrimSpace(sha1Hex))
	if len(h) != 40 {
		return "", fmt.Errorf("hash %q: want 40 hex characters", sha1Hex)
	}
	if _, err := hex.DecodeString(h); err != nil {
		return "", fmt.Errorf("hash %q: %w", sha1Hex, err)
	}
	return h, nil
}

// LoadBloomFile is LoadBloom over a file on disk.
func LoadBloomFile(path string, n uint, fp float64) (*BloomChecker, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	return LoadBloom(f, n, fp)
}
