package breach

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/5w1tchy/passwarden/internal/pwerr"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL    = "https://api.pwnedpasswords.com/range/"
	DefaultMaxRetries = 3
	defaultTimeout    = 5 * time.Second
	defaultRetryWait  = 200 * time.Millisecond

	// a padded range response is well under 64KiB
	maxRangeBody = 1 << 20
)

// PwnedClient queries a k-anonymity range API: only the first five hex
// characters of the SHA-1 leave the process.
type PwnedClient struct {
	baseURL    string
	http       *http.Client
	cache      RangeCache
	maxRetries uint64
	retryWait  time.Duration
	log        *zap.Logger
}

type Option func(*PwnedClient)

func WithBaseURL(u string) Option {
	return func(c *PwnedClient) {
		if u == "" {
			return
		}
		if !strings.HasSuffix(u, "/") {
			u += "/"
		}
		c.baseURL = u
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *PwnedClient) {
		if h != nil {
			c.http = h
		}
	}
}

func WithCache(rc RangeCache) Option { return func(c *PwnedClient) { c.cache = rc } }

func WithMaxRetries(n uint64) Option { return func(c *PwnedClient) { c.maxRetries = n } }

// WithRetryWait sets the initial backoff interval.
func WithRetryWait(d time.Duration) Option {
	return func(c *PwnedClient) {
		if d > 0 {
			c.retryWait = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *PwnedClient) {
		if l != nil {
			c.log = l
		}
	}
}

func NewPwnedClient(opts ...Option) *PwnedClient {
	c := &PwnedClient{
		baseURL:    DefaultBaseURL,
		http:       &http.Client{Timeout: defaultTimeout},
		maxRetries: DefaultMaxRetries,
		retryWait:  defaultRetryWait,
		log:        zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With(zap.String("component", "pwned"))
	return c
}

func (c *PwnedClient) IsCompromised(ctx context.Context, pw string) (bool, error) {
	n, err := c.Count(ctx, pw)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Count returns how many times pw appears in the corpus (0 when absent).
func (c *PwnedClient) Count(ctx context.Context, pw string) (int, error) {
	if pw == "" {
		return 0, pwerr.Invalid("password", "must not be empty")
	}
	prefix, suffix := split(pw)

	body, err := c.rangeBody(ctx, prefix)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", pwerr.ErrBreachLookup, err)
	}
	n, err := findSuffix(strings.NewReader(body), suffix)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", pwerr.ErrBreachLookup, err)
	}
	return n, nil
}

func (c *PwnedClient) rangeBody(ctx context.Context, prefix string) (string, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, prefix); ok {
			return body, nil
		}
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.retryWait
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, c.maxRetries), ctx)

	notify := func(err error, wait time.Duration) {
		c.log.Debug("range request failed; retrying",
			zap.String("prefix", prefix), zap.Duration("wait", wait), zap.Error(err))
	}
	body, err := backoff.RetryNotifyWithData(func() (string, error) {
		return c.fetch(ctx, prefix)
	}, policy, notify)
	if err != nil {
		return "", err
	}

	if c.cache != nil {
		c.cache.Set(ctx, prefix, body)
	}
	return body, nil
}

// errStatus marks a non-2xx range response.
type errStatus struct{ code int }

func (e errStatus) Error() string { return fmt.Sprintf("range api status %d", e.code) }

func (c *PwnedClient) fetch(ctx context.Context, prefix string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+prefix, nil)
	if err != nil {
		return "", backoff.Permanent(err)
	}
	req.Header.Set("Add-Padding", "true")
	req.Header.Set("User-Agent", "passwarden")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", backoff.Permanent(ctx.Err())
		}
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxRangeBody))
		err := errStatus{code: resp.StatusCode}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return "", err
		}
		return "", backoff.Permanent(err)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxRangeBody))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// findSuffix scans SUFFIX:COUNT lines. Padding entries carry a zero count.
func findSuffix(r io.Reader, suffix string) (int, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s, cnt, ok := strings.Cut(strings.TrimSpace(sc.Text()), ":")
		if !ok || !strings.EqualFold(s, suffix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(cnt))
		if err != nil {
			return 0, errors.New("malformed range line")
		}
		return n, nil
	}
	return 0, sc.Err()
}
