package hibp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MrEthical07/goPassCheck/internal"
)

const (
	defaultBaseURL        = "https://api.pwnedpasswords.com"
	defaultRequestTimeout = 10 * time.Second
	defaultUserAgent      = "goPassCheck"

	// maxRangeBody bounds how much of a range response is read. Real
	// responses are a few hundred lines; the cap protects against a
	// misbehaving or hostile endpoint.
	maxRangeBody = 1 << 22
)

var (
	// ErrInvalidDigest is an exported constant or variable used by the password feedback engine.
	ErrInvalidDigest = errors.New("digest must be 40 uppercase hex characters")
	// ErrInvalidPrefix is an exported constant or variable used by the password feedback engine.
	ErrInvalidPrefix = errors.New("range prefix must be 5 uppercase hex characters")
	// ErrRangeStatus is an exported constant or variable used by the password feedback engine.
	ErrRangeStatus = errors.New("unexpected range response status")
)

// Config defines a public type used by goPassCheck APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	UserAgent      string
	AddPadding     bool
	// HTTPClient overrides the transport; nil uses a client with
	// RequestTimeout applied. Tests substitute a deterministic fake here.
	HTTPClient *http.Client
}

// Client issues k-anonymity range queries against one breach service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	addPadding bool
}

// Result is the outcome of one completed range lookup for a digest. Found
// with Count 0 never occurs; padded zero-count lines report as not found.
type Result struct {
	Found bool
	Count int
}

// NewClient describes the newclient operation and its observable behavior.
//
// NewClient may return an error when input validation, dependency calls, or security checks fail.
// NewClient does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.New("base url must be absolute")
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		addPadding: cfg.AddPadding,
	}, nil
}

// Lookup splits digest into its range-query key, fetches the prefix range,
// and scans it for the suffix. The digest is uppercase-normalized before the
// split so suffix matching stays case-sensitive against a known casing.
func (c *Client) Lookup(ctx context.Context, digest string) (Result, error) {
	prefix, suffix, err := internal.SplitDigest(strings.ToUpper(digest))
	if err != nil {
		return Result{}, ErrInvalidDigest
	}

	body, err := c.FetchRange(ctx, prefix)
	if err != nil {
		return Result{}, err
	}

	count, found := MatchSuffix(body, suffix)
	return Result{Found: found, Count: count}, nil
}

// FetchRange performs the wire request for one 5-character prefix and returns
// the raw response body. Only the prefix travels on the wire.
func (c *Client) FetchRange(ctx context.Context, prefix string) (string, error) {
	if !internal.ValidPrefix(prefix) {
		return "", ErrInvalidPrefix
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/range/"+prefix, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.addPadding {
		req.Header.Set("Add-Padding", "true")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrRangeStatus, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRangeBody))
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// MatchSuffix scans a range response body for an exact, case-sensitive suffix
// match and returns its sanitized occurrence count. Lines are not guaranteed
// sorted; the scan stops at the first match. Found with a zero count reports
// as not found, which also makes padding lines invisible to callers.
func MatchSuffix(body, suffix string) (count int, found bool) {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		candidate, rawCount, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if candidate != suffix {
			continue
		}

		n := sanitizeCount(rawCount)
		if n <= 0 {
			return 0, false
		}
		return n, true
	}

	return 0, false
}

// sanitizeCount strips non-digit noise before conversion; anything still
// unparsable counts as 0 rather than failing the whole lookup.
func sanitizeCount(raw string) int {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			b.WriteByte(raw[i])
		}
	}

	digits := b.String()
	if digits == "" {
		return 0
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}
