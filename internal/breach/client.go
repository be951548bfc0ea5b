// Package breach queries the external k-anonymity breach-lookup service.
// Only the 5-character fingerprint prefix is ever transmitted; the service
// answers with every known suffix sharing that prefix and the client matches
// locally.
package breach

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// clientIdentifier is sent as the User-Agent on every lookup request, as the
// upstream requires callers to identify themselves.
const clientIdentifier = "securascan-security-api"

// ErrUnavailable is returned when the circuit breaker is open and no request
// was attempted. Callers treat it like any other lookup failure.
var ErrUnavailable = errors.New("breach lookup upstream unavailable")

// Result is the outcome of a suffix match against the range response.
type Result struct {
	Found bool
	Count int
}

// ClientConfig configures the HTTP client for range lookups.
type ClientConfig struct {
	BaseURL             string
	Timeout             time.Duration
	MaxIdleConnsPerHost int
	Breaker             CircuitBreakerConfig
}

// Client performs range lookups against the breach service.
type Client struct {
	baseURL string
	client  *http.Client
	breaker *CircuitBreaker
}

// NewClient creates a configured lookup client. The timeout bounds the whole
// call; expiry is reported as an ordinary error so callers can degrade.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Breaker.FailThreshold <= 0 {
		cfg.Breaker.FailThreshold = 3
	}
	if cfg.Breaker.OpenDuration <= 0 {
		cfg.Breaker.OpenDuration = 30 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		breaker: NewCircuitBreaker(cfg.Breaker),
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse // Do not follow redirects
			},
		},
	}
}

// Lookup fetches the range for prefix and scans it for suffix. A single
// attempt is made; any transport error, timeout, non-2xx status, or
// malformed matching line is returned as an error and counted against the
// circuit breaker.
func (c *Client) Lookup(ctx context.Context, prefix, suffix string) (Result, error) {
	if !c.breaker.Allow() {
		return Result{}, ErrUnavailable
	}

	res, err := c.lookupOnce(ctx, prefix, suffix)
	if err != nil {
		c.breaker.RecordFailure()
		return Result{}, err
	}

	c.breaker.RecordSuccess()
	return res, nil
}

func (c *Client) lookupOnce(ctx context.Context, prefix, suffix string) (Result, error) {
	url := fmt.Sprintf("%s/range/%s", c.baseURL, prefix)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", clientIdentifier)
	req.Header.Set("Accept", "text/plain")

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("range lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("range lookup: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}

	return matchSuffix(string(body), suffix)
}

// matchSuffix scans the newline-delimited SUFFIX:COUNT response for an exact,
// case-sensitive suffix match.
func matchSuffix(body, suffix string) (Result, error) {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		candidate, countStr, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if candidate != suffix {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(countStr))
		if err != nil {
			return Result{}, fmt.Errorf("malformed count %q for matching suffix: %w", countStr, err)
		}
		return Result{Found: true, Count: count}, nil
	}
	return Result{}, nil
}
