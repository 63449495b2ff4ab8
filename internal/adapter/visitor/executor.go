// Package visitor performs single simulated visits against target websites.
package visitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"strings"
	"time"

	"hitpulse/internal/core/domain"
	"hitpulse/internal/core/port"
)

// DefaultTimeout bounds one outbound request including the body drain.
const DefaultTimeout = 10 * time.Second

// maxBody caps how much of a response body is read before closing it.
const maxBody = 1 << 20

var (
	// ErrHitTimeout is returned when the request exceeds the timeout.
	ErrHitTimeout = errors.New("visit timed out")
	// ErrHostNotFound is returned when the target host does not resolve.
	ErrHostNotFound = errors.New("host not found")
	// ErrUnexpectedStatus is returned for non-2xx responses when the
	// executor is configured to require success codes.
	ErrUnexpectedStatus = errors.New("unexpected status code")
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:89.0) Gecko/20100101 Firefox/89.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.1.1 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Edge/91.0.864.59",
}

// An empty referrer simulates direct traffic and omits the header.
var referrers = []string{
	"https://www.google.com/",
	"https://www.bing.com/",
	"https://duckduckgo.com/",
	"https://www.yahoo.com/",
	"https://www.facebook.com/",
	"https://twitter.com/",
	"",
}

// Executor implements port.HitExecutor with a plain HTTP GET dressed up as
// a desktop browser visit.
type Executor struct {
	client     *http.Client
	logger     *slog.Logger
	timeout    time.Duration
	require2xx bool

	// intn and sleep are swapped in tests.
	intn  func(n int) int
	sleep func(ctx context.Context, d time.Duration) error
}

// Option configures an Executor.
type Option func(*Executor)

// WithHTTPClient replaces the HTTP client used for visits.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Executor) { e.client = c }
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithRequire2xx makes non-2xx responses count as failed hits.
func WithRequire2xx(on bool) Option {
	return func(e *Executor) { e.require2xx = on }
}

// NewExecutor builds an Executor. Without options it behaves like a
// browser that counts any response as a visit.
func NewExecutor(logger *slog.Logger, opts ...Option) *Executor {
	e := &Executor{
		client:  &http.Client{},
		logger:  logger,
		timeout: DefaultTimeout,
		intn:    rand.IntN,
		sleep:   sleep,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Hit issues one GET against website and then dwells according to
// hitType. Any received response counts as a hit unless the executor
// requires 2xx codes. Timeouts, DNS failures and transport errors are
// returned as errors; nothing is retried. Once a response has arrived the
// hit is reported even if ctx is cancelled during the dwell.
func (e *Executor) Hit(ctx context.Context, website string, hitType domain.HitType) (*port.HitResult, error) {
	target := NormalizeURL(website)

	reqCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", target, err)
	}
	e.decorate(req)

	started := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, classify(ctx, target, err)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
	_ = resp.Body.Close()

	res := &port.HitResult{
		URL:        target,
		StatusCode: resp.StatusCode,
		Latency:    time.Since(started),
	}
	e.logger.Debug("visit completed",
		slog.String("url", target),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", res.Latency),
	)
	if e.require2xx && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return res, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, target)
	}

	// The request already reached the site, so a dwell cut short by
	// cancellation still counts as a hit.
	res.Dwell = Dwell(hitType, e.intn)
	if res.Dwell > 0 {
		if err = e.sleep(ctx, res.Dwell); err != nil {
			e.logger.Debug("dwell interrupted", slog.String("url", target), slog.Any("error", err))
		}
	}
	return res, nil
}

func (e *Executor) decorate(req *http.Request) {
	h := req.Header
	h.Set("User-Agent", userAgents[e.intn(len(userAgents))])
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	h.Set("Accept-Language", "en-US,en;q=0.5")
	h.Set("Accept-Encoding", "gzip, deflate, br")
	h.Set("DNT", "1")
	h.Set("Connection", "keep-alive")
	h.Set("Upgrade-Insecure-Requests", "1")
	if ref := referrers[e.intn(len(referrers))]; ref != "" {
		h.Set("Referer", ref)
	}
}

// NormalizeURL prefixes https:// when website carries no http(s) scheme.
func NormalizeURL(website string) string {
	website = strings.TrimSpace(website)
	lower := strings.ToLower(website)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return website
	}
	return "https://" + website
}

// Dwell returns the simulated time spent on the page after the response:
// nothing for page views, [1s,3s) for unique visitors and [2s,7s) for
// clicks. intn must return a value in [0,n).
func Dwell(hitType domain.HitType, intn func(n int) int) time.Duration {
	switch hitType {
	case domain.HitTypeUniqueVisitor:
		return time.Duration(1000+intn(2000)) * time.Millisecond
	case domain.HitTypeClick:
		return time.Duration(2000+intn(5000)) * time.Millisecond
	default:
		return 0
	}
}

func classify(ctx context.Context, target string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return fmt.Errorf("%w: %s", ErrHostNotFound, target)
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %s", ErrHitTimeout, target)
	}
	return fmt.Errorf("request %s: %w", target, err)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
