package visitor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hitpulse/internal/core/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNormalizeURL(t *testing.T) {
	cases := map[string]string{
		"example.com":              "https://example.com",
		"  example.com/path ":      "https://example.com/path",
		"http://example.com":       "http://example.com",
		"https://example.com/?q=1": "https://example.com/?q=1",
		"HTTPS://Example.com":      "HTTPS://Example.com",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeURL(in), in)
	}
}

func TestDwellRanges(t *testing.T) {
	lowest := func(int) int { return 0 }
	highest := func(n int) int { return n - 1 }

	assert.Zero(t, Dwell(domain.HitTypePageView, highest))

	assert.Equal(t, 1000*time.Millisecond, Dwell(domain.HitTypeUniqueVisitor, lowest))
	assert.Equal(t, 2999*time.Millisecond, Dwell(domain.HitTypeUniqueVisitor, highest))

	assert.Equal(t, 2000*time.Millisecond, Dwell(domain.HitTypeClick, lowest))
	assert.Equal(t, 6999*time.Millisecond, Dwell(domain.HitTypeClick, highest))
}

func TestHitSendsBrowserHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	e := NewExecutor(discardLogger())
	e.intn = func(int) int { return 0 }

	res, err := e.Hit(context.Background(), srv.URL, domain.HitTypePageView)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, srv.URL, res.URL)
	assert.Zero(t, res.Dwell)

	assert.Equal(t, userAgents[0], got.Get("User-Agent"))
	assert.Equal(t, referrers[0], got.Get("Referer"))
	assert.Equal(t, "1", got.Get("DNT"))
	assert.Equal(t, "1", got.Get("Upgrade-Insecure-Requests"))
	assert.Equal(t, "en-US,en;q=0.5", got.Get("Accept-Language"))
	assert.Contains(t, got.Get("Accept"), "text/html")
}

func TestHitDirectTrafficOmitsReferer(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer srv.Close()

	e := NewExecutor(discardLogger())
	e.intn = func(n int) int { return n - 1 }

	_, err := e.Hit(context.Background(), srv.URL, domain.HitTypePageView)
	require.NoError(t, err)
	assert.Empty(t, got.Values("Referer"))
	assert.Equal(t, userAgents[len(userAgents)-1], got.Get("User-Agent"))
}

func TestHitCountsNon2xxByDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	res, err := NewExecutor(discardLogger()).Hit(context.Background(), srv.URL, domain.HitTypePageView)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)

	_, err = NewExecutor(discardLogger(), WithRequire2xx(true)).Hit(context.Background(), srv.URL, domain.HitTypePageView)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestHitDwellsAfterResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	var (
		mu    sync.Mutex
		slept []time.Duration
	)
	e := NewExecutor(discardLogger())
	e.intn = func(int) int { return 500 }
	e.sleep = func(_ context.Context, d time.Duration) error {
		mu.Lock()
		slept = append(slept, d)
		mu.Unlock()
		return nil
	}

	for _, ht := range []domain.HitType{domain.HitTypePageView, domain.HitTypeUniqueVisitor, domain.HitTypeClick} {
		_, err := e.Hit(context.Background(), srv.URL, ht)
		require.NoError(t, err)
	}
	assert.True(t, slices.Equal([]time.Duration{1500 * time.Millisecond, 2500 * time.Millisecond}, slept), "got %v", slept)
}

func TestHitCountsWhenDwellIsCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	e := NewExecutor(discardLogger())
	e.sleep = func(ctx context.Context, _ time.Duration) error {
		cancel()
		<-ctx.Done()
		return ctx.Err()
	}

	res, err := e.Hit(ctx, srv.URL, domain.HitTypeClick)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Positive(t, res.Dwell)
}

func TestHitTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	e := NewExecutor(discardLogger(), WithTimeout(50*time.Millisecond))
	_, err := e.Hit(context.Background(), srv.URL, domain.HitTypePageView)
	assert.ErrorIs(t, err, ErrHitTimeout)
}

func TestHitConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	_, err := NewExecutor(discardLogger()).Hit(context.Background(), addr, domain.HitTypePageView)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrHitTimeout))
	assert.False(t, errors.Is(err, ErrHostNotFound))
}

func TestClassify(t *testing.T) {
	ctx := context.Background()

	err := classify(ctx, "https://nope.invalid", &net.DNSError{Err: "no such host", Name: "nope.invalid", IsNotFound: true})
	assert.ErrorIs(t, err, ErrHostNotFound)

	err = classify(ctx, "https://slow.example", context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrHitTimeout)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err = classify(cancelled, "https://x.example", errors.New("boom"))
	assert.ErrorIs(t, err, context.Canceled)
}
