package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(cfg *Config) (*Limiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewLimiter(cfg)
	l.now = clock.Now
	return l, clock
}

func TestBucket_TakeAndRefill(t *testing.T) {
	start := time.Now()
	b := newBucket(10, 1.0, start)

	for i := 0; i < 10; i++ {
		assert.True(t, b.take(start), "request %d", i+1)
	}
	assert.False(t, b.take(start))

	later := start.Add(1100 * time.Millisecond)
	assert.True(t, b.take(later))
	assert.False(t, b.take(later))
}

func TestBucket_Status(t *testing.T) {
	now := time.Now()
	b := newBucket(10, 1.0, now)
	for i := 0; i < 5; i++ {
		b.take(now)
	}

	remaining, reset := b.status(now)
	assert.Equal(t, 5, remaining)
	assert.Equal(t, now.Add(5*time.Second), reset)
}

func TestLimiter_Allow(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("127.0.0.1", "/", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := l.Allow("127.0.0.1", "/", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))

	// Another client has its own bucket.
	allowed, _ = l.Allow("10.0.0.2", "/", "GET")
	assert.True(t, allowed)
}

func TestLimiter_Refill(t *testing.T) {
	l, clock := newTestLimiter(&Config{Enabled: true, DefaultLimit: 60, DefaultWindow: time.Minute})
	defer l.Stop()

	for i := 0; i < 60; i++ {
		l.Allow("c", "/", "GET")
	}
	allowed, _ := l.Allow("c", "/", "GET")
	require.False(t, allowed)

	clock.Advance(time.Second)
	allowed, _ = l.Allow("c", "/", "GET")
	assert.True(t, allowed)
}

func TestLimiter_WhitelistBlacklistDisabled(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer l.Stop()

	for i := 0; i < 20; i++ {
		allowed, info := l.Allow("127.0.0.1", "/", "GET")
		assert.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}

	allowed, _ := l.Allow("192.168.1.1", "/", "GET")
	assert.False(t, allowed)

	off, _ := newTestLimiter(&Config{Enabled: false})
	defer off.Stop()
	for i := 0; i < 20; i++ {
		allowed, _ := off.Allow("x", "/contact", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_ProtectedEndpoints(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: ProtectedEndpoints(0.1, 2),
	})
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, info := l.Allow("c", "/contact", "POST")
		require.True(t, allowed)
		assert.Equal(t, 6, info.Limit)
	}
	allowed, _ := l.Allow("c", "/contact", "POST")
	assert.False(t, allowed)

	// CV downloads share one bucket across languages.
	allowed, _ = l.Allow("c", "/cv/en", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("c", "/cv/fr/pdf", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("c", "/cv/ar", "GET")
	assert.False(t, allowed)

	allowed, info := l.Allow("c", "/", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("c", "/health", "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Hour})
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("c", "/", "GET"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowedCount)
}

func TestLimiter_Cleanup(t *testing.T) {
	l, clock := newTestLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer l.Stop()

	l.Allow("c", "/", "GET")
	clock.Advance(2 * time.Hour)
	l.cleanup()

	l.mu.Lock()
	assert.Empty(t, l.buckets)
	l.mu.Unlock()

	l.Stop()
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/contact", Method: "POST", Limit: 1},
		{Path: "/cv/", Method: "GET", Limit: 2},
		{Path: "/cv/special/", Method: "GET", Limit: 3},
	}

	assert.Equal(t, 1, MatchEndpoint("/contact", "POST", configs).Limit)
	assert.Nil(t, MatchEndpoint("/contact", "GET", configs))
	assert.Nil(t, MatchEndpoint("/contact/other", "POST", configs))
	assert.Equal(t, 2, MatchEndpoint("/cv/en", "GET", configs).Limit)
	assert.Equal(t, 3, MatchEndpoint("/cv/special/x", "GET", configs).Limit)
	assert.Equal(t, 0, MatchEndpoint("/health", "GET", configs).Limit)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORTFOLIO_RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("PORTFOLIO_RATE_LIMIT_WHITELIST", "1.1.1.1, ,2.2.2.2")

	cfg, err := LoadConfig(ProtectedEndpoints(1, 5))
	require.NoError(t, err)

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.True(t, cfg.Whitelist["1.1.1.1"])
	assert.Len(t, cfg.EndpointConfigs, 3)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("PORTFOLIO_RATE_LIMIT_ENABLED", "false")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("PORTFOLIO_RATE_LIMIT_DEFAULT_WINDOW", "often")

	_, err := LoadConfig(nil)
	assert.Error(t, err)
}
