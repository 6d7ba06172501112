// Package ratelimit throttles wizard requests per client address.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	// Default applies to routes without a Rule.
	Default Rule
	Rules   []Rule
	// Allow lists clients that are never limited; Deny lists clients that always are.
	Allow map[string]bool
	Deny  map[string]bool
	// Buckets idle longer than IdleTTL are dropped every SweepInterval.
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

// Info describes the limit state after a request was counted.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type bucketKey struct {
	client string
	route  string
}

type bucket struct {
	tokens   *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per client and route.
type Limiter struct {
	cfg Config
	now func() time.Time

	mu      sync.Mutex
	buckets map[bucketKey]*bucket

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a Limiter. A nil cfg gets a permissive default of 1000
// requests per minute on every route.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = &Config{
			Enabled:       true,
			Default:       Rule{Limit: 1000, Window: time.Minute},
			IdleTTL:       time.Hour,
			SweepInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		cfg:     *cfg,
		now:     time.Now,
		buckets: make(map[bucketKey]*bucket),
	}
	if cfg.Enabled && cfg.IdleTTL > 0 && cfg.SweepInterval > 0 {
		l.stop = make(chan struct{})
		go l.sweepLoop(cfg.SweepInterval)
	}
	return l
}

// Allow counts one request from clientID to method and path.
func (l *Limiter) Allow(clientID, method, path string) (bool, Info) {
	if !l.cfg.Enabled || l.cfg.Allow[clientID] || exempt(method, path) {
		return true, Info{Allowed: true}
	}
	if l.cfg.Deny[clientID] {
		return false, Info{}
	}

	rule := ruleFor(method, path, l.cfg.Rules, l.cfg.Default)
	if rule.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	b := l.bucketFor(bucketKey{client: clientID, route: rule.route()}, rule, now)

	allowed := b.tokens.AllowN(now, 1)
	info := status(b.tokens, rule, now)
	info.Allowed = allowed
	if !allowed {
		info.RetryAfter = untilTokens(b.tokens, now, 1)
	}
	return allowed, info
}

func (l *Limiter) bucketFor(key bucketKey, rule Rule, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: rate.NewLimiter(rule.refill(), rule.burst())}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b
}

func status(tokens *rate.Limiter, rule Rule, now time.Time) Info {
	available := tokens.TokensAt(now)
	return Info{
		Limit:     rule.Limit,
		Remaining: int(math.Max(0, math.Floor(available))),
		ResetTime: now.Add(untilTokens(tokens, now, float64(tokens.Burst()))),
	}
}

// untilTokens returns how long until the bucket holds n tokens.
func untilTokens(tokens *rate.Limiter, now time.Time, n float64) time.Duration {
	missing := n - tokens.TokensAt(now)
	if missing <= 0 || tokens.Limit() <= 0 || tokens.Limit() == rate.Inf {
		return 0
	}
	return time.Duration(missing / float64(tokens.Limit()) * float64(time.Second))
}

// Len returns the number of live buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Limiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

// sweep drops buckets idle longer than the configured TTL.
func (l *Limiter) sweep() {
	cutoff := l.now().Add(-l.cfg.IdleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop ends the sweeper goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.stop != nil {
			close(l.stop)
		}
	})
}
