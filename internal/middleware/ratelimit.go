package middleware

import (
	"net/http"
	"sync"
	"time"
)

// maxBuckets bounds limiter memory; idle full buckets are swept past this size.
const maxBuckets = 10000

// RateLimiter is a simple token-bucket limiter keyed by client IP. The key is
// the socket peer unless TrustForwardedFor was called.
type RateLimiter struct {
	rate    time.Duration
	burst   int
	buckets map[string]*bucket
	mu      sync.Mutex
	now     func() time.Time
	key     func(*http.Request) string
}

type bucket struct {
	tokens int
	last   time.Time
}

// NewIPRateLimit returns a limiter allowing burst tokens, refilled one per rate interval.
func NewIPRateLimit(rate time.Duration, burst int) *RateLimiter {
	return &RateLimiter{
		rate:    rate,
		burst:   burst,
		buckets: make(map[string]*bucket),
		now:     time.Now,
		key:     RemoteIP,
	}
}

// TrustForwardedFor keys buckets on the first X-Forwarded-For entry. Only
// enable it behind a proxy that overwrites the header.
func (l *RateLimiter) TrustForwardedFor() *RateLimiter {
	l.key = IPFromRequest
	return l
}

// Middleware enforces the limit and responds 429 when exceeded.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(l.key(r)) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) allow(key string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= maxBuckets {
			l.sweep(now)
		}
		l.buckets[key] = &bucket{tokens: l.burst - 1, last: now}
		return l.burst > 0
	}
	elapsed := now.Sub(b.last)
	if elapsed > 0 {
		refill := int(elapsed / l.rate)
		if refill > 0 {
			b.tokens = min(l.burst, b.tokens+refill)
			b.last = now
		}
	}
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// sweep drops buckets that would have refilled completely. Caller holds mu.
func (l *RateLimiter) sweep(now time.Time) {
	idle := l.rate * time.Duration(l.burst)
	for k, b := range l.buckets {
		if now.Sub(b.last) >= idle {
			delete(l.buckets, k)
		}
	}
}
