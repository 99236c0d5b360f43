package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/strainmap/internal/server/response"
)

// RateLimiter is a fixed-window request budget per client address. It guards
// the routes that call the LLM.
type RateLimiter struct {
	mu       sync.RWMutex
	visitors map[string]*visitor
	limit    int           // requests per interval
	interval time.Duration // window length
	logger   *zerolog.Logger
}

type visitor struct {
	tokens    int
	lastReset time.Time
	mu        sync.Mutex
}

// NewRateLimiter creates a limiter allowing limit requests per minute per
// client. Stale visitors are dropped until ctx is done.
func NewRateLimiter(ctx context.Context, limit int, logger *zerolog.Logger) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		interval: time.Minute,
		logger:   logger,
	}
	go rl.cleanup(ctx, 5*time.Minute)
	return rl
}

func (rl *RateLimiter) cleanup(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.sweep(2 * every)
		}
	}
}

// sweep removes visitors idle for longer than maxIdle.
func (rl *RateLimiter) sweep(maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		v.mu.Lock()
		if time.Since(v.lastReset) > maxIdle {
			delete(rl.visitors, ip)
		}
		v.mu.Unlock()
	}
}

func (rl *RateLimiter) getVisitor(ip string) *visitor {
	rl.mu.RLock()
	v, exists := rl.visitors[ip]
	rl.mu.RUnlock()
	if exists {
		return v
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if v, exists = rl.visitors[ip]; !exists {
		v = &visitor{tokens: rl.limit, lastReset: time.Now()}
		rl.visitors[ip] = v
	}
	return v
}

func (rl *RateLimiter) allow(ip string) bool {
	ok, _ := rl.take(ip)
	return ok
}

// take spends one request from the client's budget. When the budget is
// empty it returns the time left until the window resets.
func (rl *RateLimiter) take(ip string) (bool, time.Duration) {
	v := rl.getVisitor(ip)

	v.mu.Lock()
	defer v.mu.Unlock()

	now := time.Now()
	if now.Sub(v.lastReset) > rl.interval {
		v.tokens = rl.limit
		v.lastReset = now
	}
	if v.tokens > 0 {
		v.tokens--
		return true, 0
	}
	return false, v.lastReset.Add(rl.interval).Sub(now)
}

// retryAfterSeconds rounds wait up to whole seconds, at least one.
func retryAfterSeconds(wait time.Duration) int {
	secs := int((wait + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

// clientIP returns the first X-Forwarded-For hop, else the remote host.
// The header is trusted as is, so the server is expected to sit behind a
// proxy that sets it; a directly exposed server lets clients pick their key.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// RateLimit middleware limits requests per client address.
func RateLimit(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			ok, wait := rl.take(ip)
			if !ok {
				retry := retryAfterSeconds(wait)
				rl.logger.Warn().
					Str("ip", ip).
					Str("path", r.URL.Path).
					Int("retry_after", retry).
					Msg("Rate limit exceeded")
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				response.RateLimited(w, "Too many LLM requests. Please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
