package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestLimiter(t *testing.T, limit int) *RateLimiter {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	logger := zerolog.Nop()
	return NewRateLimiter(ctx, limit, &logger)
}

func TestNewRateLimiter(t *testing.T) {
	rl := newTestLimiter(t, 100)

	if rl.visitors == nil {
		t.Error("visitors map not initialized")
	}
	if rl.limit != 100 {
		t.Errorf("expected limit=100, got %d", rl.limit)
	}
	if rl.interval != time.Minute {
		t.Errorf("expected interval=1m, got %v", rl.interval)
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		requests int
		allowed  int
	}{
		{"within limit", 10, 5, 5},
		{"at limit", 10, 10, 10},
		{"exceeds limit", 10, 15, 10},
		{"zero limit", 0, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := newTestLimiter(t, tt.limit)
			allowed := 0
			for i := 0; i < tt.requests; i++ {
				if rl.allow("10.0.0.1") {
					allowed++
				}
			}
			if allowed != tt.allowed {
				t.Errorf("expected %d allowed, got %d", tt.allowed, allowed)
			}
		})
	}
}

func TestRateLimiter_MultipleIPs(t *testing.T) {
	rl := newTestLimiter(t, 1)
	if !rl.allow("10.0.0.1") || !rl.allow("10.0.0.2") {
		t.Error("each address should get its own budget")
	}
	if rl.allow("10.0.0.1") {
		t.Error("second request from 10.0.0.1 should be limited")
	}
}

func TestRateLimiter_TokenRefresh(t *testing.T) {
	rl := newTestLimiter(t, 1)
	rl.interval = 20 * time.Millisecond

	if !rl.allow("10.0.0.1") {
		t.Fatal("first request should pass")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("second request should be limited")
	}
	time.Sleep(40 * time.Millisecond)
	if !rl.allow("10.0.0.1") {
		t.Error("budget should refresh after the interval")
	}
}

func TestRateLimiter_Sweep(t *testing.T) {
	rl := newTestLimiter(t, 5)
	rl.allow("10.0.0.1")
	rl.visitors["10.0.0.1"].lastReset = time.Now().Add(-time.Hour)
	rl.allow("10.0.0.2")

	rl.sweep(10 * time.Minute)

	if _, ok := rl.visitors["10.0.0.1"]; ok {
		t.Error("idle visitor should be removed")
	}
	if _, ok := rl.visitors["10.0.0.2"]; !ok {
		t.Error("active visitor should be kept")
	}
}

func TestRateLimiter_Concurrent(t *testing.T) {
	rl := newTestLimiter(t, 50)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.allow("10.0.0.1") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 50 {
		t.Errorf("expected 50 allowed, got %d", allowed)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name      string
		remote    string
		forwarded string
		want      string
	}{
		{"remote host", "192.168.1.1:12345", "", "192.168.1.1"},
		{"forwarded chain", "10.0.0.1:80", "203.0.113.7, 10.0.0.1", "203.0.113.7"},
		{"no port", "192.168.1.1", "", "192.168.1.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/import", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestRateLimit_Middleware(t *testing.T) {
	rl := newTestLimiter(t, 2)
	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/research", nil)
		req.RemoteAddr = "192.168.1.1:1234"
		last = httptest.NewRecorder()
		handler.ServeHTTP(last, req)
		codes = append(codes, last.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("unexpected status sequence %v", codes)
	}
	if !strings.Contains(last.Body.String(), `"RATE_LIMITED"`) {
		t.Errorf("expected rate limit envelope, got %s", last.Body.String())
	}
	retry, err := strconv.Atoi(last.Header().Get("Retry-After"))
	if err != nil {
		t.Fatalf("Retry-After %q is not a number of seconds", last.Header().Get("Retry-After"))
	}
	if retry < 1 || retry > 60 {
		t.Errorf("Retry-After = %d, want 1..60", retry)
	}
}

func TestRateLimiter_Take(t *testing.T) {
	rl := newTestLimiter(t, 1)

	ok, wait := rl.take("10.0.0.1")
	if !ok || wait != 0 {
		t.Fatalf("first request: ok=%v wait=%v", ok, wait)
	}
	ok, wait = rl.take("10.0.0.1")
	if ok {
		t.Fatal("second request should be limited")
	}
	if wait <= 0 || wait > time.Minute {
		t.Errorf("wait = %v, want within the one minute window", wait)
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	tests := []struct {
		wait time.Duration
		want int
	}{
		{0, 1},
		{-time.Second, 1},
		{300 * time.Millisecond, 1},
		{time.Second, 1},
		{1500 * time.Millisecond, 2},
		{59 * time.Second, 59},
	}
	for _, tt := range tests {
		if got := retryAfterSeconds(tt.wait); got != tt.want {
			t.Errorf("retryAfterSeconds(%v) = %d, want %d", tt.wait, got, tt.want)
		}
	}
}
