package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(limit int, window time.Duration) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(limit, window)
	rl.now = clock.Now
	return rl, clock
}

func TestRateLimiterAllow(t *testing.T) {
	rl, _ := newTestLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		if !rl.Allow("test-ip") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("test-ip") {
		t.Error("4th request should be rate-limited")
	}
	if !rl.Allow("other-ip") {
		t.Error("different key should be allowed")
	}
}

func TestRateLimiterFixedWindow(t *testing.T) {
	rl, clock := newTestLimiter(3, time.Hour)

	rl.Allow("k")
	clock.Advance(50 * time.Minute)
	rl.Allow("k")
	rl.Allow("k")
	if rl.Allow("k") {
		t.Fatal("limit reached inside the window")
	}

	// The window opened by the first request closes at +60m regardless of
	// when the later requests arrived.
	clock.Advance(10 * time.Minute)
	if rl.Allow("k") {
		t.Error("request exactly at reset time is still inside the window")
	}
	clock.Advance(time.Second)
	if !rl.Allow("k") {
		t.Error("first request after the window should open a new one")
	}
	rl.Allow("k")
	rl.Allow("k")
	if rl.Allow("k") {
		t.Error("new window should enforce the limit again")
	}
}

func TestRateLimiterRejectionsDoNotExtendWindow(t *testing.T) {
	rl, clock := newTestLimiter(1, time.Hour)

	rl.Allow("k")
	for i := 0; i < 5; i++ {
		clock.Advance(10 * time.Minute)
		rl.Allow("k")
	}
	clock.Advance(11 * time.Minute)
	if !rl.Allow("k") {
		t.Error("window should have reset an hour after it opened")
	}
}

func TestRateLimiterSweep(t *testing.T) {
	rl, clock := newTestLimiter(5, time.Hour)

	rl.Allow("ip1")
	rl.Allow("ip2")
	clock.Advance(2 * time.Hour)
	rl.Allow("ip3")

	rl.mu.Lock()
	_, stale := rl.clients["ip1"]
	count := len(rl.clients)
	rl.mu.Unlock()

	if stale || count != 1 {
		t.Errorf("expired windows should be swept, got %d entries", count)
	}
}

func TestRateLimiterConcurrent(t *testing.T) {
	rl, _ := newTestLimiter(3, time.Hour)

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow("shared") {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if admitted != 3 {
		t.Errorf("admitted %d requests, want 3", admitted)
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl, _ := newTestLimiter(2, time.Hour)

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/revalidate", nil)
		req.Header.Set("X-Forwarded-For", "192.168.1.1")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	for i := 0; i < 2; i++ {
		if code := send(); code != http.StatusOK {
			t.Fatalf("request %d: got status %d, want 200", i+1, code)
		}
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Errorf("got status %d, want 429", code)
	}
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		xri        string
		remoteAddr string
		want       string
	}{
		{
			name:       "x-forwarded-for single",
			xff:        "10.0.0.1",
			remoteAddr: "192.168.1.1:1234",
			want:       "10.0.0.1",
		},
		{
			name:       "x-forwarded-for multiple",
			xff:        "10.0.0.1, 172.16.0.1, 192.168.1.1",
			remoteAddr: "192.168.1.1:1234",
			want:       "10.0.0.1",
		},
		{
			name: "x-forwarded-for wins over x-real-ip",
			xff:  "10.0.0.1",
			xri:  "10.0.0.2",
			want: "10.0.0.1",
		},
		{
			name:       "x-real-ip",
			xri:        "10.0.0.2",
			remoteAddr: "192.168.1.1:1234",
			want:       "10.0.0.2",
		},
		{
			name:       "no headers share one bucket",
			remoteAddr: "192.168.1.1:1234",
			want:       "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := ClientKey(req); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
