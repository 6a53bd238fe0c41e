package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bhel/hrm/internal/model"
)

func TestRateLimiterAuthBudget(t *testing.T) {
	// The router grants auth endpoints 20 attempts per minute per client.
	rl := newRateLimiter(20, time.Minute)

	for i := 0; i < 20; i++ {
		if !rl.allow("203.0.113.7") {
			t.Fatalf("attempt %d denied inside the budget", i+1)
		}
	}
	if rl.allow("203.0.113.7") {
		t.Fatal("attempt 21 allowed over the budget")
	}
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	rl := newRateLimiter(1, time.Minute)

	if !rl.allow("203.0.113.7") {
		t.Fatal("first client denied")
	}
	if !rl.allow("198.51.100.9") {
		t.Fatal("second client throttled by the first client's attempts")
	}
	if rl.allow("203.0.113.7") {
		t.Fatal("first client not throttled on its second attempt")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := newRateLimiter(2, 40*time.Millisecond)

	rl.allow("203.0.113.7")
	rl.allow("203.0.113.7")
	if rl.allow("203.0.113.7") {
		t.Fatal("attempt inside the window not throttled")
	}

	time.Sleep(50 * time.Millisecond)
	if !rl.allow("203.0.113.7") {
		t.Fatal("attempt after the window still throttled")
	}
}

func TestRateLimitThrottledLoginResponse(t *testing.T) {
	handler := RateLimit(1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	login := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.Header.Set("X-Real-IP", "203.0.113.7")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	if rec := login(); rec.Code != http.StatusOK {
		t.Fatalf("first login = %d, want 200", rec.Code)
	}

	rec := login()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("throttled login = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "60" {
		t.Fatalf("Retry-After = %q, want 60 for a one-minute window", got)
	}

	var resp model.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding throttle response: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != "RATE_LIMITED" {
		t.Fatalf("throttle body = %s, want a RATE_LIMITED error", rec.Body.String())
	}
}

func TestRateLimitPrefersProxyHeader(t *testing.T) {
	handler := RateLimit(1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Same client identity behind the proxy, different socket addresses: the
	// header must win over RemoteAddr.
	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", nil)
		req.RemoteAddr = fmt.Sprintf("10.0.0.%d:5000", i+1)
		req.Header.Set("X-Real-IP", "203.0.113.7")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("request %d = %d, want %d", i+1, rec.Code, want)
		}
	}
}
