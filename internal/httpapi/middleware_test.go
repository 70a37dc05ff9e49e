package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestIDHeader(t *testing.T) {
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requestIDFrom(r.Context()) == "" {
			t.Fatal("request id missing from context")
		}
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected X-Request-Id response header")
	}
}

func TestRequestIDPreservesInbound(t *testing.T) {
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "req-abc")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Request-Id"); got != "req-abc" {
		t.Fatalf("expected inbound id, got %q", got)
	}
}

func TestIPLimiter(t *testing.T) {
	l := &ipLimiter{buckets: make(map[string]*ipBucket), rps: 1, burst: 2}

	if !l.Allow("10.0.0.1") || !l.Allow("10.0.0.1") {
		t.Fatal("burst should admit the first two calls")
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("third immediate call should be limited")
	}
	if !l.Allow("10.0.0.2") {
		t.Fatal("buckets must be per IP")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:4242"
	if got := clientIP(req); got != "192.0.2.7" {
		t.Fatalf("unexpected ip: %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 192.0.2.7")
	if got := clientIP(req); got != "203.0.113.9" {
		t.Fatalf("expected first forwarded ip, got %q", got)
	}
}
