package server

import (
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestKeyedLimiterBurst(t *testing.T) {
	kl := newKeyedLimiter(rate.Limit(2), 2, time.Minute)
	if !kl.allow("a") {
		t.Fatal("first call should pass")
	}
	if !kl.allow("a") {
		t.Fatal("second call should pass")
	}
	if kl.allow("a") {
		t.Fatal("third call should be rate limited")
	}
	// independent key has its own bucket
	if !kl.allow("b") {
		t.Fatal("fresh key should pass")
	}
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	if got := getClientIP(r); got != "10.0.0.1" {
		t.Fatalf("getClientIP = %q, want 10.0.0.1", got)
	}
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := getClientIP(r); got != "203.0.113.7" {
		t.Fatalf("getClientIP = %q, want forwarded hop", got)
	}
}
