package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// keyedLimiter keeps one token bucket per key (client IP or login email)
// and evicts buckets idle longer than ttl on each call.
type keyedLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	ttl     time.Duration
	buckets map[string]*rlBucket
}

type rlBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newKeyedLimiter(limit rate.Limit, burst int, ttl time.Duration) *keyedLimiter {
	return &keyedLimiter{
		limit:   limit,
		burst:   burst,
		ttl:     ttl,
		buckets: make(map[string]*rlBucket),
	}
}

func (k *keyedLimiter) allow(key string) bool {
	now := time.Now()
	k.mu.Lock()
	defer k.mu.Unlock()

	b := k.buckets[key]
	if b == nil {
		b = &rlBucket{lim: rate.NewLimiter(k.limit, k.burst), lastSeen: now}
		k.buckets[key] = b
	}
	b.lastSeen = now

	for kk, bb := range k.buckets {
		if now.Sub(bb.lastSeen) > k.ttl {
			delete(k.buckets, kk)
		}
	}
	return b.lim.Allow()
}

// getClientIP trusts the first X-Forwarded-For hop when present; the
// backend is expected to sit behind a proxy in deployment.
func getClientIP(r *http.Request) string {
	xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
