package api

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// throttle holds one token bucket per caller IP. Every answered
// question costs an LLM round trip, so buckets are sized in questions
// rather than generic requests. Stale buckets are swept while the lock
// is already held; no background goroutine.
type throttle struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	refill     rate.Limit
	burst      int
	sweepEvery time.Duration
	staleAfter time.Duration
	lastSweep  time.Time
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// newThrottle creates a throttle refilling perSecond tokens up to
// burst. A bucket idle past staleAfter is dropped on the next sweep.
func newThrottle(perSecond float64, burst int) *throttle {
	return &throttle{
		buckets:    make(map[string]*bucket),
		refill:     rate.Limit(perSecond),
		burst:      burst,
		sweepEvery: 5 * time.Minute,
		staleAfter: 10 * time.Minute,
		lastSweep:  time.Now(),
	}
}

// admit takes one token from ip's bucket, creating the bucket on first
// contact. Returns false when the bucket is empty.
func (t *throttle) admit(ip string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.sweep(now)

	b, ok := t.buckets[ip]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(t.refill, t.burst)}
		t.buckets[ip] = b
	}
	b.lastSeen = now
	return b.lim.Allow()
}

// sweep drops buckets idle past staleAfter, at most once per
// sweepEvery. Caller holds t.mu.
func (t *throttle) sweep(now time.Time) {
	if now.Sub(t.lastSweep) < t.sweepEvery {
		return
	}
	for ip, b := range t.buckets {
		if now.Sub(b.lastSeen) > t.staleAfter {
			delete(t.buckets, ip)
		}
	}
	t.lastSweep = now
}

// throttleMiddleware rejects callers whose bucket is empty with 429 and
// a Retry-After hint matching the one-token-per-second refill.
func throttleMiddleware(t *throttle, trustProxy bool, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := callerIP(r, trustProxy)
			if !t.admit(ip) {
				logger.Warn("throttled", "ip", ip, "method", r.Method, "path", r.URL.Path)
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// callerIP resolves the address keying the throttle. Proxy headers
// (X-Real-IP, then the first X-Forwarded-For hop) count only when
// trustProxy is set and only when they parse as an IP; everything else
// falls back to the socket address with the port stripped.
func callerIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		for _, header := range []string{"X-Real-IP", "X-Forwarded-For"} {
			v := r.Header.Get(header)
			if v == "" {
				continue
			}
			if first, _, ok := strings.Cut(v, ","); ok {
				v = first
			}
			if ip := net.ParseIP(strings.TrimSpace(v)); ip != nil {
				return ip.String()
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
