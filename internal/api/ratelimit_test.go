package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottleAdmit(t *testing.T) {
	th := newThrottle(0, 2)

	assert.True(t, th.admit("10.0.0.1"))
	assert.True(t, th.admit("10.0.0.1"))
	assert.False(t, th.admit("10.0.0.1"), "third request should exhaust a burst of 2")

	assert.True(t, th.admit("10.0.0.2"), "a different IP gets its own bucket")
}

func TestThrottleSweep(t *testing.T) {
	th := newThrottle(1, 1)
	require.True(t, th.admit("10.0.0.1"))
	require.True(t, th.admit("10.0.0.2"))

	// Age one bucket past the stale threshold and force a sweep window.
	th.mu.Lock()
	th.buckets["10.0.0.1"].lastSeen = time.Now().Add(-th.staleAfter - time.Minute)
	th.lastSweep = time.Now().Add(-th.sweepEvery - time.Minute)
	th.mu.Unlock()

	th.admit("10.0.0.3")

	th.mu.Lock()
	defer th.mu.Unlock()
	assert.NotContains(t, th.buckets, "10.0.0.1", "stale bucket should be swept")
	assert.Contains(t, th.buckets, "10.0.0.2", "recent bucket should survive the sweep")
	assert.Contains(t, th.buckets, "10.0.0.3")
}

func TestCallerIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{
			name:       "remote addr with port",
			remoteAddr: "192.168.1.5:54321",
			want:       "192.168.1.5",
		},
		{
			name:       "proxy headers ignored without trust",
			remoteAddr: "192.168.1.5:54321",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "192.168.1.5",
		},
		{
			name:       "x-real-ip wins when trusted",
			remoteAddr: "192.168.1.5:54321",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9", "X-Forwarded-For": "198.51.100.7"},
			trustProxy: true,
			want:       "203.0.113.9",
		},
		{
			name:       "first forwarded hop",
			remoteAddr: "192.168.1.5:54321",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.7, 203.0.113.9"},
			trustProxy: true,
			want:       "198.51.100.7",
		},
		{
			name:       "non-ip header value falls back to socket",
			remoteAddr: "192.168.1.5:54321",
			headers:    map[string]string{"X-Real-IP": "not-an-ip", "X-Forwarded-For": "also bogus"},
			trustProxy: true,
			want:       "192.168.1.5",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.168.1.5",
			want:       "192.168.1.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/ask", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, callerIP(r, tt.trustProxy))
		})
	}
}
