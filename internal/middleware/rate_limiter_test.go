package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetRateLimiter(rps, burst int) {
	clientsMu.Lock()
	clients = make(map[string]*client)
	requestsPerSecond = rps
	burstSize = burst
	clientsMu.Unlock()
}

func scoreRequest(t *testing.T, e *echo.Echo, handler echo.HandlerFunc, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/detect-anomaly", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	return rec
}

func TestRateLimiterAllowsBurstThenRejects(t *testing.T) {
	resetRateLimiter(2, 4)

	e := echo.New()
	handler := RateLimiter()(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	for i := 0; i < 4; i++ {
		rec := scoreRequest(t, e, handler, "10.0.0.9:40000")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d inside the burst should pass", i)
	}

	// The bucket is drained; the envelope comes back on the response,
	// the handler itself returns nil
	rec := scoreRequest(t, e, handler, "10.0.0.9:40000")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "SYSTEM_005")
}

func TestRateLimiterTracksClientsIndependently(t *testing.T) {
	resetRateLimiter(2, 2)

	e := echo.New()
	handler := RateLimiter()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// Exhaust the first client's bucket
	scoreRequest(t, e, handler, "10.0.0.1:1111")
	scoreRequest(t, e, handler, "10.0.0.1:1111")
	rec := scoreRequest(t, e, handler, "10.0.0.1:1111")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	// A different client still has a full bucket
	rec = scoreRequest(t, e, handler, "10.0.0.2:1111")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiterConcurrentSameClient(t *testing.T) {
	resetRateLimiter(5, 10)

	e := echo.New()
	handler := RateLimiter()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	var wg sync.WaitGroup
	var countsMu sync.Mutex
	passed, limited := 0, 0

	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/detect-anomaly", nil)
			req.RemoteAddr = "10.0.0.7:2222"
			rec := httptest.NewRecorder()
			if err := handler(e.NewContext(req, rec)); err != nil {
				return
			}

			countsMu.Lock()
			switch rec.Code {
			case http.StatusOK:
				passed++
			case http.StatusTooManyRequests:
				limited++
			}
			countsMu.Unlock()
		}()
	}
	wg.Wait()

	assert.Positive(t, passed)
	assert.Positive(t, limited)
	assert.Equal(t, 25, passed+limited)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "forwarded-for single hop",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7"},
			remoteAddr: "127.0.0.1:9999",
			want:       "203.0.113.7",
		},
		{
			name:       "forwarded-for keeps only the originating hop",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 198.51.100.1"},
			remoteAddr: "127.0.0.1:9999",
			want:       "203.0.113.7",
		},
		{
			name:       "real-ip when no forwarded-for",
			headers:    map[string]string{"X-Real-IP": "203.0.113.8"},
			remoteAddr: "127.0.0.1:9999",
			want:       "203.0.113.8",
		},
		{
			name:       "forwarded-for beats real-ip",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7", "X-Real-IP": "203.0.113.8"},
			remoteAddr: "127.0.0.1:9999",
			want:       "203.0.113.7",
		},
		{
			name:       "socket address fallback",
			headers:    map[string]string{},
			remoteAddr: "203.0.113.9:9999",
			want:       "203.0.113.9",
		},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/categorize", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			req.RemoteAddr = tt.remoteAddr

			c := e.NewContext(req, httptest.NewRecorder())
			assert.Equal(t, tt.want, clientIP(c))
		})
	}
}

func TestIdleClientEviction(t *testing.T) {
	resetRateLimiter(5, 10)

	clientsMu.Lock()
	clients["stale"] = &client{lastSeen: time.Now().Add(-2 * clientIdleTimeout)}
	clients["fresh"] = &client{lastSeen: time.Now()}

	// Same sweep evictIdleClients runs on its ticker
	for ip, cl := range clients {
		if time.Since(cl.lastSeen) > clientIdleTimeout {
			delete(clients, ip)
		}
	}
	_, staleKept := clients["stale"]
	_, freshKept := clients["fresh"]
	clientsMu.Unlock()

	assert.False(t, staleKept)
	assert.True(t, freshKept)
}
