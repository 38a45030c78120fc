package middleware

import (
	"strings"
	"sync"
	"time"

	"finsight/internal/errors"
	"finsight/internal/handlers"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const clientIdleTimeout = 3 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	clients   = make(map[string]*client)
	clientsMu sync.Mutex

	// Detection batches can be large; the limit guards the CPU-bound
	// scoring endpoints from request floods
	requestsPerSecond = 5
	burstSize         = 10
)

// RateLimiter throttles requests per client IP with a token bucket.
// Over-limit requests get the standard SYSTEM_005 envelope.
func RateLimiter() echo.MiddlewareFunc {
	go evictIdleClients()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiterFor(clientIP(c)).Allow() {
				return handlers.SendError(c, errors.SystemRateLimitExceeded)
			}
			return next(c)
		}
	}
}

// RateLimiterWithConfig overrides the default rate and burst before
// building the limiter
func RateLimiterWithConfig(rps int, burst int) echo.MiddlewareFunc {
	requestsPerSecond = rps
	burstSize = burst
	return RateLimiter()
}

func limiterFor(ip string) *rate.Limiter {
	clientsMu.Lock()
	defer clientsMu.Unlock()

	if cl, ok := clients[ip]; ok {
		cl.lastSeen = time.Now()
		return cl.limiter
	}

	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize)
	clients[ip] = &client{limiter: limiter, lastSeen: time.Now()}
	return limiter
}

// clientIP prefers proxy headers over the socket address. Only the first
// X-Forwarded-For hop counts; later entries are appended by intermediaries.
func clientIP(c echo.Context) string {
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
	}

	if xri := c.Request().Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return c.RealIP()
}

func evictIdleClients() {
	ticker := time.NewTicker(time.Minute)
	for range ticker.C {
		clientsMu.Lock()
		for ip, cl := range clients {
			if time.Since(cl.lastSeen) > clientIdleTimeout {
				delete(clients, ip)
			}
		}
		clientsMu.Unlock()
	}
}
