package api_middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Lutefd/itinerary-sorter/internal/commons"
	"github.com/Lutefd/itinerary-sorter/internal/logger"
	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP with a token bucket. The IP
// is taken from RemoteAddr, so it only reflects forwarding headers when a
// trusted proxy middleware rewrote it. Clients idle for longer than idleTTL
// are forgotten.
type RateLimiter struct {
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	now       func() time.Time
	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: commons.RateLimiterIdleTTL,
		now:     time.Now,
		clients: make(map[string]*client),
	}
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.idleTTL {
		rl.sweep(now)
	}

	c, ok := rl.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter
}

func (rl *RateLimiter) sweep(now time.Time) {
	for ip, c := range rl.clients {
		if now.Sub(c.lastSeen) >= rl.idleTTL {
			delete(rl.clients, ip)
		}
	}
	rl.lastSweep = now
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.limiterFor(ip).Allow() {
			logger.Errorf("rate limit exceeded for IP: %s", ip)
			commons.RespondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
