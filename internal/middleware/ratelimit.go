package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// ipRateLimiter tracks one token bucket per caller IP.
type ipRateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rps      rate.Limit
	burst    int
}

func newIPRateLimiter(rpm int) *ipRateLimiter {
	rl := &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(float64(rpm) / 60.0),
		burst:    rpm / 4,
	}
	if rl.burst < 1 {
		rl.burst = 1
	}
	go rl.cleanup()
	return rl
}

func (r *ipRateLimiter) allow(ip string) bool {
	r.mu.Lock()
	limiter, ok := r.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(r.rps, r.burst)
		r.limiters[ip] = limiter
	}
	r.mu.Unlock()
	return limiter.Allow()
}

// cleanup drops the whole map hourly so idle IPs don't accumulate.
func (r *ipRateLimiter) cleanup() {
	for range time.Tick(time.Hour) {
		r.mu.Lock()
		r.limiters = make(map[string]*rate.Limiter)
		r.mu.Unlock()
	}
}

// ChatRateLimit throttles the anonymous widget endpoints per IP.
func ChatRateLimit(rpm int) fiber.Handler {
	rl := newIPRateLimiter(rpm)
	return func(c *fiber.Ctx) error {
		if !rl.allow(c.IP()) {
			rateLimited.Inc()
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many requests, slow down",
			})
		}
		return c.Next()
	}
}
