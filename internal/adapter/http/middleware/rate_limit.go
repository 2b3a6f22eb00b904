package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"vermafarm/internal/infrastructure/config"
	"vermafarm/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var errRateLimited = pkg.NewDomainErrorSimple("RATE_LIMITED", "Too many requests from this IP, please try again later.", http.StatusTooManyRequests)

// RateLimiter keeps one token bucket per client IP. Each bucket allows max
// requests per window and refills continuously. Buckets idle for a whole
// window are dropped on a later access.
type RateLimiter struct {
	limit  rate.Limit
	burst  int
	window time.Duration
	now    func() time.Time

	mu          sync.Mutex
	limiters    map[string]*rate.Limiter
	lastSeen    map[string]time.Time
	lastCleanup time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	window, maxRequests := cfg.Window, cfg.Max
	if window <= 0 {
		window = 15 * time.Minute
	}
	if maxRequests <= 0 {
		maxRequests = 100
	}
	return &RateLimiter{
		limit:    rate.Every(window / time.Duration(maxRequests)),
		burst:    maxRequests,
		window:   window,
		now:      time.Now,
		limiters: make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
	}
}

func (rl *RateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastCleanup) > rl.window {
		rl.cleanupLocked(now)
	}

	limiter, ok := rl.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[ip] = limiter
	}
	rl.lastSeen[ip] = now
	return limiter
}

func (rl *RateLimiter) cleanupLocked(now time.Time) {
	for ip, seen := range rl.lastSeen {
		if now.Sub(seen) > rl.window {
			delete(rl.limiters, ip)
			delete(rl.lastSeen, ip)
		}
	}
	rl.lastCleanup = now
}

// Middleware rejects a request with 429 once the caller's bucket is empty.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.GetLimiter(ip).AllowN(rl.now(), 1) {
			logrus.WithFields(logrus.Fields{
				"client_ip": ip,
				"path":      c.Request.URL.Path,
			}).Warn("[http][middleware] rate limit exceeded")
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			c.AbortWithStatusJSON(errRateLimited.HTTPStatus, errRateLimited.ToHTTPError())
			return
		}
		c.Next()
	}
}
