package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/squadforge/squadforge/internal/config"
	"github.com/squadforge/squadforge/pkg/response"
	"golang.org/x/time/rate"
)

// Fallbacks when the ratelimit config section is absent.
const (
	defaultAuthRPS   = 5
	defaultAuthBurst = 10
	defaultIdleTTL   = 5 * time.Minute
)

type client struct {
	bucket *rate.Limiter
	seen   time.Time
}

// ClientLimiter throttles credential endpoints (register, login, oauth
// exchange, refresh) per client IP so password guessing cannot run at
// request speed. IPs idle longer than the TTL are forgotten.
type ClientLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
}

func NewClientLimiter(cfg *config.RateLimitConfig) *ClientLimiter {
	l := &ClientLimiter{
		clients: make(map[string]*client),
		limit:   rate.Limit(defaultAuthRPS),
		burst:   defaultAuthBurst,
		idleTTL: defaultIdleTTL,
	}
	if cfg != nil {
		if cfg.AuthRPS > 0 {
			l.limit = rate.Limit(cfg.AuthRPS)
		}
		if cfg.AuthBurst > 0 {
			l.burst = cfg.AuthBurst
		}
		if cfg.IdleTTLMinutes > 0 {
			l.idleTTL = time.Duration(cfg.IdleTTLMinutes) * time.Minute
		}
	}

	go l.sweep()
	return l
}

func (l *ClientLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[ip]
	if !ok {
		c = &client{bucket: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.seen = time.Now()
	return c.bucket.Allow()
}

// evictIdle drops IPs whose last request is older than the TTL.
func (l *ClientLimiter) evictIdle(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, c := range l.clients {
		if now.Sub(c.seen) > l.idleTTL {
			delete(l.clients, ip)
		}
	}
}

func (l *ClientLimiter) sweep() {
	ticker := time.NewTicker(l.idleTTL)
	for range ticker.C {
		l.evictIdle(time.Now())
	}
}

// Middleware rejects over-limit requests with 429 in the standard envelope.
func (l *ClientLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Response{
				Code:    http.StatusTooManyRequests,
				Message: "too many attempts, please try again later",
			})
			return
		}
		c.Next()
	}
}
