package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// NudgeLimits hands out one token bucket per caller. The HTTP route and the
// event stream draw from the same bucket for a session.
type NudgeLimits struct {
	perSecond rate.Limit
	burst     int
	ttl       time.Duration
	limiters  *cache.Cache
}

func NewNudgeLimits(perSecond float64, burst int, ttl time.Duration) *NudgeLimits {
	if burst <= 0 {
		burst = 1
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &NudgeLimits{
		perSecond: rate.Limit(perSecond),
		burst:     burst,
		ttl:       ttl,
		limiters:  cache.New(ttl, ttl),
	}
}

// For returns the bucket for key, creating it on first use. Every call
// pushes the bucket's expiry ttl into the future.
func (l *NudgeLimits) For(key string) *rate.Limiter {
	if v, ok := l.limiters.Get(key); ok {
		lim := v.(*rate.Limiter)
		l.limiters.Set(key, lim, l.ttl)
		return lim
	}
	lim := rate.NewLimiter(l.perSecond, l.burst)
	if err := l.limiters.Add(key, lim, l.ttl); err != nil {
		// lost the race to another caller
		if v, ok := l.limiters.Get(key); ok {
			return v.(*rate.Limiter)
		}
	}
	return lim
}

// AllowSession takes one token from the session's bucket.
func (l *NudgeLimits) AllowSession(sessionID string) bool {
	return l.For(SessionLimitKey(sessionID)).Allow()
}

// Middleware limits requests per session id, falling back to the client IP
// for unauthenticated callers.
func (l *NudgeLimits) Middleware() gin.HandlerFunc {
	// the library caches buckets itself; touching ours on every request keeps
	// it alive at least as long as the library's copy
	key := func(c *gin.Context) string {
		k := limitKey(c)
		l.For(k)
		return k
	}
	return limit.NewRateLimiter(key, func(c *gin.Context) (*rate.Limiter, time.Duration) {
		return l.For(limitKey(c)), l.ttl
	}, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
	})
}

func SessionLimitKey(sessionID string) string { return "session:" + sessionID }

func limitKey(c *gin.Context) string {
	if id := c.GetString(SessionIDKey); id != "" {
		return SessionLimitKey(id)
	}
	return "ip:" + c.ClientIP()
}
