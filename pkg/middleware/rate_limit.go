package middleware

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/technova/portfolio-api/pkg/metrics"
	"golang.org/x/time/rate"
)

// per-key limiter store (simple in-memory token-bucket). Entries idle for
// longer than limiterIdleTTL are swept so one-off visitors do not pile up.
var (
	limiterStore sync.Map // map[string]*limiterEntry
	lastSweep    atomic.Int64
)

const (
	limiterIdleTTL    = 10 * time.Minute
	limiterSweepEvery = time.Minute
)

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// getLimiter returns (and lazily creates) a token-bucket limiter for the given key
func getLimiter(key string, rps float64, burst int) *rate.Limiter {
	now := time.Now()
	maybeSweep(now)

	v, ok := limiterStore.Load(key)
	if !ok {
		v, _ = limiterStore.LoadOrStore(key, &limiterEntry{lim: rate.NewLimiter(rate.Limit(rps), burst)})
	}
	e := v.(*limiterEntry)
	e.lastSeen.Store(now.UnixNano())
	return e.lim
}

// maybeSweep runs sweepIdle at most once per limiterSweepEvery.
func maybeSweep(now time.Time) {
	prev := lastSweep.Load()
	if now.UnixNano()-prev < int64(limiterSweepEvery) {
		return
	}
	if lastSweep.CompareAndSwap(prev, now.UnixNano()) {
		sweepIdle(now, limiterIdleTTL)
	}
}

// sweepIdle drops limiters not used within ttl and returns how many went.
// A dropped key starts again with a full bucket.
func sweepIdle(now time.Time, ttl time.Duration) int {
	cutoff := now.Add(-ttl).UnixNano()
	removed := 0
	limiterStore.Range(func(k, v any) bool {
		if v.(*limiterEntry).lastSeen.Load() < cutoff {
			limiterStore.Delete(k)
			removed++
		}
		return true
	})
	return removed
}

// limitKey identifies the caller: client IP plus the matched route, so a
// limiter mounted on one route does not consume the budget of another.
func limitKey(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip + ":" + c.FullPath()
}

// RateLimitMiddleware returns a Gin middleware enforcing a token-bucket per-client limit.
// rps = allowed events per second, burst = maximum tokens in bucket.
// Mounted on the public contact endpoint to slow down form spam.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		lim := getLimiter(limitKey(c), rps, burst)
		if !lim.Allow() {
			c.Header("Retry-After", "1")
			metrics.RateLimitRejected.WithLabelValues("memory").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}
