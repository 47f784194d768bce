package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"lapak-storefront/pkg/utils"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RateLimiter throttles each client IP with its own token bucket. A bucket
// is forgotten once its client has been quiet for the TTL.
type RateLimiter struct {
	visitors *gocache.Cache
	limit    rate.Limit
	burst    int
}

// NewRateLimiter allows limit requests per second with bursts of burst per
// IP. Idle buckets expire after clientTTL and are swept every cleanupPeriod.
func NewRateLimiter(limit rate.Limit, burst int, cleanupPeriod, clientTTL time.Duration) *RateLimiter {
	return &RateLimiter{
		visitors: gocache.New(clientTTL, cleanupPeriod),
		limit:    limit,
		burst:    burst,
	}
}

// Middleware rejects over-limit requests with 429 and a Retry-After that
// says when the bucket has a token again. CORS preflights and health
// checks are never throttled.
func (rl *RateLimiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || isHealthCheck(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			res := rl.limiterFor(getClientIP(r)).Reserve()
			if delay := res.Delay(); !res.OK() || delay > 0 {
				res.Cancel()
				w.Header().Set("Retry-After", retryAfter(delay))
				utils.WriteError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// limiterFor returns the IP's bucket and pushes its expiry back.
func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	if v, ok := rl.visitors.Get(ip); ok {
		l := v.(*rate.Limiter)
		rl.visitors.SetDefault(ip, l)
		return l
	}
	l := rate.NewLimiter(rl.limit, rl.burst)
	if err := rl.visitors.Add(ip, l, gocache.DefaultExpiration); err != nil {
		// Lost the race to another request from the same IP.
		if v, ok := rl.visitors.Get(ip); ok {
			return v.(*rate.Limiter)
		}
	}
	return l
}

// Shutdown forgets every bucket.
func (rl *RateLimiter) Shutdown() {
	rl.visitors.Flush()
}

func isHealthCheck(path string) bool {
	return path == "/health" || path == "/api/v1/health"
}

func retryAfter(delay time.Duration) string {
	secs := int(math.Ceil(delay.Seconds()))
	if secs < 1 || delay == rate.InfDuration {
		secs = 1
	}
	return strconv.Itoa(secs)
}
