package limiter

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const maxVisitors = 10000

// Limit throttles requests per client ip with a token bucket. A visitor idle for ttl
// starts over with a full bucket. rps <= 0 disables the limit.
func Limit(rps float64, burst int, ttl time.Duration) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}

	visitors := expirable.NewLRU[string, *rate.Limiter](maxVisitors, nil, ttl)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		l, ok := visitors.Get(ip)
		if !ok {
			l = rate.NewLimiter(rate.Limit(rps), burst)
			visitors.Add(ip, l)
		}

		if !l.Allow() {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}

		c.Next()
	}
}
