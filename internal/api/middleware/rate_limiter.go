package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

const defaultRequestsPerSecond = 5

func rateLimitKey(c *gin.Context) string {
	if userID, err := GetUserIDFromContext(c); err == nil {
		return "user: " + userID.String()
	}
	return "ip: " + c.ClientIP()
}

func rateLimitExceeded(c *gin.Context, info ratelimit.Info) {
	c.Header("Retry-After", strconv.Itoa(int(math.Ceil(time.Until(info.ResetTime).Seconds()))))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error": "Too many requests. Please try again later.",
		"code":  "rate_limited",
	})
}

// RateLimiter limits each client to reqPerSec requests per second. Every call
// creates its own bucket store, so groups sharing a limiter must share the handler.
func RateLimiter(reqPerSec uint) gin.HandlerFunc {
	if reqPerSec == 0 {
		reqPerSec = defaultRequestsPerSecond
	}

	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Second,
		Limit: reqPerSec,
	})

	return ratelimit.RateLimiter(store, &ratelimit.Options{
		KeyFunc:      rateLimitKey,
		ErrorHandler: rateLimitExceeded,
	})
}
