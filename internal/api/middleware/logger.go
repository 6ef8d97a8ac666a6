package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger logs one line per request with the caller identity when known.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		caller := "anonymous"
		if userID, err := GetUserIDFromContext(c); err == nil {
			caller = userID.String()
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		log.Printf("[%s] %s %s %d %s user=%s errors=%d",
			c.Request.Method,
			path,
			c.ClientIP(),
			c.Writer.Status(),
			time.Since(start),
			caller,
			len(c.Errors),
		)
	}
}
