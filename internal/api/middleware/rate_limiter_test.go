package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/auth/login", RateLimiter(2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	hit := func(remoteAddr string) *httptest.ResponseRecorder {
		req, _ := http.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, hit("10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, hit("10.0.0.1:1234").Code)

	limited := hit("10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Contains(t, limited.Body.String(), `"code":"rate_limited"`)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))

	// Buckets are per client.
	assert.Equal(t, http.StatusOK, hit("10.0.0.2:1234").Code)
}
