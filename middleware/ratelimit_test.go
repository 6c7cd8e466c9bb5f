package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Yulian302/findit-gateway/common/ratelimit"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(t *testing.T, limit int) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)

	rdb := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	limiter := ratelimit.NewRedisRateLimiter(rdb)

	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimiterMiddleware(limiter, limit, time.Minute))

	r.GET("/test", func(c *gin.Context) {
		c.String(200, "ok")
	})
	r.GET("/health/live", func(c *gin.Context) {
		c.String(200, "alive")
	})
	return r, s
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterMiddleware(t *testing.T) {
	r, _ := newLimitedRouter(t, 3)

	for i := 0; i < 3; i++ {
		w := get(r, "/test")
		require.Equal(t, 200, w.Code)
	}

	w := get(r, "/test")
	require.Equal(t, 429, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestRateLimiterMiddleware_WindowExpires(t *testing.T) {
	r, s := newLimitedRouter(t, 1)

	require.Equal(t, 200, get(r, "/test").Code)
	require.Equal(t, 429, get(r, "/test").Code)

	s.FastForward(2 * time.Minute)
	assert.Equal(t, 200, get(r, "/test").Code)
}

func TestRateLimiterMiddleware_SkipsProbes(t *testing.T) {
	r, _ := newLimitedRouter(t, 1)

	for i := 0; i < 5; i++ {
		assert.Equal(t, 200, get(r, "/health/live").Code)
	}
}

func TestRateLimiterMiddleware_FailsOpen(t *testing.T) {
	r, s := newLimitedRouter(t, 1)
	s.Close()

	assert.Equal(t, 200, get(r, "/test").Code)
	assert.Equal(t, 200, get(r, "/test").Code)
}
