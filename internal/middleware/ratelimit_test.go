package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"todo-api/internal/models"
	"todo-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimitConfigFromEnv(t *testing.T) {
	t.Run("uses defaults", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_ENABLED", "")
		t.Setenv("RATE_LIMIT_REQUESTS_PER_MIN", "")

		config := NewRateLimitConfigFromEnv()

		assert.True(t, config.Enabled)
		assert.Equal(t, int64(300), config.RequestsPerMin)
	})

	t.Run("reads custom values", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_ENABLED", "false")
		t.Setenv("RATE_LIMIT_REQUESTS_PER_MIN", "20")

		config := NewRateLimitConfigFromEnv()

		assert.False(t, config.Enabled)
		assert.Equal(t, int64(20), config.RequestsPerMin)
	})

	t.Run("keeps defaults on unparsable values", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_ENABLED", "sometimes")
		t.Setenv("RATE_LIMIT_REQUESTS_PER_MIN", "lots")

		config := NewRateLimitConfigFromEnv()

		assert.True(t, config.Enabled)
		assert.Equal(t, int64(300), config.RequestsPerMin)
	})
}

func countStatuses(router *gin.Engine, method, path, remoteAddr string, n int) (ok, limited int) {
	for i := 0; i < n; i++ {
		req := httptest.NewRequest(method, path, nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		switch w.Code {
		case http.StatusOK:
			ok++
		case http.StatusTooManyRequests:
			limited++
		}
	}
	return ok, limited
}

func TestGlobalRateLimiter(t *testing.T) {
	setupTest()

	newRouter := func(config *RateLimitConfig) *gin.Engine {
		router := gin.New()
		router.Use(GlobalRateLimiter(config))
		router.GET("/todos", func(c *gin.Context) {
			c.JSON(http.StatusOK, []models.Todo{})
		})
		return router
	}

	t.Run("allows everything when disabled", func(t *testing.T) {
		ok, limited := countStatuses(newRouter(&RateLimitConfig{Enabled: false}), "GET", "/todos", "192.0.2.1:1234", 50)

		assert.Equal(t, 50, ok)
		assert.Zero(t, limited)
	})

	t.Run("enforces the per-minute limit", func(t *testing.T) {
		ok, limited := countStatuses(newRouter(&RateLimitConfig{Enabled: true, RequestsPerMin: 5}), "GET", "/todos", "192.0.2.2:1234", 10)

		assert.Equal(t, 5, ok)
		assert.Equal(t, 5, limited)
	})

	t.Run("tracks clients separately", func(t *testing.T) {
		router := newRouter(&RateLimitConfig{Enabled: true, RequestsPerMin: 1})

		ok, _ := countStatuses(router, "GET", "/todos", "192.0.2.3:1234", 1)
		assert.Equal(t, 1, ok)
		ok, _ = countStatuses(router, "GET", "/todos", "192.0.2.4:1234", 1)
		assert.Equal(t, 1, ok)
	})

	t.Run("answers with the error body", func(t *testing.T) {
		router := newRouter(&RateLimitConfig{Enabled: true, RequestsPerMin: 1})
		countStatuses(router, "GET", "/todos", "192.0.2.5:1234", 1)

		req := httptest.NewRequest("GET", "/todos", nil)
		req.RemoteAddr = "192.0.2.5:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusTooManyRequests, w.Code)

		var resp models.ErrorResponse
		testutil.ParseJSONResponse(t, w, &resp)
		assert.Equal(t, "RATE_LIMIT_EXCEEDED", resp.Code)
		assert.EqualValues(t, 60, resp.Details["retry_after_sec"])
	})
}

func TestWriteRateLimiter(t *testing.T) {
	setupTest()

	t.Run("allows everything when disabled", func(t *testing.T) {
		router := gin.New()
		router.POST("/todos", WriteRateLimiter(&RateLimitConfig{Enabled: false}), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		ok, limited := countStatuses(router, "POST", "/todos", "192.0.2.10:1234", 20)
		assert.Equal(t, 20, ok)
		assert.Zero(t, limited)
	})

	t.Run("applies half the global limit", func(t *testing.T) {
		router := gin.New()
		router.POST("/todos", WriteRateLimiter(&RateLimitConfig{Enabled: true, RequestsPerMin: 10}), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		ok, limited := countStatuses(router, "POST", "/todos", "192.0.2.11:1234", 8)
		assert.Equal(t, 5, ok)
		assert.Equal(t, 3, limited)
	})

	t.Run("never drops below one request", func(t *testing.T) {
		router := gin.New()
		router.POST("/todos", WriteRateLimiter(&RateLimitConfig{Enabled: true, RequestsPerMin: 1}), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		ok, _ := countStatuses(router, "POST", "/todos", "192.0.2.12:1234", 1)
		assert.Equal(t, 1, ok)
	})
}
