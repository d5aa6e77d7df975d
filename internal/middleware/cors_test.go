package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCORSRouter(config *CORSConfig) *gin.Engine {
	router := gin.New()
	router.Use(CORS(config))
	router.GET("/todos", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})
	return router
}

func TestCORS(t *testing.T) {
	setupTest()

	base := func(origins ...string) *CORSConfig {
		return &CORSConfig{
			Enabled:        true,
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
			ExposeHeaders:  []string{"X-Request-ID"},
			MaxAge:         3600,
		}
	}

	t.Run("allows all origins with wildcard", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/todos", nil)
		req.Header.Set("Origin", "https://example.com")
		w := httptest.NewRecorder()
		newCORSRouter(base("*")).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", w.Header().Get("Vary"))
		assert.Equal(t, "X-Request-ID", w.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("omits headers for disallowed origin", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/todos", nil)
		req.Header.Set("Origin", "https://evil.com")
		w := httptest.NewRecorder()
		newCORSRouter(base("https://example.com")).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("answers preflight with 204", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/todos", nil)
		req.Header.Set("Origin", "https://example.com")
		req.Header.Set("Access-Control-Request-Method", "DELETE")
		w := httptest.NewRecorder()
		newCORSRouter(base("https://example.com")).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Request-ID")
		assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("sets credentials header when enabled", func(t *testing.T) {
		config := base("https://example.com")
		config.AllowCredentials = true

		req := httptest.NewRequest("GET", "/todos", nil)
		req.Header.Set("Origin", "https://example.com")
		w := httptest.NewRecorder()
		newCORSRouter(config).ServeHTTP(w, req)

		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("does nothing when disabled", func(t *testing.T) {
		config := base("*")
		config.Enabled = false

		req := httptest.NewRequest("GET", "/todos", nil)
		req.Header.Set("Origin", "https://example.com")
		w := httptest.NewRecorder()
		newCORSRouter(config).ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("ignores same-origin requests", func(t *testing.T) {
		w := httptest.NewRecorder()
		newCORSRouter(base("*")).ServeHTTP(w, httptest.NewRequest("GET", "/todos", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestIsOriginAllowed(t *testing.T) {
	allowed := []string{"https://todo.example.com", "*.example.org"}

	tests := []struct {
		origin   string
		expected bool
	}{
		{"https://todo.example.com", true},
		{"https://other.example.com", false},
		{"https://app.example.org", true},
		{"https://deep.app.example.org", true},
		{"https://evilexample.org", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			assert.Equal(t, tt.expected, isOriginAllowed(tt.origin, allowed))
		})
	}

	assert.True(t, isOriginAllowed("https://anything.test", []string{"*"}))
}

func TestParseCommaSeparated(t *testing.T) {
	assert.Equal(t, []string{}, parseCommaSeparated(""))
	assert.Equal(t, []string{"a"}, parseCommaSeparated("a"))
	assert.Equal(t, []string{"a", "b", "c"}, parseCommaSeparated(" a, b ,c "))
	assert.Equal(t, []string{"a", "b"}, parseCommaSeparated("a,,b,"))
}
