package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("TODO_TEST_VAR", "value")
	assert.Equal(t, "value", getEnv("TODO_TEST_VAR", "default"))

	t.Setenv("TODO_TEST_VAR", "")
	assert.Equal(t, "default", getEnv("TODO_TEST_VAR", "default"))
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue bool
		expected     bool
	}{
		{"true", "true", false, true},
		{"one", "1", false, true},
		{"false", "false", true, false},
		{"zero", "0", true, false},
		{"unset keeps default", "", true, true},
		{"garbage keeps default", "maybe", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TODO_TEST_BOOL", tt.value)
			assert.Equal(t, tt.expected, getEnvBool("TODO_TEST_BOOL", tt.defaultValue))
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{"valid", "42", 42},
		{"negative", "-5", -5},
		{"unset keeps default", "", 7},
		{"float keeps default", "1.5", 7},
		{"garbage keeps default", "many", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TODO_TEST_INT", tt.value)
			assert.Equal(t, tt.expected, getEnvInt("TODO_TEST_INT", 7))
		})
	}
}

func TestNewSecurityConfigFromEnv(t *testing.T) {
	t.Run("uses defaults", func(t *testing.T) {
		t.Setenv("MAX_REQUEST_BODY_SIZE", "")
		t.Setenv("TRUSTED_PROXIES", "")

		config := NewSecurityConfigFromEnv()

		assert.Equal(t, int64(64*1024), config.MaxRequestBodySize)
		assert.Empty(t, config.TrustedProxies)
	})

	t.Run("reads custom values", func(t *testing.T) {
		t.Setenv("MAX_REQUEST_BODY_SIZE", "2048")
		t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 10.0.0.2")

		config := NewSecurityConfigFromEnv()

		assert.Equal(t, int64(2048), config.MaxRequestBodySize)
		assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, config.TrustedProxies)
	})
}

func TestNewCORSConfigFromEnv(t *testing.T) {
	t.Run("uses defaults", func(t *testing.T) {
		for _, key := range []string{"CORS_ENABLED", "CORS_ALLOWED_ORIGINS", "CORS_ALLOWED_METHODS",
			"CORS_ALLOWED_HEADERS", "CORS_EXPOSE_HEADERS", "CORS_ALLOW_CREDENTIALS", "CORS_MAX_AGE"} {
			t.Setenv(key, "")
		}

		config := NewCORSConfigFromEnv()

		assert.True(t, config.Enabled)
		assert.Equal(t, []string{"*"}, config.AllowedOrigins)
		assert.Equal(t, []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}, config.AllowedMethods)
		assert.Contains(t, config.AllowedHeaders, "X-Request-ID")
		assert.False(t, config.AllowCredentials)
		assert.Equal(t, 3600, config.MaxAge)
	})

	t.Run("reads custom values", func(t *testing.T) {
		t.Setenv("CORS_ENABLED", "false")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://todo.example.com,*.example.org")
		t.Setenv("CORS_ALLOW_CREDENTIALS", "true")
		t.Setenv("CORS_MAX_AGE", "600")

		config := NewCORSConfigFromEnv()

		assert.False(t, config.Enabled)
		assert.Equal(t, []string{"https://todo.example.com", "*.example.org"}, config.AllowedOrigins)
		assert.True(t, config.AllowCredentials)
		assert.Equal(t, 600, config.MaxAge)
	})
}
