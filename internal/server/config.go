package server

import (
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Config holds HTTP server configuration
type Config struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	GinMode         string
	TLS             *TLSConfig
}

// NewConfigFromEnv creates a Config from environment variables
func NewConfigFromEnv() *Config {
	return &Config{
		Port:            getEnv("PORT", "8000"),
		ReadTimeout:     time.Duration(getEnvInt("SERVER_READ_TIMEOUT_SEC", 15)) * time.Second,
		WriteTimeout:    time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT_SEC", 15)) * time.Second,
		IdleTimeout:     time.Duration(getEnvInt("SERVER_IDLE_TIMEOUT_SEC", 60)) * time.Second,
		ShutdownTimeout: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SEC", 10)) * time.Second,
		GinMode:         getEnv("GIN_MODE", gin.ReleaseMode),
		TLS:             NewTLSConfigFromEnv(),
	}
}

// Addr returns the listen address of the API
func (c *Config) Addr() string {
	if c.tlsEnabled() {
		return ":" + c.TLS.Port
	}
	return ":" + c.Port
}

func (c *Config) tlsEnabled() bool {
	return c.TLS != nil && c.TLS.Enabled
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
