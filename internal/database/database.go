package database

import (
	"fmt"
	"os"
	"strings"
	"time"

	"todo-api/internal/logging"
	"todo-api/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// defaultSQLiteDSN names a shared in-memory database; it disappears with the process
const defaultSQLiteDSN = "file:todos?mode=memory&cache=shared"

// Config holds storage backend configuration
type Config struct {
	Backend  string // memory or sqlite
	DSN      string // SQLite data source name
	LogLevel string // silent, error, warn, info
}

// NewConfigFromEnv creates a Config from environment variables
func NewConfigFromEnv() *Config {
	return &Config{
		Backend:  strings.ToLower(getEnv("STORAGE_BACKEND", BackendMemory)),
		DSN:      getEnv("SQLITE_DSN", defaultSQLiteDSN),
		LogLevel: strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),
	}
}

// Validate checks that the backend is one we know how to build
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
		return nil
	case BackendSQLite:
		if c.DSN == "" {
			return fmt.Errorf("sqlite backend requires a DSN")
		}
		return nil
	default:
		return fmt.Errorf("unknown storage backend %q", c.Backend)
	}
}

// Connect opens the SQLite database described by cfg
func Connect(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{
		Logger: NewGormLogger(cfg.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// An in-memory database lives only as long as a connection to it, and
	// SQLite serializes writers anyway, so a single pinned connection is used.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	logging.Logger.WithField("dsn", cfg.DSN).Info("SQLite database opened")
	return db, nil
}

// AutoMigrate creates or updates the schema
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Todo{}, &models.Sequence{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// NewGormLogger routes GORM's own logging through the application logger
func NewGormLogger(level string) logger.Interface {
	return logger.New(logging.Logger, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  parseGormLogLevel(level),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func parseGormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
