package database

import (
	"testing"

	"todo-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestNewConfigFromEnv(t *testing.T) {
	t.Run("uses defaults when env vars not set", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "")
		t.Setenv("SQLITE_DSN", "")
		t.Setenv("DB_LOG_LEVEL", "")

		cfg := NewConfigFromEnv()

		assert.Equal(t, BackendMemory, cfg.Backend)
		assert.Equal(t, defaultSQLiteDSN, cfg.DSN)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("normalizes backend case", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "SQLite")
		t.Setenv("SQLITE_DSN", "file:other?mode=memory")

		cfg := NewConfigFromEnv()

		assert.Equal(t, BackendSQLite, cfg.Backend)
		assert.Equal(t, "file:other?mode=memory", cfg.DSN)
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory backend", Config{Backend: BackendMemory}, false},
		{"sqlite backend with dsn", Config{Backend: BackendSQLite, DSN: ":memory:"}, false},
		{"sqlite backend without dsn", Config{Backend: BackendSQLite}, true},
		{"unknown backend", Config{Backend: "postgres"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConnectAndAutoMigrate(t *testing.T) {
	db, err := Connect(&Config{
		Backend:  BackendSQLite,
		DSN:      "file:connect_test?mode=memory&cache=shared",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, AutoMigrate(db))

	assert.True(t, db.Migrator().HasTable(&models.Todo{}))
	assert.True(t, db.Migrator().HasTable(&models.Sequence{}))
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestParseGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, parseGormLogLevel("silent"))
	assert.Equal(t, logger.Error, parseGormLogLevel("error"))
	assert.Equal(t, logger.Info, parseGormLogLevel("info"))
	assert.Equal(t, logger.Warn, parseGormLogLevel("warn"))
	assert.Equal(t, logger.Warn, parseGormLogLevel("bogus"))
}
