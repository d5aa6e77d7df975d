package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"todo-api/internal/database"
	"todo-api/internal/logging"
	"todo-api/internal/middleware"
	"todo-api/internal/server"
	"todo-api/internal/service"
	"todo-api/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	// Initialize logging first
	logConfig := logging.NewLogConfigFromEnv()
	logging.InitLogger(logConfig)

	serverConfig := server.NewConfigFromEnv()
	gin.SetMode(serverConfig.GinMode)

	dbConfig := database.NewConfigFromEnv()
	if err := dbConfig.Validate(); err != nil {
		logging.Logger.Fatalf("Invalid storage configuration: %v", err)
	}

	var store storage.Store
	var db *gorm.DB

	switch dbConfig.Backend {
	case database.BackendSQLite:
		var err error
		db, err = database.Connect(dbConfig)
		if err != nil {
			logging.Logger.Fatalf("Failed to connect to database: %v", err)
		}
		if err := database.AutoMigrate(db); err != nil {
			logging.Logger.Fatalf("Failed to run migrations: %v", err)
		}
		store = storage.NewSQLStorage(db)
		logging.Logger.Info("SQLite storage initialized successfully")
	default:
		store = storage.NewStorage()
		logging.Logger.Info("Using in-memory storage")
	}

	router := server.NewRouter(server.Dependencies{
		Service:   service.NewTodoService(store),
		DB:        db,
		CORS:      middleware.NewCORSConfigFromEnv(),
		Security:  middleware.NewSecurityConfigFromEnv(),
		RateLimit: middleware.NewRateLimitConfigFromEnv(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, serverConfig, router); err != nil {
		logging.Logger.Errorf("Server error: %v", err)
		stop()
		os.Exit(1)
	}

	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
