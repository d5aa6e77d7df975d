package server

import (
	"todo-api/internal/handlers"
	"todo-api/internal/logging"
	"todo-api/internal/middleware"
	"todo-api/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the router is built from.
// DB is nil when the in-memory store is used.
type Dependencies struct {
	Service   *service.TodoService
	DB        *gorm.DB
	CORS      *middleware.CORSConfig
	Security  *middleware.SecurityConfig
	RateLimit *middleware.RateLimitConfig
}

// NewRouter builds the gin engine with middleware and all routes
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	if err := router.SetTrustedProxies(deps.Security.TrustedProxies); err != nil {
		logging.Logger.WithError(err).Warn("Invalid trusted proxy list, trusting none")
		_ = router.SetTrustedProxies(nil)
	}

	// Security headers first so every response carries them
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(deps.CORS))
	router.Use(middleware.RequestSizeLimit(deps.Security.MaxRequestBodySize))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorSanitizer())
	router.Use(middleware.GlobalRateLimiter(deps.RateLimit))

	todoHandler := handlers.NewTodoHandler(deps.Service)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Service)
	writeLimiter := middleware.WriteRateLimiter(deps.RateLimit)

	todos := router.Group("/todos")
	{
		todos.GET("", todoHandler.ListTodos)
		todos.POST("", writeLimiter, todoHandler.CreateTodo)
		todos.PUT("/:id", middleware.IDValidator("id"), writeLimiter, todoHandler.UpdateTodo)
		todos.DELETE("/:id", middleware.IDValidator("id"), writeLimiter, todoHandler.DeleteTodo)
	}

	health := router.Group("/health")
	{
		health.GET("", healthHandler.BasicHealth)
		health.GET("/detailed", healthHandler.DetailedHealth)
		health.GET("/live", healthHandler.LivenessProbe)
		health.GET("/ready", healthHandler.ReadinessProbe)
	}

	return router
}
