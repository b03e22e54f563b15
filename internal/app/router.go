package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ridehail/internal/auth"
	"ridehail/internal/handler"
	"ridehail/internal/middleware"
	"ridehail/internal/repository"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	UserHandler      *handler.UserHandler
	PassengerHandler *handler.PassengerHandler
	RiderHandler     *handler.RiderHandler
	JWTService       *auth.JWTService
	UserRepo         repository.UserRepository
	NewRelicApp      *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check and metrics.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.RequireAuth(deps.JWTService, deps.UserRepo)

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Open endpoints.
		v1.POST("/users/register", deps.UserHandler.Register)
		v1.POST("/auth/login", deps.UserHandler.Login)
		v1.POST("/auth/refresh", deps.UserHandler.Refresh)

		// User routes.
		users := v1.Group("/users", requireAuth)
		{
			users.GET("", deps.UserHandler.GetAll)
			users.GET("/profile", deps.UserHandler.Profile)
			users.GET("/:id", deps.UserHandler.Get)
			users.PUT("/:id", deps.UserHandler.Update)
		}

		// Passenger profile routes.
		passengers := v1.Group("/passengers", requireAuth)
		{
			passengers.GET("", deps.PassengerHandler.List)
			passengers.POST("", deps.PassengerHandler.Create)
			passengers.GET("/my_profile", deps.PassengerHandler.MyProfile)
			passengers.GET("/:id", deps.PassengerHandler.Get)
			passengers.PUT("/:id", deps.PassengerHandler.Update)
			passengers.PATCH("/:id", deps.PassengerHandler.Update)
			passengers.DELETE("/:id", deps.PassengerHandler.Delete)
		}

		// Rider profile routes.
		riders := v1.Group("/riders", requireAuth)
		{
			riders.GET("", deps.RiderHandler.List)
			riders.POST("", deps.RiderHandler.Create)
			riders.GET("/my_profile", deps.RiderHandler.MyProfile)
			riders.GET("/available_riders", deps.RiderHandler.ListAvailable)
			riders.GET("/:id", deps.RiderHandler.Get)
			riders.PUT("/:id", deps.RiderHandler.Update)
			riders.PATCH("/:id", deps.RiderHandler.Update)
			riders.DELETE("/:id", deps.RiderHandler.Delete)
			riders.PATCH("/:id/update_location", deps.RiderHandler.UpdateLocation)
		}
	}

	return router
}
