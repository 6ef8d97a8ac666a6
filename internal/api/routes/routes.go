package routes

import (
	"context"
	"log"

	"apthire/internal/api/handlers"
	"apthire/internal/api/middleware"
	"apthire/internal/app"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up the API routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) {
	apiV1 := router.Group("/api/v1")

	svc := app.Services
	authHandler := handlers.NewAuthHandler(svc.Auth, svc.OAuth, app.Validator)
	userHandler := handlers.NewUserHandler(svc.User, svc.Auth, app.Validator)
	jobHandler := handlers.NewJobHandler(svc.Job, app.Validator)
	jobAppHandler := handlers.NewJobApplicationHandler(svc.JobApplication, app.Validator)
	leadHandler := handlers.NewLeadHandler(svc.Lead, app.Validator)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)
	healthHandler := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"database": app.DBPool,
		"redis": handlers.PingFunc(func(ctx context.Context) error {
			return app.RedisClient.Ping(ctx).Err()
		}),
	})

	// Roles are always read from the store, so a demoted user loses access immediately.
	authMiddleware := middleware.RequireAuth(app.Tokens, app.TokenStore, svc.User)
	optionalAuth := middleware.OptionalAuth(app.Tokens, app.TokenStore, svc.User)
	credentialLimiter := middleware.RateLimiter(app.Config.RateLimit.RequestsPerSecond)
	leadLimiter := middleware.RateLimiter(app.Config.RateLimit.RequestsPerSecond)

	RegisterAuthRoutes(apiV1, authHandler, authMiddleware, credentialLimiter)
	RegisterUserRoutes(apiV1, userHandler, authMiddleware)
	RegisterJobRoutes(apiV1, jobHandler, authMiddleware, optionalAuth)
	RegisterJobApplicationRoutes(apiV1, jobAppHandler, authMiddleware)
	RegisterLeadRoutes(apiV1, leadHandler, authMiddleware, leadLimiter)
	RegisterDashboardRoutes(apiV1, dashboardHandler, authMiddleware)

	router.GET("/health", healthHandler.HealthCheck)

	log.Println("Configuring Swagger UI handler")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
