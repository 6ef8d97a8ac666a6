package routes

import (
	"apthire/internal/api/handlers"
	"apthire/internal/api/middleware"
	"apthire/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers self-service and admin user routes.
func RegisterUserRoutes(rg *gin.RouterGroup, userHandler handlers.UserHandlerInterface, authMiddleware gin.HandlerFunc) {
	users := rg.Group("/users")
	users.Use(authMiddleware)
	{
		users.GET("/me", userHandler.GetMe)
		users.PUT("/me/profile", userHandler.UpdateProfile)
		users.PUT("/me/password", userHandler.ChangePassword)
	}

	admin := users.Group("")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("", userHandler.GetUsers)
		admin.DELETE("/:id", userHandler.DeleteUser)
	}
}
