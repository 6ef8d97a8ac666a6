package routes

import (
	"apthire/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterDashboardRoutes registers the dashboard route.
func RegisterDashboardRoutes(rg *gin.RouterGroup, dashboardHandler handlers.DashboardHandlerInterface, authMiddleware gin.HandlerFunc) {
	rg.GET("/dashboard", authMiddleware, dashboardHandler.GetDashboard)
}
