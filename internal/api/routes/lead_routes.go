package routes

import (
	"apthire/internal/api/handlers"
	"apthire/internal/api/middleware"
	"apthire/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterLeadRoutes registers the public contact form and the admin inbox.
func RegisterLeadRoutes(
	rg *gin.RouterGroup,
	leadHandler handlers.LeadHandlerInterface,
	authMiddleware gin.HandlerFunc,
	rateLimiter gin.HandlerFunc,
) {
	leads := rg.Group("/leads")
	leads.POST("", rateLimiter, leadHandler.CreateLead)

	admin := leads.Group("")
	admin.Use(authMiddleware, middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("", leadHandler.ListLeads)
		admin.DELETE("/:id", leadHandler.DeleteLead)
	}
}
