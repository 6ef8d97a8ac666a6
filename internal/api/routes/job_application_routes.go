package routes

import (
	"apthire/internal/api/handlers"
	"apthire/internal/api/middleware"
	"apthire/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterJobApplicationRoutes registers all routes related to job applications.
func RegisterJobApplicationRoutes(
	rg *gin.RouterGroup,
	jobAppHandler handlers.JobApplicationHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	candidateOnly := middleware.RequireRole(models.RoleCandidate)
	reviewers := middleware.RequireRole(models.RoleRecruiter, models.RoleAdmin)

	rg.POST("/jobs/:id/apply", authMiddleware, candidateOnly, jobAppHandler.ApplyToJob)

	apps := rg.Group("/applications")
	apps.Use(authMiddleware)
	{
		apps.GET("", reviewers, jobAppHandler.ListApplications)
		apps.GET("/mine", candidateOnly, jobAppHandler.ListMyApplications)
		apps.PATCH("/:id/status", reviewers, jobAppHandler.UpdateApplicationStatus)
	}
}
