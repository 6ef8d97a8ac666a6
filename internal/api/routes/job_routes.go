package routes

import (
	"apthire/internal/api/handlers"
	"apthire/internal/api/middleware"
	"apthire/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterJobRoutes registers all routes related to jobs. Reads are public;
// listing attaches the caller when a token is sent so matching can apply.
func RegisterJobRoutes(
	rg *gin.RouterGroup,
	jobHandler handlers.JobHandlerInterface,
	authMiddleware gin.HandlerFunc,
	optionalAuth gin.HandlerFunc,
) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", optionalAuth, jobHandler.ListJobs)
		jobs.GET("/:id", jobHandler.GetJobByID)
	}

	posting := jobs.Group("")
	posting.Use(authMiddleware, middleware.RequireRole(models.RoleRecruiter, models.RoleAdmin))
	{
		posting.POST("", jobHandler.CreateJob)
		posting.PATCH("/:id/status", jobHandler.UpdateJobStatus)
		posting.DELETE("/:id", jobHandler.DeleteJob)
	}
}
