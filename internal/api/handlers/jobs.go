package handlers

import (
	"net/http"

	"apthire/internal/api/middleware"
	"apthire/internal/services"
	"apthire/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// JobHandler holds dependencies for job operations.
type JobHandler struct {
	service   services.JobService
	validator *validator.Validate
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service services.JobService, validate *validator.Validate) *JobHandler {
	return &JobHandler{
		service:   service,
		validator: validate,
	}
}

// CreateJob godoc
// @Summary      Create a new job posting
// @Description  The poster is taken from the auth context. Only recruiters and admins may post.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job body      dto.CreateJobRequest true "Job details"
// @Success      201 {object}  dto.JobResponse
// @Failure      400 {object}  ErrorResponse
// @Failure      401 {object}  ErrorResponse
// @Failure      403 {object}  ErrorResponse
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, role, ok := caller(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.PostedBy = userID
	req.UserRole = role

	job, err := h.service.CreateJob(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "CreateJob", err)
		return
	}
	c.JSON(http.StatusCreated, services.MapJobToResponse(job))
}

// GetJobByID godoc
// @Summary      Get a job by ID
// @Tags         jobs
// @Produce      json
// @Param        id path      string true "Job ID" Format(uuid)
// @Success      200 {object}  dto.JobResponse
// @Failure      400 {object}  ErrorResponse "Invalid ID format"
// @Failure      404 {object}  ErrorResponse
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetJobByID(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id", "job")
	if !ok {
		return
	}

	job, err := h.service.GetJobByID(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, "GetJobByID", err)
		return
	}
	c.JSON(http.StatusOK, services.MapJobToResponse(job))
}

// ListJobs godoc
// @Summary      List jobs
// @Description  Active jobs by default. Closed jobs are listed only for admins and for recruiters filtering by their own posted_by. With match=true and a candidate token, only jobs matching the candidate profile are returned.
// @Tags         jobs
// @Produce      json
// @Param        skill     query string false "Skill contained in the job's skills"
// @Param        location  query string false "Location substring"
// @Param        posted_by query string false "Poster ID" Format(uuid)
// @Param        status    query string false "active or closed"
// @Param        match     query bool   false "Apply candidate matching"
// @Param        limit     query int    false "Pagination limit" default(50)
// @Param        offset    query int    false "Pagination offset" default(0)
// @Success      200 {array}   dto.JobResponse
// @Failure      400 {object}  ErrorResponse
// @Failure      403 {object}  ErrorResponse
// @Router       /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}
	if raw := c.Query("posted_by"); raw != "" {
		postedBy, err := uuid.Parse(raw)
		if err != nil {
			respondBadRequest(c, "Invalid posted_by ID format")
			return
		}
		req.PostedBy = &postedBy
	}
	if userID, err := middleware.GetUserIDFromContext(c); err == nil {
		req.UserID = &userID
		req.UserRole, _ = middleware.GetUserRoleFromContext(c)
	}

	jobs, err := h.service.ListJobs(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "ListJobs", err)
		return
	}

	resp := make([]dto.JobResponse, len(jobs))
	for i := range jobs {
		resp[i] = services.MapJobToResponse(&jobs[i])
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateJobStatus godoc
// @Summary      Close or reopen a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string                     true "Job ID" Format(uuid)
// @Param        body body      dto.UpdateJobStatusRequest true "New status"
// @Success      200  {object}  dto.JobResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /jobs/{id}/status [patch]
// @Security     BearerAuth
func (h *JobHandler) UpdateJobStatus(c *gin.Context) {
	userID, role, ok := caller(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id", "job")
	if !ok {
		return
	}

	var req dto.UpdateJobStatusRequest
	req.ID = jobID
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.UserID = userID
	req.UserRole = role

	job, err := h.service.UpdateJobStatus(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "UpdateJobStatus", err)
		return
	}
	c.JSON(http.StatusOK, services.MapJobToResponse(job))
}

// DeleteJob godoc
// @Summary      Delete a job
// @Description  Applications to the job are kept and flagged job_removed.
// @Tags         jobs
// @Param        id path string true "Job ID" Format(uuid)
// @Success      204
// @Failure      400 {object}  ErrorResponse
// @Failure      403 {object}  ErrorResponse
// @Failure      404 {object}  ErrorResponse
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, role, ok := caller(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id", "job")
	if !ok {
		return
	}

	req := dto.DeleteJobRequest{ID: jobID, UserID: userID, UserRole: role}
	if err := h.service.DeleteJob(c.Request.Context(), &req); err != nil {
		respondError(c, "DeleteJob", err)
		return
	}
	c.Status(http.StatusNoContent)
}
