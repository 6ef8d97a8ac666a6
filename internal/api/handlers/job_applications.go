package handlers

import (
	"net/http"

	"apthire/internal/models"
	"apthire/internal/services"
	"apthire/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// JobApplicationHandler holds dependencies for the application pipeline.
type JobApplicationHandler struct {
	service   services.JobApplicationService
	validator *validator.Validate
}

// NewJobApplicationHandler creates a new JobApplicationHandler.
func NewJobApplicationHandler(service services.JobApplicationService, validate *validator.Validate) *JobApplicationHandler {
	return &JobApplicationHandler{
		service:   service,
		validator: validate,
	}
}

func applicationResponses(apps []models.ApplicationWithJob) []dto.JobApplicationResponse {
	resp := make([]dto.JobApplicationResponse, len(apps))
	for i := range apps {
		resp[i] = services.MapApplicationToResponse(&apps[i])
	}
	return resp
}

// ApplyToJob godoc
// @Summary      Apply to a job
// @Description  Candidates only. The body is optional; resume_url defaults to the profile resume. One application per candidate and job.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id   path      string                 true  "Job ID" Format(uuid)
// @Param        body body      dto.ApplyToJobRequest  false "Cover note and resume"
// @Success      201  {object}  dto.JobApplicationResponse
// @Failure      400  {object}  ErrorResponse "Job closed or invalid input"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Already applied"
// @Router       /jobs/{id}/apply [post]
// @Security     BearerAuth
func (h *JobApplicationHandler) ApplyToJob(c *gin.Context) {
	userID, role, ok := caller(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id", "job")
	if !ok {
		return
	}

	var req dto.ApplyToJobRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}
	req.JobID = jobID
	req.ApplicantID = userID
	req.UserRole = role
	if !validate(c, h.validator, &req) {
		return
	}

	app, err := h.service.Apply(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "ApplyToJob", err)
		return
	}
	c.JSON(http.StatusCreated, services.MapApplicationToResponse(&models.ApplicationWithJob{Application: *app}))
}

// ListApplications godoc
// @Summary      List applications
// @Description  Admins see every application, recruiters those to their own jobs.
// @Tags         applications
// @Produce      json
// @Success      200 {array}   dto.JobApplicationResponse
// @Failure      401 {object}  ErrorResponse
// @Failure      403 {object}  ErrorResponse
// @Router       /applications [get]
// @Security     BearerAuth
func (h *JobApplicationHandler) ListApplications(c *gin.Context) {
	userID, role, ok := caller(c)
	if !ok {
		return
	}

	apps, err := h.service.ListApplications(c.Request.Context(), &dto.ListApplicationsRequest{UserID: userID, UserRole: role})
	if err != nil {
		respondError(c, "ListApplications", err)
		return
	}
	c.JSON(http.StatusOK, applicationResponses(apps))
}

// ListMyApplications godoc
// @Summary      List own applications
// @Tags         applications
// @Produce      json
// @Success      200 {array}   dto.JobApplicationResponse
// @Failure      401 {object}  ErrorResponse
// @Failure      403 {object}  ErrorResponse
// @Router       /applications/mine [get]
// @Security     BearerAuth
func (h *JobApplicationHandler) ListMyApplications(c *gin.Context) {
	userID, role, ok := caller(c)
	if !ok {
		return
	}

	apps, err := h.service.ListMyApplications(c.Request.Context(), &dto.ListApplicationsRequest{UserID: userID, UserRole: role})
	if err != nil {
		respondError(c, "ListMyApplications", err)
		return
	}
	c.JSON(http.StatusOK, applicationResponses(apps))
}

// UpdateApplicationStatus godoc
// @Summary      Change an application's status
// @Description  Recruiters may only update applications to their own jobs. Applications to removed jobs are read-only.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id   path      string                             true "Application ID" Format(uuid)
// @Param        body body      dto.UpdateApplicationStatusRequest true "applied, shortlisted, rejected or hired"
// @Success      200  {object}  dto.JobApplicationResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /applications/{id}/status [patch]
// @Security     BearerAuth
func (h *JobApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	userID, role, ok := caller(c)
	if !ok {
		return
	}
	appID, ok := parseIDParam(c, "id", "application")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	req.ApplicationID = appID
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.UserID = userID
	req.UserRole = role

	app, err := h.service.UpdateStatus(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "UpdateApplicationStatus", err)
		return
	}
	c.JSON(http.StatusOK, services.MapApplicationToResponse(&models.ApplicationWithJob{Application: *app}))
}
