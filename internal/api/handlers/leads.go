package handlers

import (
	"net/http"

	"apthire/internal/services"
	"apthire/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// LeadHandler serves the contact form and the admin lead inbox.
type LeadHandler struct {
	service   services.LeadService
	validator *validator.Validate
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(service services.LeadService, validate *validator.Validate) *LeadHandler {
	return &LeadHandler{
		service:   service,
		validator: validate,
	}
}

// CreateLead godoc
// @Summary      Submit the contact form
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        lead body      dto.CreateLeadRequest true "Contact details"
// @Success      201  {object}  models.Lead
// @Failure      400  {object}  ErrorResponse
// @Failure      429  {object}  ErrorResponse
// @Router       /leads [post]
func (h *LeadHandler) CreateLead(c *gin.Context) {
	var req dto.CreateLeadRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	lead, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "CreateLead", err)
		return
	}
	c.JSON(http.StatusCreated, lead)
}

// ListLeads godoc
// @Summary      List leads
// @Tags         leads
// @Produce      json
// @Param        limit  query int false "Pagination limit" default(50)
// @Param        offset query int false "Pagination offset" default(0)
// @Success      200 {array}   models.Lead
// @Failure      401 {object}  ErrorResponse
// @Failure      403 {object}  ErrorResponse
// @Router       /leads [get]
// @Security     BearerAuth
func (h *LeadHandler) ListLeads(c *gin.Context) {
	var req dto.ListLeadsRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}

	leads, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "ListLeads", err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

// DeleteLead godoc
// @Summary      Delete a lead
// @Tags         leads
// @Param        id path string true "Lead ID" Format(uuid)
// @Success      204
// @Failure      400 {object}  ErrorResponse
// @Failure      404 {object}  ErrorResponse
// @Router       /leads/{id} [delete]
// @Security     BearerAuth
func (h *LeadHandler) DeleteLead(c *gin.Context) {
	leadID, ok := parseIDParam(c, "id", "lead")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), &dto.DeleteLeadRequest{ID: leadID}); err != nil {
		respondError(c, "DeleteLead", err)
		return
	}
	c.Status(http.StatusNoContent)
}
