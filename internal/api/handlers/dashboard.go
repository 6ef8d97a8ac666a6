package handlers

import (
	"net/http"

	"apthire/internal/services"
	"apthire/internal/transport/dto"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves role-scoped counters.
type DashboardHandler struct {
	service services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetDashboard godoc
// @Summary      Dashboard counters
// @Description  Admins get platform totals, recruiters their jobs and the applications to them, candidates their own applications.
// @Tags         dashboard
// @Produce      json
// @Success      200 {object}  dto.DashboardResponse
// @Failure      401 {object}  ErrorResponse
// @Failure      403 {object}  ErrorResponse "Role not chosen yet"
// @Router       /dashboard [get]
// @Security     BearerAuth
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, role, ok := caller(c)
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), &dto.DashboardRequest{UserID: userID, UserRole: role})
	if err != nil {
		respondError(c, "GetDashboard", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
