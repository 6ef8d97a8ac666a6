package dto

import (
	"apthire/internal/models"

	"github.com/google/uuid"
)

// DashboardResponse holds role-scoped counters. Sections that do not apply
// to the viewer's role are omitted.
type DashboardResponse struct {
	Role                 models.Role                      `json:"role"`
	UsersByRole          map[models.Role]int              `json:"users_by_role,omitempty"`
	JobsByStatus         map[models.JobStatus]int         `json:"jobs_by_status,omitempty"`
	ApplicationsByStatus map[models.ApplicationStatus]int `json:"applications_by_status"`
	Leads                *int                             `json:"leads,omitempty"`
}

// DashboardRequest identifies the viewer.
type DashboardRequest struct {
	UserID   uuid.UUID
	UserRole models.Role
}
