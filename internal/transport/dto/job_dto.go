package dto

import (
	"time"

	"apthire/internal/models"

	"github.com/google/uuid"
)

// CreateJobRequest defines the structure for creating a new job posting.
type CreateJobRequest struct {
	Title          string                `json:"title" validate:"required,max=200"`
	Company        string                `json:"company" validate:"required,max=200"`
	Skills         []string              `json:"skills" validate:"required,min=1,max=50,dive,required,max=60"`
	Experience     string                `json:"experience" validate:"omitempty,max=50"`
	Location       string                `json:"location" validate:"omitempty,max=200"`
	Salary         string                `json:"salary" validate:"omitempty,max=100"`
	Description    string                `json:"description" validate:"required,max=10000"`
	Requirements   string                `json:"requirements" validate:"omitempty,max=10000"`
	EmploymentType models.EmploymentType `json:"employment_type" validate:"required,oneof=Full-time Part-time Contract Internship"`
	PostedBy       uuid.UUID             `json:"-"` // Set from auth context
	UserRole       models.Role           `json:"-"` // Set from auth context
}

// ListJobsRequest defines the filters for listing jobs. Skill and Location
// are free text matched case-insensitively; Match applies the candidate
// matching rules on top of the other filters.
type ListJobsRequest struct {
	Skill    string            `form:"skill" validate:"omitempty,max=100"`
	Location string            `form:"location" validate:"omitempty,max=100"`
	PostedBy *uuid.UUID        `form:"-"` // Parsed from the posted_by query parameter
	Status   *models.JobStatus `form:"status" validate:"omitempty,oneof=active closed"`
	Match    bool              `form:"match"`
	Limit    int               `form:"limit,default=50" validate:"omitempty,gte=0,lte=200"`
	Offset   int               `form:"offset,default=0" validate:"omitempty,gte=0"`
	UserID   *uuid.UUID        `form:"-"` // Set when the caller is authenticated
	UserRole models.Role       `form:"-"` // Set when the caller is authenticated
}

// UpdateJobStatusRequest closes or reopens a job.
type UpdateJobStatusRequest struct {
	ID       uuid.UUID        `json:"-" validate:"required"`
	Status   models.JobStatus `json:"status" validate:"required,oneof=active closed"`
	UserID   uuid.UUID        `json:"-"`
	UserRole models.Role      `json:"-"`
}

// DeleteJobRequest defines the structure for deleting a job.
type DeleteJobRequest struct {
	ID       uuid.UUID   `json:"-" validate:"required"`
	UserID   uuid.UUID   `json:"-"`
	UserRole models.Role `json:"-"`
}

// JobResponse defines the standard job data returned to the client.
type JobResponse struct {
	ID             uuid.UUID             `json:"id"`
	Title          string                `json:"title"`
	Company        string                `json:"company"`
	Skills         []string              `json:"skills"`
	Experience     string                `json:"experience"`
	Location       string                `json:"location"`
	Salary         string                `json:"salary"`
	Description    string                `json:"description"`
	Requirements   string                `json:"requirements"`
	EmploymentType models.EmploymentType `json:"employment_type"`
	PostedBy       uuid.UUID             `json:"posted_by"`
	Status         models.JobStatus      `json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}
