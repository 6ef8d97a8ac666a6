package dto

import (
	"apthire/internal/models"

	"github.com/google/uuid"
)

// ApplyToJobRequest is built from the path job id, the body and the auth context.
type ApplyToJobRequest struct {
	JobID       uuid.UUID   `json:"-" validate:"required"`
	CoverNote   string      `json:"cover_note" validate:"omitempty,max=5000"`
	ResumeURL   string      `json:"resume_url" validate:"omitempty,url"`
	ApplicantID uuid.UUID   `json:"-"`
	UserRole    models.Role `json:"-"`
}

// ListApplicationsRequest identifies the viewer whose scope is listed.
type ListApplicationsRequest struct {
	UserID   uuid.UUID
	UserRole models.Role
}

// UpdateApplicationStatusRequest moves an application through the pipeline.
type UpdateApplicationStatusRequest struct {
	ApplicationID uuid.UUID                `json:"-" validate:"required"`
	Status        models.ApplicationStatus `json:"status" validate:"required"`
	UserID        uuid.UUID                `json:"-"`
	UserRole      models.Role              `json:"-"`
}

// ApplicationCountFilter scopes dashboard counts. A nil JobIDs slice means
// "all jobs"; a non-nil empty slice matches nothing.
type ApplicationCountFilter struct {
	JobIDs      []uuid.UUID
	ApplicantID *uuid.UUID
}

// JobApplicationResponse is the public view of an application.
type JobApplicationResponse struct {
	ID             uuid.UUID                `json:"id"`
	JobID          *uuid.UUID               `json:"job_id"`
	ApplicantID    uuid.UUID                `json:"applicant_id"`
	ApplicantName  string                   `json:"applicant_name"`
	ApplicantEmail string                   `json:"applicant_email"`
	ResumeURL      string                   `json:"resume_url"`
	CoverNote      string                   `json:"cover_note,omitempty"`
	Status         models.ApplicationStatus `json:"status"`
	JobRemoved     bool                     `json:"job_removed"`
	JobTitle       string                   `json:"job_title,omitempty"`
	JobCompany     string                   `json:"job_company,omitempty"`
	JobPostedBy    *uuid.UUID               `json:"job_posted_by,omitempty"`
	CreatedAt      string                   `json:"created_at"`
	UpdatedAt      string                   `json:"updated_at"`
}
