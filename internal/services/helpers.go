package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"apthire/internal/models"
	"apthire/internal/storage"
	"apthire/internal/transport/dto"
)

// mapRepoError maps storage errors to service errors
func mapRepoError(err error, operation string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, operation)
	}
	if errors.Is(err, storage.ErrDuplicateEmail) {
		return fmt.Errorf("%w: %s (email already registered)", ErrConflict, operation)
	}
	if errors.Is(err, storage.ErrConflict) {
		return fmt.Errorf("%w: %s (%v)", ErrConflict, operation, err)
	}
	log.Printf("Unexpected repository error during %s: %v", operation, err)
	return fmt.Errorf("internal error during %s: %w", operation, err)
}

// normalizeEmail is the canonical form used for storage and lookups.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AdminAllowList is the set of emails that always get the admin role.
// It is built once at startup and only read afterwards.
type AdminAllowList struct {
	emails map[string]struct{}
}

// NewAdminAllowList builds an allow-list from raw addresses.
func NewAdminAllowList(emails []string) *AdminAllowList {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		if e = normalizeEmail(e); e != "" {
			set[e] = struct{}{}
		}
	}
	return &AdminAllowList{emails: set}
}

// Contains reports whether email is allow-listed. A nil list contains nothing.
func (l *AdminAllowList) Contains(email string) bool {
	if l == nil {
		return false
	}
	_, ok := l.emails[normalizeEmail(email)]
	return ok
}

// resolveSignupRole decides the stored role for a password signup.
// Allow-listed emails become admin; anyone else asking for admin becomes a candidate.
func resolveSignupRole(allowList *AdminAllowList, email string, requested models.Role) (models.Role, error) {
	if !requested.IsValid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, requested)
	}
	switch {
	case allowList.Contains(email):
		return models.RoleAdmin, nil
	case requested == models.RoleAdmin, requested == models.RoleUnset:
		return models.RoleCandidate, nil
	default:
		return requested, nil
	}
}

func isRecruiterOrAdmin(role models.Role) bool {
	return role == models.RoleRecruiter || role == models.RoleAdmin
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// MapUserToResponse builds the public view of a user.
func MapUserToResponse(user *models.User) dto.UserResponse {
	profile := user.Profile
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Verified:  user.Verified,
		HasOAuth:  user.GoogleID != nil,
		Profile:   profile,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// MapJobToResponse builds the public view of a job.
func MapJobToResponse(job *models.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:             job.ID,
		Title:          job.Title,
		Company:        job.Company,
		Skills:         job.Skills,
		Experience:     job.Experience,
		Location:       job.Location,
		Salary:         job.Salary,
		Description:    job.Description,
		Requirements:   job.Requirements,
		EmploymentType: job.EmploymentType,
		PostedBy:       job.PostedBy,
		Status:         job.Status,
		CreatedAt:      job.CreatedAt,
		UpdatedAt:      job.UpdatedAt,
	}
}

// MapApplicationToResponse builds the public view of an application.
func MapApplicationToResponse(app *models.ApplicationWithJob) dto.JobApplicationResponse {
	return dto.JobApplicationResponse{
		ID:             app.ID,
		JobID:          app.JobID,
		ApplicantID:    app.ApplicantID,
		ApplicantName:  app.ApplicantName,
		ApplicantEmail: app.ApplicantEmail,
		ResumeURL:      app.ResumeURL,
		CoverNote:      app.CoverNote,
		Status:         app.Status,
		JobRemoved:     app.JobRemoved,
		JobTitle:       app.JobTitle,
		JobCompany:     app.JobCompany,
		JobPostedBy:    app.JobPostedBy,
		CreatedAt:      app.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      app.UpdatedAt.Format(time.RFC3339),
	}
}

func newAuthResponse(user *models.User, token string) *dto.AuthResponse {
	return &dto.AuthResponse{
		Token:        token,
		User:         MapUserToResponse(user),
		RoleRequired: user.Role == models.RoleUnset,
	}
}
