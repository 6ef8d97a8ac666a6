package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// scanString accepts the text representations pgx hands to a sql.Scanner.
func scanString(value interface{}, typeName string) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("failed to scan %s: value is not string or []byte", typeName)
	}
}

// --- Role Enum ---
type Role string

const (
	RoleUnset     Role = ""
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// IsValid reports whether r is one of the known roles, including unset.
func (r Role) IsValid() bool {
	switch r {
	case RoleUnset, RoleCandidate, RoleRecruiter, RoleAdmin:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for Role
func (r *Role) Scan(value interface{}) error {
	strVal, err := scanString(value, "Role")
	if err != nil {
		return err
	}
	v := Role(strVal)
	if !v.IsValid() {
		return fmt.Errorf("invalid Role value: %s", strVal)
	}
	*r = v
	return nil
}

// Value implements the driver.Valuer interface for Role
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// --- Experience Level Enum ---
type ExperienceLevel string

const (
	ExperienceFresher      ExperienceLevel = "fresher"
	ExperienceOneToThree   ExperienceLevel = "1-3 years"
	ExperienceThreeToFive  ExperienceLevel = "3-5 years"
	ExperienceFivePlus     ExperienceLevel = "5+ years"
	ExperienceLevelUnknown ExperienceLevel = ""
)

// --- Job Status Enum ---
type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
)

// Scan implements the sql.Scanner interface for JobStatus
func (js *JobStatus) Scan(value interface{}) error {
	strVal, err := scanString(value, "JobStatus")
	if err != nil {
		return err
	}
	v := JobStatus(strVal)
	switch v {
	case JobStatusActive, JobStatusClosed:
		*js = v
		return nil
	default:
		return fmt.Errorf("invalid JobStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for JobStatus
func (js JobStatus) Value() (driver.Value, error) {
	return string(js), nil
}

// --- Employment Type Enum ---
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "Full-time"
	EmploymentPartTime   EmploymentType = "Part-time"
	EmploymentContract   EmploymentType = "Contract"
	EmploymentInternship EmploymentType = "Internship"
)

// Scan implements the sql.Scanner interface for EmploymentType
func (et *EmploymentType) Scan(value interface{}) error {
	strVal, err := scanString(value, "EmploymentType")
	if err != nil {
		return err
	}
	v := EmploymentType(strVal)
	switch v {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		*et = v
		return nil
	default:
		return fmt.Errorf("invalid EmploymentType value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for EmploymentType
func (et EmploymentType) Value() (driver.Value, error) {
	return string(et), nil
}

// --- Application Status Enum ---
type ApplicationStatus string

const (
	ApplicationStatusApplied     ApplicationStatus = "applied"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusHired       ApplicationStatus = "hired"
)

// ApplicationStatuses lists every status in pipeline order.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusApplied,
	ApplicationStatusShortlisted,
	ApplicationStatusRejected,
	ApplicationStatusHired,
}

// IsValid reports enum membership.
func (as ApplicationStatus) IsValid() bool {
	for _, s := range ApplicationStatuses {
		if s == as {
			return true
		}
	}
	return false
}

// Scan implements the sql.Scanner interface for ApplicationStatus
func (as *ApplicationStatus) Scan(value interface{}) error {
	strVal, err := scanString(value, "ApplicationStatus")
	if err != nil {
		return err
	}
	v := ApplicationStatus(strVal)
	if !v.IsValid() {
		return fmt.Errorf("invalid ApplicationStatus value: %s", strVal)
	}
	*as = v
	return nil
}

// Value implements the driver.Valuer interface for ApplicationStatus
func (as ApplicationStatus) Value() (driver.Value, error) {
	return string(as), nil
}

// ApplicationTransitions is the from-state x to-state permission table used by
// status updates. Every combination is currently allowed; restricting the
// pipeline means flipping entries here.
var ApplicationTransitions = map[ApplicationStatus]map[ApplicationStatus]bool{
	ApplicationStatusApplied:     {ApplicationStatusApplied: true, ApplicationStatusShortlisted: true, ApplicationStatusRejected: true, ApplicationStatusHired: true},
	ApplicationStatusShortlisted: {ApplicationStatusApplied: true, ApplicationStatusShortlisted: true, ApplicationStatusRejected: true, ApplicationStatusHired: true},
	ApplicationStatusRejected:    {ApplicationStatusApplied: true, ApplicationStatusShortlisted: true, ApplicationStatusRejected: true, ApplicationStatusHired: true},
	ApplicationStatusHired:       {ApplicationStatusApplied: true, ApplicationStatusShortlisted: true, ApplicationStatusRejected: true, ApplicationStatusHired: true},
}

// CanTransition consults ApplicationTransitions.
func CanTransition(from, to ApplicationStatus) bool {
	return ApplicationTransitions[from][to]
}

// Profile is the candidate-facing part of a user, stored as a JSON document.
type Profile struct {
	Headline        string            `json:"headline,omitempty"`
	Location        string            `json:"location,omitempty"`
	Phone           string            `json:"phone,omitempty"`
	ResumeURL       string            `json:"resume_url,omitempty"`
	Summary         string            `json:"summary,omitempty"`
	Skills          []string          `json:"skills,omitempty"`
	ExperienceLevel ExperienceLevel   `json:"experience_level,omitempty"`
	SocialLinks     map[string]string `json:"social_links,omitempty"`
}

// User represents an account in the system
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Email        string     `json:"email" db:"email"`
	PasswordHash *string    `json:"-" db:"password_hash"` // nil for OAuth-only accounts
	Role         Role       `json:"role" db:"role"`
	Verified     bool       `json:"verified" db:"verified"`
	OTPHash      *string    `json:"-" db:"otp_hash"`
	OTPExpiresAt *time.Time `json:"-" db:"otp_expires_at"`
	GoogleID     *string    `json:"-" db:"google_id"`
	Profile      Profile    `json:"profile" db:"profile"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// HasPassword reports whether the account can log in with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// Job represents a posting owned by a recruiter or admin.
type Job struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	Title          string         `json:"title" db:"title"`
	Company        string         `json:"company" db:"company"`
	Skills         []string       `json:"skills" db:"skills"`
	Experience     string         `json:"experience" db:"experience"`
	Location       string         `json:"location" db:"location"`
	Salary         string         `json:"salary" db:"salary"`
	Description    string         `json:"description" db:"description"`
	Requirements   string         `json:"requirements" db:"requirements"`
	EmploymentType EmploymentType `json:"employment_type" db:"employment_type"`
	PostedBy       uuid.UUID      `json:"posted_by" db:"posted_by"`
	Status         JobStatus      `json:"status" db:"status"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

// Application is a candidate's submission to a job. ApplicantName and
// ApplicantEmail are copied at submission time.
type Application struct {
	ID             uuid.UUID         `json:"id" db:"id"`
	JobID          *uuid.UUID        `json:"job_id" db:"job_id"` // nil once the job is deleted
	ApplicantID    uuid.UUID         `json:"applicant_id" db:"applicant_id"`
	ApplicantName  string            `json:"applicant_name" db:"applicant_name"`
	ApplicantEmail string            `json:"applicant_email" db:"applicant_email"`
	ResumeURL      string            `json:"resume_url" db:"resume_url"`
	CoverNote      string            `json:"cover_note" db:"cover_note"`
	Status         ApplicationStatus `json:"status" db:"status"`
	JobRemoved     bool              `json:"job_removed" db:"job_removed"`
	CreatedAt      time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at" db:"updated_at"`
}

// ApplicationWithJob is an application joined with the job it targets.
// Job fields are empty when the job has been removed.
type ApplicationWithJob struct {
	Application
	JobTitle    string     `json:"job_title"`
	JobCompany  string     `json:"job_company"`
	JobPostedBy *uuid.UUID `json:"job_posted_by"`
}

// Lead is a contact-form submission.
type Lead struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
