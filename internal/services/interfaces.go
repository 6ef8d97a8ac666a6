package services

import (
	"context"

	"apthire/internal/models"
	"apthire/internal/notifier"
	"apthire/internal/transport/dto"

	"github.com/google/uuid"
)

// AuthService covers password signup, verification and credential changes.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.AuthResponse, error)
	ResendOTP(ctx context.Context, req *dto.EmailRequest) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	ForgotPassword(ctx context.Context, req *dto.EmailRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error
	Logout(ctx context.Context, req *dto.LogoutRequest) error
}

// OAuthService links external identities and assigns deferred roles.
type OAuthService interface {
	LoginURL() (url string, state string, err error)
	Callback(ctx context.Context, req *dto.OAuthCodeRequest) (*dto.AuthResponse, error)
	LinkOrCreate(ctx context.Context, profile *dto.OAuthProfile) (*dto.AuthResponse, error)
	AssignRole(ctx context.Context, req *dto.AssignRoleRequest) (*dto.AuthResponse, error)
}

// UserService defines the interface for user-related business logic.
type UserService interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*models.User, error)
	Delete(ctx context.Context, req *dto.DeleteUserRequest) error
}

// JobService defines the interface for job-related business logic.
type JobService interface {
	CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error)
	GetJobByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	ListJobs(ctx context.Context, req *dto.ListJobsRequest) ([]models.Job, error)
	UpdateJobStatus(ctx context.Context, req *dto.UpdateJobStatusRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, req *dto.DeleteJobRequest) error
}

// JobApplicationService defines the interface for the application pipeline.
type JobApplicationService interface {
	Apply(ctx context.Context, req *dto.ApplyToJobRequest) (*models.Application, error)
	ListApplications(ctx context.Context, req *dto.ListApplicationsRequest) ([]models.ApplicationWithJob, error)
	ListMyApplications(ctx context.Context, req *dto.ListApplicationsRequest) ([]models.ApplicationWithJob, error)
	UpdateStatus(ctx context.Context, req *dto.UpdateApplicationStatusRequest) (*models.Application, error)
}

// LeadService handles contact-form submissions.
type LeadService interface {
	Create(ctx context.Context, req *dto.CreateLeadRequest) (*models.Lead, error)
	List(ctx context.Context, req *dto.ListLeadsRequest) ([]models.Lead, error)
	Delete(ctx context.Context, req *dto.DeleteLeadRequest) error
}

// DashboardService builds role-scoped counters.
type DashboardService interface {
	Get(ctx context.Context, req *dto.DashboardRequest) (*dto.DashboardResponse, error)
}

// Notifier delivers one-time codes to a user.
type Notifier interface {
	SendOTP(ctx context.Context, to, name, otp string, purpose notifier.Purpose) error
}

// LeadAlerter tells admins about new leads.
type LeadAlerter interface {
	NotifyLead(ctx context.Context, lead *models.Lead) error
}

// OAuthProvider is an external identity provider.
type OAuthProvider interface {
	AuthCodeURL() (url string, state string, err error)
	Exchange(ctx context.Context, code string) (*dto.OAuthProfile, error)
}
