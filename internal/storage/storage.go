package storage

import (
	"context"
	"time"

	"apthire/internal/models"
	"apthire/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TxManager runs fn inside a single database transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	WithTx(tx pgx.Tx) UserRepository
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	SetOTP(ctx context.Context, id uuid.UUID, otpHash string, expiresAt time.Time) error
	MarkVerified(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, consumeOTP bool) error
	UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error)
	AssignRoleIfUnset(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error)
	LinkGoogleID(ctx context.Context, id uuid.UUID, googleID string) error
	UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByRole(ctx context.Context) (map[models.Role]int, error)
}

// JobRepository defines the interface for job posting operations.
type JobRepository interface {
	WithTx(tx pgx.Tx) JobRepository
	Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	List(ctx context.Context, req *dto.ListJobsRequest) ([]models.Job, error)
	ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) (*models.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, ownerID *uuid.UUID) (map[models.JobStatus]int, error)
}

// ApplicationRepository defines the interface for job application operations.
// Create must rely on the (job_id, applicant_id) unique index and report
// violations as ErrConflict.
type ApplicationRepository interface {
	WithTx(tx pgx.Tx) ApplicationRepository
	Create(ctx context.Context, app *models.Application) (*models.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListAll(ctx context.Context) ([]models.ApplicationWithJob, error)
	ListByJobIDs(ctx context.Context, jobIDs []uuid.UUID) ([]models.ApplicationWithJob, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]models.ApplicationWithJob, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) (*models.Application, error)
	MarkJobRemoved(ctx context.Context, jobID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, filter *dto.ApplicationCountFilter) (map[models.ApplicationStatus]int, error)
}

// LeadRepository defines the interface for contact-form submissions.
type LeadRepository interface {
	Create(ctx context.Context, req *dto.CreateLeadRequest) (*models.Lead, error)
	List(ctx context.Context, req *dto.ListLeadsRequest) ([]models.Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}
