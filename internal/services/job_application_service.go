package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"apthire/internal/models"
	"apthire/internal/storage"
	"apthire/internal/transport/dto"

	"github.com/jackc/pgx/v5"
)

type jobApplicationService struct {
	appRepo   storage.ApplicationRepository
	jobRepo   storage.JobRepository
	userRepo  storage.UserRepository
	txManager storage.TxManager
}

// NewJobApplicationService creates a new instance of JobApplicationService.
func NewJobApplicationService(appRepo storage.ApplicationRepository, jobRepo storage.JobRepository, userRepo storage.UserRepository, txManager storage.TxManager) JobApplicationService {
	return &jobApplicationService{
		appRepo:   appRepo,
		jobRepo:   jobRepo,
		userRepo:  userRepo,
		txManager: txManager,
	}
}

// Apply submits a candidate's application. Duplicates are rejected by the
// store's unique index rather than a prior lookup.
func (s *jobApplicationService) Apply(ctx context.Context, req *dto.ApplyToJobRequest) (*models.Application, error) {
	if req.UserRole != models.RoleCandidate {
		return nil, fmt.Errorf("%w: only candidates can apply", ErrForbidden)
	}

	job, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching job %s for application", req.JobID))
	}
	if job.Status != models.JobStatusActive {
		log.Printf("ApplyToJob: Attempt to apply to closed job %s", req.JobID)
		return nil, fmt.Errorf("%w: job is not accepting applications", ErrValidation)
	}

	applicant, err := s.userRepo.GetByID(ctx, req.ApplicantID)
	if err != nil {
		return nil, mapRepoError(err, "fetching applicant")
	}

	resumeURL := strings.TrimSpace(req.ResumeURL)
	if resumeURL == "" {
		resumeURL = applicant.Profile.ResumeURL
	}

	jobID := job.ID
	app, err := s.appRepo.Create(ctx, &models.Application{
		JobID:          &jobID,
		ApplicantID:    applicant.ID,
		ApplicantName:  applicant.Name,
		ApplicantEmail: applicant.Email,
		ResumeURL:      resumeURL,
		CoverNote:      strings.TrimSpace(req.CoverNote),
		Status:         models.ApplicationStatusApplied,
	})
	if err != nil {
		return nil, mapRepoError(err, "creating application")
	}
	log.Printf("ApplyToJob: Candidate %s applied to job %s", applicant.ID, job.ID)
	return app, nil
}

// ListApplications returns everything for admins and, for recruiters, the
// applications to the jobs they own.
func (s *jobApplicationService) ListApplications(ctx context.Context, req *dto.ListApplicationsRequest) ([]models.ApplicationWithJob, error) {
	switch req.UserRole {
	case models.RoleAdmin:
		apps, err := s.appRepo.ListAll(ctx)
		if err != nil {
			return nil, mapRepoError(err, "listing applications")
		}
		return apps, nil
	case models.RoleRecruiter:
		jobIDs, err := s.jobRepo.ListIDsByOwner(ctx, req.UserID)
		if err != nil {
			return nil, mapRepoError(err, "listing owned jobs")
		}
		apps, err := s.appRepo.ListByJobIDs(ctx, jobIDs)
		if err != nil {
			return nil, mapRepoError(err, "listing applications")
		}
		return apps, nil
	default:
		return nil, ErrForbidden
	}
}

func (s *jobApplicationService) ListMyApplications(ctx context.Context, req *dto.ListApplicationsRequest) ([]models.ApplicationWithJob, error) {
	if req.UserRole != models.RoleCandidate {
		return nil, ErrForbidden
	}
	apps, err := s.appRepo.ListByApplicant(ctx, req.UserID)
	if err != nil {
		return nil, mapRepoError(err, "listing own applications")
	}
	return apps, nil
}

// UpdateStatus moves an application. The role gate runs before any lookup;
// recruiters must own the application's job.
func (s *jobApplicationService) UpdateStatus(ctx context.Context, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown application status %q", ErrValidation, req.Status)
	}
	if !isRecruiterOrAdmin(req.UserRole) {
		return nil, ErrForbidden
	}

	var updated *models.Application
	err := s.txManager.RunInTx(ctx, func(tx pgx.Tx) error {
		txAppRepo := s.appRepo.WithTx(tx)

		app, err := txAppRepo.GetByID(ctx, req.ApplicationID)
		if err != nil {
			return mapRepoError(err, "fetching application")
		}

		if req.UserRole != models.RoleAdmin {
			if app.JobID == nil {
				return fmt.Errorf("%w: job no longer exists", ErrForbidden)
			}
			if _, err := loadOwnedJob(ctx, s.jobRepo.WithTx(tx), *app.JobID, req.UserID, req.UserRole); err != nil {
				return err
			}
		}

		if !models.CanTransition(app.Status, req.Status) {
			return fmt.Errorf("%w: from %s to %s", ErrInvalidTransition, app.Status, req.Status)
		}

		updated, err = txAppRepo.UpdateStatus(ctx, app.ID, req.Status)
		if err != nil {
			return mapRepoError(err, "updating application status")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("UpdateApplicationStatus: Application %s set to %s by %s", updated.ID, updated.Status, req.UserID)
	return updated, nil
}
