package services

import (
	"context"
	"fmt"
	"log"

	"apthire/internal/models"
	"apthire/internal/storage"
	"apthire/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type jobService struct {
	jobRepo   storage.JobRepository
	userRepo  storage.UserRepository
	appRepo   storage.ApplicationRepository
	txManager storage.TxManager
}

// NewJobService creates a new instance of JobService.
func NewJobService(jobRepo storage.JobRepository, userRepo storage.UserRepository, appRepo storage.ApplicationRepository, txManager storage.TxManager) JobService {
	return &jobService{
		jobRepo:   jobRepo,
		userRepo:  userRepo,
		appRepo:   appRepo,
		txManager: txManager,
	}
}

func (s *jobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	if !isRecruiterOrAdmin(req.UserRole) {
		log.Printf("CreateJob: Forbidden attempt by user %s with role %q", req.PostedBy, req.UserRole)
		return nil, ErrForbidden
	}
	req.Skills = cleanStrings(req.Skills)
	if len(req.Skills) == 0 {
		return nil, fmt.Errorf("%w: at least one skill is required", ErrValidation)
	}

	job, err := s.jobRepo.Create(ctx, req)
	if err != nil {
		log.Printf("JobService: Error creating job: %v", err)
		return nil, mapRepoError(err, "creating job")
	}
	return job, nil
}

func (s *jobService) GetJobByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("JobService: Error getting job %s: %v", id, err)
		return nil, mapRepoError(err, "getting job by ID")
	}
	return job, nil
}

// ListJobs applies the store-side filters and, when requested, the
// candidate matching rules. Matching is best effort: without a usable
// candidate profile the filtered list is returned as is.
func (s *jobService) ListJobs(ctx context.Context, req *dto.ListJobsRequest) ([]models.Job, error) {
	if !canListStatus(req) {
		log.Printf("ListJobs: Forbidden attempt to list %s jobs by role %q", *req.Status, req.UserRole)
		return nil, ErrForbidden
	}

	candidate, ok := s.matchCandidate(ctx, req)
	if !ok {
		jobs, err := s.jobRepo.List(ctx, req)
		if err != nil {
			log.Printf("JobService: Error listing jobs: %v", err)
			return nil, mapRepoError(err, "listing jobs")
		}
		return jobs, nil
	}

	// Paginate after matching so pages stay full.
	unpaged := *req
	unpaged.Limit, unpaged.Offset = 0, 0
	jobs, err := s.jobRepo.List(ctx, &unpaged)
	if err != nil {
		log.Printf("JobService: Error listing jobs for matching: %v", err)
		return nil, mapRepoError(err, "listing jobs")
	}
	return paginate(FilterJobs(candidate, jobs), req.Offset, req.Limit), nil
}

func (s *jobService) matchCandidate(ctx context.Context, req *dto.ListJobsRequest) (MatchCandidate, bool) {
	if !req.Match || req.UserID == nil {
		return MatchCandidate{}, false
	}
	user, err := s.userRepo.GetByID(ctx, *req.UserID)
	if err != nil {
		log.Printf("ListJobs: Skipping matching, profile lookup for %s failed: %v", *req.UserID, err)
		return MatchCandidate{}, false
	}
	if user.Role != models.RoleCandidate {
		return MatchCandidate{}, false
	}
	return CandidateFromProfile(user.Profile), true
}

// canListStatus reports whether the caller may see jobs in the requested
// status. Active jobs are public; other statuses are visible to admins and to
// recruiters listing their own postings.
func canListStatus(req *dto.ListJobsRequest) bool {
	if req.Status == nil || *req.Status == models.JobStatusActive {
		return true
	}
	switch req.UserRole {
	case models.RoleAdmin:
		return true
	case models.RoleRecruiter:
		return req.UserID != nil && req.PostedBy != nil && *req.PostedBy == *req.UserID
	default:
		return false
	}
}

func paginate(jobs []models.Job, offset, limit int) []models.Job {
	if offset >= len(jobs) {
		return []models.Job{}
	}
	jobs = jobs[offset:]
	if limit > 0 && limit < len(jobs) {
		jobs = jobs[:limit]
	}
	return jobs
}

// loadOwnedJob fetches a job inside tx and checks the caller may manage it.
func loadOwnedJob(ctx context.Context, jobs storage.JobRepository, id, userID uuid.UUID, role models.Role) (*models.Job, error) {
	job, err := jobs.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "fetching job")
	}
	if role != models.RoleAdmin && job.PostedBy != userID {
		log.Printf("Forbidden attempt on job %s by non-owner %s", id, userID)
		return nil, ErrForbidden
	}
	return job, nil
}

func (s *jobService) UpdateJobStatus(ctx context.Context, req *dto.UpdateJobStatusRequest) (*models.Job, error) {
	if !isRecruiterOrAdmin(req.UserRole) {
		return nil, ErrForbidden
	}
	if req.Status != models.JobStatusActive && req.Status != models.JobStatusClosed {
		return nil, fmt.Errorf("%w: unknown job status %q", ErrValidation, req.Status)
	}

	var updated *models.Job
	err := s.txManager.RunInTx(ctx, func(tx pgx.Tx) error {
		txJobRepo := s.jobRepo.WithTx(tx)
		if _, err := loadOwnedJob(ctx, txJobRepo, req.ID, req.UserID, req.UserRole); err != nil {
			return err
		}
		var err error
		updated, err = txJobRepo.UpdateStatus(ctx, req.ID, req.Status)
		if err != nil {
			return mapRepoError(err, "updating job status")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("JobService: Job %s is now %s", updated.ID, updated.Status)
	return updated, nil
}

// DeleteJob flags the job's applications and deletes the job in one transaction.
func (s *jobService) DeleteJob(ctx context.Context, req *dto.DeleteJobRequest) error {
	if !isRecruiterOrAdmin(req.UserRole) {
		return ErrForbidden
	}

	return s.txManager.RunInTx(ctx, func(tx pgx.Tx) error {
		txJobRepo := s.jobRepo.WithTx(tx)
		if _, err := loadOwnedJob(ctx, txJobRepo, req.ID, req.UserID, req.UserRole); err != nil {
			return err
		}

		flagged, err := s.appRepo.WithTx(tx).MarkJobRemoved(ctx, req.ID)
		if err != nil {
			return mapRepoError(err, "flagging applications of deleted job")
		}
		if err := txJobRepo.Delete(ctx, req.ID); err != nil {
			return mapRepoError(err, "deleting job")
		}
		log.Printf("JobService: Job %s deleted by %s, %d applications flagged", req.ID, req.UserID, flagged)
		return nil
	})
}
