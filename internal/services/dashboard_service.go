package services

import (
	"context"

	"apthire/internal/models"
	"apthire/internal/storage"
	"apthire/internal/transport/dto"

	"github.com/google/uuid"
)

type dashboardService struct {
	users storage.UserRepository
	jobs  storage.JobRepository
	apps  storage.ApplicationRepository
	leads storage.LeadRepository
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(users storage.UserRepository, jobs storage.JobRepository, apps storage.ApplicationRepository, leads storage.LeadRepository) DashboardService {
	return &dashboardService{users: users, jobs: jobs, apps: apps, leads: leads}
}

// Get returns counters scoped to the viewer: admins see everything,
// recruiters their jobs and the applications to them, candidates their
// own applications.
func (s *dashboardService) Get(ctx context.Context, req *dto.DashboardRequest) (*dto.DashboardResponse, error) {
	resp := &dto.DashboardResponse{Role: req.UserRole}

	switch req.UserRole {
	case models.RoleAdmin:
		byRole, err := s.users.CountByRole(ctx)
		if err != nil {
			return nil, mapRepoError(err, "counting users")
		}
		resp.UsersByRole = withRoleKeys(byRole)

		if resp.JobsByStatus, err = s.jobCounts(ctx, nil); err != nil {
			return nil, err
		}
		if resp.ApplicationsByStatus, err = s.appCounts(ctx, &dto.ApplicationCountFilter{}); err != nil {
			return nil, err
		}
		leads, err := s.leads.Count(ctx)
		if err != nil {
			return nil, mapRepoError(err, "counting leads")
		}
		resp.Leads = &leads

	case models.RoleRecruiter:
		var err error
		owner := req.UserID
		if resp.JobsByStatus, err = s.jobCounts(ctx, &owner); err != nil {
			return nil, err
		}
		jobIDs, err := s.jobs.ListIDsByOwner(ctx, req.UserID)
		if err != nil {
			return nil, mapRepoError(err, "listing owned jobs")
		}
		if jobIDs == nil {
			jobIDs = []uuid.UUID{}
		}
		if resp.ApplicationsByStatus, err = s.appCounts(ctx, &dto.ApplicationCountFilter{JobIDs: jobIDs}); err != nil {
			return nil, err
		}

	case models.RoleCandidate:
		var err error
		applicant := req.UserID
		if resp.ApplicationsByStatus, err = s.appCounts(ctx, &dto.ApplicationCountFilter{ApplicantID: &applicant}); err != nil {
			return nil, err
		}

	default:
		return nil, ErrForbidden
	}
	return resp, nil
}

func (s *dashboardService) jobCounts(ctx context.Context, owner *uuid.UUID) (map[models.JobStatus]int, error) {
	counts, err := s.jobs.CountByStatus(ctx, owner)
	if err != nil {
		return nil, mapRepoError(err, "counting jobs")
	}
	out := map[models.JobStatus]int{models.JobStatusActive: 0, models.JobStatusClosed: 0}
	for k, v := range counts {
		out[k] = v
	}
	return out, nil
}

func (s *dashboardService) appCounts(ctx context.Context, filter *dto.ApplicationCountFilter) (map[models.ApplicationStatus]int, error) {
	counts, err := s.apps.CountByStatus(ctx, filter)
	if err != nil {
		return nil, mapRepoError(err, "counting applications")
	}
	out := make(map[models.ApplicationStatus]int, len(models.ApplicationStatuses))
	for _, st := range models.ApplicationStatuses {
		out[st] = counts[st]
	}
	return out, nil
}

func withRoleKeys(counts map[models.Role]int) map[models.Role]int {
	out := map[models.Role]int{
		models.RoleCandidate: 0,
		models.RoleRecruiter: 0,
		models.RoleAdmin:     0,
		models.RoleUnset:     0,
	}
	for k, v := range counts {
		out[k] = v
	}
	return out
}
