package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"apthire/internal/models"
	"apthire/internal/services"
	"apthire/internal/storage"
	"apthire/internal/transport/dto"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupJobServiceTest(t *testing.T) (*repoMocks, services.JobService) {
	m := newRepoMocks(t)
	return m, services.NewJobService(m.jobs, m.users, m.apps, m.tx)
}

func TestJobService_CreateJob(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name    string
		role    models.Role
		skills  []string
		setup   func(m *repoMocks)
		wantErr error
	}{
		{
			name:    "Error - candidate cannot post",
			role:    models.RoleCandidate,
			skills:  []string{"Go"},
			wantErr: services.ErrForbidden,
		},
		{
			name:    "Error - role not chosen yet",
			role:    models.RoleUnset,
			skills:  []string{"Go"},
			wantErr: services.ErrForbidden,
		},
		{
			name:    "Error - only blank skills",
			role:    models.RoleRecruiter,
			skills:  []string{"  ", ""},
			wantErr: services.ErrValidation,
		},
		{
			name:   "Success - recruiter",
			role:   models.RoleRecruiter,
			skills: []string{" Go ", "", "Postgres"},
			setup: func(m *repoMocks) {
				m.jobs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
						assert.Equal(t, []string{"Go", "Postgres"}, req.Skills)
						return &models.Job{ID: uuid.New(), PostedBy: req.PostedBy, Skills: req.Skills, Status: models.JobStatusActive}, nil
					})
			},
		},
		{
			name:   "Success - admin",
			role:   models.RoleAdmin,
			skills: []string{"Go"},
			setup: func(m *repoMocks) {
				m.jobs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&models.Job{ID: uuid.New(), PostedBy: ownerID}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, svc := setupJobServiceTest(t)
			if tt.setup != nil {
				tt.setup(m)
			}

			job, err := svc.CreateJob(context.Background(), &dto.CreateJobRequest{
				Title:          "Backend Engineer",
				Company:        "Acme",
				Skills:         tt.skills,
				Description:    "Build things",
				EmploymentType: models.EmploymentFullTime,
				PostedBy:       ownerID,
				UserRole:       tt.role,
			})

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ownerID, job.PostedBy)
		})
	}
}

func TestJobService_GetJobByID_NotFound(t *testing.T) {
	m, svc := setupJobServiceTest(t)
	id := uuid.New()

	m.jobs.EXPECT().GetByID(gomock.Any(), id).Return(nil, storage.ErrNotFound)

	_, err := svc.GetJobByID(context.Background(), id)
	assert.True(t, errors.Is(err, services.ErrNotFound))
}

func matchableJobs(n int) []models.Job {
	jobs := make([]models.Job, 0, n*2)
	for i := 0; i < n; i++ {
		jobs = append(jobs,
			models.Job{ID: uuid.New(), Title: fmt.Sprintf("node-%d", i), Skills: []string{"Node"}, Experience: "1-3 years", Location: "Remote"},
			models.Job{ID: uuid.New(), Title: fmt.Sprintf("python-%d", i), Skills: []string{"Python"}, Location: "Remote"},
		)
	}
	return jobs
}

func TestJobService_ListJobs_WithoutMatching(t *testing.T) {
	m, svc := setupJobServiceTest(t)
	req := &dto.ListJobsRequest{Skill: "go", Limit: 10}
	jobs := matchableJobs(2)

	m.jobs.EXPECT().List(gomock.Any(), req).Return(jobs, nil)
	m.users.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)

	got, err := svc.ListJobs(context.Background(), req)

	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestJobService_ListJobs_StatusVisibility(t *testing.T) {
	recruiterID := uuid.New()
	otherID := uuid.New()
	closed := models.JobStatusClosed
	active := models.JobStatusActive

	tests := []struct {
		name    string
		req     dto.ListJobsRequest
		allowed bool
	}{
		{name: "Anonymous active", req: dto.ListJobsRequest{Status: &active}, allowed: true},
		{name: "Anonymous closed", req: dto.ListJobsRequest{Status: &closed}},
		{name: "Candidate closed", req: dto.ListJobsRequest{Status: &closed, UserID: &otherID, UserRole: models.RoleCandidate}},
		{name: "Recruiter closed without owner filter", req: dto.ListJobsRequest{Status: &closed, UserID: &recruiterID, UserRole: models.RoleRecruiter}},
		{name: "Recruiter closed for another poster", req: dto.ListJobsRequest{Status: &closed, UserID: &recruiterID, UserRole: models.RoleRecruiter, PostedBy: &otherID}},
		{name: "Recruiter own closed jobs", req: dto.ListJobsRequest{Status: &closed, UserID: &recruiterID, UserRole: models.RoleRecruiter, PostedBy: &recruiterID}, allowed: true},
		{name: "Admin closed", req: dto.ListJobsRequest{Status: &closed, UserID: &otherID, UserRole: models.RoleAdmin}, allowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, svc := setupJobServiceTest(t)
			req := tt.req
			if tt.allowed {
				m.jobs.EXPECT().List(gomock.Any(), &req).Return([]models.Job{}, nil)
			} else {
				m.jobs.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)
			}

			_, err := svc.ListJobs(context.Background(), &req)

			if tt.allowed {
				require.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, services.ErrForbidden)
			}
		})
	}
}

func TestJobService_ListJobs_MatchesCandidateAndPaginates(t *testing.T) {
	m, svc := setupJobServiceTest(t)
	candidate := newUser(models.RoleCandidate)
	candidate.Profile = models.Profile{Skills: []string{"node"}, ExperienceLevel: models.ExperienceFresher, Location: "Delhi"}

	req := &dto.ListJobsRequest{Match: true, UserID: &candidate.ID, Limit: 2, Offset: 1}

	m.users.EXPECT().GetByID(gomock.Any(), candidate.ID).Return(candidate, nil)
	m.jobs.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, got *dto.ListJobsRequest) ([]models.Job, error) {
			assert.Zero(t, got.Limit)
			assert.Zero(t, got.Offset)
			return matchableJobs(4), nil
		})

	got, err := svc.ListJobs(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "node-1", got[0].Title)
	assert.Equal(t, "node-2", got[1].Title)
	assert.Equal(t, 2, req.Limit, "caller's request must not be mutated")
}

func TestJobService_ListJobs_MatchingIsBestEffort(t *testing.T) {
	tests := []struct {
		name string
		user func() (*models.User, error)
	}{
		{
			name: "Profile lookup fails",
			user: func() (*models.User, error) { return nil, errors.New("db down") },
		},
		{
			name: "Caller is a recruiter",
			user: func() (*models.User, error) { return newUser(models.RoleRecruiter), nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, svc := setupJobServiceTest(t)
			callerID := uuid.New()
			req := &dto.ListJobsRequest{Match: true, UserID: &callerID, Limit: 50}
			all := matchableJobs(2)

			u, err := tt.user()
			m.users.EXPECT().GetByID(gomock.Any(), callerID).Return(u, err)
			m.jobs.EXPECT().List(gomock.Any(), req).Return(all, nil)

			got, err := svc.ListJobs(context.Background(), req)

			require.NoError(t, err)
			assert.Len(t, got, len(all))
		})
	}
}

func TestJobService_ListJobs_AnonymousMatchSkipsLookup(t *testing.T) {
	m, svc := setupJobServiceTest(t)
	req := &dto.ListJobsRequest{Match: true}

	m.users.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)
	m.jobs.EXPECT().List(gomock.Any(), req).Return([]models.Job{}, nil)

	got, err := svc.ListJobs(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestJobService_UpdateJobStatus(t *testing.T) {
	ownerID := uuid.New()
	jobID := uuid.New()
	owned := &models.Job{ID: jobID, PostedBy: ownerID, Status: models.JobStatusActive}

	tests := []struct {
		name    string
		userID  uuid.UUID
		role    models.Role
		status  models.JobStatus
		setup   func(m *repoMocks)
		wantErr error
	}{
		{
			name:    "Error - candidate rejected before lookup",
			userID:  uuid.New(),
			role:    models.RoleCandidate,
			status:  models.JobStatusClosed,
			wantErr: services.ErrForbidden,
		},
		{
			name:    "Error - unknown status",
			userID:  ownerID,
			role:    models.RoleRecruiter,
			status:  models.JobStatus("archived"),
			wantErr: services.ErrValidation,
		},
		{
			name:   "Error - job not found",
			userID: ownerID,
			role:   models.RoleRecruiter,
			status: models.JobStatusClosed,
			setup: func(m *repoMocks) {
				m.expectTx()
				m.jobs.EXPECT().GetByID(gomock.Any(), jobID).Return(nil, storage.ErrNotFound)
			},
			wantErr: services.ErrNotFound,
		},
		{
			name:   "Error - recruiter does not own job",
			userID: uuid.New(),
			role:   models.RoleRecruiter,
			status: models.JobStatusClosed,
			setup: func(m *repoMocks) {
				m.expectTx()
				m.jobs.EXPECT().GetByID(gomock.Any(), jobID).Return(owned, nil)
			},
			wantErr: services.ErrForbidden,
		},
		{
			name:   "Success - owner closes job",
			userID: ownerID,
			role:   models.RoleRecruiter,
			status: models.JobStatusClosed,
			setup: func(m *repoMocks) {
				m.expectTx()
				m.jobs.EXPECT().GetByID(gomock.Any(), jobID).Return(owned, nil)
				m.jobs.EXPECT().UpdateStatus(gomock.Any(), jobID, models.JobStatusClosed).
					Return(&models.Job{ID: jobID, PostedBy: ownerID, Status: models.JobStatusClosed}, nil)
			},
		},
		{
			name:   "Success - admin reopens any job",
			userID: uuid.New(),
			role:   models.RoleAdmin,
			status: models.JobStatusActive,
			setup: func(m *repoMocks) {
				m.expectTx()
				m.jobs.EXPECT().GetByID(gomock.Any(), jobID).Return(owned, nil)
				m.jobs.EXPECT().UpdateStatus(gomock.Any(), jobID, models.JobStatusActive).Return(owned, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, svc := setupJobServiceTest(t)
			if tt.setup != nil {
				tt.setup(m)
			}

			job, err := svc.UpdateJobStatus(context.Background(), &dto.UpdateJobStatusRequest{
				ID: jobID, Status: tt.status, UserID: tt.userID, UserRole: tt.role,
			})

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, jobID, job.ID)
		})
	}
}

func TestJobService_DeleteJob(t *testing.T) {
	ownerID := uuid.New()
	jobID := uuid.New()
	owned := &models.Job{ID: jobID, PostedBy: ownerID}

	t.Run("Success - applications flagged before delete", func(t *testing.T) {
		m, svc := setupJobServiceTest(t)
		m.expectTx()
		gomock.InOrder(
			m.jobs.EXPECT().GetByID(gomock.Any(), jobID).Return(owned, nil),
			m.apps.EXPECT().MarkJobRemoved(gomock.Any(), jobID).Return(int64(3), nil),
			m.jobs.EXPECT().Delete(gomock.Any(), jobID).Return(nil),
		)

		err := svc.DeleteJob(context.Background(), &dto.DeleteJobRequest{ID: jobID, UserID: ownerID, UserRole: models.RoleRecruiter})
		require.NoError(t, err)
	})

	t.Run("Error - non-owner recruiter", func(t *testing.T) {
		m, svc := setupJobServiceTest(t)
		m.expectTx()
		m.jobs.EXPECT().GetByID(gomock.Any(), jobID).Return(owned, nil)
		m.apps.EXPECT().MarkJobRemoved(gomock.Any(), gomock.Any()).Times(0)
		m.jobs.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

		err := svc.DeleteJob(context.Background(), &dto.DeleteJobRequest{ID: jobID, UserID: uuid.New(), UserRole: models.RoleRecruiter})
		assert.True(t, errors.Is(err, services.ErrForbidden))
	})

	t.Run("Error - flagging failure aborts delete", func(t *testing.T) {
		m, svc := setupJobServiceTest(t)
		m.expectTx()
		m.jobs.EXPECT().GetByID(gomock.Any(), jobID).Return(owned, nil)
		m.apps.EXPECT().MarkJobRemoved(gomock.Any(), jobID).Return(int64(0), errors.New("db down"))
		m.jobs.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

		err := svc.DeleteJob(context.Background(), &dto.DeleteJobRequest{ID: jobID, UserID: ownerID, UserRole: models.RoleAdmin})
		require.Error(t, err)
	})

	t.Run("Error - candidate rejected before lookup", func(t *testing.T) {
		m, svc := setupJobServiceTest(t)
		m.jobs.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)

		err := svc.DeleteJob(context.Background(), &dto.DeleteJobRequest{ID: jobID, UserID: ownerID, UserRole: models.RoleCandidate})
		assert.True(t, errors.Is(err, services.ErrForbidden))
	})
}
