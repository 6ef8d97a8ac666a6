package services_test

import (
	"context"
	"errors"
	"testing"

	"apthire/internal/models"
	"apthire/internal/services"
	"apthire/internal/transport/dto"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDashboardServiceTest(t *testing.T) (*repoMocks, services.DashboardService) {
	m := newRepoMocks(t)
	return m, services.NewDashboardService(m.users, m.jobs, m.apps, m.leads)
}

func TestDashboardService_Admin(t *testing.T) {
	m, svc := setupDashboardServiceTest(t)

	m.users.EXPECT().CountByRole(gomock.Any()).Return(map[models.Role]int{models.RoleCandidate: 5, models.RoleAdmin: 1}, nil)
	m.jobs.EXPECT().CountByStatus(gomock.Any(), (*uuid.UUID)(nil)).Return(map[models.JobStatus]int{models.JobStatusActive: 3}, nil)
	m.apps.EXPECT().CountByStatus(gomock.Any(), &dto.ApplicationCountFilter{}).Return(map[models.ApplicationStatus]int{models.ApplicationStatusHired: 2}, nil)
	m.leads.EXPECT().Count(gomock.Any()).Return(7, nil)

	resp, err := svc.Get(context.Background(), &dto.DashboardRequest{UserID: uuid.New(), UserRole: models.RoleAdmin})

	require.NoError(t, err)
	assert.Equal(t, 5, resp.UsersByRole[models.RoleCandidate])
	assert.Contains(t, resp.UsersByRole, models.RoleRecruiter)
	assert.Equal(t, 0, resp.JobsByStatus[models.JobStatusClosed])
	assert.Equal(t, 3, resp.JobsByStatus[models.JobStatusActive])
	assert.Len(t, resp.ApplicationsByStatus, len(models.ApplicationStatuses))
	assert.Equal(t, 2, resp.ApplicationsByStatus[models.ApplicationStatusHired])
	require.NotNil(t, resp.Leads)
	assert.Equal(t, 7, *resp.Leads)
}

func TestDashboardService_RecruiterWithoutJobs(t *testing.T) {
	m, svc := setupDashboardServiceTest(t)
	recruiterID := uuid.New()

	m.jobs.EXPECT().CountByStatus(gomock.Any(), &recruiterID).Return(map[models.JobStatus]int{}, nil)
	m.jobs.EXPECT().ListIDsByOwner(gomock.Any(), recruiterID).Return(nil, nil)
	m.apps.EXPECT().CountByStatus(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, filter *dto.ApplicationCountFilter) (map[models.ApplicationStatus]int, error) {
			assert.NotNil(t, filter.JobIDs, "a recruiter without jobs must not count every application")
			assert.Empty(t, filter.JobIDs)
			return map[models.ApplicationStatus]int{}, nil
		})
	m.users.EXPECT().CountByRole(gomock.Any()).Times(0)
	m.leads.EXPECT().Count(gomock.Any()).Times(0)

	resp, err := svc.Get(context.Background(), &dto.DashboardRequest{UserID: recruiterID, UserRole: models.RoleRecruiter})

	require.NoError(t, err)
	assert.Nil(t, resp.UsersByRole)
	assert.Nil(t, resp.Leads)
	assert.Equal(t, 0, resp.ApplicationsByStatus[models.ApplicationStatusApplied])
}

func TestDashboardService_Candidate(t *testing.T) {
	m, svc := setupDashboardServiceTest(t)
	candidateID := uuid.New()

	m.apps.EXPECT().CountByStatus(gomock.Any(), &dto.ApplicationCountFilter{ApplicantID: &candidateID}).
		Return(map[models.ApplicationStatus]int{models.ApplicationStatusApplied: 4}, nil)

	resp, err := svc.Get(context.Background(), &dto.DashboardRequest{UserID: candidateID, UserRole: models.RoleCandidate})

	require.NoError(t, err)
	assert.Nil(t, resp.JobsByStatus)
	assert.Equal(t, 4, resp.ApplicationsByStatus[models.ApplicationStatusApplied])
}

func TestDashboardService_UnsetRoleForbidden(t *testing.T) {
	_, svc := setupDashboardServiceTest(t)

	_, err := svc.Get(context.Background(), &dto.DashboardRequest{UserID: uuid.New(), UserRole: models.RoleUnset})
	assert.True(t, errors.Is(err, services.ErrForbidden))
}
