package integration_tests

import (
	"context"
	"errors"
	"sync"
	"testing"

	"apthire/internal/auth"
	"apthire/internal/models"
	"apthire/internal/services"
	"apthire/internal/storage"
	"apthire/internal/storage/postgres"
	"apthire/internal/transport/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_Integration_EmailIsUnique(t *testing.T) {
	pool := getTestPool(t)
	cleanupTables(t, pool)
	t.Cleanup(func() { cleanupTables(t, pool) })
	ctx := context.Background()

	createTestUser(t, ctx, pool, "dup@test.com", models.RoleCandidate)

	_, err := postgres.NewUserRepo(pool).Create(ctx, &models.User{Name: "Again", Email: "dup@test.com", Role: models.RoleCandidate})
	assert.True(t, errors.Is(err, storage.ErrDuplicateEmail), "got %v", err)
}

func TestOAuthService_Integration_AssignRoleRace(t *testing.T) {
	pool := getTestPool(t)
	cleanupTables(t, pool)
	t.Cleanup(func() { cleanupTables(t, pool) })
	ctx := context.Background()

	users := postgres.NewUserRepo(pool)
	svc := services.NewOAuthService(users, nil, auth.NewTokenIssuer("secret", 0, "apthire"), services.NewAdminAllowList(nil))
	u := createTestUser(t, ctx, pool, "oauth@test.com", models.RoleUnset)

	roles := []models.Role{models.RoleCandidate, models.RoleRecruiter, models.RoleCandidate, models.RoleRecruiter}
	var wg sync.WaitGroup
	errs := make(chan error, len(roles))
	for _, role := range roles {
		wg.Add(1)
		go func(role models.Role) {
			defer wg.Done()
			_, err := svc.AssignRole(ctx, &dto.AssignRoleRequest{UserID: u.ID, Role: role})
			errs <- err
		}(role)
	}
	wg.Wait()
	close(errs)

	var succeeded int
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, services.ErrRoleAlreadySet), "got %v", err)
	}
	assert.Equal(t, 1, succeeded)

	stored, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, models.RoleUnset, stored.Role)
}

func TestUserService_Integration_DeleteRecruiterFlagsApplications(t *testing.T) {
	pool := getTestPool(t)
	cleanupTables(t, pool)
	t.Cleanup(func() { cleanupTables(t, pool) })
	ctx := context.Background()

	users := postgres.NewUserRepo(pool)
	jobs := postgres.NewJobRepo(pool)
	apps := postgres.NewJobApplicationRepo(pool)
	tx := postgres.NewTxManager(pool)
	userService := services.NewUserService(users, jobs, apps, tx)
	appService := services.NewJobApplicationService(apps, jobs, users, tx)

	admin := createTestUser(t, ctx, pool, "admin@test.com", models.RoleAdmin)
	recruiter := createTestUser(t, ctx, pool, "recruiter@test.com", models.RoleRecruiter)
	candidate := createTestUser(t, ctx, pool, "candidate@test.com", models.RoleCandidate)
	job := createTestJob(t, ctx, pool, recruiter, "Go")

	app, err := appService.Apply(ctx, &dto.ApplyToJobRequest{JobID: job.ID, ApplicantID: candidate.ID, UserRole: models.RoleCandidate})
	require.NoError(t, err)

	require.NoError(t, userService.Delete(ctx, &dto.DeleteUserRequest{ID: recruiter.ID, UserID: admin.ID}))

	_, err = jobs.GetByID(ctx, job.ID)
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	stored, err := apps.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.True(t, stored.JobRemoved)
	assert.Nil(t, stored.JobID)
}
