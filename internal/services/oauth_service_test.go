package services_test

import (
	"context"
	"errors"
	"testing"

	"apthire/internal/mocks"
	"apthire/internal/models"
	"apthire/internal/services"
	"apthire/internal/storage"
	"apthire/internal/transport/dto"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type oauthFixture struct {
	*repoMocks
	provider *mocks.MockOAuthProvider
	service  services.OAuthService
}

func setupOAuthServiceTest(t *testing.T, adminEmails ...string) *oauthFixture {
	m := newRepoMocks(t)
	provider := mocks.NewMockOAuthProvider(m.ctrl)
	return &oauthFixture{
		repoMocks: m,
		provider:  provider,
		service:   services.NewOAuthService(m.users, provider, newTestIssuer(), services.NewAdminAllowList(adminEmails)),
	}
}

func googleProfile(email string) *dto.OAuthProfile {
	return &dto.OAuthProfile{ExternalID: "google-123", Email: email, DisplayName: "Jane Doe"}
}

func TestOAuthService_LinkOrCreate_LinksExistingAccount(t *testing.T) {
	f := setupOAuthServiceTest(t)
	ctx := context.Background()
	existing := newUser(models.RoleRecruiter)

	f.users.EXPECT().GetByEmail(ctx, "user@example.com").Return(existing, nil)
	f.users.EXPECT().LinkGoogleID(ctx, existing.ID, "google-123").Return(nil)
	f.users.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	resp, err := f.service.LinkOrCreate(ctx, googleProfile("User@Example.com"))

	require.NoError(t, err)
	assert.Equal(t, existing.ID, resp.User.ID)
	assert.Equal(t, models.RoleRecruiter, resp.User.Role)
	assert.True(t, resp.User.HasOAuth)
	assert.False(t, resp.RoleRequired)
	assert.NotEmpty(t, resp.Token)
}

func TestOAuthService_LinkOrCreate_AlreadyLinked(t *testing.T) {
	f := setupOAuthServiceTest(t)
	ctx := context.Background()
	existing := newUser(models.RoleCandidate)
	linked := "google-123"
	existing.GoogleID = &linked

	f.users.EXPECT().GetByEmail(ctx, "user@example.com").Return(existing, nil)
	f.users.EXPECT().LinkGoogleID(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	resp, err := f.service.LinkOrCreate(ctx, googleProfile("user@example.com"))

	require.NoError(t, err)
	assert.Equal(t, existing.ID, resp.User.ID)
}

func TestOAuthService_LinkOrCreate_CompletesPendingSignup(t *testing.T) {
	f := setupOAuthServiceTest(t)
	ctx := context.Background()
	pending := newUser(models.RoleCandidate)
	pending.Verified = false

	f.users.EXPECT().GetByEmail(ctx, "user@example.com").Return(pending, nil)
	f.users.EXPECT().LinkGoogleID(ctx, pending.ID, "google-123").Return(nil)
	f.users.EXPECT().MarkVerified(ctx, pending.ID).DoAndReturn(func(_ context.Context, _ uuid.UUID) (*models.User, error) {
		verified := *pending
		verified.Verified = true
		return &verified, nil
	})

	resp, err := f.service.LinkOrCreate(ctx, googleProfile("user@example.com"))

	require.NoError(t, err)
	assert.True(t, resp.User.Verified)
	assert.True(t, resp.User.HasOAuth)
	assert.Equal(t, models.RoleCandidate, resp.User.Role)
}

func TestOAuthService_LinkOrCreate_VerifyFailureAborts(t *testing.T) {
	f := setupOAuthServiceTest(t)
	ctx := context.Background()
	pending := newUser(models.RoleCandidate)
	pending.Verified = false
	linked := "google-123"
	pending.GoogleID = &linked

	f.users.EXPECT().GetByEmail(ctx, "user@example.com").Return(pending, nil)
	f.users.EXPECT().MarkVerified(ctx, pending.ID).Return(nil, errors.New("connection reset"))

	resp, err := f.service.LinkOrCreate(ctx, googleProfile("user@example.com"))

	require.Error(t, err)
	assert.Nil(t, resp)
}

func TestOAuthService_LinkOrCreate_CreatesAccountWithoutRole(t *testing.T) {
	f := setupOAuthServiceTest(t)
	ctx := context.Background()

	f.users.EXPECT().GetByEmail(ctx, "new@example.com").Return(nil, storage.ErrNotFound)
	f.users.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *models.User) (*models.User, error) {
		assert.Equal(t, models.RoleUnset, u.Role)
		assert.True(t, u.Verified)
		assert.Nil(t, u.PasswordHash)
		require.NotNil(t, u.GoogleID)
		assert.Equal(t, "google-123", *u.GoogleID)
		assert.Equal(t, "Jane Doe", u.Name)
		created := *u
		created.ID = uuid.New()
		return &created, nil
	})

	resp, err := f.service.LinkOrCreate(ctx, googleProfile("new@example.com"))

	require.NoError(t, err)
	assert.True(t, resp.RoleRequired)
	assert.Equal(t, models.RoleUnset, resp.User.Role)
}

func TestOAuthService_LinkOrCreate_AllowListedSignupIsAdmin(t *testing.T) {
	f := setupOAuthServiceTest(t, "boss@apthire.com")
	ctx := context.Background()

	f.users.EXPECT().GetByEmail(ctx, "boss@apthire.com").Return(nil, storage.ErrNotFound)
	f.users.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *models.User) (*models.User, error) {
		u.ID = uuid.New()
		return u, nil
	})

	resp, err := f.service.LinkOrCreate(ctx, googleProfile("boss@apthire.com"))

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
	assert.False(t, resp.RoleRequired)
}

func TestOAuthService_LinkOrCreate_HealsAllowListedAdmin(t *testing.T) {
	f := setupOAuthServiceTest(t, "user@example.com")
	ctx := context.Background()
	existing := newUser(models.RoleCandidate)
	healed := *existing
	healed.Role = models.RoleAdmin

	f.users.EXPECT().GetByEmail(ctx, "user@example.com").Return(existing, nil)
	f.users.EXPECT().LinkGoogleID(ctx, existing.ID, "google-123").Return(nil)
	f.users.EXPECT().UpdateRole(ctx, existing.ID, models.RoleAdmin).Return(&healed, nil)

	resp, err := f.service.LinkOrCreate(ctx, googleProfile("user@example.com"))

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
}

func TestOAuthService_LinkOrCreate_RejectsEmptyProfile(t *testing.T) {
	f := setupOAuthServiceTest(t)

	_, err := f.service.LinkOrCreate(context.Background(), &dto.OAuthProfile{ExternalID: "x"})

	assert.True(t, errors.Is(err, services.ErrOAuthFailed))
}

func TestOAuthService_Callback(t *testing.T) {
	t.Run("Error - exchange failure", func(t *testing.T) {
		f := setupOAuthServiceTest(t)
		ctx := context.Background()

		f.provider.EXPECT().Exchange(ctx, "bad-code").Return(nil, errors.New("invalid_grant"))

		_, err := f.service.Callback(ctx, &dto.OAuthCodeRequest{Code: "bad-code"})
		assert.True(t, errors.Is(err, services.ErrOAuthFailed))
	})

	t.Run("Success - profile is linked", func(t *testing.T) {
		f := setupOAuthServiceTest(t)
		ctx := context.Background()
		existing := newUser(models.RoleCandidate)

		f.provider.EXPECT().Exchange(ctx, "good-code").Return(googleProfile("user@example.com"), nil)
		f.users.EXPECT().GetByEmail(ctx, "user@example.com").Return(existing, nil)
		f.users.EXPECT().LinkGoogleID(ctx, existing.ID, "google-123").Return(nil)

		resp, err := f.service.Callback(ctx, &dto.OAuthCodeRequest{Code: "good-code"})
		require.NoError(t, err)
		assert.Equal(t, existing.ID, resp.User.ID)
	})
}

func TestOAuthService_AssignRole(t *testing.T) {
	tests := []struct {
		name      string
		current   models.Role
		requested models.Role
		setup     func(f *oauthFixture, u *models.User)
		wantErr   error
	}{
		{
			name:      "Error - role already set",
			current:   models.RoleCandidate,
			requested: models.RoleRecruiter,
			wantErr:   services.ErrRoleAlreadySet,
		},
		{
			name:      "Error - admin cannot be self-assigned",
			current:   models.RoleUnset,
			requested: models.RoleAdmin,
			wantErr:   services.ErrForbidden,
		},
		{
			name:      "Error - unknown role",
			current:   models.RoleUnset,
			requested: models.Role("janitor"),
			wantErr:   services.ErrValidation,
		},
		{
			name:      "Error - concurrent assignment wins",
			current:   models.RoleUnset,
			requested: models.RoleCandidate,
			setup: func(f *oauthFixture, u *models.User) {
				f.users.EXPECT().AssignRoleIfUnset(gomock.Any(), u.ID, models.RoleCandidate).Return(nil, storage.ErrConflict)
			},
			wantErr: services.ErrRoleAlreadySet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupOAuthServiceTest(t)
			ctx := context.Background()
			u := newUser(tt.current)

			f.users.EXPECT().GetByID(ctx, u.ID).Return(u, nil)
			if tt.setup != nil {
				tt.setup(f, u)
			}

			_, err := f.service.AssignRole(ctx, &dto.AssignRoleRequest{UserID: u.ID, Role: tt.requested})

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestOAuthService_AssignRole_OneShot(t *testing.T) {
	f := setupOAuthServiceTest(t)
	ctx := context.Background()
	u := newUser(models.RoleUnset)
	assigned := *u
	assigned.Role = models.RoleRecruiter

	gomock.InOrder(
		f.users.EXPECT().GetByID(ctx, u.ID).Return(u, nil),
		f.users.EXPECT().AssignRoleIfUnset(ctx, u.ID, models.RoleRecruiter).Return(&assigned, nil),
		f.users.EXPECT().GetByID(ctx, u.ID).Return(&assigned, nil),
	)

	resp, err := f.service.AssignRole(ctx, &dto.AssignRoleRequest{UserID: u.ID, Role: models.RoleRecruiter})
	require.NoError(t, err)
	assert.Equal(t, models.RoleRecruiter, resp.User.Role)
	assert.False(t, resp.RoleRequired)

	claims, err := newTestIssuer().Parse(resp.Token)
	require.NoError(t, err)
	subject, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, u.ID, subject)

	_, err = f.service.AssignRole(ctx, &dto.AssignRoleRequest{UserID: u.ID, Role: models.RoleCandidate})
	assert.True(t, errors.Is(err, services.ErrRoleAlreadySet))
}
