package services_test

import (
	"context"
	"testing"
	"time"

	"apthire/config"
	"apthire/internal/auth"
	"apthire/internal/mocks"
	"apthire/internal/models"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

var testAuthConfig = config.AuthConfig{
	OTPDigits:     4,
	OTPTTL:        5 * time.Minute,
	NotifyTimeout: 200 * time.Millisecond,
}

type repoMocks struct {
	ctrl  *gomock.Controller
	users *mocks.MockUserRepository
	jobs  *mocks.MockJobRepository
	apps  *mocks.MockApplicationRepository
	leads *mocks.MockLeadRepository
	tx    *mocks.MockTxManager
}

func newRepoMocks(t *testing.T) *repoMocks {
	ctrl := gomock.NewController(t)
	m := &repoMocks{
		ctrl:  ctrl,
		users: mocks.NewMockUserRepository(ctrl),
		jobs:  mocks.NewMockJobRepository(ctrl),
		apps:  mocks.NewMockApplicationRepository(ctrl),
		leads: mocks.NewMockLeadRepository(ctrl),
		tx:    mocks.NewMockTxManager(ctrl),
	}
	// Transaction-bound repositories are the mocks themselves.
	m.users.EXPECT().WithTx(gomock.Any()).Return(m.users).AnyTimes()
	m.jobs.EXPECT().WithTx(gomock.Any()).Return(m.jobs).AnyTimes()
	m.apps.EXPECT().WithTx(gomock.Any()).Return(m.apps).AnyTimes()
	return m
}

// expectTx runs the transaction body directly, as a successful commit would.
func (m *repoMocks) expectTx() {
	m.tx.EXPECT().RunInTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fn func(pgx.Tx) error) error {
			return fn(nil)
		}).Times(1)
}

func newTestIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer(testSecret, time.Hour, "apthire")
}

func mustHash(t *testing.T, s string) *string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(s), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	out := string(h)
	return &out
}

func ptrTime(t time.Time) *time.Time { return &t }

func ptrUUID(id uuid.UUID) *uuid.UUID { return &id }

func newUser(role models.Role) *models.User {
	return &models.User{
		ID:       uuid.New(),
		Name:     "Test User",
		Email:    "user@example.com",
		Role:     role,
		Verified: true,
	}
}
