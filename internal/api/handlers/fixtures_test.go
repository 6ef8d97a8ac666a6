package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"apthire/internal/api/handlers"
	"apthire/internal/api/middleware"
	"apthire/internal/auth"
	"apthire/internal/models"
	"apthire/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

// accounts stands in for the user lookup of the auth middleware.
type accounts map[uuid.UUID]*models.User

func (a accounts) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := a[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return u, nil
}

type testEnv struct {
	router       *gin.Engine
	issuer       *auth.TokenIssuer
	accounts     accounts
	requireAuth  gin.HandlerFunc
	optionalAuth gin.HandlerFunc
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)
	issuer := auth.NewTokenIssuer(testSecret, time.Hour, "apthire-test")
	users := accounts{}
	return &testEnv{
		router:       gin.New(),
		issuer:       issuer,
		accounts:     users,
		requireAuth:  middleware.RequireAuth(issuer, nil, users),
		optionalAuth: middleware.OptionalAuth(issuer, nil, users),
	}
}

// login registers a user with the role and returns a bearer token for it.
func (e *testEnv) login(t *testing.T, role models.Role) (*models.User, string) {
	t.Helper()
	u := &models.User{
		ID:       uuid.New(),
		Name:     string(role) + " user",
		Email:    string(role) + "@example.com",
		Role:     role,
		Verified: true,
	}
	e.accounts[u.ID] = u
	token, err := e.issuer.Issue(u.ID)
	require.NoError(t, err)
	return u, token
}

func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handlers.ErrorResponse {
	t.Helper()
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}
