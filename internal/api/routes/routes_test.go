package routes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"apthire/internal/api/middleware"
	"apthire/internal/api/routes"
	"apthire/internal/auth"
	"apthire/internal/models"
	"apthire/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubHandlers answers every endpoint with the name of the method that ran.
type stubHandlers struct{}

func reply(name string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, name) }
}

func (stubHandlers) Register(c *gin.Context)                { reply("Register")(c) }
func (stubHandlers) VerifyOTP(c *gin.Context)               { reply("VerifyOTP")(c) }
func (stubHandlers) ResendOTP(c *gin.Context)               { reply("ResendOTP")(c) }
func (stubHandlers) Login(c *gin.Context)                   { reply("Login")(c) }
func (stubHandlers) ForgotPassword(c *gin.Context)          { reply("ForgotPassword")(c) }
func (stubHandlers) ResetPassword(c *gin.Context)           { reply("ResetPassword")(c) }
func (stubHandlers) GoogleLogin(c *gin.Context)             { reply("GoogleLogin")(c) }
func (stubHandlers) GoogleCallback(c *gin.Context)          { reply("GoogleCallback")(c) }
func (stubHandlers) AssignRole(c *gin.Context)              { reply("AssignRole")(c) }
func (stubHandlers) Logout(c *gin.Context)                  { reply("Logout")(c) }
func (stubHandlers) GetMe(c *gin.Context)                   { reply("GetMe")(c) }
func (stubHandlers) UpdateProfile(c *gin.Context)           { reply("UpdateProfile")(c) }
func (stubHandlers) ChangePassword(c *gin.Context)          { reply("ChangePassword")(c) }
func (stubHandlers) GetUsers(c *gin.Context)                { reply("GetUsers")(c) }
func (stubHandlers) DeleteUser(c *gin.Context)              { reply("DeleteUser")(c) }
func (stubHandlers) CreateJob(c *gin.Context)               { reply("CreateJob")(c) }
func (stubHandlers) GetJobByID(c *gin.Context)              { reply("GetJobByID")(c) }
func (stubHandlers) ListJobs(c *gin.Context)                { reply("ListJobs")(c) }
func (stubHandlers) UpdateJobStatus(c *gin.Context)         { reply("UpdateJobStatus")(c) }
func (stubHandlers) DeleteJob(c *gin.Context)               { reply("DeleteJob")(c) }
func (stubHandlers) ApplyToJob(c *gin.Context)              { reply("ApplyToJob")(c) }
func (stubHandlers) ListApplications(c *gin.Context)        { reply("ListApplications")(c) }
func (stubHandlers) ListMyApplications(c *gin.Context)      { reply("ListMyApplications")(c) }
func (stubHandlers) UpdateApplicationStatus(c *gin.Context) { reply("UpdateApplicationStatus")(c) }
func (stubHandlers) CreateLead(c *gin.Context)              { reply("CreateLead")(c) }
func (stubHandlers) ListLeads(c *gin.Context)               { reply("ListLeads")(c) }
func (stubHandlers) DeleteLead(c *gin.Context)              { reply("DeleteLead")(c) }
func (stubHandlers) GetDashboard(c *gin.Context)            { reply("GetDashboard")(c) }

type accounts map[uuid.UUID]*models.User

func (a accounts) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := a[id]; ok {
		return u, nil
	}
	return nil, storage.ErrNotFound
}

type routeEnv struct {
	router *gin.Engine
	issuer *auth.TokenIssuer
	users  accounts
}

func newRouteEnv() *routeEnv {
	gin.SetMode(gin.TestMode)
	env := &routeEnv{
		router: gin.New(),
		issuer: auth.NewTokenIssuer("routes-test-secret", time.Hour, "apthire-test"),
		users:  accounts{},
	}

	h := stubHandlers{}
	requireAuth := middleware.RequireAuth(env.issuer, nil, env.users)
	optionalAuth := middleware.OptionalAuth(env.issuer, nil, env.users)
	noLimit := func(c *gin.Context) { c.Next() }

	v1 := env.router.Group("/api/v1")
	routes.RegisterAuthRoutes(v1, h, requireAuth, noLimit)
	routes.RegisterUserRoutes(v1, h, requireAuth)
	routes.RegisterJobRoutes(v1, h, requireAuth, optionalAuth)
	routes.RegisterJobApplicationRoutes(v1, h, requireAuth)
	routes.RegisterLeadRoutes(v1, h, requireAuth, noLimit)
	routes.RegisterDashboardRoutes(v1, h, requireAuth)
	return env
}

func (e *routeEnv) token(t *testing.T, role models.Role) string {
	t.Helper()
	user := &models.User{ID: uuid.New(), Role: role}
	e.users[user.ID] = user
	token, err := e.issuer.Issue(user.ID)
	require.NoError(t, err)
	return token
}

func (e *routeEnv) call(method, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestRegisteredRoutes(t *testing.T) {
	env := newRouteEnv()

	got := map[string]bool{}
	for _, r := range env.router.Routes() {
		got[r.Method+" "+r.Path] = true
	}

	want := []string{
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/verify-otp",
		"POST /api/v1/auth/resend-otp",
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/forgot-password",
		"POST /api/v1/auth/reset-password",
		"GET /api/v1/auth/google/login",
		"POST /api/v1/auth/google/callback",
		"POST /api/v1/auth/assign-role",
		"POST /api/v1/auth/logout",
		"GET /api/v1/users/me",
		"PUT /api/v1/users/me/profile",
		"PUT /api/v1/users/me/password",
		"GET /api/v1/users",
		"DELETE /api/v1/users/:id",
		"GET /api/v1/jobs",
		"GET /api/v1/jobs/:id",
		"POST /api/v1/jobs",
		"PATCH /api/v1/jobs/:id/status",
		"DELETE /api/v1/jobs/:id",
		"POST /api/v1/jobs/:id/apply",
		"GET /api/v1/applications",
		"GET /api/v1/applications/mine",
		"PATCH /api/v1/applications/:id/status",
		"POST /api/v1/leads",
		"GET /api/v1/leads",
		"DELETE /api/v1/leads/:id",
		"GET /api/v1/dashboard",
	}
	for _, route := range want {
		assert.True(t, got[route], "missing route %s", route)
	}
	assert.Len(t, got, len(want))
}

func TestRouteGuards(t *testing.T) {
	env := newRouteEnv()
	candidate := env.token(t, models.RoleCandidate)
	recruiter := env.token(t, models.RoleRecruiter)
	admin := env.token(t, models.RoleAdmin)
	unset := env.token(t, models.RoleUnset)
	jobPath := "/api/v1/jobs/" + uuid.NewString()

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
		wantBody   string
	}{
		{"Public job list", http.MethodGet, "/api/v1/jobs", "", http.StatusOK, "ListJobs"},
		{"Public job detail", http.MethodGet, jobPath, "", http.StatusOK, "GetJobByID"},
		{"Public lead form", http.MethodPost, "/api/v1/leads", "", http.StatusOK, "CreateLead"},
		{"Credential endpoint is public", http.MethodPost, "/api/v1/auth/login", "", http.StatusOK, "Login"},
		{"Assign role needs a session", http.MethodPost, "/api/v1/auth/assign-role", "", http.StatusUnauthorized, ""},
		{"Unset role may assign", http.MethodPost, "/api/v1/auth/assign-role", unset, http.StatusOK, "AssignRole"},
		{"Candidate cannot post jobs", http.MethodPost, "/api/v1/jobs", candidate, http.StatusForbidden, ""},
		{"Recruiter posts jobs", http.MethodPost, "/api/v1/jobs", recruiter, http.StatusOK, "CreateJob"},
		{"Recruiter cannot apply", http.MethodPost, jobPath + "/apply", recruiter, http.StatusForbidden, ""},
		{"Candidate applies", http.MethodPost, jobPath + "/apply", candidate, http.StatusOK, "ApplyToJob"},
		{"Candidate reads own applications", http.MethodGet, "/api/v1/applications/mine", candidate, http.StatusOK, "ListMyApplications"},
		{"Candidate cannot review", http.MethodGet, "/api/v1/applications", candidate, http.StatusForbidden, ""},
		{"Admin reviews", http.MethodGet, "/api/v1/applications", admin, http.StatusOK, "ListApplications"},
		{"Recruiter cannot list users", http.MethodGet, "/api/v1/users", recruiter, http.StatusForbidden, ""},
		{"Admin lists users", http.MethodGet, "/api/v1/users", admin, http.StatusOK, "GetUsers"},
		{"Admin lists leads", http.MethodGet, "/api/v1/leads", admin, http.StatusOK, "ListLeads"},
		{"Candidate cannot list leads", http.MethodGet, "/api/v1/leads", candidate, http.StatusForbidden, ""},
		{"Dashboard needs a session", http.MethodGet, "/api/v1/dashboard", "", http.StatusUnauthorized, ""},
		{"Dashboard for any role", http.MethodGet, "/api/v1/dashboard", unset, http.StatusOK, "GetDashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.call(tt.method, tt.path, tt.token)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
