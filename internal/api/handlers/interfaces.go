package handlers

import "github.com/gin-gonic/gin"

// AuthHandlerInterface defines the methods needed by the auth routes.
type AuthHandlerInterface interface {
	Register(c *gin.Context)
	VerifyOTP(c *gin.Context)
	ResendOTP(c *gin.Context)
	Login(c *gin.Context)
	ForgotPassword(c *gin.Context)
	ResetPassword(c *gin.Context)
	GoogleLogin(c *gin.Context)
	GoogleCallback(c *gin.Context)
	AssignRole(c *gin.Context)
	Logout(c *gin.Context)
}

// UserHandlerInterface defines the methods needed by the user routes.
type UserHandlerInterface interface {
	GetMe(c *gin.Context)
	UpdateProfile(c *gin.Context)
	ChangePassword(c *gin.Context)
	GetUsers(c *gin.Context)
	DeleteUser(c *gin.Context)
}

// JobHandlerInterface defines the methods needed by the job routes.
type JobHandlerInterface interface {
	CreateJob(c *gin.Context)
	GetJobByID(c *gin.Context)
	ListJobs(c *gin.Context)
	UpdateJobStatus(c *gin.Context)
	DeleteJob(c *gin.Context)
}

// JobApplicationHandlerInterface defines the methods needed by the application routes.
type JobApplicationHandlerInterface interface {
	ApplyToJob(c *gin.Context)
	ListApplications(c *gin.Context)
	ListMyApplications(c *gin.Context)
	UpdateApplicationStatus(c *gin.Context)
}

// LeadHandlerInterface defines the methods needed by the lead routes.
type LeadHandlerInterface interface {
	CreateLead(c *gin.Context)
	ListLeads(c *gin.Context)
	DeleteLead(c *gin.Context)
}

// DashboardHandlerInterface defines the methods needed by the dashboard route.
type DashboardHandlerInterface interface {
	GetDashboard(c *gin.Context)
}

// Ensure handlers implement the interfaces (compile-time check)
var (
	_ AuthHandlerInterface           = (*AuthHandler)(nil)
	_ UserHandlerInterface           = (*UserHandler)(nil)
	_ JobHandlerInterface            = (*JobHandler)(nil)
	_ JobApplicationHandlerInterface = (*JobApplicationHandler)(nil)
	_ LeadHandlerInterface           = (*LeadHandler)(nil)
	_ DashboardHandlerInterface      = (*DashboardHandler)(nil)
)
