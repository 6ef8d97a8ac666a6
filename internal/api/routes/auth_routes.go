package routes

import (
	"apthire/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers signup, login, OTP and OAuth routes. The
// credential endpoints share one rate limiter.
func RegisterAuthRoutes(
	rg *gin.RouterGroup,
	authHandler handlers.AuthHandlerInterface,
	authMiddleware gin.HandlerFunc,
	rateLimiter gin.HandlerFunc,
) {
	auth := rg.Group("/auth")

	credentials := auth.Group("")
	credentials.Use(rateLimiter)
	{
		credentials.POST("/register", authHandler.Register)
		credentials.POST("/verify-otp", authHandler.VerifyOTP)
		credentials.POST("/resend-otp", authHandler.ResendOTP)
		credentials.POST("/login", authHandler.Login)
		credentials.POST("/forgot-password", authHandler.ForgotPassword)
		credentials.POST("/reset-password", authHandler.ResetPassword)
	}

	google := auth.Group("/google")
	{
		google.GET("/login", authHandler.GoogleLogin)
		google.POST("/callback", authHandler.GoogleCallback)
	}

	session := auth.Group("")
	session.Use(authMiddleware)
	{
		session.POST("/assign-role", authHandler.AssignRole)
		session.POST("/logout", authHandler.Logout)
	}
}
