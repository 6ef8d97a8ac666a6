package handlers

import (
	"log"
	"net/http"

	"apthire/internal/api/middleware"
	"apthire/internal/services"
	"apthire/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// MessageResponse acknowledges an operation without a payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// OAuthLoginResponse carries the provider consent URL.
type OAuthLoginResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// AuthHandler serves the credential, OTP and OAuth endpoints.
type AuthHandler struct {
	auth      services.AuthService
	oauth     services.OAuthService
	validator *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth services.AuthService, oauth services.OAuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		oauth:     oauth,
		validator: validate,
	}
}

// Register godoc
// @Summary      Register with email and password
// @Description  Creates an unverified account and mails a one-time code. Allow-listed emails become admins.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        user body      dto.RegisterRequest true "Signup details"
// @Success      201  {object}  dto.RegisterResponse
// @Failure      400  {object}  ErrorResponse "Validation error"
// @Failure      409  {object}  ErrorResponse "Email already registered"
// @Failure      429  {object}  ErrorResponse "Rate limited"
// @Failure      500  {object}  ErrorResponse "Code could not be delivered"
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Register", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// VerifyOTP godoc
// @Summary      Verify an account
// @Description  Checks the mailed code and returns a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body      dto.VerifyOTPRequest true "Email and code"
// @Success      200  {object}  dto.AuthResponse
// @Failure      400  {object}  ErrorResponse "Wrong code or already verified"
// @Failure      404  {object}  ErrorResponse "Unknown email"
// @Failure      410  {object}  ErrorResponse "Code expired"
// @Router       /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	resp, err := h.auth.VerifyOTP(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "VerifyOTP", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResendOTP godoc
// @Summary      Resend the verification code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body      dto.EmailRequest true "Account email"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse "Already verified"
// @Failure      404  {object}  ErrorResponse "Unknown email"
// @Router       /auth/resend-otp [post]
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req dto.EmailRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	if err := h.auth.ResendOTP(c.Request.Context(), &req); err != nil {
		respondError(c, "ResendOTP", err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Verification code sent"})
}

// Login godoc
// @Summary      Log in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body      dto.LoginRequest true "Credentials"
// @Success      200  {object}  dto.AuthResponse
// @Failure      400  {object}  ErrorResponse "Invalid credentials"
// @Failure      403  {object}  ErrorResponse "Account not verified"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Login", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ForgotPassword godoc
// @Summary      Request a password reset code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body      dto.EmailRequest true "Account email"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  ErrorResponse "Unknown email"
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.EmailRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), &req); err != nil {
		respondError(c, "ForgotPassword", err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Password reset code sent"})
}

// ResetPassword godoc
// @Summary      Reset the password with a mailed code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body      dto.ResetPasswordRequest true "Email, code and new password"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse "Wrong code"
// @Failure      410  {object}  ErrorResponse "Code expired"
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), &req); err != nil {
		respondError(c, "ResetPassword", err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Password updated"})
}

// GoogleLogin godoc
// @Summary      Google consent URL
// @Description  Returns the URL to redirect the browser to, with a random state the client must compare on return.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  OAuthLoginResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	url, state, err := h.oauth.LoginURL()
	if err != nil {
		respondError(c, "GoogleLogin", err)
		return
	}
	c.JSON(http.StatusOK, OAuthLoginResponse{URL: url, State: state})
}

// GoogleCallback godoc
// @Summary      Complete Google sign-in
// @Description  Exchanges the authorization code, links or creates the account and returns a session. role_required is true until a role is assigned.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body      dto.OAuthCodeRequest true "Authorization code"
// @Success      200  {object}  dto.AuthResponse
// @Failure      400  {object}  ErrorResponse "Exchange failed"
// @Router       /auth/google/callback [post]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	var req dto.OAuthCodeRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	resp, err := h.oauth.Callback(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "GoogleCallback", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AssignRole godoc
// @Summary      Choose a role once
// @Description  Sets the role of an account created without one and returns a fresh token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body      dto.AssignRoleRequest true "candidate or recruiter"
// @Success      200  {object}  dto.AuthResponse
// @Failure      400  {object}  ErrorResponse "Role already set or unknown"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin cannot be self-assigned"
// @Router       /auth/assign-role [post]
// @Security     BearerAuth
func (h *AuthHandler) AssignRole(c *gin.Context) {
	userID, _, ok := caller(c)
	if !ok {
		return
	}

	var req dto.AssignRoleRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.UserID = userID

	resp, err := h.oauth.AssignRole(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "AssignRole", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary      Revoke the current token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, err := middleware.GetClaimsFromContext(c)
	if err != nil {
		log.Printf("Logout: %v", err)
		respondUnauthorized(c)
		return
	}

	req := dto.LogoutRequest{TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		req.ExpiresAt = claims.ExpiresAt.Time
	}
	if err := h.auth.Logout(c.Request.Context(), &req); err != nil {
		respondError(c, "Logout", err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Logged out"})
}
