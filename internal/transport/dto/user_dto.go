package dto

import (
	"time"

	"apthire/internal/models"

	"github.com/google/uuid"
)

// RegisterRequest defines the structure for a password signup.
type RegisterRequest struct {
	Name     string      `json:"name" validate:"required,max=100"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8,max=72"`
	Role     models.Role `json:"role" validate:"omitempty,oneof=candidate recruiter admin"`
}

// RegisterResponse is returned once the verification code has been sent.
type RegisterResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// VerifyOTPRequest carries the code mailed to the user.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,numeric"`
}

// EmailRequest is used by endpoints keyed only by email (resend, forgot password).
type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// LoginRequest defines the structure for password login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ResetPasswordRequest sets a new password with a mailed code.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// ChangePasswordRequest changes the password of the authenticated user.
// CurrentPassword may be empty when the account has no password yet.
type ChangePasswordRequest struct {
	UserID          uuid.UUID `json:"-"`
	CurrentPassword string    `json:"current_password" validate:"omitempty"`
	NewPassword     string    `json:"new_password" validate:"required,min=8,max=72"`
}

// OAuthCodeRequest carries the authorization code returned by the provider redirect.
type OAuthCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

// OAuthProfile is what an external identity provider asserts about a user.
type OAuthProfile struct {
	ExternalID  string
	Email       string
	DisplayName string
}

// AssignRoleRequest picks the role of an OAuth signup.
type AssignRoleRequest struct {
	UserID uuid.UUID   `json:"-"`
	Role   models.Role `json:"role" validate:"required"`
}

// AuthResponse is returned by every operation that establishes a session.
type AuthResponse struct {
	Token        string       `json:"token"`
	User         UserResponse `json:"user"`
	RoleRequired bool         `json:"role_required"`
}

// UpdateProfileRequest replaces the editable user fields.
type UpdateProfileRequest struct {
	UserID          uuid.UUID              `json:"-"`
	Name            *string                `json:"name" validate:"omitempty,min=1,max=100"`
	Headline        string                 `json:"headline" validate:"omitempty,max=200"`
	Location        string                 `json:"location" validate:"omitempty,max=200"`
	Phone           string                 `json:"phone" validate:"omitempty,max=30"`
	ResumeURL       string                 `json:"resume_url" validate:"omitempty,url"`
	Summary         string                 `json:"summary" validate:"omitempty,max=2000"`
	Skills          []string               `json:"skills" validate:"omitempty,max=50,dive,required,max=60"`
	ExperienceLevel models.ExperienceLevel `json:"experience_level" validate:"omitempty,oneof=fresher '1-3 years' '3-5 years' '5+ years'"`
	SocialLinks     map[string]string      `json:"social_links" validate:"omitempty,dive,keys,required,max=30,endkeys,url"`
}

// Profile builds the stored profile document from the request.
func (r *UpdateProfileRequest) Profile() models.Profile {
	return models.Profile{
		Headline:        r.Headline,
		Location:        r.Location,
		Phone:           r.Phone,
		ResumeURL:       r.ResumeURL,
		Summary:         r.Summary,
		Skills:          r.Skills,
		ExperienceLevel: r.ExperienceLevel,
		SocialLinks:     r.SocialLinks,
	}
}

// DeleteUserRequest defines the structure for an admin removing a user.
type DeleteUserRequest struct {
	ID     uuid.UUID `json:"-" validate:"required"`
	UserID uuid.UUID `json:"-"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Role      models.Role    `json:"role"`
	Verified  bool           `json:"verified"`
	HasOAuth  bool           `json:"has_oauth"`
	Profile   models.Profile `json:"profile"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// LogoutRequest identifies the session token being revoked.
type LogoutRequest struct {
	TokenID   string
	ExpiresAt time.Time
}
