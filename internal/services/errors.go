package services

import "errors"

// Define common service errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict") // e.g., duplicate email, duplicate application
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("account not verified")
	ErrAlreadyVerified    = errors.New("account already verified")
	ErrOTPExpired         = errors.New("verification code expired")
	ErrOTPInvalid         = errors.New("invalid verification code")
	ErrRoleAlreadySet     = errors.New("role already set")
	ErrNotification       = errors.New("failed to deliver notification")
	ErrOAuthFailed        = errors.New("external login failed")
	ErrInvalidTransition  = errors.New("invalid state transition")
)
