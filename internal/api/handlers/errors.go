package handlers

import (
	"errors"
	"log"
	"net/http"

	"apthire/internal/services"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

type errorKind struct {
	target error
	status int
	code   string
}

// Order matters: the first sentinel found in the chain wins.
var errorKinds = []errorKind{
	{services.ErrValidation, http.StatusBadRequest, "validation_error"},
	{services.ErrConflict, http.StatusConflict, "conflict"},
	{services.ErrNotFound, http.StatusNotFound, "not_found"},
	{services.ErrForbidden, http.StatusForbidden, "forbidden"},
	{services.ErrOTPExpired, http.StatusGone, "otp_expired"},
	{services.ErrInvalidCredentials, http.StatusBadRequest, "invalid_credentials"},
	{services.ErrNotVerified, http.StatusForbidden, "not_verified"},
	{services.ErrNotification, http.StatusInternalServerError, "notification_failed"},
	{services.ErrAlreadyVerified, http.StatusBadRequest, "already_verified"},
	{services.ErrOTPInvalid, http.StatusBadRequest, "otp_invalid"},
	{services.ErrRoleAlreadySet, http.StatusBadRequest, "role_already_set"},
	{services.ErrOAuthFailed, http.StatusBadRequest, "oauth_failed"},
	{services.ErrInvalidTransition, http.StatusBadRequest, "invalid_transition"},
}

// respondError maps a service error to its status and machine code. Unknown
// errors are logged and reported as a generic failure.
func respondError(c *gin.Context, op string, err error) {
	for _, kind := range errorKinds {
		if errors.Is(err, kind.target) {
			c.JSON(kind.status, ErrorResponse{Error: err.Error(), Code: kind.code})
			return
		}
	}
	log.Printf("%s: %v", op, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error", Code: "internal_error"})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: "validation_error"})
}

func respondUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized", Code: "unauthorized"})
}
