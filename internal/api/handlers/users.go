package handlers

import (
	"net/http"

	"apthire/internal/services"
	"apthire/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// UserHandler holds dependencies for account operations.
type UserHandler struct {
	service   services.UserService
	auth      services.AuthService
	validator *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserService, auth services.AuthService, validate *validator.Validate) *UserHandler {
	return &UserHandler{
		service:   service,
		auth:      auth,
		validator: validate,
	}
}

// GetMe godoc
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me [get]
// @Security     BearerAuth
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, _, ok := caller(c)
	if !ok {
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "GetMe", err)
		return
	}
	c.JSON(http.StatusOK, services.MapUserToResponse(user))
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Description  Replaces the profile document. Name is only changed when present.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        profile body      dto.UpdateProfileRequest true "Profile"
// @Success      200     {object}  dto.UserResponse
// @Failure      400     {object}  ErrorResponse
// @Failure      401     {object}  ErrorResponse
// @Router       /users/me/profile [put]
// @Security     BearerAuth
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, _, ok := caller(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.UserID = userID

	user, err := h.service.UpdateProfile(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "UpdateProfile", err)
		return
	}
	c.JSON(http.StatusOK, services.MapUserToResponse(user))
}

// ChangePassword godoc
// @Summary      Change own password
// @Description  current_password may be omitted by accounts created through Google that never set one.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body body      dto.ChangePasswordRequest true "Passwords"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse "Wrong current password"
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me/password [put]
// @Security     BearerAuth
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, _, ok := caller(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.UserID = userID

	if err := h.auth.ChangePassword(c.Request.Context(), &req); err != nil {
		respondError(c, "ChangePassword", err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Password updated"})
}

// GetUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /users [get]
// @Security     BearerAuth
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, "GetUsers", err)
		return
	}

	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = services.MapUserToResponse(&users[i])
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Removes the account and its jobs. Applications to those jobs are kept and flagged job_removed.
// @Tags         users
// @Param        id  path  string true "User ID" Format(uuid)
// @Success      204
// @Failure      400  {object}  ErrorResponse "Invalid ID or own account"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [delete]
// @Security     BearerAuth
func (h *UserHandler) DeleteUser(c *gin.Context) {
	adminID, _, ok := caller(c)
	if !ok {
		return
	}
	targetID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	req := dto.DeleteUserRequest{ID: targetID, UserID: adminID}
	if err := h.service.Delete(c.Request.Context(), &req); err != nil {
		respondError(c, "DeleteUser", err)
		return
	}
	c.Status(http.StatusNoContent)
}
