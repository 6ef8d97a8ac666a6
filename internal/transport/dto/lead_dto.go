package dto

import "github.com/google/uuid"

// CreateLeadRequest is a contact-form submission.
type CreateLeadRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ListLeadsRequest paginates the admin lead inbox.
type ListLeadsRequest struct {
	Limit  int `form:"limit,default=50" validate:"omitempty,gte=0,lte=200"`
	Offset int `form:"offset,default=0" validate:"omitempty,gte=0"`
}

// DeleteLeadRequest removes a lead.
type DeleteLeadRequest struct {
	ID uuid.UUID `json:"-" validate:"required"`
}
