package http

import (
	"time"

	"github.com/swarvbook/booking-backend/internal/staff"
)

type StaffResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func NewStaffResponse(s *staff.Staff) StaffResponse {
	return StaffResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
	}
}

// StaffTag is the compact form embedded in other resources.
type StaffTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateStaffBody struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Active *bool  `json:"active"`
}

type UpdateStaffBody struct {
	Name   *string `json:"name" binding:"omitempty,min=1"`
	Email  *string `json:"email" binding:"omitempty,email"`
	Active *bool   `json:"active"`
}
