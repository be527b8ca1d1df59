package http

import (
	"time"

	"github.com/swarvbook/booking-backend/internal/catalog"
)

type ServiceResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewServiceResponse(it *catalog.Item) ServiceResponse {
	return ServiceResponse{
		ID:              it.ID,
		Name:            it.Name,
		Price:           it.Price,
		DurationMinutes: it.DurationMinutes,
		Active:          it.Active,
		CreatedAt:       it.CreatedAt,
	}
}

// ServiceTag is the compact form embedded in other resources.
type ServiceTag struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
}

type CreateServiceBody struct {
	Name            string  `json:"name" binding:"required"`
	Price           float64 `json:"price" binding:"min=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=1,max=540"`
	Active          *bool   `json:"active"`
}

type UpdateServiceBody struct {
	Name            *string  `json:"name" binding:"omitempty,min=1"`
	Price           *float64 `json:"price" binding:"omitempty,min=0"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,min=1,max=540"`
	Active          *bool    `json:"active"`
}
