package catalog

import (
	"net/http"
	"time"

	"github.com/swarvbook/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "service not found")
	ErrEmptyName       = apperror.New(http.StatusBadRequest, "service name is required")
	ErrInvalidDuration = apperror.New(http.StatusBadRequest, "duration must be a positive number of minutes")
	ErrInvalidPrice    = apperror.New(http.StatusBadRequest, "price must not be negative")
)

// Item is a bookable barbershop service (haircut, skin fade, beard trim...).
// Its DurationMinutes sizes every slot offered for it.
type Item struct {
	ID              string
	Name            string
	Price           float64
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
}

type Filter struct {
	ActiveOnly bool
}
