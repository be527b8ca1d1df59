package staff

import (
	"net/http"
	"time"

	"github.com/swarvbook/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound   = apperror.New(http.StatusNotFound, "staff member not found")
	ErrEmptyName  = apperror.New(http.StatusBadRequest, "staff name is required")
	ErrEmailTaken = apperror.New(http.StatusConflict, "staff email already in use")
)

// Staff is a barber whose calendar bookings are made against.
type Staff struct {
	ID        string
	Name      string
	Email     string
	Active    bool
	CreatedAt time.Time
}
