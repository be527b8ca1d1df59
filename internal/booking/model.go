package booking

import (
	"net/http"
	"time"

	"github.com/swarvbook/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound                 = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict             = apperror.New(http.StatusConflict, "time slot already booked")
	ErrSlotUnavailable          = apperror.New(http.StatusConflict, "selected time slot is not available")
	ErrInvalidStatus            = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidDate              = apperror.New(http.StatusBadRequest, "invalid date")
	ErrServiceNotFound          = apperror.New(http.StatusNotFound, "service not found")
	ErrStaffNotFound            = apperror.New(http.StatusNotFound, "staff member not found")
	ErrPermissionDenied         = apperror.New(http.StatusForbidden, "permission denied")
	ErrStartTimePast            = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrInvalidInput             = apperror.New(http.StatusBadRequest, "invalid input parameters")
	ErrClientProfileRequired    = apperror.New(http.StatusForbidden, "client profile required before booking")
	ErrTerminalStatus           = apperror.New(http.StatusConflict, "booking can no longer be cancelled")
	ErrCancellationWindowClosed = apperror.New(http.StatusConflict, "cancellations close 24 hours before the appointment, please call the shop")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every valid status in lifecycle order.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusNoShow, StatusCancelled}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusNoShow, StatusCancelled:
		return true
	}
	return false
}

// Booking is an appointment of one client with one staff member for one service.
// Bookings are never deleted; cancellation is a status.
type Booking struct {
	ID        string
	ClientID  string
	StaffID   string
	ServiceID string
	StartTime time.Time
	EndTime   time.Time
	Status    Status
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined display fields, filled by reads.
	ClientName      string
	ClientEmail     *string
	ClientPhone     *string
	StaffName       string
	ServiceName     string
	ServicePrice    *float64
	ServiceDuration *int
}

type Filter struct {
	ClientID  string
	StaffID   string
	Status    string
	From      *time.Time // start_time >= From
	To        *time.Time // start_time < To
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
