package http

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/swarvbook/booking-backend/internal/booking"
	catalogHttp "github.com/swarvbook/booking-backend/internal/catalog/http"
	"github.com/swarvbook/booking-backend/internal/pkg/request"
	staffHttp "github.com/swarvbook/booking-backend/internal/staff/http"
)

type AvailabilityRequest struct {
	StaffID   string `form:"staff_id" binding:"required,uuid"`
	ServiceID string `form:"service_id" binding:"required,uuid"`
	Date      string `form:"date" binding:"required,datetime=2006-01-02"`
}

// Day parses Date; binding has already checked its layout.
func (r *AvailabilityRequest) Day() (civil.Date, error) {
	d, err := civil.ParseDate(r.Date)
	if err != nil {
		return civil.Date{}, booking.ErrInvalidDate
	}
	return d, nil
}

type SlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

type AvailabilityResponse struct {
	Date  civil.Date     `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

func NewAvailabilityResponse(day civil.Date, slots []booking.TimeSlot) AvailabilityResponse {
	out := make([]SlotResponse, len(slots))
	for i, s := range slots {
		out[i] = SlotResponse{Start: s.Start, End: s.End, Label: s.Label}
	}
	return AvailabilityResponse{Date: day, Slots: out}
}

type ClientTag struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type BookingResponse struct {
	ID        string                 `json:"id"`
	Client    ClientTag              `json:"client"`
	Staff     staffHttp.StaffTag     `json:"staff"`
	Service   catalogHttp.ServiceTag `json:"service"`
	StartTime time.Time              `json:"start_time"`
	EndTime   time.Time              `json:"end_time"`
	Status    string                 `json:"status"`
	Notes     *string                `json:"notes"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Client: ClientTag{ID: b.ClientID, Name: b.ClientName, Email: b.ClientEmail, Phone: b.ClientPhone},
		Staff:  staffHttp.StaffTag{ID: b.StaffID, Name: b.StaffName},
		Service: catalogHttp.ServiceTag{
			ID:              b.ServiceID,
			Name:            b.ServiceName,
			Price:           b.ServicePrice,
			DurationMinutes: b.ServiceDuration,
		},
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    string(b.Status),
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// MyBookingResponse is a row of the client's own booking list.
type MyBookingResponse struct {
	BookingResponse
	CanCancel bool `json:"can_cancel"`
}

type CreateBookingBody struct {
	StaffID   string    `json:"staff_id" binding:"required,uuid"`
	ServiceID string    `json:"service_id" binding:"required,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	Notes     *string   `json:"notes" binding:"omitempty,max=500"`
}

type ListBookingsRequest struct {
	request.ListParams
	StaffID       string     `form:"staff_id" binding:"omitempty,uuid"`
	ClientID      string     `form:"client_id" binding:"omitempty,uuid"`
	Status        string     `form:"status" binding:"omitempty,oneof=pending confirmed completed no_show cancelled"`
	StartTimeFrom *time.Time `form:"start_time_from" time_format:"2006-01-02T15:04:05Z07:00"`
	StartTimeTo   *time.Time `form:"start_time_to" time_format:"2006-01-02T15:04:05Z07:00"`
	SortBy        string     `form:"sort_by" binding:"omitempty,oneof=start_time created_at status"`
}

// Validate performs custom validation for ListBookingsRequest.
func (r *ListBookingsRequest) Validate() error {
	if r.StartTimeFrom != nil && r.StartTimeTo != nil && r.StartTimeFrom.After(*r.StartTimeTo) {
		return booking.ErrInvalidInput
	}
	return nil
}

type UpdateBookingBody struct {
	Status *string `json:"status" binding:"omitempty,oneof=pending confirmed completed no_show cancelled"`
	Notes  *string `json:"notes" binding:"omitempty,max=500"`
}

type CalendarRequest struct {
	StaffID string `form:"staff_id" binding:"required,uuid"`
	Week    string `form:"week" binding:"omitempty,datetime=2006-01-02"`
}

type CalendarCell struct {
	Day      int               `json:"day"`
	Hour     int               `json:"hour"`
	Bookings []BookingResponse `json:"bookings"`
}

type CalendarResponse struct {
	StaffID      string            `json:"staff_id"`
	WeekStart    time.Time         `json:"week_start"`
	Days         []civil.Date      `json:"days"`
	Hours        []int             `json:"hours"`
	Cells        []CalendarCell    `json:"cells"`
	OutsideHours []BookingResponse `json:"outside_hours"`
}

// NewCalendarResponse emits one cell per (day, hour) of the grid, row-major by day.
func NewCalendarResponse(staffID string, g booking.WeekGrid) CalendarResponse {
	resp := CalendarResponse{
		StaffID:   staffID,
		WeekStart: g.Anchor,
		Days:      g.Days[:],
	}
	for h := booking.GridFirstHour; h <= booking.GridLastHour; h++ {
		resp.Hours = append(resp.Hours, h)
	}
	for d := 0; d < booking.DaysPerWeek; d++ {
		for _, h := range resp.Hours {
			resp.Cells = append(resp.Cells, CalendarCell{Day: d, Hour: h, Bookings: toResponses(g.Cell(d, h))})
		}
	}
	resp.OutsideHours = toResponses(g.OutsideHours())
	return resp
}

func toResponses(list []*booking.Booking) []BookingResponse {
	out := make([]BookingResponse, len(list))
	for i, b := range list {
		out[i] = NewBookingResponse(b)
	}
	return out
}
