package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog/log"

	"github.com/swarvbook/booking-backend/internal/catalog"
	"github.com/swarvbook/booking-backend/internal/pkg/metrics"
	"github.com/swarvbook/booking-backend/internal/staff"
)

// Clock returns the current instant. Tests pass a fixed one.
type Clock func() time.Time

// ServiceLookup resolves the catalog item being booked.
type ServiceLookup interface {
	GetByID(ctx context.Context, id string) (*catalog.Item, error)
}

// StaffLookup resolves the barber being booked.
type StaffLookup interface {
	GetByID(ctx context.Context, id string) (*staff.Staff, error)
}

type CreateRequest struct {
	ClientID  string
	StaffID   string
	ServiceID string
	StartTime time.Time
	Notes     *string
}

type UpdateRequest struct {
	Status *string
	Notes  *string
}

type Service interface {
	AvailableSlots(ctx context.Context, staffID, serviceID string, day civil.Date) ([]TimeSlot, error)
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	ListForClient(ctx context.Context, clientID string) ([]*Booking, error)
	Cancel(ctx context.Context, id, clientID string) (*Booking, error)
	AdminUpdate(ctx context.Context, id string, req UpdateRequest) (*Booking, error)
	Week(ctx context.Context, staffID string, day civil.Date) (WeekGrid, error)

	// ClientCanCancel evaluates the client cancel rule against the service clock.
	ClientCanCancel(b *Booking) bool
	// Today is the current date in the shop location.
	Today() civil.Date
}

type service struct {
	repo     Repository
	services ServiceLookup
	staff    StaffLookup
	loc      *time.Location
	now      Clock
	metrics  *metrics.BookingMetrics
}

func NewService(repo Repository, services ServiceLookup, staffLookup StaffLookup, loc *time.Location, now Clock, m *metrics.BookingMetrics) Service {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     repo,
		services: services,
		staff:    staffLookup,
		loc:      loc,
		now:      now,
		metrics:  m,
	}
}

func (s *service) Today() civil.Date {
	return civil.DateOf(s.now().In(s.loc))
}

func (s *service) ClientCanCancel(b *Booking) bool {
	return ClientCanCancel(b, s.now())
}

// resolve loads the active staff member and service, translating lookup misses.
func (s *service) resolve(ctx context.Context, staffID, serviceID string) (*staff.Staff, *catalog.Item, error) {
	st, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, staff.ErrNotFound) {
			return nil, nil, ErrStaffNotFound
		}
		return nil, nil, err
	}
	if !st.Active {
		return nil, nil, ErrStaffNotFound
	}

	item, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, nil, ErrServiceNotFound
		}
		return nil, nil, err
	}
	if !item.Active {
		return nil, nil, ErrServiceNotFound
	}
	return st, item, nil
}

// openSlots lists the slots of day still free for the staff member, dropping
// any whose start is not after now.
func (s *service) openSlots(ctx context.Context, staffID string, durationMinutes int, day civil.Date) ([]TimeSlot, error) {
	if !day.IsValid() {
		return nil, ErrInvalidDate
	}

	from := day.In(s.loc)
	to := day.AddDays(1).In(s.loc)
	bookings, err := s.repo.ListByStaffRange(ctx, staffID, from, to)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var open []TimeSlot
	for _, slot := range AvailableSlots(day, durationMinutes, s.loc, bookings) {
		if slot.Start.After(now) {
			open = append(open, slot)
		}
	}
	return open, nil
}

func (s *service) AvailableSlots(ctx context.Context, staffID, serviceID string, day civil.Date) ([]TimeSlot, error) {
	_, item, err := s.resolve(ctx, staffID, serviceID)
	if err != nil {
		return nil, err
	}

	slots, err := s.openSlots(ctx, staffID, item.DurationMinutes, day)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveSlotsOffered(len(slots))
	return slots, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if req.ClientID == "" || req.StaffID == "" || req.ServiceID == "" || req.StartTime.IsZero() {
		return nil, ErrInvalidInput
	}
	if !req.StartTime.After(s.now()) {
		s.metrics.ObserveCreated("past")
		return nil, ErrStartTimePast
	}

	_, item, err := s.resolve(ctx, req.StaffID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	start := req.StartTime.In(s.loc)
	slots, err := s.openSlots(ctx, req.StaffID, item.DurationMinutes, civil.DateOf(start))
	if err != nil {
		return nil, err
	}
	if !containsStart(slots, start) {
		s.metrics.ObserveCreated("unavailable")
		return nil, ErrSlotUnavailable
	}

	b := &Booking{
		ClientID:  req.ClientID,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		StartTime: start,
		EndTime:   start.Add(time.Duration(item.DurationMinutes) * time.Minute),
		Status:    StatusPending,
		Notes:     cleanNotes(req.Notes),
	}
	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, ErrTimeConflict) {
			s.metrics.ObserveCreated("conflict")
		}
		return nil, err
	}

	s.metrics.ObserveCreated("created")
	log.Info().
		Str("booking_id", b.ID).
		Str("staff_id", b.StaffID).
		Time("start", b.StartTime).
		Msg("booking created")

	// Re-read to pick up joined display fields.
	return s.repo.GetByID(ctx, b.ID)
}

func containsStart(slots []TimeSlot, start time.Time) bool {
	for _, slot := range slots {
		if slot.Start.Equal(start) {
			return true
		}
	}
	return false
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	if filter.Status != "" && !Status(filter.Status).IsValid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, filter)
}

func (s *service) ListForClient(ctx context.Context, clientID string) ([]*Booking, error) {
	return s.repo.ListByClient(ctx, clientID)
}

func (s *service) Cancel(ctx context.Context, id, clientID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.ClientID != clientID {
		return nil, ErrPermissionDenied
	}
	if b.Status.IsTerminal() {
		return nil, ErrTerminalStatus
	}
	if !CanCancel(b.StartTime, s.now()) {
		return nil, ErrCancellationWindowClosed
	}

	b.Status = StatusCancelled
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.metrics.ObserveCancelled("client")
	log.Info().Str("booking_id", b.ID).Msg("booking cancelled by client")
	return b, nil
}

func (s *service) AdminUpdate(ctx context.Context, id string, req UpdateRequest) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := b.Status
	if req.Status != nil {
		st := Status(*req.Status)
		if !st.IsValid() {
			return nil, ErrInvalidStatus
		}
		b.Status = st
	}
	if req.Notes != nil {
		b.Notes = cleanNotes(req.Notes)
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	if b.Status == StatusCancelled && previous != StatusCancelled {
		s.metrics.ObserveCancelled("admin")
	}
	return b, nil
}

func (s *service) Week(ctx context.Context, staffID string, day civil.Date) (WeekGrid, error) {
	if !day.IsValid() {
		return WeekGrid{}, ErrInvalidDate
	}
	if _, err := s.staff.GetByID(ctx, staffID); err != nil {
		if errors.Is(err, staff.ErrNotFound) {
			return WeekGrid{}, ErrStaffNotFound
		}
		return WeekGrid{}, err
	}

	anchor := WeekStart(day.In(s.loc), s.loc)
	end := civil.DateOf(anchor).AddDays(DaysPerWeek).In(s.loc)

	bookings, err := s.repo.ListByStaffRange(ctx, staffID, anchor, end)
	if err != nil {
		return WeekGrid{}, err
	}
	return NewWeekGrid(anchor, bookings, s.loc), nil
}

// cleanNotes trims notes; blank becomes nil.
func cleanNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
