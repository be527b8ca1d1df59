package booking

import "time"

// CancellationWindow is the minimum lead time for a client-initiated cancellation.
const CancellationWindow = 24 * time.Hour

// IsTerminal reports whether no further client action is allowed.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusNoShow, StatusCompleted:
		return true
	}
	return false
}

// IsActive reports whether the booking is still upcoming business.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// OccupiesTime reports whether a booking in this status blocks its slot.
func (s Status) OccupiesTime() bool {
	return s != StatusCancelled
}

// CanCancel reports whether start is strictly more than CancellationWindow after now.
// Status is not consulted.
func CanCancel(start, now time.Time) bool {
	return start.Sub(now) > CancellationWindow
}

// ClientCanCancel combines the status and time rules for the client cancel action.
func ClientCanCancel(b *Booking, now time.Time) bool {
	return !b.Status.IsTerminal() && CanCancel(b.StartTime, now)
}
