package booking

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Working-hours window for every bookable day.
const (
	OpeningHour = 9
	ClosingHour = 18
	SlotCadence = 30 * time.Minute

	windowMinutes = (ClosingHour - OpeningHour) * 60
)

// TimeSlot is a candidate appointment interval [Start, End). Slots are
// derived on every query and never stored.
type TimeSlot struct {
	Start time.Time
	End   time.Time
	Label string // "HH:MM", 24-hour clock
}

// Interval is an occupied half-open time range.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether [s.Start, s.End) intersects [iv.Start, iv.End).
func (s TimeSlot) Overlaps(iv Interval) bool {
	return s.Start.Before(iv.End) && s.End.After(iv.Start)
}

// GenerateSlots enumerates the candidate starts of day at SlotCadence between
// OpeningHour and ClosingHour in loc, keeping those whose end does not pass closing.
// A non-positive duration, one longer than the window, or an invalid date yields nil.
func GenerateSlots(day civil.Date, durationMinutes int, loc *time.Location) []TimeSlot {
	if durationMinutes <= 0 || durationMinutes > windowMinutes || !day.IsValid() {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	closing := time.Date(day.Year, day.Month, day.Day, ClosingHour, 0, 0, 0, loc)
	duration := time.Duration(durationMinutes) * time.Minute
	step := int(SlotCadence / time.Minute)

	var slots []TimeSlot
	for hour := OpeningHour; hour < ClosingHour; hour++ {
		for minute := 0; minute < 60; minute += step {
			start := time.Date(day.Year, day.Month, day.Day, hour, minute, 0, 0, loc)
			end := start.Add(duration)
			if end.After(closing) {
				continue
			}
			slots = append(slots, TimeSlot{
				Start: start,
				End:   end,
				Label: fmt.Sprintf("%02d:%02d", hour, minute),
			})
		}
	}
	return slots
}

// FilterAvailable drops every slot that overlaps any of busy. Every interval
// passed in counts as occupied; callers decide which bookings occupy time.
// Input order is preserved.
func FilterAvailable(slots []TimeSlot, busy []Interval) []TimeSlot {
	var free []TimeSlot
	for _, s := range slots {
		if !overlapsAny(s, busy) {
			free = append(free, s)
		}
	}
	return free
}

func overlapsAny(s TimeSlot, busy []Interval) bool {
	for _, iv := range busy {
		if s.Overlaps(iv) {
			return true
		}
	}
	return false
}

// OccupiedIntervals returns the intervals of bookings that still hold their
// time. Cancelled bookings release their slot.
func OccupiedIntervals(bookings []*Booking) []Interval {
	busy := make([]Interval, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || !b.Status.OccupiesTime() {
			continue
		}
		busy = append(busy, Interval{Start: b.StartTime, End: b.EndTime})
	}
	return busy
}

// AvailableSlots is GenerateSlots filtered by the bookings of one staff member on day.
func AvailableSlots(day civil.Date, durationMinutes int, loc *time.Location, bookings []*Booking) []TimeSlot {
	return FilterAvailable(GenerateSlots(day, durationMinutes, loc), OccupiedIntervals(bookings))
}
