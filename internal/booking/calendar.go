package booking

import (
	"sort"
	"time"

	"cloud.google.com/go/civil"
)

// Admin calendar grid bounds: hour rows 09 through 18 inclusive.
const (
	GridFirstHour = 9
	GridLastHour  = 18
	DaysPerWeek   = 7
)

// ISODayIndex maps a Sunday-first weekday to a Monday-first index (Mon=0 .. Sun=6).
func ISODayIndex(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}

// WeekStart returns Monday 00:00 in loc of the week containing t.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()-ISODayIndex(local.Weekday()), 0, 0, 0, 0, loc)
}

// GridKey addresses one calendar cell.
type GridKey struct {
	Day  int // 0=Monday .. 6=Sunday
	Hour int // 0..23, local time
}

// BucketWeek groups bookings by (ISO day index, local hour) of their start time.
// Bucket order follows input order. No range check is made: a booking outside
// the displayed week lands in whatever cell its timestamp maps to.
func BucketWeek(bookings []*Booking, loc *time.Location) map[GridKey][]*Booking {
	if loc == nil {
		loc = time.UTC
	}
	grid := make(map[GridKey][]*Booking)
	for _, b := range bookings {
		start := b.StartTime.In(loc)
		key := GridKey{Day: ISODayIndex(start.Weekday()), Hour: start.Hour()}
		grid[key] = append(grid[key], b)
	}
	return grid
}

// WeekGrid is the admin calendar view of one staff member's week.
type WeekGrid struct {
	Anchor time.Time // Monday 00:00
	Days   [DaysPerWeek]civil.Date
	Cells  map[GridKey][]*Booking
}

// NewWeekGrid buckets bookings for the week beginning at anchor.
func NewWeekGrid(anchor time.Time, bookings []*Booking, loc *time.Location) WeekGrid {
	g := WeekGrid{
		Anchor: anchor,
		Cells:  BucketWeek(bookings, loc),
	}
	first := civil.DateOf(anchor)
	for i := range g.Days {
		g.Days[i] = first.AddDays(i)
	}
	return g
}

// Cell returns the bookings starting on day at hour.
func (g WeekGrid) Cell(day, hour int) []*Booking {
	return g.Cells[GridKey{Day: day, Hour: hour}]
}

// OutsideHours returns bookings whose start hour falls outside the grid rows,
// ordered by day then hour.
func (g WeekGrid) OutsideHours() []*Booking {
	keys := make([]GridKey, 0)
	for k := range g.Cells {
		if k.Hour < GridFirstHour || k.Hour > GridLastHour {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Day != keys[j].Day {
			return keys[i].Day < keys[j].Day
		}
		return keys[i].Hour < keys[j].Hour
	})

	var out []*Booking
	for _, k := range keys {
		out = append(out, g.Cells[k]...)
	}
	return out
}
