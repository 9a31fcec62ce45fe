package booking

import (
	"time"

	"github.com/bookwell-app/booking-api/internal/models"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Interval is a half-open time window [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect. Adjacent
// intervals (one ending exactly when the other starts) do not conflict.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// ClockOn anchors an HH:MM clock time onto the given calendar date,
// in the date's location.
func ClockOn(date time.Time, hm string) time.Time {
	t, _ := time.Parse(ClockLayout, hm)
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	)
}

// OccupiedInterval is the window an existing booking blocks: service
// duration plus the trailing buffer before the resource frees up again.
func OccupiedInterval(date time.Time, b models.Booking) Interval {
	start := ClockOn(date, b.Time)
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(b.DurationMin+b.BufferMin) * time.Minute),
	}
}

// RequestedInterval is the window a proposed booking asks for. It covers
// the service duration only; the trailing buffer is owned by whichever
// booking comes first and is already part of its occupied interval.
func RequestedInterval(date time.Time, clock string, durationMin int) Interval {
	start := ClockOn(date, clock)
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(durationMin) * time.Minute),
	}
}

// HasConflict reports whether the proposed interval collides with any
// existing booking, honoring the account's scheduling scope. With
// per-member scheduling only bookings assigned to the same team member
// block; unassigned proposals then never collide. Cancelled bookings
// never block.
func HasConflict(
	proposed Interval,
	scope models.SchedulingScope,
	memberID *uint,
	existing []models.Booking,
) bool {

	for _, b := range existing {
		if b.Status == models.BookingCancelled {
			continue
		}

		if scope == models.ScopeMember {
			if memberID == nil || b.TeamMemberID == nil || *b.TeamMemberID != *memberID {
				continue
			}
		}

		if proposed.Overlaps(OccupiedInterval(proposed.Start, b)) {
			return true
		}
	}

	return false
}
