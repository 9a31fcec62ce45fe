package booking

import (
	"iter"
	"time"

	"github.com/bookwell-app/booking-api/internal/models"
)

// BusinessHours is the slot grid configuration of an account.
type BusinessHours struct {
	Open    string // HH:MM
	Close   string // HH:MM
	StepMin int
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DateBlocked reports whether a YYYY-MM-DD date falls inside any blocked
// range (both bounds inclusive). Lexicographic comparison is safe on
// zero-padded ISO dates.
func DateBlocked(date string, ranges []models.BlockedDateRange) bool {
	for _, r := range ranges {
		if r.StartDate <= date && date <= r.EndDate {
			return true
		}
	}
	return false
}

// AvailableSlots yields the bookable start times for one date, in
// chronological order. The sequence is lazy and restartable; no data is
// fetched and nothing is mutated.
//
// A candidate is available when the date is not blocked and the window
// [t, t+duration) touches no occupied interval. Occupied intervals carry
// the existing booking's buffer and are not clipped at closing time, so a
// booking running past close still blocks earlier candidates.
func AvailableSlots(
	date time.Time,
	durationMin int,
	existing []models.Booking,
	blocked []models.BlockedDateRange,
	hours BusinessHours,
) iter.Seq[TimeSlot] {

	return func(yield func(TimeSlot) bool) {
		if hours.StepMin <= 0 || durationMin <= 0 {
			return
		}

		if DateBlocked(date.Format(DateLayout), blocked) {
			return
		}

		open := ClockOn(date, hours.Open)
		close := ClockOn(date, hours.Close)
		if !open.Before(close) {
			return
		}

		step := time.Duration(hours.StepMin) * time.Minute
		duration := time.Duration(durationMin) * time.Minute

		for cur := open; !cur.Add(duration).After(close); cur = cur.Add(step) {
			candidate := Interval{Start: cur, End: cur.Add(duration)}

			conflict := false
			for _, b := range existing {
				if b.Status == models.BookingCancelled {
					continue
				}
				if candidate.Overlaps(OccupiedInterval(date, b)) {
					conflict = true
					break
				}
			}
			if conflict {
				continue
			}

			slot := TimeSlot{
				Start: cur.Format(ClockLayout),
				End:   cur.Add(duration).Format(ClockLayout),
			}
			if !yield(slot) {
				return
			}
		}
	}
}
