package booking_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/bookwell-app/booking-api/internal/domain/booking"
	"github.com/bookwell-app/booking-api/internal/models"
)

func starts(slots []domain.TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

func TestAvailableSlots_EmptyDay(t *testing.T) {
	hours := domain.BusinessHours{Open: "08:00", Close: "10:00", StepMin: 30}

	slots := slices.Collect(domain.AvailableSlots(
		day("2026-09-01"), 60, nil, nil, hours,
	))

	// Last candidate is 09:00: a 60-minute service starting 09:30 would
	// run past close.
	assert.Equal(t, []string{"08:00", "08:30", "09:00"}, starts(slots))
	assert.Equal(t, "09:00", slots[0].End)
}

func TestAvailableSlots_BufferedBookingBlocksNeighbors(t *testing.T) {
	hours := domain.BusinessHours{Open: "08:00", Close: "12:00", StepMin: 30}

	existing := []models.Booking{
		{Time: "09:00", DurationMin: 60, BufferMin: 15, Status: models.BookingConfirmed},
	}

	slots := slices.Collect(domain.AvailableSlots(
		day("2026-09-01"), 60, existing, nil, hours,
	))

	// The occupied window is [09:00, 10:15). A 60-minute candidate at
	// 08:30 would run into it, 10:00 would start inside it; 08:00 ends
	// exactly at its start and stays available.
	assert.Equal(t, []string{"08:00", "10:30", "11:00"}, starts(slots))
}

func TestAvailableSlots_CancelledBookingFreesTheSlot(t *testing.T) {
	hours := domain.BusinessHours{Open: "09:00", Close: "11:00", StepMin: 60}

	existing := []models.Booking{
		{Time: "09:00", DurationMin: 60, Status: models.BookingCancelled},
	}

	slots := slices.Collect(domain.AvailableSlots(
		day("2026-09-01"), 60, existing, nil, hours,
	))

	assert.Equal(t, []string{"09:00", "10:00"}, starts(slots))
}

func TestAvailableSlots_BlockedDateYieldsNothing(t *testing.T) {
	hours := domain.BusinessHours{Open: "08:00", Close: "12:00", StepMin: 30}

	blocked := []models.BlockedDateRange{
		{StartDate: "2026-09-01", EndDate: "2026-09-05"},
	}

	slots := slices.Collect(domain.AvailableSlots(
		day("2026-09-03"), 30, nil, blocked, hours,
	))
	assert.Empty(t, slots)

	// The day after the range ends is unaffected.
	slots = slices.Collect(domain.AvailableSlots(
		day("2026-09-06"), 30, nil, blocked, hours,
	))
	assert.NotEmpty(t, slots)
}

func TestAvailableSlots_SequenceIsRestartable(t *testing.T) {
	hours := domain.BusinessHours{Open: "08:00", Close: "10:00", StepMin: 30}

	seq := domain.AvailableSlots(day("2026-09-01"), 30, nil, nil, hours)

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	assert.Equal(t, first, second)
}

func TestAvailableSlots_DegenerateConfig(t *testing.T) {
	d := day("2026-09-01")

	assert.Empty(t, slices.Collect(domain.AvailableSlots(
		d, 30, nil, nil, domain.BusinessHours{Open: "08:00", Close: "12:00", StepMin: 0},
	)))

	assert.Empty(t, slices.Collect(domain.AvailableSlots(
		d, 0, nil, nil, domain.BusinessHours{Open: "08:00", Close: "12:00", StepMin: 30},
	)))

	assert.Empty(t, slices.Collect(domain.AvailableSlots(
		d, 30, nil, nil, domain.BusinessHours{Open: "12:00", Close: "08:00", StepMin: 30},
	)))
}

func TestDateBlocked_BoundsAreInclusive(t *testing.T) {
	ranges := []models.BlockedDateRange{
		{StartDate: "2026-09-01", EndDate: "2026-09-05"},
	}

	assert.True(t, domain.DateBlocked("2026-09-01", ranges))
	assert.True(t, domain.DateBlocked("2026-09-05", ranges))
	assert.False(t, domain.DateBlocked("2026-08-31", ranges))
	assert.False(t, domain.DateBlocked("2026-09-06", ranges))
}
