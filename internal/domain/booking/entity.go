package booking

import (
	"time"

	"github.com/bookwell-app/booking-api/internal/httperr"
	"github.com/bookwell-app/booking-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// CanCancel rejects cancelling a booking twice.
func CanCancel(current models.BookingStatus) error {
	if current == models.BookingCancelled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(b.Status); err != nil {
		return err
	}

	b.Status = models.BookingCancelled
	b.CancelledAt = &now
	return nil
}

// Confirm is idempotent; a captured payment always confirms the booking,
// even a partial deposit.
func Confirm(b *models.Booking) {
	if b.Status != models.BookingCancelled {
		b.Status = models.BookingConfirmed
	}
}

func InitialStatus() models.BookingStatus {
	return models.BookingPending
}
