package booking

import (
	"context"

	"github.com/bookwell-app/booking-api/internal/models"
)

// Repository is the only gateway to the datastore for booking reads and
// writes; availability and conflict logic stay in this package and take
// pre-fetched data.
type Repository interface {
	// -------- Account --------
	GetAccountByID(
		ctx context.Context,
		id uint,
	) (*models.Account, error)

	GetAccountBySlug(
		ctx context.Context,
		slug string,
	) (*models.Account, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		accountID uint,
		serviceID uint,
	) (*models.Service, error)

	GetServiceByID(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	// -------- Booking (create / conflict) --------

	// CreateBooking re-checks the slot and inserts inside one serialized
	// unit of work; it fails with ErrBusiness("slot_taken") when a
	// conflicting booking appeared after the availability check.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
		scope models.SchedulingScope,
	) error

	// InsertBooking persists without the conflict check. Used by payment
	// reconciliation for bookings the gateway already collected money for:
	// a captured payment must land even if the slot got contested.
	InsertBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (read / state change) --------
	GetBookingByID(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	GetBookingForAccount(
		ctx context.Context,
		bookingID uint,
		accountID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// FindBookingByClientSlot is the fallback resolution used by payment
	// reconciliation when an event carries no booking id.
	FindBookingByClientSlot(
		ctx context.Context,
		email string,
		date string,
		clock string,
	) (*models.Booking, error)

	// -------- Availability --------
	ListBookingsForDay(
		ctx context.Context,
		accountID uint,
		date string,
	) ([]models.Booking, error)

	ListBookingsBetween(
		ctx context.Context,
		accountID uint,
		fromDate string,
		toDate string,
	) ([]models.Booking, error)

	ListBlockedRanges(
		ctx context.Context,
		accountID uint,
	) ([]models.BlockedDateRange, error)
}
