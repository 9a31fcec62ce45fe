package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/bookwell-app/booking-api/internal/domain/booking"
	"github.com/bookwell-app/booking-api/internal/httperr"
	"github.com/bookwell-app/booking-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Account
// --------------------------------------------------

func (r *BookingGormRepository) GetAccountByID(
	ctx context.Context,
	id uint,
) (*models.Account, error) {

	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *BookingGormRepository) GetAccountBySlug(
	ctx context.Context,
	slug string,
) (*models.Account, error) {

	var account models.Account
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	accountID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", serviceID, accountID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *BookingGormRepository) GetServiceByID(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, serviceID).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

// CreateBooking closes the race between the availability check and the
// insert: the account row is locked so concurrent creations for the same
// account serialize, then the conflict check runs against the bookings
// visible inside this transaction.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
	scope models.SchedulingScope,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var account models.Account
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&account, b.AccountID).Error; err != nil {
			return err
		}

		var existing []models.Booking
		if err := tx.
			Where(
				"account_id = ? AND date = ? AND status <> ?",
				b.AccountID, b.Date, models.BookingCancelled,
			).
			Find(&existing).Error; err != nil {
			return err
		}

		date, err := time.Parse(domain.DateLayout, b.Date)
		if err != nil {
			return httperr.ErrBusiness("invalid_date_or_time")
		}

		proposed := domain.RequestedInterval(date, b.Time, b.DurationMin)
		if domain.HasConflict(proposed, scope, b.TeamMemberID, existing) {
			return httperr.ErrBusiness("slot_taken")
		}

		return tx.Create(b).Error
	})
}

func (r *BookingGormRepository) InsertBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// --------------------------------------------------
// Booking (read / state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingByID(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingForAccount(
	ctx context.Context,
	bookingID uint,
	accountID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", bookingID, accountID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) FindBookingByClientSlot(
	ctx context.Context,
	email string,
	date string,
	clock string,
) (*models.Booking, error) {

	var b models.Booking
	// Deterministic pick when a client somehow holds two bookings in the
	// same slot: the oldest one wins.
	if err := r.db.WithContext(ctx).
		Where(
			"client_email = ? AND date = ? AND time = ? AND status <> ?",
			email, date, clock, models.BookingCancelled,
		).
		Order("id ASC").
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForDay(
	ctx context.Context,
	accountID uint,
	date string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"account_id = ? AND date = ? AND status <> ?",
			accountID, date, models.BookingCancelled,
		).
		Order("time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsBetween(
	ctx context.Context,
	accountID uint,
	fromDate string,
	toDate string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"account_id = ? AND date >= ? AND date <= ?",
			accountID, fromDate, toDate,
		).
		Order("date ASC, time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListBlockedRanges(
	ctx context.Context,
	accountID uint,
) ([]models.BlockedDateRange, error) {

	var ranges []models.BlockedDateRange
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("start_date ASC").
		Find(&ranges).Error; err != nil {
		return nil, err
	}
	return ranges, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
