package booking

import (
	"context"
	"time"

	"github.com/bookwell-app/booking-api/internal/audit"
	domain "github.com/bookwell-app/booking-api/internal/domain/booking"
	"github.com/bookwell-app/booking-api/internal/httperr"
	"github.com/bookwell-app/booking-api/internal/models"
	"github.com/bookwell-app/booking-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	AccountID    uint
	TeamMemberID *uint

	ClientName      string
	ClientFirstName string
	ClientEmail     string
	ClientPhone     string

	ServiceID uint
	Quantity  int

	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string

	// SkipAdvanceCheck lets staff register walk-ins that a public client
	// could not book anymore.
	SkipAdvanceCheck bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	account, err := uc.repo.GetAccountByID(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(account.Timezone)
	start, err := time.ParseInLocation(
		domain.DateLayout+" "+domain.ClockLayout,
		in.Date+" "+in.Time,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if !in.SkipAdvanceCheck {
		minAdvance := account.MinAdvanceMinutes
		if minAdvance <= 0 {
			minAdvance = 120
		}

		now := timezone.NowIn(account.Timezone)
		if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
			return nil, httperr.ErrBusiness("too_soon")
		}
	}

	svc, err := uc.repo.GetService(ctx, in.AccountID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	blocked, err := uc.repo.ListBlockedRanges(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}
	if domain.DateBlocked(in.Date, blocked) {
		return nil, httperr.ErrBusiness("date_blocked")
	}

	quantity := in.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	b := &models.Booking{
		AccountID:       in.AccountID,
		TeamMemberID:    in.TeamMemberID,
		ServiceID:       svc.ID,
		Date:            in.Date,
		Time:            in.Time,
		DurationMin:     svc.DurationMin,
		BufferMin:       svc.BufferMin,
		Quantity:        quantity,
		ClientName:      in.ClientName,
		ClientFirstName: in.ClientFirstName,
		ClientEmail:     in.ClientEmail,
		ClientPhone:     in.ClientPhone,
		TotalAmount:     svc.Price * float64(quantity),
		PaymentStatus:   models.PaymentPending,
		Status:          domain.InitialStatus(),
		Notes:           in.Notes,
	}

	// The slot the client saw as free may be gone by now; CreateBooking
	// re-runs the conflict check inside the same unit of work as the
	// insert and fails with slot_taken instead of overriding.
	if err := uc.repo.CreateBooking(ctx, b, account.SchedulingScope); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AccountID:    in.AccountID,
		TeamMemberID: in.TeamMemberID,
		Action:       "booking_created",
		Entity:       "booking",
		EntityID:     &b.ID,
	})

	return b, nil
}
