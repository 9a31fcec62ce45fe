package booking

import (
	"context"

	"github.com/bookwell-app/booking-api/internal/audit"
	domain "github.com/bookwell-app/booking-api/internal/domain/booking"
	"github.com/bookwell-app/booking-api/internal/httperr"
	"github.com/bookwell-app/booking-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type AddPaymentInput struct {
	AccountID    uint
	TeamMemberID uint
	BookingID    uint

	Amount float64
	Method models.TransactionMethod
	Note   string
}

// ======================================================
// USE CASE
// ======================================================

// AddPayment records a manual ledger entry, e.g. cash taken at the desk or
// a bank transfer the owner saw land. Gateway payments never come through
// here; they arrive via webhook reconciliation.
type AddPayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddPayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AddPayment {
	return &AddPayment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *AddPayment) Execute(
	ctx context.Context,
	in AddPaymentInput,
) (*models.Booking, error) {

	if in.Amount <= 0 {
		return nil, httperr.ErrBusiness("invalid_amount")
	}

	switch in.Method {
	case models.MethodCash, models.MethodCard, models.MethodTransfer:
	default:
		return nil, httperr.ErrBusiness("invalid_method")
	}

	b, err := uc.repo.GetBookingForAccount(ctx, in.BookingID, in.AccountID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if b.Status == models.BookingCancelled {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	t := domain.NewTransaction(in.Amount, in.Method, models.TransactionCompleted, in.Note)
	if confirm := domain.ApplyTransaction(b, t); confirm {
		domain.Confirm(b)
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AccountID:    in.AccountID,
		TeamMemberID: &in.TeamMemberID,
		Action:       "payment_recorded",
		Entity:       "booking",
		EntityID:     &b.ID,
		Metadata:     map[string]string{"transaction_id": t.ID},
	})

	return b, nil
}
