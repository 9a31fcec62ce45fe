package booking

import (
	"context"

	"github.com/bookwell-app/booking-api/internal/audit"
	domain "github.com/bookwell-app/booking-api/internal/domain/booking"
	"github.com/bookwell-app/booking-api/internal/httperr"
	"github.com/bookwell-app/booking-api/internal/models"
	"github.com/bookwell-app/booking-api/internal/timezone"
)

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	accountID uint,
	memberID uint,
	bookingID uint,
) (*models.Booking, error) {

	account, err := uc.repo.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingForAccount(ctx, bookingID, accountID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := timezone.NowIn(account.Timezone)
	if err := domain.Cancel(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AccountID:    accountID,
		TeamMemberID: &memberID,
		Action:       "booking_cancelled",
		Entity:       "booking",
		EntityID:     &b.ID,
	})

	return b, nil
}
