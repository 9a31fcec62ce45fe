package booking

import (
	"context"
	"slices"
	"time"

	domain "github.com/bookwell-app/booking-api/internal/domain/booking"
	"github.com/bookwell-app/booking-api/internal/httperr"
	"github.com/bookwell-app/booking-api/internal/models"
)

type AvailabilityInput struct {
	AccountID    uint
	TeamMemberID *uint
	ServiceID    uint
	Date         time.Time
}

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]domain.TimeSlot, error) {

	account, err := uc.repo.GetAccountByID(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}

	svc, err := uc.repo.GetService(ctx, in.AccountID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	bookings, err := uc.repo.ListBookingsForDay(
		ctx,
		in.AccountID,
		in.Date.Format(domain.DateLayout),
	)
	if err != nil {
		return nil, err
	}

	// With per-member scheduling only the selected member's bookings
	// block; business-wide scheduling counts everything.
	if account.SchedulingScope == models.ScopeMember && in.TeamMemberID != nil {
		filtered := bookings[:0]
		for _, b := range bookings {
			if b.TeamMemberID != nil && *b.TeamMemberID == *in.TeamMemberID {
				filtered = append(filtered, b)
			}
		}
		bookings = filtered
	}

	blocked, err := uc.repo.ListBlockedRanges(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}

	hours := domain.BusinessHours{
		Open:    account.OpenTime,
		Close:   account.CloseTime,
		StepMin: account.SlotStepMin,
	}

	slots := slices.Collect(domain.AvailableSlots(
		in.Date,
		svc.DurationMin,
		bookings,
		blocked,
		hours,
	))
	if slots == nil {
		slots = []domain.TimeSlot{}
	}

	return slots, nil
}
