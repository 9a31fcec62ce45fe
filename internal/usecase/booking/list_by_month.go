package booking

import (
	"context"
	"time"

	domain "github.com/bookwell-app/booking-api/internal/domain/booking"
	"github.com/bookwell-app/booking-api/internal/dto"
)

type ListBookingsByMonth struct {
	repo domain.Repository
}

func NewListBookingsByMonth(
	repo domain.Repository,
) *ListBookingsByMonth {
	return &ListBookingsByMonth{
		repo: repo,
	}
}

func (uc *ListBookingsByMonth) Execute(
	ctx context.Context,
	accountID uint,
	year int,
	month time.Month,
) ([]dto.BookingListDTO, error) {

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	bookings, err := uc.repo.ListBookingsBetween(
		ctx,
		accountID,
		first.Format(domain.DateLayout),
		last.Format(domain.DateLayout),
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:            b.ID,
			Date:          b.Date,
			Time:          b.Time,
			DurationMin:   b.DurationMin,
			Status:        b.Status,
			PaymentStatus: b.PaymentStatus,
			PaymentAmount: b.PaymentAmount,
			TotalAmount:   b.TotalAmount,
			ClientName:    b.ClientName,
			ServiceName:   b.Service.Name,
		})
	}

	return out, nil
}
