package booking

import (
	"context"

	domain "github.com/bookwell-app/booking-api/internal/domain/booking"
	"github.com/bookwell-app/booking-api/internal/dto"
)

type ListBookingsByDate struct {
	repo domain.Repository
}

func NewListBookingsByDate(
	repo domain.Repository,
) *ListBookingsByDate {
	return &ListBookingsByDate{
		repo: repo,
	}
}

func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	accountID uint,
	date string,
) ([]dto.BookingListDTO, error) {

	bookings, err := uc.repo.ListBookingsForDay(ctx, accountID, date)
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
