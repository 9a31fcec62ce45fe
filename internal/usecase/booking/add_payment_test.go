package booking_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwell-app/booking-api/internal/httperr"
	"github.com/bookwell-app/booking-api/internal/models"
	ucbooking "github.com/bookwell-app/booking-api/internal/usecase/booking"
)

func TestAddPayment_PartialThenCompletedConfirms(t *testing.T) {
	repo := newFakeRepo()
	repo.bookings = append(repo.bookings, models.Booking{
		ID: 1, AccountID: 1,
		TotalAmount:   100,
		PaymentStatus: models.PaymentPending,
		Status:        models.BookingPending,
	})

	uc := ucbooking.NewAddPayment(repo, nil)

	b, err := uc.Execute(context.Background(), ucbooking.AddPaymentInput{
		AccountID: 1, TeamMemberID: 2, BookingID: 1,
		Amount: 30, Method: models.MethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, 30.0, b.PaymentAmount)
	assert.Equal(t, models.PaymentPartial, b.PaymentStatus)
	assert.Equal(t, models.BookingPending, b.Status)

	b, err = uc.Execute(context.Background(), ucbooking.AddPaymentInput{
		AccountID: 1, TeamMemberID: 2, BookingID: 1,
		Amount: 70, Method: models.MethodTransfer,
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, b.PaymentAmount)
	assert.Equal(t, models.PaymentCompleted, b.PaymentStatus)
	assert.Equal(t, models.BookingConfirmed, b.Status)
	assert.Len(t, b.Transactions, 2)
}

func TestAddPayment_RejectsGatewayMethod(t *testing.T) {
	repo := newFakeRepo()
	uc := ucbooking.NewAddPayment(repo, nil)

	_, err := uc.Execute(context.Background(), ucbooking.AddPaymentInput{
		AccountID: 1, TeamMemberID: 2, BookingID: 1,
		Amount: 30, Method: models.MethodGateway,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_method"),
		"gateway entries only arrive via webhook reconciliation")
}

func TestAddPayment_RejectsNonPositiveAmount(t *testing.T) {
	uc := ucbooking.NewAddPayment(newFakeRepo(), nil)

	_, err := uc.Execute(context.Background(), ucbooking.AddPaymentInput{
		AccountID: 1, TeamMemberID: 2, BookingID: 1,
		Amount: 0, Method: models.MethodCash,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_amount"))
}

func TestAddPayment_RejectsCancelledBooking(t *testing.T) {
	repo := newFakeRepo()
	repo.bookings = append(repo.bookings, models.Booking{
		ID: 1, AccountID: 1, TotalAmount: 100,
		Status: models.BookingCancelled,
	})

	uc := ucbooking.NewAddPayment(repo, nil)

	_, err := uc.Execute(context.Background(), ucbooking.AddPaymentInput{
		AccountID: 1, TeamMemberID: 2, BookingID: 1,
		Amount: 30, Method: models.MethodCash,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}
