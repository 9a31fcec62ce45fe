package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bookwell-app/booking-api/internal/domain/booking"
	"github.com/bookwell-app/booking-api/internal/models"
)

func TestNewTransaction_AssignsUniqueIDs(t *testing.T) {
	a := domain.NewTransaction(10, models.MethodCash, models.TransactionCompleted, "")
	b := domain.NewTransaction(10, models.MethodCash, models.TransactionCompleted, "")

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestDerivePaymentStatus(t *testing.T) {
	assert.Equal(t, models.PaymentPending, domain.DerivePaymentStatus(0, 100))
	assert.Equal(t, models.PaymentPartial, domain.DerivePaymentStatus(40, 100))
	assert.Equal(t, models.PaymentCompleted, domain.DerivePaymentStatus(100, 100))
	assert.Equal(t, models.PaymentCompleted, domain.DerivePaymentStatus(120, 100))
}

func TestApplyTransaction_AccumulatesAcrossMethods(t *testing.T) {
	b := &models.Booking{TotalAmount: 100, PaymentStatus: models.PaymentPending}

	confirm := domain.ApplyTransaction(b, domain.NewTransaction(
		40, models.MethodCash, models.TransactionCompleted, "desk",
	))

	assert.False(t, confirm)
	assert.Equal(t, 40.0, b.PaymentAmount)
	assert.Equal(t, models.PaymentPartial, b.PaymentStatus)

	confirm = domain.ApplyTransaction(b, domain.NewTransaction(
		60, models.MethodGateway, models.TransactionCompleted, "gateway session cs_1",
	))

	assert.True(t, confirm)
	assert.Equal(t, 100.0, b.PaymentAmount)
	assert.Equal(t, models.PaymentCompleted, b.PaymentStatus)
	require.Len(t, b.Transactions, 2)
	assert.Equal(t, 100.0, b.TotalAmount, "applying payments must never touch the total")
}

func TestApplyTransaction_FailedEntriesStayButDoNotCount(t *testing.T) {
	b := &models.Booking{TotalAmount: 100}

	domain.ApplyTransaction(b, domain.NewTransaction(
		100, models.MethodCard, models.TransactionFailed, "declined",
	))

	require.Len(t, b.Transactions, 1)
	assert.Equal(t, 0.0, b.PaymentAmount)
	assert.Equal(t, models.PaymentPending, b.PaymentStatus)
}

func TestCompletedTotal_IgnoresPendingAndFailed(t *testing.T) {
	list := models.TransactionList{
		{Amount: 30, Status: models.TransactionCompleted},
		{Amount: 50, Status: models.TransactionPending},
		{Amount: 20, Status: models.TransactionFailed},
		{Amount: 10, Status: models.TransactionCompleted},
	}

	assert.Equal(t, 40.0, domain.CompletedTotal(list))
}

func TestCancel(t *testing.T) {
	b := &models.Booking{Status: models.BookingConfirmed}

	require.NoError(t, domain.Cancel(b, b.CreatedAt))
	assert.Equal(t, models.BookingCancelled, b.Status)
	assert.NotNil(t, b.CancelledAt)

	// A second cancel is rejected.
	assert.Error(t, domain.Cancel(b, b.CreatedAt))
}

func TestConfirm_NeverResurrectsCancelledBookings(t *testing.T) {
	b := &models.Booking{Status: models.BookingCancelled}
	domain.Confirm(b)
	assert.Equal(t, models.BookingCancelled, b.Status)

	b = &models.Booking{Status: models.BookingPending}
	domain.Confirm(b)
	assert.Equal(t, models.BookingConfirmed, b.Status)
}
