package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookwell-app/booking-api/internal/models"
)

// NewTransaction mints an immutable ledger entry. Transaction ids are
// generated here and never reused.
func NewTransaction(
	amount float64,
	method models.TransactionMethod,
	status models.TransactionStatus,
	note string,
) models.Transaction {

	return models.Transaction{
		ID:        uuid.NewString(),
		Amount:    amount,
		Method:    method,
		Status:    status,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}
}

// CompletedTotal sums the amounts of completed transactions. Failed and
// pending entries stay on the ledger for the audit trail but never count
// toward the paid amount.
func CompletedTotal(list models.TransactionList) float64 {
	var total float64
	for _, t := range list {
		if t.Status == models.TransactionCompleted {
			total += t.Amount
		}
	}
	return total
}

// DerivePaymentStatus maps the paid amount against the booking total.
func DerivePaymentStatus(paid, total float64) models.PaymentStatus {
	switch {
	case paid <= 0:
		return models.PaymentPending
	case paid < total:
		return models.PaymentPartial
	default:
		return models.PaymentCompleted
	}
}

// ApplyTransaction appends t to the booking's ledger and recomputes
// PaymentAmount and PaymentStatus from scratch. The ledger is append-only:
// nothing is ever edited or removed, and TotalAmount is never touched.
//
// The returned flag signals that the payment now covers the total and the
// booking should be confirmed; the caller owns that status transition so
// payment math stays separable from booking lifecycle rules.
func ApplyTransaction(b *models.Booking, t models.Transaction) (confirm bool) {
	b.Transactions = append(b.Transactions, t)
	b.PaymentAmount = CompletedTotal(b.Transactions)
	b.PaymentStatus = DerivePaymentStatus(b.PaymentAmount, b.TotalAmount)
	return b.PaymentAmount >= b.TotalAmount
}
