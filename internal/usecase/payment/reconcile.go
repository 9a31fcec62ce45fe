package payment

import (
	"context"
	"fmt"
	"log"

	"github.com/bookwell-app/booking-api/internal/audit"
	"github.com/bookwell-app/booking-api/internal/dedup"
	booking "github.com/bookwell-app/booking-api/internal/domain/booking"
	domain "github.com/bookwell-app/booking-api/internal/domain/payment"
	"github.com/bookwell-app/booking-api/internal/httperr"
	"github.com/bookwell-app/booking-api/internal/models"
)

// SubscriptionManager updates the paying account's plan when a gateway
// event carries the subscription flag. Billing administration itself lives
// outside this engine.
type SubscriptionManager interface {
	Activate(ctx context.Context, accountID uint, planID string) error
}

// ======================================================
// USE CASE
// ======================================================

// Reconcile turns inbound gateway events into ledger transactions:
// received → deduplicated | rejected | resolved → ledger-applied.
type Reconcile struct {
	repo  booking.Repository
	cache dedup.Cache
	subs  SubscriptionManager
	audit *audit.Dispatcher
}

func NewReconcile(
	repo booking.Repository,
	cache dedup.Cache,
	subs SubscriptionManager,
	audit *audit.Dispatcher,
) *Reconcile {
	return &Reconcile{
		repo:  repo,
		cache: cache,
		subs:  subs,
		audit: audit,
	}
}

// ======================================================
// HANDLE
// ======================================================

func (uc *Reconcile) Handle(
	ctx context.Context,
	ev domain.Event,
) (domain.Outcome, error) {

	// --------------------------------------------------
	// 1. Filter: only captured payments proceed
	// --------------------------------------------------
	if !ev.Paid() {
		return domain.Outcome{Type: domain.OutcomeIgnored}, nil
	}

	if ev.SessionID == "" {
		return domain.Outcome{}, httperr.ErrBusiness("missing_session_id")
	}

	// --------------------------------------------------
	// 2. Dedup: claim the session id before any other work
	// --------------------------------------------------
	prior, began, err := uc.cache.Begin(ctx, ev.SessionID)
	if err != nil {
		return domain.Outcome{}, err
	}
	if !began {
		out := domain.Outcome{Type: domain.OutcomeDuplicate}
		if prior != nil {
			out.BookingID = prior.BookingID
			out.TransactionID = prior.TransactionID
		}
		return out, nil
	}

	// --------------------------------------------------
	// 3 + 4. Classify and apply
	// --------------------------------------------------
	out, err := uc.process(ctx, ev)
	if err != nil {
		// Release the claim so the gateway's own retry can reprocess.
		if ferr := uc.cache.Forget(ctx, ev.SessionID); ferr != nil {
			log.Printf("[reconcile] session %s: failed to release dedup claim: %v", ev.SessionID, ferr)
		}
		return domain.Outcome{}, err
	}

	// --------------------------------------------------
	// 5. Record the outcome for replayed deliveries
	// --------------------------------------------------
	if err := uc.cache.Complete(ctx, ev.SessionID, out); err != nil {
		// The ledger write already landed; the worst case is a retry
		// answered from a stale placeholder.
		log.Printf("[reconcile] session %s: failed to store outcome: %v", ev.SessionID, err)
	}

	return out, nil
}

func (uc *Reconcile) process(
	ctx context.Context,
	ev domain.Event,
) (domain.Outcome, error) {

	switch {
	case ev.Metadata.Flag(domain.MetaSubscription):
		return uc.activateSubscription(ctx, ev)

	case ev.Metadata.Flag(domain.MetaCreateBooking):
		return uc.createBookingAfterPayment(ctx, ev)

	default:
		return uc.applyToExistingBooking(ctx, ev)
	}
}

// ======================================================
// SUBSCRIPTION
// ======================================================

func (uc *Reconcile) activateSubscription(
	ctx context.Context,
	ev domain.Event,
) (domain.Outcome, error) {

	accountID, ok := ev.Metadata.Uint(domain.MetaUserID)
	if !ok {
		return domain.Outcome{}, httperr.ErrBusiness("invalid_subscription_metadata")
	}

	planID := ev.Metadata.Get(domain.MetaPlanID)
	if err := uc.subs.Activate(ctx, accountID, planID); err != nil {
		return domain.Outcome{}, err
	}

	uc.audit.Dispatch(audit.Event{
		AccountID: accountID,
		Action:    "subscription_activated",
		Entity:    "account",
		EntityID:  &accountID,
		Metadata:  map[string]string{"plan_id": planID, "session_id": ev.SessionID},
	})

	return domain.Outcome{Type: domain.OutcomeSubscription}, nil
}

// ======================================================
// CREATE BOOKING AFTER PAYMENT
// ======================================================

func (uc *Reconcile) createBookingAfterPayment(
	ctx context.Context,
	ev domain.Event,
) (domain.Outcome, error) {

	md := ev.Metadata

	serviceID, ok := md.Uint(domain.MetaServiceID)
	if !ok {
		return domain.Outcome{}, httperr.ErrBusiness("invalid_booking_metadata")
	}

	svc, err := uc.repo.GetServiceByID(ctx, serviceID)
	if err != nil {
		return domain.Outcome{}, httperr.ErrBusiness("service_not_found")
	}

	date := md.Get(domain.MetaDate)
	clock := md.Get(domain.MetaTime)
	if date == "" || clock == "" {
		return domain.Outcome{}, httperr.ErrBusiness("invalid_booking_metadata")
	}

	durationMin := svc.DurationMin
	if d, ok := md.Int(domain.MetaDurationMinutes); ok {
		durationMin = d
	}

	quantity := 1
	if q, ok := md.Int(domain.MetaQuantity); ok && q > 0 {
		quantity = q
	}

	total := svc.Price * float64(quantity)
	if t, ok := md.Float(domain.MetaTotalAmount); ok {
		total = t
	}

	b := &models.Booking{
		AccountID:       svc.AccountID,
		ServiceID:       svc.ID,
		Date:            date,
		Time:            clock,
		DurationMin:     durationMin,
		BufferMin:       svc.BufferMin,
		Quantity:        quantity,
		ClientName:      md.Get(domain.MetaClientName),
		ClientFirstName: md.Get(domain.MetaClientFirstname),
		ClientEmail:     ev.CustomerEmail,
		ClientPhone:     md.Get(domain.MetaPhone),
		TotalAmount:     total,
		Status:          booking.InitialStatus(),
	}

	seed := booking.NewTransaction(
		ev.Amount,
		models.MethodGateway,
		models.TransactionCompleted,
		gatewayNote(ev.SessionID),
	)
	booking.ApplyTransaction(b, seed)
	booking.Confirm(b)

	if err := uc.repo.InsertBooking(ctx, b); err != nil {
		return domain.Outcome{}, err
	}

	uc.audit.Dispatch(audit.Event{
		AccountID: b.AccountID,
		Action:    "booking_created_after_payment",
		Entity:    "booking",
		EntityID:  &b.ID,
		Metadata:  map[string]string{"session_id": ev.SessionID},
	})

	return domain.Outcome{
		Type:          domain.OutcomeBookingCreated,
		BookingID:     b.ID,
		TransactionID: seed.ID,
	}, nil
}

// ======================================================
// APPLY TO EXISTING BOOKING
// ======================================================

func (uc *Reconcile) applyToExistingBooking(
	ctx context.Context,
	ev domain.Event,
) (domain.Outcome, error) {

	b, err := uc.resolveBooking(ctx, ev)
	if err != nil {
		return domain.Outcome{}, err
	}

	t := booking.NewTransaction(
		ev.Amount,
		models.MethodGateway,
		models.TransactionCompleted,
		gatewayNote(ev.SessionID),
	)
	booking.ApplyTransaction(b, t)

	// A captured payment always confirms, even a partial deposit.
	booking.Confirm(b)

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return domain.Outcome{}, err
	}

	uc.audit.Dispatch(audit.Event{
		AccountID: b.AccountID,
		Action:    "payment_applied",
		Entity:    "booking",
		EntityID:  &b.ID,
		Metadata:  map[string]string{"session_id": ev.SessionID, "transaction_id": t.ID},
	})

	return domain.Outcome{
		Type:          domain.OutcomeApplied,
		BookingID:     b.ID,
		TransactionID: t.ID,
	}, nil
}

// resolveBooking tries the explicit booking id from the metadata first and
// falls back to matching by customer email + date + time. No match is a
// terminal error: money was captured with no destination, which needs an
// operator, not a silent drop.
func (uc *Reconcile) resolveBooking(
	ctx context.Context,
	ev domain.Event,
) (*models.Booking, error) {

	if id, ok := ev.Metadata.Uint(domain.MetaBookingID); ok {
		b, err := uc.repo.GetBookingByID(ctx, id)
		if err != nil {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return b, nil
	}

	date := ev.Metadata.Get(domain.MetaDate)
	clock := ev.Metadata.Get(domain.MetaTime)
	if ev.CustomerEmail == "" || date == "" || clock == "" {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	// If the same client holds two bookings in the same slot this can
	// resolve either one; logged so operators can trace which was picked.
	log.Printf(
		"[reconcile] session %s: no booking_id, matching by contact %s @ %s %s",
		ev.SessionID, ev.CustomerEmail, date, clock,
	)

	b, err := uc.repo.FindBookingByClientSlot(ctx, ev.CustomerEmail, date, clock)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	return b, nil
}

func gatewayNote(sessionID string) string {
	return fmt.Sprintf("gateway session %s", sessionID)
}
