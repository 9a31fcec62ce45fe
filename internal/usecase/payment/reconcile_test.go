package payment_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwell-app/booking-api/internal/dedup"
	booking "github.com/bookwell-app/booking-api/internal/domain/booking"
	domain "github.com/bookwell-app/booking-api/internal/domain/payment"
	"github.com/bookwell-app/booking-api/internal/httperr"
	"github.com/bookwell-app/booking-api/internal/models"
	ucpayment "github.com/bookwell-app/booking-api/internal/usecase/payment"
)

// ======================================================
// FAKES
// ======================================================

type fakeRepo struct {
	mu       sync.Mutex
	accounts map[uint]*models.Account
	services map[uint]*models.Service
	bookings map[uint]*models.Booking
	nextID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		accounts: make(map[uint]*models.Account),
		services: make(map[uint]*models.Service),
		bookings: make(map[uint]*models.Booking),
		nextID:   1,
	}
}

func (r *fakeRepo) addBooking(b models.Booking) uint {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.nextID
	r.nextID++
	r.bookings[b.ID] = &b
	return b.ID
}

func (r *fakeRepo) booking(id uint) models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.bookings[id]
}

func (r *fakeRepo) GetAccountByID(ctx context.Context, id uint) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, httperr.ErrBusiness("account_not_found")
}

func (r *fakeRepo) GetAccountBySlug(ctx context.Context, slug string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Slug == slug {
			copied := *a
			return &copied, nil
		}
	}
	return nil, httperr.ErrBusiness("account_not_found")
}

func (r *fakeRepo) GetService(ctx context.Context, accountID, serviceID uint) (*models.Service, error) {
	svc, err := r.GetServiceByID(ctx, serviceID)
	if err != nil || svc.AccountID != accountID {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return svc, nil
}

func (r *fakeRepo) GetServiceByID(ctx context.Context, serviceID uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.services[serviceID]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, httperr.ErrBusiness("service_not_found")
}

func (r *fakeRepo) CreateBooking(ctx context.Context, b *models.Booking, scope models.SchedulingScope) error {
	return r.InsertBooking(ctx, b)
}

func (r *fakeRepo) InsertBooking(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.nextID
	r.nextID++
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *fakeRepo) GetBookingByID(ctx context.Context, id uint) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, httperr.ErrBusiness("booking_not_found")
}

func (r *fakeRepo) GetBookingForAccount(ctx context.Context, bookingID, accountID uint) (*models.Booking, error) {
	b, err := r.GetBookingByID(ctx, bookingID)
	if err != nil || b.AccountID != accountID {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	return b, nil
}

func (r *fakeRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *fakeRepo) FindBookingByClientSlot(ctx context.Context, email, date, clock string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var match *models.Booking
	for _, b := range r.bookings {
		if b.ClientEmail != email || b.Date != date || b.Time != clock {
			continue
		}
		if b.Status == models.BookingCancelled {
			continue
		}
		if match == nil || b.ID < match.ID {
			match = b
		}
	}
	if match == nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	copied := *match
	return &copied, nil
}

func (r *fakeRepo) ListBookingsForDay(ctx context.Context, accountID uint, date string) ([]models.Booking, error) {
	return nil, nil
}

func (r *fakeRepo) ListBookingsBetween(ctx context.Context, accountID uint, fromDate, toDate string) ([]models.Booking, error) {
	return nil, nil
}

func (r *fakeRepo) ListBlockedRanges(ctx context.Context, accountID uint) ([]models.BlockedDateRange, error) {
	return nil, nil
}

var _ booking.Repository = (*fakeRepo)(nil)

type fakeSubs struct {
	mu        sync.Mutex
	activated []struct {
		AccountID uint
		PlanID    string
	}
}

func (s *fakeSubs) Activate(ctx context.Context, accountID uint, planID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activated = append(s.activated, struct {
		AccountID uint
		PlanID    string
	}{accountID, planID})
	return nil
}

// ======================================================
// HELPERS
// ======================================================

func newReconcile(repo *fakeRepo, subs *fakeSubs) (*ucpayment.Reconcile, dedup.Cache) {
	cache := dedup.NewMemoryCache(time.Minute)
	if subs == nil {
		subs = &fakeSubs{}
	}
	return ucpayment.NewReconcile(repo, cache, subs, nil), cache
}

func paidEvent(sessionID string) domain.Event {
	return domain.Event{
		SessionID:       sessionID,
		SessionComplete: true,
		Captured:        true,
	}
}

// ======================================================
// FILTER + VALIDATION
// ======================================================

func TestHandle_IgnoresUncapturedSessions(t *testing.T) {
	repo := newFakeRepo()
	uc, _ := newReconcile(repo, nil)

	ev := domain.Event{
		SessionID:       "cs_1",
		SessionComplete: true,
		Captured:        false,
		Amount:          50,
	}

	out, err := uc.Handle(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeIgnored, out.Type)

	// The filter must short-circuit before the dedup claim: a later
	// captured delivery of the same session still processes.
	id := repo.addBooking(models.Booking{AccountID: 1, TotalAmount: 50, Status: models.BookingPending})

	ev.Captured = true
	ev.Metadata = domain.Metadata{domain.MetaBookingID: "1"}

	out, err = uc.Handle(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeApplied, out.Type)
	assert.Equal(t, id, out.BookingID)
}

func TestHandle_RejectsMissingSessionID(t *testing.T) {
	uc, _ := newReconcile(newFakeRepo(), nil)

	_, err := uc.Handle(context.Background(), paidEvent(""))
	assert.True(t, httperr.IsBusiness(err, "missing_session_id"))
}

// ======================================================
// APPLY TO EXISTING BOOKING
// ======================================================

func TestHandle_AppliesPaymentToExistingBooking(t *testing.T) {
	repo := newFakeRepo()
	id := repo.addBooking(models.Booking{
		AccountID:   1,
		TotalAmount: 100,
		Status:      models.BookingPending,
	})

	uc, _ := newReconcile(repo, nil)

	ev := paidEvent("cs_1")
	ev.Amount = 100
	ev.Metadata = domain.Metadata{domain.MetaBookingID: "1"}

	out, err := uc.Handle(context.Background(), ev)
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeApplied, out.Type)
	assert.Equal(t, id, out.BookingID)
	assert.NotEmpty(t, out.TransactionID)

	got := repo.booking(id)
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, models.MethodGateway, got.Transactions[0].Method)
	assert.Equal(t, 100.0, got.PaymentAmount)
	assert.Equal(t, models.PaymentCompleted, got.PaymentStatus)
	assert.Equal(t, models.BookingConfirmed, got.Status)
}

func TestHandle_PartialDepositConfirmsButStaysPartial(t *testing.T) {
	repo := newFakeRepo()
	id := repo.addBooking(models.Booking{
		AccountID:   1,
		TotalAmount: 100,
		Status:      models.BookingPending,
	})

	uc, _ := newReconcile(repo, nil)

	ev := paidEvent("cs_1")
	ev.Amount = 30
	ev.Metadata = domain.Metadata{domain.MetaBookingID: "1"}

	_, err := uc.Handle(context.Background(), ev)
	require.NoError(t, err)

	got := repo.booking(id)
	assert.Equal(t, 30.0, got.PaymentAmount)
	assert.Equal(t, models.PaymentPartial, got.PaymentStatus)
	assert.Equal(t, models.BookingConfirmed, got.Status)
}

func TestHandle_FallbackMatchByContact(t *testing.T) {
	repo := newFakeRepo()

	// Two candidates in the same slot; the oldest id wins.
	first := repo.addBooking(models.Booking{
		AccountID: 1, TotalAmount: 50,
		ClientEmail: "ana@example.com", Date: "2026-09-01", Time: "10:00",
		Status: models.BookingPending,
	})
	repo.addBooking(models.Booking{
		AccountID: 1, TotalAmount: 50,
		ClientEmail: "ana@example.com", Date: "2026-09-01", Time: "10:00",
		Status: models.BookingPending,
	})

	uc, _ := newReconcile(repo, nil)

	ev := paidEvent("cs_1")
	ev.Amount = 50
	ev.CustomerEmail = "ana@example.com"
	ev.Metadata = domain.Metadata{
		domain.MetaDate: "2026-09-01",
		domain.MetaTime: "10:00",
	}

	out, err := uc.Handle(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeApplied, out.Type)
	assert.Equal(t, first, out.BookingID)
}

// ======================================================
// DEDUP
// ======================================================

func TestHandle_ReplayReturnsCachedOutcome(t *testing.T) {
	repo := newFakeRepo()
	id := repo.addBooking(models.Booking{
		AccountID:   1,
		TotalAmount: 100,
		Status:      models.BookingPending,
	})

	uc, _ := newReconcile(repo, nil)

	ev := paidEvent("cs_1")
	ev.Amount = 100
	ev.Metadata = domain.Metadata{domain.MetaBookingID: "1"}

	first, err := uc.Handle(context.Background(), ev)
	require.NoError(t, err)

	replay, err := uc.Handle(context.Background(), ev)
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeDuplicate, replay.Type)
	assert.Equal(t, first.BookingID, replay.BookingID)
	assert.Equal(t, first.TransactionID, replay.TransactionID)

	got := repo.booking(id)
	assert.Len(t, got.Transactions, 1, "replay must not touch the ledger")
	assert.Equal(t, 100.0, got.PaymentAmount)
}

func TestHandle_ConcurrentDeliveriesApplyOnce(t *testing.T) {
	repo := newFakeRepo()
	id := repo.addBooking(models.Booking{
		AccountID:   1,
		TotalAmount: 100,
		Status:      models.BookingPending,
	})

	uc, _ := newReconcile(repo, nil)

	ev := paidEvent("cs_1")
	ev.Amount = 100
	ev.Metadata = domain.Metadata{domain.MetaBookingID: "1"}

	const deliveries = 8

	var wg sync.WaitGroup
	var mu sync.Mutex
	applied := 0

	for range deliveries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := uc.Handle(context.Background(), ev)
			assert.NoError(t, err)

			mu.Lock()
			defer mu.Unlock()
			switch out.Type {
			case domain.OutcomeApplied:
				applied++
			case domain.OutcomeDuplicate:
			default:
				t.Errorf("unexpected outcome %q", out.Type)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, applied)

	got := repo.booking(id)
	assert.Len(t, got.Transactions, 1)
	assert.Equal(t, 100.0, got.PaymentAmount)
}

// ======================================================
// CREATE BOOKING AFTER PAYMENT
// ======================================================

func TestHandle_CreatesBookingAfterPayment(t *testing.T) {
	repo := newFakeRepo()
	repo.services[7] = &models.Service{
		ID:          7,
		AccountID:   3,
		Name:        "Deep Tissue Massage",
		DurationMin: 60,
		BufferMin:   15,
		Price:       100,
	}

	uc, _ := newReconcile(repo, nil)

	ev := paidEvent("cs_1")
	ev.Amount = 30
	ev.CustomerEmail = "ana@example.com"
	ev.Metadata = domain.Metadata{
		domain.MetaCreateBooking: "true",
		domain.MetaServiceID:     "7",
		domain.MetaDate:          "2026-09-01",
		domain.MetaTime:          "10:00",
		domain.MetaClientName:    "Silva",
		domain.MetaPhone:         "+351900000000",
	}

	out, err := uc.Handle(context.Background(), ev)
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeBookingCreated, out.Type)
	require.NotZero(t, out.BookingID)

	got := repo.booking(out.BookingID)
	assert.Equal(t, uint(3), got.AccountID)
	assert.Equal(t, "2026-09-01", got.Date)
	assert.Equal(t, "10:00", got.Time)
	assert.Equal(t, 60, got.DurationMin)
	assert.Equal(t, 100.0, got.TotalAmount)
	assert.Equal(t, "ana@example.com", got.ClientEmail)
	assert.Equal(t, models.BookingConfirmed, got.Status)

	// Deposit below the total: the ledger is honest about it.
	assert.Equal(t, 30.0, got.PaymentAmount)
	assert.Equal(t, models.PaymentPartial, got.PaymentStatus)
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, models.MethodGateway, got.Transactions[0].Method)
}

func TestHandle_CreateBookingRejectsBrokenMetadata(t *testing.T) {
	uc, _ := newReconcile(newFakeRepo(), nil)

	ev := paidEvent("cs_1")
	ev.Metadata = domain.Metadata{
		domain.MetaCreateBooking: "true",
		domain.MetaServiceID:     "not-a-number",
	}

	_, err := uc.Handle(context.Background(), ev)
	assert.True(t, httperr.IsBusiness(err, "invalid_booking_metadata"))
}

// ======================================================
// FAILURE RELEASES THE CLAIM
// ======================================================

func TestHandle_UnknownBookingReleasesClaim(t *testing.T) {
	repo := newFakeRepo()
	uc, _ := newReconcile(repo, nil)

	ev := paidEvent("cs_1")
	ev.Amount = 50
	ev.Metadata = domain.Metadata{domain.MetaBookingID: "999"}

	_, err := uc.Handle(context.Background(), ev)
	require.True(t, httperr.IsBusiness(err, "booking_not_found"))

	// The operator fixes the data; the gateway's redelivery must get a
	// fresh run, not a cached duplicate.
	repo.mu.Lock()
	repo.bookings[999] = &models.Booking{
		ID: 999, AccountID: 1, TotalAmount: 50, Status: models.BookingPending,
	}
	repo.mu.Unlock()

	out, err := uc.Handle(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeApplied, out.Type)
	assert.Equal(t, uint(999), out.BookingID)
}

// ======================================================
// SUBSCRIPTION
// ======================================================

func TestHandle_ActivatesSubscription(t *testing.T) {
	subs := &fakeSubs{}
	uc, _ := newReconcile(newFakeRepo(), subs)

	ev := paidEvent("cs_1")
	ev.Metadata = domain.Metadata{
		domain.MetaSubscription: "true",
		domain.MetaUserID:       "12",
		domain.MetaPlanID:       "pro-monthly",
	}

	out, err := uc.Handle(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSubscription, out.Type)

	require.Len(t, subs.activated, 1)
	assert.Equal(t, uint(12), subs.activated[0].AccountID)
	assert.Equal(t, "pro-monthly", subs.activated[0].PlanID)
}

func TestHandle_SubscriptionWithBadAccountID(t *testing.T) {
	uc, _ := newReconcile(newFakeRepo(), &fakeSubs{})

	ev := paidEvent("cs_1")
	ev.Metadata = domain.Metadata{domain.MetaSubscription: "true"}

	_, err := uc.Handle(context.Background(), ev)
	assert.True(t, httperr.IsBusiness(err, "invalid_subscription_metadata"))
}
