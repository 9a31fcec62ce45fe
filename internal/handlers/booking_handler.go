package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/bookwell-app/booking-api/internal/domain/booking"
	"github.com/bookwell-app/booking-api/internal/gateway"
	"github.com/bookwell-app/booking-api/internal/httperr"
	"github.com/bookwell-app/booking-api/internal/httpresp"
	"github.com/bookwell-app/booking-api/internal/middleware"
	"github.com/bookwell-app/booking-api/internal/models"
	ucbooking "github.com/bookwell-app/booking-api/internal/usecase/booking"
	"github.com/bookwell-app/booking-api/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC      *ucbooking.CreateBooking
	cancelUC      *ucbooking.CancelBooking
	addPaymentUC  *ucbooking.AddPayment
	listByDateUC  *ucbooking.ListBookingsByDate
	listByMonthUC *ucbooking.ListBookingsByMonth

	repo    domain.Repository
	gateway *gateway.StripeGateway
}

func NewBookingHandler(
	createUC *ucbooking.CreateBooking,
	cancelUC *ucbooking.CancelBooking,
	addPaymentUC *ucbooking.AddPayment,
	listByDateUC *ucbooking.ListBookingsByDate,
	listByMonthUC *ucbooking.ListBookingsByMonth,
	repo domain.Repository,
	gw *gateway.StripeGateway,
) *BookingHandler {
	return &BookingHandler{
		createUC:      createUC,
		cancelUC:      cancelUC,
		addPaymentUC:  addPaymentUC,
		listByDateUC:  listByDateUC,
		listByMonthUC: listByMonthUC,
		repo:          repo,
		gateway:       gw,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ClientName      string `json:"client_name" binding:"required"`
	ClientFirstName string `json:"client_first_name"`
	ClientPhone     string `json:"client_phone" binding:"required"`
	ClientEmail     string `json:"client_email"`

	ServiceID uint `json:"service_id" binding:"required"`
	Quantity  int  `json:"quantity"`

	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Notes string `json:"notes"`
}

type AddPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Method string  `json:"method" binding:"required"`
	Note   string  `json:"note"`
}

type PaymentLinkRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	memberID := c.MustGet(middleware.ContextMemberID).(uint)
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	if !validators.IsDate(req.Date) || !validators.IsClockTime(req.Time) {
		httperr.BadRequest(c, "invalid_date_or_time", "Date must be YYYY-MM-DD and time HH:MM.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucbooking.CreateBookingInput{
		AccountID:       accountID,
		TeamMemberID:    &memberID,
		ClientName:      req.ClientName,
		ClientFirstName: req.ClientFirstName,
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		ServiceID:       req.ServiceID,
		Quantity:        req.Quantity,
		Date:            req.Date,
		Time:            req.Time,
		Notes:           req.Notes,

		// Staff register walk-ins past the public lead-time cutoff.
		SkipAdvanceCheck: true,
	})
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.Created(c, b)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}
	if !validators.IsDate(dateStr) {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	out, err := h.listByDateUC.Execute(c.Request.Context(), accountID, dateStr)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Failed to list bookings.")
		return
	}

	httpresp.List(c, out)
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Year is required, e.g. 2026.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Month must be 1 to 12.")
		return
	}

	out, err := h.listByMonthUC.Execute(
		c.Request.Context(),
		accountID,
		year,
		time.Month(month),
	)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Failed to list bookings.")
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// CANCEL
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	memberID := c.MustGet(middleware.ContextMemberID).(uint)
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Booking id must be numeric.")
		return
	}

	b, err := h.cancelUC.Execute(c.Request.Context(), accountID, memberID, uint(id))
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// PAYMENTS
// ======================================================

func (h *BookingHandler) AddPayment(c *gin.Context) {
	memberID := c.MustGet(middleware.ContextMemberID).(uint)
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Booking id must be numeric.")
		return
	}

	var req AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	b, err := h.addPaymentUC.Execute(c.Request.Context(), ucbooking.AddPaymentInput{
		AccountID:    accountID,
		TeamMemberID: memberID,
		BookingID:    uint(id),
		Amount:       req.Amount,
		Method:       models.TransactionMethod(req.Method),
		Note:         req.Note,
	})
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	httpresp.OK(c, b)
}

// PaymentLink returns a hosted checkout URL for collecting a deposit (or
// the remainder) on an existing booking. The resulting payment comes back
// through the gateway webhook, never through this request.
func (h *BookingHandler) PaymentLink(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	if h.gateway == nil {
		httperr.BadRequest(c, "gateway_not_configured", "Payment gateway is not configured.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Booking id must be numeric.")
		return
	}

	var req PaymentLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}
	if req.Amount <= 0 {
		httperr.BadRequest(c, "invalid_amount", "Amount must be positive.")
		return
	}

	ctx := c.Request.Context()

	b, err := h.repo.GetBookingForAccount(ctx, uint(id), accountID)
	if err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	if b.Status == models.BookingCancelled {
		httperr.BadRequest(c, "invalid_state", "Cancelled bookings cannot be charged.")
		return
	}

	svc, err := h.repo.GetServiceByID(ctx, b.ServiceID)
	if err != nil {
		httperr.Internal(c, "service_not_found", "Failed to load the booked service.")
		return
	}

	url, err := h.gateway.CreateDepositSession(ctx, b, svc, req.Amount)
	if err != nil {
		httperr.Internal(c, "gateway_error", "Failed to create the checkout session.")
		return
	}

	httpresp.OK(c, gin.H{"url": url})
}
