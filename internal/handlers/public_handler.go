package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/bookwell-app/booking-api/internal/domain/booking"
	"github.com/bookwell-app/booking-api/internal/httperr"
	"github.com/bookwell-app/booking-api/internal/models"
	"github.com/bookwell-app/booking-api/internal/timezone"
	ucbooking "github.com/bookwell-app/booking-api/internal/usecase/booking"
	"github.com/bookwell-app/booking-api/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db             *gorm.DB
	availabilityUC *ucbooking.GetAvailability
	createUC       *ucbooking.CreateBooking
}

func NewPublicHandler(
	db *gorm.DB,
	availabilityUC *ucbooking.GetAvailability,
	createUC *ucbooking.CreateBooking,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		availabilityUC: availabilityUC,
		createUC:       createUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	ClientName      string `json:"client_name" binding:"required"`
	ClientFirstName string `json:"client_first_name"`
	ClientPhone     string `json:"client_phone" binding:"required"`
	ClientEmail     string `json:"client_email" binding:"required,email"`

	ServiceID    uint  `json:"service_id" binding:"required"`
	TeamMemberID *uint `json:"team_member_id"`
	Quantity     int   `json:"quantity"`

	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Time  string `json:"time" binding:"required"` // HH:mm
	Notes string `json:"notes"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	slug := c.Param("slug")

	var account models.Account
	if err := h.db.Where("slug = ?", slug).First(&account).Error; err != nil {
		httperr.NotFound(c, "account_not_found", "Business not found.")
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("account_id = ? AND active = true", account.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Failed to list services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account":  account,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Date and service are required.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service.")
		return
	}

	var account models.Account
	if err := h.db.Where("slug = ?", slug).First(&account).Error; err != nil {
		httperr.NotFound(c, "account_not_found", "Business not found.")
		return
	}

	var memberID *uint
	if memberIDStr := c.Query("team_member_id"); memberIDStr != "" {
		parsed, err := strconv.ParseUint(memberIDStr, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_team_member_id", "Invalid team member.")
			return
		}
		id := uint(parsed)
		memberID = &id
	}

	date, err := time.ParseInLocation(
		domain.DateLayout,
		dateStr,
		timezone.Location(account.Timezone),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		ucbooking.AvailabilityInput{
			AccountID:    account.ID,
			TeamMemberID: memberID,
			ServiceID:    uint(serviceID),
			Date:         date,
		},
	)
	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "Invalid service.")
			return
		}

		httperr.Internal(c, "availability_failed", "Failed to compute availability.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	slug := c.Param("slug")

	var account models.Account
	if err := h.db.Where("slug = ?", slug).First(&account).Error; err != nil {
		httperr.NotFound(c, "account_not_found", "Business not found.")
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	if !validators.IsDate(req.Date) || !validators.IsClockTime(req.Time) {
		httperr.BadRequest(c, "invalid_date_or_time", "Date must be YYYY-MM-DD and time HH:MM.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.ClientEmail))
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucbooking.CreateBookingInput{
		AccountID:       account.ID,
		TeamMemberID:    req.TeamMemberID,
		ClientName:      req.ClientName,
		ClientFirstName: req.ClientFirstName,
		ClientEmail:     email,
		ClientPhone:     req.ClientPhone,
		ServiceID:       req.ServiceID,
		Quantity:        req.Quantity,
		Date:            req.Date,
		Time:            req.Time,
		Notes:           req.Notes,
	})
	if err != nil {
		httperr.FromBusiness(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking": gin.H{
			"id":             b.ID,
			"date":           b.Date,
			"time":           b.Time,
			"duration_min":   b.DurationMin,
			"status":         b.Status,
			"payment_status": b.PaymentStatus,
			"total_amount":   b.TotalAmount,
		},
	})
}
