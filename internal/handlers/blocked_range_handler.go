package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookwell-app/booking-api/internal/audit"
	"github.com/bookwell-app/booking-api/internal/middleware"
	"github.com/bookwell-app/booking-api/internal/models"
	"github.com/bookwell-app/booking-api/internal/validators"
)

type BlockedRangeHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBlockedRangeHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *BlockedRangeHandler {
	return &BlockedRangeHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type CreateBlockedRangeRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

// --------- Handlers ---------

func (h *BlockedRangeHandler) List(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	var ranges []models.BlockedDateRange
	if err := h.db.
		Where("account_id = ?", accountID).
		Order("start_date ASC").
		Find(&ranges).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_blocked_ranges"})
		return
	}

	c.JSON(http.StatusOK, ranges)
}

func (h *BlockedRangeHandler) Create(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	memberID := c.MustGet(middleware.ContextMemberID).(uint)

	var req CreateBlockedRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !validators.IsDate(req.StartDate) || !validators.IsDate(req.EndDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date_format"})
		return
	}

	// Zero-padded ISO dates compare correctly as strings.
	if req.StartDate > req.EndDate {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_after_end"})
		return
	}

	blocked := models.BlockedDateRange{
		AccountID: accountID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	}

	if err := h.db.Create(&blocked).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_blocked_range"})
		return
	}

	h.audit.Dispatch(audit.Event{
		AccountID:    accountID,
		TeamMemberID: &memberID,
		Action:       "blocked_range_created",
		Entity:       "blocked_range",
		EntityID:     &blocked.ID,
	})

	c.JSON(http.StatusCreated, blocked)
}

func (h *BlockedRangeHandler) Delete(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	memberID := c.MustGet(middleware.ContextMemberID).(uint)

	id := c.Param("id")

	var blocked models.BlockedDateRange
	if err := h.db.
		Where("id = ? AND account_id = ?", id, accountID).
		First(&blocked).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "blocked_range_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_blocked_range"})
		return
	}

	if err := h.db.Delete(&blocked).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_blocked_range"})
		return
	}

	h.audit.Dispatch(audit.Event{
		AccountID:    accountID,
		TeamMemberID: &memberID,
		Action:       "blocked_range_deleted",
		Entity:       "blocked_range",
		EntityID:     &blocked.ID,
	})

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
