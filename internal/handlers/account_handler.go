package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookwell-app/booking-api/internal/httperr"
	"github.com/bookwell-app/booking-api/internal/middleware"
	"github.com/bookwell-app/booking-api/internal/models"
	"github.com/bookwell-app/booking-api/internal/timezone"
	"github.com/bookwell-app/booking-api/internal/validators"
)

type AccountHandler struct {
	db *gorm.DB
}

func NewAccountHandler(db *gorm.DB) *AccountHandler {
	return &AccountHandler{db: db}
}

// --------- Requests ---------

type UpdateAccountRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	Timezone *string `json:"timezone,omitempty"`

	SchedulingScope *models.SchedulingScope `json:"scheduling_scope,omitempty"`

	OpenTime    *string `json:"open_time,omitempty"`
	CloseTime   *string `json:"close_time,omitempty"`
	SlotStepMin *int    `json:"slot_step_min,omitempty"`

	MinAdvanceMinutes *int `json:"min_advance_minutes,omitempty"`
}

// --------- Handlers ---------

func (h *AccountHandler) GetMeAccount(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	var account models.Account
	if err := h.db.First(&account, accountID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "account_not_found", "Account not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_account", "Failed to load account.")
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) UpdateMeAccount(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	var account models.Account
	if err := h.db.First(&account, accountID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "account_not_found", "Account not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_account", "Failed to load account.")
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Phone != nil {
		account.Phone = *req.Phone
	}
	if req.Address != nil {
		account.Address = *req.Address
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown IANA timezone name.")
			return
		}
		account.Timezone = *req.Timezone
	}

	if req.SchedulingScope != nil {
		switch *req.SchedulingScope {
		case models.ScopeBusiness, models.ScopeMember:
			account.SchedulingScope = *req.SchedulingScope
		default:
			httperr.BadRequest(c, "invalid_scheduling_scope", "Scheduling scope must be business or member.")
			return
		}
	}

	if req.OpenTime != nil {
		if !validators.IsClockTime(*req.OpenTime) {
			httperr.BadRequest(c, "invalid_open_time", "Open time must be HH:MM.")
			return
		}
		account.OpenTime = *req.OpenTime
	}
	if req.CloseTime != nil {
		if !validators.IsClockTime(*req.CloseTime) {
			httperr.BadRequest(c, "invalid_close_time", "Close time must be HH:MM.")
			return
		}
		account.CloseTime = *req.CloseTime
	}
	if account.OpenTime >= account.CloseTime {
		httperr.BadRequest(c, "invalid_hours", "Open time must come before close time.")
		return
	}

	if req.SlotStepMin != nil {
		if *req.SlotStepMin <= 0 {
			httperr.BadRequest(c, "invalid_slot_step", "Slot step must be positive (in minutes).")
			return
		}
		account.SlotStepMin = *req.SlotStepMin
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Minimum advance must be zero or positive (in minutes).")
			return
		}
		account.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&account).Error; err != nil {
		httperr.Internal(c, "failed_to_update_account", "Failed to save account settings.")
		return
	}

	c.JSON(http.StatusOK, account)
}
