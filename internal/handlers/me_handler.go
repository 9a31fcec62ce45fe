package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookwell-app/booking-api/internal/middleware"
	"github.com/bookwell-app/booking-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	memberIDVal, exists := c.Get(middleware.ContextMemberID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "member_not_in_context"})
		return
	}

	memberID, ok := memberIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_member_id_type"})
		return
	}

	var member models.TeamMember
	if err := h.db.Preload("Account").First(&member, memberID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "member_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"member": gin.H{
			"id":         member.ID,
			"name":       member.Name,
			"email":      member.Email,
			"phone":      member.Phone,
			"role":       member.Role,
			"account_id": member.AccountID,
		},
		"account": gin.H{
			"id":               member.Account.ID,
			"name":             member.Account.Name,
			"slug":             member.Account.Slug,
			"phone":            member.Account.Phone,
			"address":          member.Account.Address,
			"timezone":         member.Account.Timezone,
			"scheduling_scope": member.Account.SchedulingScope,
		},
	})
}
