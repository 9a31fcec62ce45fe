package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bookwell-app/booking-api/internal/httperr"
	"github.com/bookwell-app/booking-api/internal/models"
	ucpayment "github.com/bookwell-app/booking-api/internal/usecase/payment"
)

type SubscriptionGormManager struct {
	db *gorm.DB
}

func NewSubscriptionGormManager(db *gorm.DB) *SubscriptionGormManager {
	return &SubscriptionGormManager{db: db}
}

func (m *SubscriptionGormManager) Activate(
	ctx context.Context,
	accountID uint,
	planID string,
) error {

	res := m.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", accountID).
		Updates(map[string]any{
			"plan_id":             planID,
			"subscription_status": "active",
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("account_not_found")
	}
	return nil
}

// Compile-time check
var _ ucpayment.SubscriptionManager = (*SubscriptionGormManager)(nil)
