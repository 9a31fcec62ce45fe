package models

import "time"

// BlockedDateRange is an owner-scoped exclusion window. A date is blocked
// when start_date <= date <= end_date (both inclusive).
type BlockedDateRange struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	AccountID uint `gorm:"index" json:"account_id"`

	StartDate string `gorm:"size:10;not null" json:"start_date"` // YYYY-MM-DD
	EndDate   string `gorm:"size:10;not null" json:"end_date"`
	Reason    string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
