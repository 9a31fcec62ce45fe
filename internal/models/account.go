package models

import "time"

// Scheduling visibility: whether a proposed booking conflicts with every
// booking of the account or only with bookings of the same team member.
type SchedulingScope string

const (
	ScopeBusiness SchedulingScope = "business"
	ScopeMember   SchedulingScope = "member"
)

type Account struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	Timezone string `gorm:"size:50" json:"timezone"`

	SchedulingScope SchedulingScope `gorm:"size:20;default:'business'" json:"scheduling_scope"`

	// Slot grid configuration. Open/Close are HH:MM clock times.
	OpenTime    string `gorm:"size:5;default:'08:00'" json:"open_time"`
	CloseTime   string `gorm:"size:5;default:'20:00'" json:"close_time"`
	SlotStepMin int    `gorm:"default:30" json:"slot_step_min"`

	MinAdvanceMinutes int `gorm:"default:120" json:"min_advance_minutes"`

	PlanID             string `gorm:"size:50" json:"plan_id"`
	SubscriptionStatus string `gorm:"size:20;default:'free'" json:"subscription_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
