package models

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPartial   PaymentStatus = "partial"
	PaymentCompleted PaymentStatus = "completed"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AccountID uint    `gorm:"index:idx_bookings_account_date" json:"account_id"`
	Account   Account `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"account"`

	TeamMemberID *uint       `json:"team_member_id"`
	TeamMember   *TeamMember `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"team_member"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Date        string `gorm:"size:10;index:idx_bookings_account_date" json:"date"` // YYYY-MM-DD
	Time        string `gorm:"size:5" json:"time"`                                  // HH:MM local clock
	DurationMin int    `json:"duration_min"`
	BufferMin   int    `json:"buffer_min"`
	Quantity    int    `gorm:"default:1" json:"quantity"`

	ClientName      string `gorm:"size:100" json:"client_name"`
	ClientFirstName string `gorm:"size:100" json:"client_first_name"`
	ClientEmail     string `gorm:"size:100;index" json:"client_email"`
	ClientPhone     string `gorm:"size:20" json:"client_phone"`

	TotalAmount   float64       `json:"total_amount"`
	PaymentAmount float64       `json:"payment_amount"`
	PaymentStatus PaymentStatus `gorm:"size:20;default:'pending'" json:"payment_status"`

	Status BookingStatus `gorm:"size:20;default:'pending'" json:"status"`

	Transactions TransactionList `gorm:"type:jsonb;default:'[]'" json:"transactions"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
