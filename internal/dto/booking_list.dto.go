package dto

import "github.com/bookwell-app/booking-api/internal/models"

type BookingListDTO struct {
	ID            uint                 `json:"id"`
	Date          string               `json:"date"`
	Time          string               `json:"time"`
	DurationMin   int                  `json:"duration_min"`
	Status        models.BookingStatus `json:"status"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	PaymentAmount float64              `json:"payment_amount"`
	TotalAmount   float64              `json:"total_amount"`
	ClientName    string               `json:"client_name"`
	ServiceName   string               `json:"service_name"`
}
