package payment

import "strconv"

// Event is a gateway-neutral view of an inbound payment notification.
// The Stripe adapter in internal/gateway builds one from a checkout
// session; tests build them directly.
type Event struct {
	SessionID string

	// SessionComplete mirrors the gateway's session status; Captured
	// mirrors its payment status. Both must be true before any money is
	// trusted; partial or cancelled sessions must not be read as paid.
	SessionComplete bool
	Captured        bool

	// Amount in major currency units.
	Amount float64

	CustomerEmail string

	Metadata Metadata
}

// Paid reports whether the event represents captured funds.
func (e Event) Paid() bool {
	return e.SessionComplete && e.Captured
}

// Metadata carries the free-form key/value pairs attached to the gateway
// session when it was created.
type Metadata map[string]string

func (m Metadata) Get(key string) string {
	if m == nil {
		return ""
	}
	return m[key]
}

func (m Metadata) Flag(key string) bool {
	return m.Get(key) == "true"
}

func (m Metadata) Uint(key string) (uint, bool) {
	n, err := strconv.ParseUint(m.Get(key), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

func (m Metadata) Int(key string) (int, bool) {
	n, err := strconv.Atoi(m.Get(key))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (m Metadata) Float(key string) (float64, bool) {
	f, err := strconv.ParseFloat(m.Get(key), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Metadata keys understood by the reconciler.
const (
	MetaBookingID       = "booking_id"
	MetaSubscription    = "subscription"
	MetaUserID          = "user_id"
	MetaPlanID          = "plan_id"
	MetaCreateBooking   = "create_booking_after_payment"
	MetaServiceID       = "service_id"
	MetaDate            = "date"
	MetaTime            = "time"
	MetaDurationMinutes = "duration_minutes"
	MetaQuantity        = "quantity"
	MetaClientName      = "client_name"
	MetaClientFirstname = "client_firstname"
	MetaPhone           = "phone"
	MetaTotalAmount     = "total_amount"
)
