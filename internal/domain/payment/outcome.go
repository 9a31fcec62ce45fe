package payment

type OutcomeType string

const (
	// OutcomeIgnored marks the deliberate no-op for events that are not
	// captured payments. It is a documented filter, not an error.
	OutcomeIgnored OutcomeType = "ignored_not_captured"

	// OutcomeDuplicate is replayed for retried deliveries of a session
	// that was already processed (or is being processed right now).
	OutcomeDuplicate OutcomeType = "cached_duplicate_prevented"

	OutcomeApplied        OutcomeType = "payment_applied"
	OutcomeBookingCreated OutcomeType = "booking_created"
	OutcomeSubscription   OutcomeType = "subscription_updated"
)

// Outcome is the terminal result of reconciling one gateway event. It is
// serialized into the dedup cache so duplicate deliveries can replay it.
type Outcome struct {
	Type          OutcomeType `json:"type"`
	BookingID     uint        `json:"booking_id,omitempty"`
	TransactionID string      `json:"transaction_id,omitempty"`
}
