// Package dedup guards webhook processing against at-least-once delivery.
// Entries are keyed by the gateway session id and guarantee at most one
// successful ledger application per session.
package dedup

import (
	"context"

	"github.com/bookwell-app/booking-api/internal/domain/payment"
)

// Cache is injectable so a single-process deployment can run on the
// in-memory map while multi-process deployments swap in Redis; an
// in-memory map cannot dedupe across processes.
type Cache interface {
	// Begin atomically claims a session id before any other work happens,
	// closing the window where two concurrent deliveries both pass the
	// duplicate check. When the session was already claimed it returns
	// began=false and the recorded outcome, which is nil while the first
	// delivery is still in flight.
	Begin(ctx context.Context, sessionID string) (prior *payment.Outcome, began bool, err error)

	// Complete replaces the processing placeholder with the final outcome
	// so retried deliveries replay the same result.
	Complete(ctx context.Context, sessionID string, out payment.Outcome) error

	// Forget drops the claim after a failure so a legitimate gateway
	// retry can reprocess the event.
	Forget(ctx context.Context, sessionID string) error
}
