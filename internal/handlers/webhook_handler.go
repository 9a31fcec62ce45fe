package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/bookwell-app/booking-api/internal/config"
	"github.com/bookwell-app/booking-api/internal/gateway"
	"github.com/bookwell-app/booking-api/internal/httperr"
	ucpayment "github.com/bookwell-app/booking-api/internal/usecase/payment"
)

// ======================================================
// HANDLER
// ======================================================

// WebhookHandler is the inbound edge of payment reconciliation. It only
// verifies the signature and flattens the gateway payload; every decision
// about the money lives in the reconcile use case.
type WebhookHandler struct {
	reconcile *ucpayment.Reconcile
	config    *config.Config
}

func NewWebhookHandler(reconcile *ucpayment.Reconcile, cfg *config.Config) *WebhookHandler {
	return &WebhookHandler{
		reconcile: reconcile,
		config:    cfg,
	}
}

const maxWebhookBody = 64 * 1024

func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		log.Printf("[webhook] error reading request body: %v", err)
		c.Status(http.StatusServiceUnavailable)
		return
	}

	event, err := webhook.ConstructEvent(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.config.StripeWebhookSecret,
	)
	if err != nil {
		log.Printf("[webhook] signature verification failed: %v", err)
		httperr.Unauthorized(c, "invalid_signature", "Webhook signature verification failed.")
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			log.Printf("[webhook] error parsing checkout session: %v", err)
			httperr.BadRequest(c, "invalid_payload", "Malformed checkout session payload.")
			return
		}

		out, err := h.reconcile.Handle(
			c.Request.Context(),
			gateway.PaymentEventFromSession(&cs),
		)
		if err != nil {
			// A non-2xx answer makes the gateway redeliver; the dedup claim
			// was already released so the retry can run the full path again.
			log.Printf("[webhook] session %s: reconciliation failed: %v", cs.ID, err)
			httperr.FromBusiness(c, err)
			return
		}

		resp := gin.H{
			"success": true,
			"type":    out.Type,
		}
		if out.BookingID != 0 {
			resp["booking_id"] = out.BookingID
		}
		if out.TransactionID != "" {
			resp["transaction_id"] = out.TransactionID
		}

		c.JSON(http.StatusOK, resp)

	default:
		// Acknowledge everything else so the gateway stops retrying event
		// types this engine does not consume.
		c.JSON(http.StatusOK, gin.H{"success": true, "type": "unhandled_event"})
	}
}
