package gateway

import (
	"context"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v82"

	"github.com/bookwell-app/booking-api/internal/domain/payment"
	"github.com/bookwell-app/booking-api/internal/models"
)

// PaymentEventFromSession flattens a Stripe checkout session into the
// gateway-neutral event the reconciler consumes. Stripe amounts are minor
// units; the ledger works in major units.
func PaymentEventFromSession(cs *stripe.CheckoutSession) payment.Event {
	email := cs.CustomerEmail
	if cs.CustomerDetails != nil && cs.CustomerDetails.Email != "" {
		email = cs.CustomerDetails.Email
	}

	return payment.Event{
		SessionID:       cs.ID,
		SessionComplete: cs.Status == stripe.CheckoutSessionStatusComplete,
		Captured:        cs.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Amount:          float64(cs.AmountTotal) / 100,
		CustomerEmail:   email,
		Metadata:        payment.Metadata(cs.Metadata),
	}
}

// StripeGateway creates checkout sessions for booking deposits. Inbound
// traffic goes through the webhook handler; this is the outbound half.
type StripeGateway struct {
	client   *stripe.Client
	currency stripe.Currency

	successURL string
	cancelURL  string
}

func NewStripeGateway(apiKey, currency, successURL, cancelURL string) *StripeGateway {
	return &StripeGateway{
		client:     stripe.NewClient(apiKey),
		currency:   stripe.Currency(currency),
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// CreateDepositSession returns a hosted payment page URL for the given
// amount against an existing booking. The booking id rides along in the
// session metadata so the webhook can resolve it without the fallback
// contact match.
func (g *StripeGateway) CreateDepositSession(
	ctx context.Context,
	b *models.Booking,
	svc *models.Service,
	amount float64,
) (string, error) {

	params := &stripe.CheckoutSessionCreateParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.successURL),
		CancelURL:  stripe.String(g.cancelURL),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency:   stripe.String(string(g.currency)),
					UnitAmount: stripe.Int64(int64(amount * 100)),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("%s (%s %s)", svc.Name, b.Date, b.Time)),
					},
				},
			},
		},
		Metadata: map[string]string{
			payment.MetaBookingID: strconv.FormatUint(uint64(b.ID), 10),
			payment.MetaDate:      b.Date,
			payment.MetaTime:      b.Time,
		},
	}

	if b.ClientEmail != "" {
		params.CustomerEmail = stripe.String(b.ClientEmail)
	}

	cs, err := g.client.V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		return "", err
	}
	return cs.URL, nil
}
