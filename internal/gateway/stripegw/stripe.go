// Package stripegw wraps the Stripe API calls used for premium
// subscriptions: hosted checkout sessions, webhook signature
// verification and remote cancellation.
package stripegw

import (
	"fmt"

	"openlove/pkg/plan"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"
	"github.com/stripe/stripe-go/v78/price"
	"github.com/stripe/stripe-go/v78/product"
	"github.com/stripe/stripe-go/v78/subscription"
	"github.com/stripe/stripe-go/v78/webhook"
)

type Gateway interface {
	CreateCheckoutSession(userID, userEmail string, tier plan.Tier) (*CheckoutSession, error)
	ConstructWebhookEvent(payload []byte, sigHeader string) (stripe.Event, error)
	CancelSubscription(subscriptionID string) error
}

type CheckoutSession struct {
	ID  string
	URL string
}

type gateway struct {
	webhookSecret string
	domainURL     string
}

func New(secretKey, webhookSecret, domainURL string) Gateway {
	stripe.Key = secretKey
	return &gateway{
		webhookSecret: webhookSecret,
		domainURL:     domainURL,
	}
}

// CreateCheckoutSession builds a hosted subscription checkout for the
// given tier. Product and price are created per session; the user and
// tier travel in session metadata and come back on the webhook.
func (g *gateway) CreateCheckoutSession(userID, userEmail string, tier plan.Tier) (*CheckoutSession, error) {
	priceCents, ok := plan.MonthlyPriceCents[tier]
	if !ok {
		return nil, fmt.Errorf("tier %s is not purchasable", tier)
	}

	interval := "month"
	if tier == plan.TierDiamondAnnual {
		interval = "year"
	}

	createdProduct, err := product.New(&stripe.ProductParams{
		Name: stripe.String(fmt.Sprintf("OpenLove %s plan", tier)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe product: %w", err)
	}

	createdPrice, err := price.New(&stripe.PriceParams{
		Product:    stripe.String(createdProduct.ID),
		Currency:   stripe.String("brl"),
		UnitAmount: stripe.Int64(priceCents),
		Recurring: &stripe.PriceRecurringParams{
			Interval: stripe.String(interval),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe price: %w", err)
	}

	createdSession, err := session.New(&stripe.CheckoutSessionParams{
		Mode:       stripe.String("subscription"),
		SuccessURL: stripe.String(fmt.Sprintf("%s/premium?checkout=success", g.domainURL)),
		CancelURL:  stripe.String(fmt.Sprintf("%s/premium?checkout=canceled", g.domainURL)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(createdPrice.ID),
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(userEmail),
		Metadata: map[string]string{
			"user_id": userID,
			"tier":    string(tier),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe checkout session: %w", err)
	}

	return &CheckoutSession{ID: createdSession.ID, URL: createdSession.URL}, nil
}

func (g *gateway) ConstructWebhookEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(payload, sigHeader, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
}

func (g *gateway) CancelSubscription(subscriptionID string) error {
	if _, err := subscription.Cancel(subscriptionID, nil); err != nil {
		return fmt.Errorf("failed to cancel stripe subscription: %w", err)
	}
	return nil
}
