package billing

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"demopilot/internal/application/billing/usecases"
	"demopilot/internal/shared/config"
	"demopilot/internal/shared/logger"
)

// StripeGateway talks to the Stripe API for checkout preparation. It never
// writes the subscription store: local state changes only when the provider
// confirms them through a webhook.
type StripeGateway struct {
	api    *client.API
	cfg    *config.BillingConfig
	logger logger.Interface
}

func NewStripeGateway(cfg *config.BillingConfig, logger logger.Interface) usecases.Gateway {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)

	return &StripeGateway{
		api:    api,
		cfg:    cfg,
		logger: logger,
	}
}

// EnsureCustomer resolves the Stripe customer correlated to the user,
// searching by user_id metadata first so repeated checkouts never create
// duplicate customer records.
func (g *StripeGateway) EnsureCustomer(ctx context.Context, userID, email string) (string, error) {
	searchParams := &stripe.CustomerSearchParams{
		SearchParams: stripe.SearchParams{
			Query:   fmt.Sprintf("metadata['user_id']:'%s'", userID),
			Context: ctx,
		},
	}

	iter := g.api.Customers.Search(searchParams)
	for iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("customer search failed: %w", err)
	}

	createParams := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
		Email:  stripe.String(email),
	}
	createParams.AddMetadata("user_id", userID)

	cust, err := g.api.Customers.New(createParams)
	if err != nil {
		return "", fmt.Errorf("customer creation failed: %w", err)
	}

	g.logger.Infow("created billing customer", "user_id", userID, "customer_ref", cust.ID)
	return cust.ID, nil
}

// CreateCheckoutSession creates a subscription-mode hosted checkout session.
// The metadata carries the user_id linkage that the completion webhook needs
// to attribute the payment back to a local account.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, params usecases.CheckoutSessionParams) (*usecases.CheckoutSession, error) {
	sessionParams := &stripe.CheckoutSessionParams{
		Params:     stripe.Params{Context: ctx},
		Customer:   stripe.String(params.CustomerRef),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(params.PriceRef),
				Quantity: stripe.Int64(1),
			},
		},
		// Copy the linkage onto the subscription object too, so subscription
		// lifecycle events carry it as well.
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: params.Metadata,
		},
	}

	for key, value := range params.Metadata {
		sessionParams.AddMetadata(key, value)
	}

	if params.IdempotencyKey != "" {
		sessionParams.SetIdempotencyKey(params.IdempotencyKey)
	}

	session, err := g.api.CheckoutSessions.New(sessionParams)
	if err != nil {
		return nil, fmt.Errorf("checkout session creation failed: %w", err)
	}

	return &usecases.CheckoutSession{
		ID:  session.ID,
		URL: session.URL,
	}, nil
}
