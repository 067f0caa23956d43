package usecases

import (
	"context"

	"demopilot/internal/domain/billing"
)

// EventVerifier authenticates a raw webhook body against the provider's
// signature scheme and returns the parsed event. The body must never be
// parsed before verification succeeds.
type EventVerifier interface {
	Verify(payload []byte, signatureHeader string) (*billing.Event, error)
}

// CheckoutSessionParams describes a hosted checkout session to create.
// Metadata must carry the user_id linkage so the completion webhook can be
// attributed back to the initiating user.
type CheckoutSessionParams struct {
	CustomerRef    string
	PriceRef       string
	SuccessURL     string
	CancelURL      string
	Metadata       map[string]string
	IdempotencyKey string
}

// CheckoutSession is the created hosted payment session.
type CheckoutSession struct {
	ID  string
	URL string
}

// Gateway is the billing provider client. It prepares external transactions
// only; the subscription record store is written solely by reconciliation
// handlers once the provider confirms payment.
type Gateway interface {
	// EnsureCustomer resolves or lazily creates the provider customer
	// record correlated to the user, returning its reference.
	EnsureCustomer(ctx context.Context, userID, email string) (string, error)

	// CreateCheckoutSession creates a hosted payment session and returns
	// the redirect target.
	CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error)
}

// AlertNotifier surfaces billing events that operators should see. All
// notifications are best-effort; failures are logged, never propagated.
type AlertNotifier interface {
	NotifySubscriptionDeleted(ctx context.Context, customerRef string) error
	NotifyUnmatchedCustomer(ctx context.Context, eventID, customerRef string) error
}
