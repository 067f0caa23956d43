package billing

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"demopilot/internal/application/billing/usecases"
	domain "demopilot/internal/domain/billing"
	"demopilot/internal/shared/config"
	apperrors "demopilot/internal/shared/errors"
	"demopilot/internal/shared/logger"
)

// StripeEventVerifier authenticates webhook payloads with Stripe's signed
// Stripe-Signature header and maps the verified event into the domain model.
// The raw body is never unmarshaled until the signature checks out.
type StripeEventVerifier struct {
	secret    string
	tolerance time.Duration
	logger    logger.Interface
}

func NewStripeEventVerifier(cfg *config.BillingConfig, logger logger.Interface) usecases.EventVerifier {
	tolerance := webhook.DefaultTolerance
	if cfg.SignatureToleranceSecs > 0 {
		tolerance = time.Duration(cfg.SignatureToleranceSecs) * time.Second
	}

	return &StripeEventVerifier{
		secret:    cfg.WebhookSecret,
		tolerance: tolerance,
		logger:    logger,
	}
}

func (v *StripeEventVerifier) Verify(payload []byte, signatureHeader string) (*domain.Event, error) {
	if strings.TrimSpace(signatureHeader) == "" {
		return nil, apperrors.NewVerificationError("missing signature header")
	}

	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
		Tolerance:                v.tolerance,
	})
	if err != nil {
		v.logger.Warnw("webhook signature verification failed", "error", err)
		return nil, apperrors.NewVerificationError(err.Error())
	}

	return v.mapEvent(&event)
}

func (v *StripeEventVerifier) mapEvent(event *stripe.Event) (*domain.Event, error) {
	out := &domain.Event{
		ID:           event.ID,
		ProviderType: string(event.Type),
		CreatedAt:    time.Unix(event.Created, 0).UTC(),
	}

	switch event.Type {
	case "checkout.session.completed":
		var session checkoutSessionPayload
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("malformed checkout session payload: %v", err))
		}
		out.Kind = domain.KindCheckoutCompleted
		out.CheckoutCompleted = &domain.CheckoutCompletedPayload{
			SessionID:       session.ID,
			CustomerRef:     session.Customer,
			SubscriptionRef: session.Subscription,
			Metadata:        session.Metadata,
		}

	case "customer.subscription.updated":
		payload, err := v.mapSubscriptionPayload(event)
		if err != nil {
			return nil, err
		}
		out.Kind = domain.KindSubscriptionUpdated
		out.SubscriptionUpdated = payload

	case "customer.subscription.deleted":
		payload, err := v.mapSubscriptionPayload(event)
		if err != nil {
			return nil, err
		}
		out.Kind = domain.KindSubscriptionDeleted
		out.SubscriptionDeleted = payload

	default:
		out.Kind = domain.KindUnhandled
	}

	return out, nil
}

func (v *StripeEventVerifier) mapSubscriptionPayload(event *stripe.Event) (*domain.SubscriptionPayload, error) {
	var sub subscriptionPayload
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("malformed subscription payload: %v", err))
	}

	periodStart := sub.CurrentPeriodStart
	periodEnd := sub.CurrentPeriodEnd
	priceRef := ""
	if len(sub.Items.Data) > 0 {
		item := sub.Items.Data[0]
		priceRef = item.Price.ID
		// Newer API versions carry the period bounds on the item instead of
		// the subscription object.
		if periodStart == 0 {
			periodStart = item.CurrentPeriodStart
		}
		if periodEnd == 0 {
			periodEnd = item.CurrentPeriodEnd
		}
	}

	return &domain.SubscriptionPayload{
		SubscriptionRef:    sub.ID,
		CustomerRef:        sub.Customer,
		ProviderStatus:     sub.Status,
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
		CurrentPeriodStart: time.Unix(periodStart, 0).UTC(),
		CurrentPeriodEnd:   time.Unix(periodEnd, 0).UTC(),
		PriceRef:           priceRef,
		Metadata:           sub.Metadata,
	}, nil
}

// Minimal payload shapes decoded from event.Data.Raw. Decoding the raw JSON
// directly keeps the verifier independent of which expansion state the
// provider serialized the nested objects in.
type checkoutSessionPayload struct {
	ID           string            `json:"id"`
	Mode         string            `json:"mode"`
	Customer     string            `json:"customer"`
	Subscription string            `json:"subscription"`
	Metadata     map[string]string `json:"metadata"`
}

type subscriptionPayload struct {
	ID                 string `json:"id"`
	Customer           string `json:"customer"`
	Status             string `json:"status"`
	CancelAtPeriodEnd  bool   `json:"cancel_at_period_end"`
	CurrentPeriodStart int64  `json:"current_period_start"`
	CurrentPeriodEnd   int64  `json:"current_period_end"`
	Items              struct {
		Data []struct {
			CurrentPeriodStart int64 `json:"current_period_start"`
			CurrentPeriodEnd   int64 `json:"current_period_end"`
			Price              struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
	Metadata map[string]string `json:"metadata"`
}
