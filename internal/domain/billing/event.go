// Package billing models the events pushed by the billing provider. Events
// are ephemeral: they are verified, applied, and discarded, never persisted.
package billing

import (
	"fmt"
	"time"
)

// EventKind is the closed set of provider event kinds this system reacts
// to. Kinds outside this set map to KindUnhandled, which the dispatcher
// acknowledges as a deliberate no-op so the provider stops retrying.
type EventKind string

const (
	KindCheckoutCompleted   EventKind = "checkout_completed"
	KindSubscriptionUpdated EventKind = "subscription_updated"
	KindSubscriptionDeleted EventKind = "subscription_deleted"
	KindUnhandled           EventKind = "unhandled"
)

// Event is a verified billing provider event. Exactly one payload field is
// populated, matching Kind; KindUnhandled carries none.
type Event struct {
	ID           string
	Kind         EventKind
	ProviderType string
	CreatedAt    time.Time

	CheckoutCompleted   *CheckoutCompletedPayload
	SubscriptionUpdated *SubscriptionPayload
	SubscriptionDeleted *SubscriptionPayload
}

// CheckoutCompletedPayload carries the fields of a completed hosted
// checkout session. Metadata holds the application-level linkage written at
// session creation time (user_id, plan_type).
type CheckoutCompletedPayload struct {
	SessionID       string
	CustomerRef     string
	SubscriptionRef string
	Metadata        map[string]string
}

// SubscriptionPayload carries the provider's view of a subscription object.
// It identifies the local row only through CustomerRef; update and delete
// events do not carry application-level user identity.
type SubscriptionPayload struct {
	SubscriptionRef    string
	CustomerRef        string
	ProviderStatus     string
	CancelAtPeriodEnd  bool
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	PriceRef           string
	Metadata           map[string]string
}

// Validate checks that the populated payload matches the declared kind.
func (e *Event) Validate() error {
	switch e.Kind {
	case KindCheckoutCompleted:
		if e.CheckoutCompleted == nil {
			return fmt.Errorf("event %s declares %s but carries no payload", e.ID, e.Kind)
		}
	case KindSubscriptionUpdated:
		if e.SubscriptionUpdated == nil {
			return fmt.Errorf("event %s declares %s but carries no payload", e.ID, e.Kind)
		}
	case KindSubscriptionDeleted:
		if e.SubscriptionDeleted == nil {
			return fmt.Errorf("event %s declares %s but carries no payload", e.ID, e.Kind)
		}
	case KindUnhandled:
		// no payload by definition
	default:
		return fmt.Errorf("event %s has unknown kind %s", e.ID, e.Kind)
	}
	return nil
}

// UserID returns the initiating user identity from checkout metadata, or
// false when the event cannot be attributed to a user.
func (p *CheckoutCompletedPayload) UserID() (string, bool) {
	if p.Metadata == nil {
		return "", false
	}
	userID, ok := p.Metadata["user_id"]
	return userID, ok && userID != ""
}

// PlanType returns the plan_type recorded in checkout metadata, or empty
// when absent.
func (p *CheckoutCompletedPayload) PlanType() string {
	if p.Metadata == nil {
		return ""
	}
	return p.Metadata["plan_type"]
}
