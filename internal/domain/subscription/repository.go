package subscription

import (
	"context"
	"time"

	vo "demopilot/internal/domain/subscription/valueobjects"
)

// CheckoutState is the absolute target state written when a checkout
// completes. Every field is written verbatim; re-applying the same state is
// a no-op, which is what makes duplicate event delivery safe.
type CheckoutState struct {
	PlanType               vo.PlanType
	Status                 vo.SubscriptionStatus
	CurrentPeriodStart     time.Time
	CurrentPeriodEnd       time.Time
	CancelAtPeriodEnd      bool
	BillingCustomerRef     string
	BillingSubscriptionRef string
	BillingPriceRef        string
}

// SubscriptionState is the absolute target state carried by a provider
// subscription update. The plan type is not included because update events
// do not carry it; all event-owned fields are overwritten verbatim.
type SubscriptionState struct {
	Status                 vo.SubscriptionStatus
	CurrentPeriodStart     time.Time
	CurrentPeriodEnd       time.Time
	CancelAtPeriodEnd      bool
	BillingSubscriptionRef string
	BillingPriceRef        string
}

// Repository is the persistence contract for the subscription record store.
// All reconciliation writes must execute as a single atomic statement so
// concurrent deliveries of different events resolve by last-write-wins
// rather than corrupting individual fields.
type Repository interface {
	// EnsureForUser returns the user's subscription, inserting the default
	// free/active row first if none exists. Concurrent calls for the same
	// user converge on the single row.
	EnsureForUser(ctx context.Context, userID string) (*Subscription, error)

	// GetByUserID returns the user's subscription, or nil when absent.
	GetByUserID(ctx context.Context, userID string) (*Subscription, error)

	// GetByCustomerRef returns the subscription matching a provider
	// customer reference, or nil when absent.
	GetByCustomerRef(ctx context.Context, customerRef string) (*Subscription, error)

	// ApplyCheckoutState upserts the post-checkout state for a user in one
	// statement, keyed by the unique user_id constraint.
	ApplyCheckoutState(ctx context.Context, userID string, state CheckoutState) error

	// ApplySubscriptionState overwrites the event-owned fields for the row
	// matching the customer reference. Returns the number of rows matched;
	// zero means no subscription carries that reference.
	ApplySubscriptionState(ctx context.Context, customerRef string, state SubscriptionState) (int64, error)

	// ApplyDeletedState writes the terminal state for the row matching the
	// customer reference: free plan, cancelled status, billing refs and
	// period bounds cleared. Returns the number of rows matched.
	ApplyDeletedState(ctx context.Context, customerRef string) (int64, error)

	// SetCancelAtPeriodEnd flips only the cancel_at_period_end flag. Local
	// writes never touch status or period bounds; provider-confirmed
	// webhook writes win on every other field.
	SetCancelAtPeriodEnd(ctx context.Context, userID string, cancel bool) (int64, error)
}
