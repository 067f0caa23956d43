package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demopilot/internal/domain/billing"
	"demopilot/internal/domain/subscription"
)

func newTestDispatcher(repo *mockSubscriptionRepository) *EventDispatcher {
	log := &mockLogger{}
	return NewEventDispatcher(
		NewApplyCheckoutCompletedUseCase(repo, 30, log),
		NewApplySubscriptionUpdatedUseCase(repo, log),
		NewApplySubscriptionDeletedUseCase(repo, log),
		log,
	)
}

func TestEventDispatcher_RoutesByKind(t *testing.T) {
	var checkoutApplied, updateApplied, deleteApplied bool
	repo := &mockSubscriptionRepository{
		ApplyCheckoutStateFunc: func(ctx context.Context, userID string, state subscription.CheckoutState) error {
			checkoutApplied = true
			return nil
		},
		ApplySubscriptionStateFunc: func(ctx context.Context, customerRef string, state subscription.SubscriptionState) (int64, error) {
			updateApplied = true
			return 1, nil
		},
		ApplyDeletedStateFunc: func(ctx context.Context, customerRef string) (int64, error) {
			deleteApplied = true
			return 1, nil
		},
	}
	dispatcher := newTestDispatcher(repo)
	ctx := context.Background()

	require.NoError(t, dispatcher.Dispatch(ctx, checkoutEvent(map[string]string{"user_id": "user-42"})))
	require.NoError(t, dispatcher.Dispatch(ctx, subscriptionUpdatedEvent("active", false)))
	require.NoError(t, dispatcher.Dispatch(ctx, subscriptionDeletedEvent()))

	assert.True(t, checkoutApplied)
	assert.True(t, updateApplied)
	assert.True(t, deleteApplied)
}

func TestEventDispatcher_UnhandledKindIsAcknowledgedNoOp(t *testing.T) {
	touched := false
	repo := &mockSubscriptionRepository{
		ApplyCheckoutStateFunc: func(ctx context.Context, userID string, state subscription.CheckoutState) error {
			touched = true
			return nil
		},
		ApplySubscriptionStateFunc: func(ctx context.Context, customerRef string, state subscription.SubscriptionState) (int64, error) {
			touched = true
			return 1, nil
		},
		ApplyDeletedStateFunc: func(ctx context.Context, customerRef string) (int64, error) {
			touched = true
			return 1, nil
		},
	}
	dispatcher := newTestDispatcher(repo)

	event := &billing.Event{
		ID:           "evt_030",
		Kind:         billing.KindUnhandled,
		ProviderType: "invoice.payment_succeeded",
		CreatedAt:    time.Now().UTC(),
	}

	err := dispatcher.Dispatch(context.Background(), event)
	assert.NoError(t, err, "unhandled kinds must be acknowledged so the provider stops retrying")
	assert.False(t, touched)
}

func TestEventDispatcher_RejectsKindPayloadMismatch(t *testing.T) {
	dispatcher := newTestDispatcher(&mockSubscriptionRepository{})

	event := &billing.Event{
		ID:        "evt_031",
		Kind:      billing.KindCheckoutCompleted,
		CreatedAt: time.Now().UTC(),
	}

	assert.Error(t, dispatcher.Dispatch(context.Background(), event))
}
