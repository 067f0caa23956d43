package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demopilot/internal/domain/billing"
	"demopilot/internal/domain/subscription"
	vo "demopilot/internal/domain/subscription/valueobjects"
	apperrors "demopilot/internal/shared/errors"
)

func subscriptionUpdatedEvent(providerStatus string, cancelAtPeriodEnd bool) *billing.Event {
	return &billing.Event{
		ID:           "evt_010",
		Kind:         billing.KindSubscriptionUpdated,
		ProviderType: "customer.subscription.updated",
		CreatedAt:    time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC),
		SubscriptionUpdated: &billing.SubscriptionPayload{
			SubscriptionRef:    "sub_001",
			CustomerRef:        "cus_001",
			ProviderStatus:     providerStatus,
			CancelAtPeriodEnd:  cancelAtPeriodEnd,
			CurrentPeriodStart: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			CurrentPeriodEnd:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			PriceRef:           "price_pro",
		},
	}
}

func TestApplySubscriptionUpdated_OverwritesEventOwnedFields(t *testing.T) {
	var gotRef string
	var gotState subscription.SubscriptionState
	repo := &mockSubscriptionRepository{
		ApplySubscriptionStateFunc: func(ctx context.Context, customerRef string, state subscription.SubscriptionState) (int64, error) {
			gotRef = customerRef
			gotState = state
			return 1, nil
		},
	}

	uc := NewApplySubscriptionUpdatedUseCase(repo, &mockLogger{})
	event := subscriptionUpdatedEvent("active", true)

	err := uc.Execute(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, "cus_001", gotRef)
	assert.Equal(t, vo.StatusActive, gotState.Status)
	assert.True(t, gotState.CancelAtPeriodEnd)
	assert.Equal(t, "sub_001", gotState.BillingSubscriptionRef)
	assert.Equal(t, "price_pro", gotState.BillingPriceRef)
	assert.Equal(t, event.SubscriptionUpdated.CurrentPeriodStart, gotState.CurrentPeriodStart)
	assert.Equal(t, event.SubscriptionUpdated.CurrentPeriodEnd, gotState.CurrentPeriodEnd)
}

func TestApplySubscriptionUpdated_NonActiveProviderStatusMapsToCancelled(t *testing.T) {
	for _, providerStatus := range []string{"canceled", "past_due", "unpaid", "incomplete_expired"} {
		t.Run(providerStatus, func(t *testing.T) {
			var gotState subscription.SubscriptionState
			repo := &mockSubscriptionRepository{
				ApplySubscriptionStateFunc: func(ctx context.Context, customerRef string, state subscription.SubscriptionState) (int64, error) {
					gotState = state
					return 1, nil
				},
			}
			uc := NewApplySubscriptionUpdatedUseCase(repo, &mockLogger{})

			require.NoError(t, uc.Execute(context.Background(), subscriptionUpdatedEvent(providerStatus, false)))
			assert.Equal(t, vo.StatusCancelled, gotState.Status)
		})
	}
}

func TestApplySubscriptionUpdated_UnmatchedCustomerAlertsAndFails(t *testing.T) {
	repo := &mockSubscriptionRepository{
		ApplySubscriptionStateFunc: func(ctx context.Context, customerRef string, state subscription.SubscriptionState) (int64, error) {
			return 0, nil
		},
	}

	var alertEventID, alertCustomerRef string
	notifier := &mockAlertNotifier{
		NotifyUnmatchedCustomerFunc: func(ctx context.Context, eventID, customerRef string) error {
			alertEventID = eventID
			alertCustomerRef = customerRef
			return nil
		},
	}

	uc := NewApplySubscriptionUpdatedUseCase(repo, &mockLogger{})
	uc.SetAlertNotifier(notifier)

	err := uc.Execute(context.Background(), subscriptionUpdatedEvent("active", false))
	require.Error(t, err)
	assert.True(t, apperrors.IsUnmatchedCustomerError(err))

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 502, appErr.Code, "provider must redeliver after the checkout event lands")

	assert.Equal(t, "evt_010", alertEventID)
	assert.Equal(t, "cus_001", alertCustomerRef)
}

func TestApplySubscriptionUpdated_NotifierFailureDoesNotMaskOutcome(t *testing.T) {
	repo := &mockSubscriptionRepository{
		ApplySubscriptionStateFunc: func(ctx context.Context, customerRef string, state subscription.SubscriptionState) (int64, error) {
			return 0, nil
		},
	}
	notifier := &mockAlertNotifier{
		NotifyUnmatchedCustomerFunc: func(ctx context.Context, eventID, customerRef string) error {
			return errors.New("smtp down")
		},
	}

	uc := NewApplySubscriptionUpdatedUseCase(repo, &mockLogger{})
	uc.SetAlertNotifier(notifier)

	err := uc.Execute(context.Background(), subscriptionUpdatedEvent("active", false))
	assert.True(t, apperrors.IsUnmatchedCustomerError(err))
}

func TestApplySubscriptionUpdated_StoreFailurePropagates(t *testing.T) {
	repo := &mockSubscriptionRepository{
		ApplySubscriptionStateFunc: func(ctx context.Context, customerRef string, state subscription.SubscriptionState) (int64, error) {
			return 0, errors.New("deadlock found")
		},
	}
	uc := NewApplySubscriptionUpdatedUseCase(repo, &mockLogger{})

	err := uc.Execute(context.Background(), subscriptionUpdatedEvent("active", false))
	assert.True(t, apperrors.IsStoreError(err))
}
