package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demopilot/internal/domain/billing"
	apperrors "demopilot/internal/shared/errors"
)

func subscriptionDeletedEvent() *billing.Event {
	return &billing.Event{
		ID:           "evt_020",
		Kind:         billing.KindSubscriptionDeleted,
		ProviderType: "customer.subscription.deleted",
		CreatedAt:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		SubscriptionDeleted: &billing.SubscriptionPayload{
			SubscriptionRef: "sub_001",
			CustomerRef:     "cus_001",
			ProviderStatus:  "canceled",
		},
	}
}

func TestApplySubscriptionDeleted_AppliesTerminalStateAndAlerts(t *testing.T) {
	var gotRef string
	repo := &mockSubscriptionRepository{
		ApplyDeletedStateFunc: func(ctx context.Context, customerRef string) (int64, error) {
			gotRef = customerRef
			return 1, nil
		},
	}

	var deletedAlertRef string
	notifier := &mockAlertNotifier{
		NotifySubscriptionDeletedFunc: func(ctx context.Context, customerRef string) error {
			deletedAlertRef = customerRef
			return nil
		},
	}

	uc := NewApplySubscriptionDeletedUseCase(repo, &mockLogger{})
	uc.SetAlertNotifier(notifier)

	err := uc.Execute(context.Background(), subscriptionDeletedEvent())
	require.NoError(t, err)
	assert.Equal(t, "cus_001", gotRef)
	assert.Equal(t, "cus_001", deletedAlertRef)
}

func TestApplySubscriptionDeleted_WorksWithoutNotifier(t *testing.T) {
	repo := &mockSubscriptionRepository{
		ApplyDeletedStateFunc: func(ctx context.Context, customerRef string) (int64, error) {
			return 1, nil
		},
	}
	uc := NewApplySubscriptionDeletedUseCase(repo, &mockLogger{})

	assert.NoError(t, uc.Execute(context.Background(), subscriptionDeletedEvent()))
}

func TestApplySubscriptionDeleted_UnmatchedCustomerFails(t *testing.T) {
	repo := &mockSubscriptionRepository{
		ApplyDeletedStateFunc: func(ctx context.Context, customerRef string) (int64, error) {
			return 0, nil
		},
	}

	unmatchedAlerted := false
	notifier := &mockAlertNotifier{
		NotifyUnmatchedCustomerFunc: func(ctx context.Context, eventID, customerRef string) error {
			unmatchedAlerted = true
			return nil
		},
	}

	uc := NewApplySubscriptionDeletedUseCase(repo, &mockLogger{})
	uc.SetAlertNotifier(notifier)

	err := uc.Execute(context.Background(), subscriptionDeletedEvent())
	require.Error(t, err)
	assert.True(t, apperrors.IsUnmatchedCustomerError(err))
	assert.True(t, unmatchedAlerted)
}

func TestApplySubscriptionDeleted_StoreFailurePropagates(t *testing.T) {
	repo := &mockSubscriptionRepository{
		ApplyDeletedStateFunc: func(ctx context.Context, customerRef string) (int64, error) {
			return 0, errors.New("lock wait timeout")
		},
	}
	uc := NewApplySubscriptionDeletedUseCase(repo, &mockLogger{})

	err := uc.Execute(context.Background(), subscriptionDeletedEvent())
	assert.True(t, apperrors.IsStoreError(err))
}
