package usecases

import (
	"context"

	"demopilot/internal/domain/billing"
	"demopilot/internal/domain/subscription"
	"demopilot/internal/shared/errors"
	"demopilot/internal/shared/logger"
)

type ApplySubscriptionDeletedUseCase struct {
	subscriptionRepo subscription.Repository
	notifier         AlertNotifier
	logger           logger.Interface
}

func NewApplySubscriptionDeletedUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *ApplySubscriptionDeletedUseCase {
	return &ApplySubscriptionDeletedUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// SetAlertNotifier sets the operator alert notifier (optional).
func (uc *ApplySubscriptionDeletedUseCase) SetAlertNotifier(notifier AlertNotifier) {
	uc.notifier = notifier
}

// Execute applies a subscription_deleted event. Deletion is terminal: the
// provider has already destroyed the billing-side object, so the plan
// reverts to free immediately rather than at period end, and all billing
// refs are cleared.
func (uc *ApplySubscriptionDeletedUseCase) Execute(ctx context.Context, event *billing.Event) error {
	payload := event.SubscriptionDeleted
	if payload == nil {
		return errors.NewValidationError("subscription delete event carries no payload", event.ID)
	}

	matched, err := uc.subscriptionRepo.ApplyDeletedState(ctx, payload.CustomerRef)
	if err != nil {
		uc.logger.Errorw("failed to apply deleted state",
			"error", err,
			"event_id", event.ID,
			"customer_ref", payload.CustomerRef,
		)
		return errors.NewStoreError(err.Error())
	}

	if matched == 0 {
		uc.logger.Errorw("subscription deletion matched no stored subscription",
			"event_id", event.ID,
			"customer_ref", payload.CustomerRef,
		)
		if uc.notifier != nil {
			if nerr := uc.notifier.NotifyUnmatchedCustomer(ctx, event.ID, payload.CustomerRef); nerr != nil {
				uc.logger.Warnw("failed to send unmatched customer alert",
					"error", nerr,
					"event_id", event.ID,
				)
			}
		}
		return errors.NewUnmatchedCustomerError(payload.CustomerRef)
	}

	uc.logger.Infow("subscription deletion applied",
		"event_id", event.ID,
		"customer_ref", payload.CustomerRef,
	)

	if uc.notifier != nil {
		if nerr := uc.notifier.NotifySubscriptionDeleted(ctx, payload.CustomerRef); nerr != nil {
			uc.logger.Warnw("failed to send subscription deleted alert",
				"error", nerr,
				"customer_ref", payload.CustomerRef,
			)
		}
	}

	return nil
}
