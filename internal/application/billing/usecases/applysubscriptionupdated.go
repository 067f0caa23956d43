package usecases

import (
	"context"

	"demopilot/internal/domain/billing"
	"demopilot/internal/domain/subscription"
	vo "demopilot/internal/domain/subscription/valueobjects"
	"demopilot/internal/shared/errors"
	"demopilot/internal/shared/logger"
)

type ApplySubscriptionUpdatedUseCase struct {
	subscriptionRepo subscription.Repository
	notifier         AlertNotifier
	logger           logger.Interface
}

func NewApplySubscriptionUpdatedUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *ApplySubscriptionUpdatedUseCase {
	return &ApplySubscriptionUpdatedUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// SetAlertNotifier sets the operator alert notifier (optional).
func (uc *ApplySubscriptionUpdatedUseCase) SetAlertNotifier(notifier AlertNotifier) {
	uc.notifier = notifier
}

// Execute applies a subscription_updated event. The row is matched by the
// provider customer reference because update payloads carry no
// application-level user identity. Every event-owned field is overwritten
// verbatim in one statement.
func (uc *ApplySubscriptionUpdatedUseCase) Execute(ctx context.Context, event *billing.Event) error {
	payload := event.SubscriptionUpdated
	if payload == nil {
		return errors.NewValidationError("subscription update event carries no payload", event.ID)
	}

	status := vo.StatusCancelled
	if payload.ProviderStatus == "active" {
		status = vo.StatusActive
	}

	state := subscription.SubscriptionState{
		Status:                 status,
		CurrentPeriodStart:     payload.CurrentPeriodStart.UTC(),
		CurrentPeriodEnd:       payload.CurrentPeriodEnd.UTC(),
		CancelAtPeriodEnd:      payload.CancelAtPeriodEnd,
		BillingSubscriptionRef: payload.SubscriptionRef,
		BillingPriceRef:        payload.PriceRef,
	}

	matched, err := uc.subscriptionRepo.ApplySubscriptionState(ctx, payload.CustomerRef, state)
	if err != nil {
		uc.logger.Errorw("failed to apply subscription state",
			"error", err,
			"event_id", event.ID,
			"customer_ref", payload.CustomerRef,
		)
		return errors.NewStoreError(err.Error())
	}

	if matched == 0 {
		// No row carries this customer ref: a checkout_completed was missed
		// or the store drifted from the provider. Surface it so the
		// provider redelivers once the gap closes.
		uc.logger.Errorw("subscription update matched no stored subscription",
			"event_id", event.ID,
			"customer_ref", payload.CustomerRef,
			"subscription_ref", payload.SubscriptionRef,
		)
		uc.notifyUnmatched(ctx, event.ID, payload.CustomerRef)
		return errors.NewUnmatchedCustomerError(payload.CustomerRef)
	}

	uc.logger.Infow("subscription update applied",
		"event_id", event.ID,
		"customer_ref", payload.CustomerRef,
		"status", status,
		"cancel_at_period_end", payload.CancelAtPeriodEnd,
	)
	return nil
}

func (uc *ApplySubscriptionUpdatedUseCase) notifyUnmatched(ctx context.Context, eventID, customerRef string) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.NotifyUnmatchedCustomer(ctx, eventID, customerRef); err != nil {
		uc.logger.Warnw("failed to send unmatched customer alert",
			"error", err,
			"event_id", eventID,
		)
	}
}
