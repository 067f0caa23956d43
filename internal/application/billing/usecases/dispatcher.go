package usecases

import (
	"context"

	"demopilot/internal/domain/billing"
	"demopilot/internal/shared/logger"
)

// EventDispatcher routes a verified billing event to exactly one
// reconciliation handler keyed by kind. At-most-once semantic application
// survives provider retries because every handler writes absolute target
// state; there is no dedup ledger to maintain. A handler failure propagates
// to the caller so the provider's delivery mechanism retries later.
type EventDispatcher struct {
	checkoutCompletedUC   *ApplyCheckoutCompletedUseCase
	subscriptionUpdatedUC *ApplySubscriptionUpdatedUseCase
	subscriptionDeletedUC *ApplySubscriptionDeletedUseCase
	logger                logger.Interface
}

func NewEventDispatcher(
	checkoutCompletedUC *ApplyCheckoutCompletedUseCase,
	subscriptionUpdatedUC *ApplySubscriptionUpdatedUseCase,
	subscriptionDeletedUC *ApplySubscriptionDeletedUseCase,
	logger logger.Interface,
) *EventDispatcher {
	return &EventDispatcher{
		checkoutCompletedUC:   checkoutCompletedUC,
		subscriptionUpdatedUC: subscriptionUpdatedUC,
		subscriptionDeletedUC: subscriptionDeletedUC,
		logger:                logger,
	}
}

// Dispatch applies the event. Unhandled kinds are acknowledged as a no-op
// success: the provider must not retry indefinitely for event kinds this
// system does not care about.
func (d *EventDispatcher) Dispatch(ctx context.Context, event *billing.Event) error {
	if err := event.Validate(); err != nil {
		d.logger.Errorw("billing event failed validation", "error", err, "event_id", event.ID)
		return err
	}

	switch event.Kind {
	case billing.KindCheckoutCompleted:
		return d.checkoutCompletedUC.Execute(ctx, event)
	case billing.KindSubscriptionUpdated:
		return d.subscriptionUpdatedUC.Execute(ctx, event)
	case billing.KindSubscriptionDeleted:
		return d.subscriptionDeletedUC.Execute(ctx, event)
	case billing.KindUnhandled:
		d.logger.Debugw("ignoring unhandled billing event kind",
			"event_id", event.ID,
			"provider_type", event.ProviderType,
		)
		return nil
	default:
		// Validate rejects unknown kinds; this branch is unreachable but
		// keeps the switch exhaustive for new kinds.
		d.logger.Warnw("billing event kind has no handler",
			"event_id", event.ID,
			"kind", event.Kind,
		)
		return nil
	}
}
