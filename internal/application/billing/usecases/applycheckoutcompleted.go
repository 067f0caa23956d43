package usecases

import (
	"context"
	"fmt"

	"demopilot/internal/domain/billing"
	"demopilot/internal/domain/subscription"
	vo "demopilot/internal/domain/subscription/valueobjects"
	"demopilot/internal/shared/errors"
	"demopilot/internal/shared/logger"
)

// DefaultBillingIntervalDays is the paid period length when no interval is
// configured.
const DefaultBillingIntervalDays = 30

type ApplyCheckoutCompletedUseCase struct {
	subscriptionRepo subscription.Repository
	intervalDays     int
	logger           logger.Interface
}

func NewApplyCheckoutCompletedUseCase(
	subscriptionRepo subscription.Repository,
	intervalDays int,
	logger logger.Interface,
) *ApplyCheckoutCompletedUseCase {
	if intervalDays <= 0 {
		intervalDays = DefaultBillingIntervalDays
	}
	return &ApplyCheckoutCompletedUseCase{
		subscriptionRepo: subscriptionRepo,
		intervalDays:     intervalDays,
		logger:           logger,
	}
}

// Execute applies a checkout_completed event: the user moves to the paid
// plan named in the session metadata with a fresh billing period and the
// provider refs recorded. The write is an absolute upsert, so redelivery of
// the same event rewrites identical values.
func (uc *ApplyCheckoutCompletedUseCase) Execute(ctx context.Context, event *billing.Event) error {
	payload := event.CheckoutCompleted
	if payload == nil {
		return errors.NewValidationError("checkout event carries no payload", event.ID)
	}

	userID, ok := payload.UserID()
	if !ok {
		// The event cannot be attributed to any user; reject it rather
		// than applying it to an arbitrary row.
		uc.logger.Errorw("checkout event missing user_id metadata",
			"event_id", event.ID,
			"session_id", payload.SessionID,
			"customer_ref", payload.CustomerRef,
		)
		return errors.NewMissingMetadataError(fmt.Sprintf("event %s has no user_id in metadata", event.ID))
	}

	planType := vo.PlanTypePro
	if raw := payload.PlanType(); raw != "" {
		parsed, err := vo.NewPlanType(raw)
		if err != nil || !parsed.IsPaid() {
			uc.logger.Warnw("checkout metadata carries unusable plan_type, defaulting to pro",
				"event_id", event.ID,
				"plan_type", raw,
			)
		} else {
			planType = parsed
		}
	}

	periodStart := event.CreatedAt.UTC()
	periodEnd := periodStart.AddDate(0, 0, uc.intervalDays)

	state := subscription.CheckoutState{
		PlanType:               planType,
		Status:                 vo.StatusActive,
		CurrentPeriodStart:     periodStart,
		CurrentPeriodEnd:       periodEnd,
		CancelAtPeriodEnd:      false,
		BillingCustomerRef:     payload.CustomerRef,
		BillingSubscriptionRef: payload.SubscriptionRef,
		BillingPriceRef:        "",
	}

	if err := uc.subscriptionRepo.ApplyCheckoutState(ctx, userID, state); err != nil {
		uc.logger.Errorw("failed to apply checkout state",
			"error", err,
			"event_id", event.ID,
			"user_id", userID,
		)
		return errors.NewStoreError(err.Error())
	}

	uc.logger.Infow("checkout completed applied",
		"event_id", event.ID,
		"user_id", userID,
		"plan_type", planType,
		"customer_ref", payload.CustomerRef,
	)
	return nil
}
