package usecases

import (
	"context"

	"demopilot/internal/domain/subscription"
	"demopilot/internal/shared/errors"
	"demopilot/internal/shared/logger"
)

// RequestCancellationUseCase records the user's intent to cancel at period
// end. It flips only cancel_at_period_end: the local side never fabricates
// status or period bounds, because an in-flight provider webhook for the
// same row must win on every other field.
type RequestCancellationUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewRequestCancellationUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *RequestCancellationUseCase {
	return &RequestCancellationUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *RequestCancellationUseCase) Execute(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.NewUnauthorizedError("user not authenticated")
	}

	matched, err := uc.subscriptionRepo.SetCancelAtPeriodEnd(ctx, userID, true)
	if err != nil {
		uc.logger.Errorw("failed to set cancel_at_period_end", "error", err, "user_id", userID)
		return errors.NewStoreError(err.Error())
	}
	if matched == 0 {
		return errors.NewNotFoundError("no subscription found for user")
	}

	uc.logger.Infow("cancellation requested", "user_id", userID)
	return nil
}
