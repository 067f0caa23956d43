package usecases

import (
	"context"
	"time"

	subdto "demopilot/internal/application/subscription/dto"
	"demopilot/internal/domain/subscription"
	"demopilot/internal/shared/errors"
	"demopilot/internal/shared/logger"
)

// GetSubscriptionUseCase serves the current subscription for a user,
// lazily inserting the default free row on first access so exactly one row
// exists per user at all times.
type GetSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewGetSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, userID string) (*subdto.SubscriptionDTO, error) {
	if userID == "" {
		return nil, errors.NewUnauthorizedError("user not authenticated")
	}

	sub, err := uc.subscriptionRepo.EnsureForUser(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to load subscription", "error", err, "user_id", userID)
		return nil, errors.NewStoreError(err.Error())
	}

	return subdto.ToSubscriptionDTO(sub, time.Now().UTC()), nil
}
