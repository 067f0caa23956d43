package usecases

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	vo "demopilot/internal/domain/subscription/valueobjects"
	"demopilot/internal/shared/config"
	"demopilot/internal/shared/errors"
	"demopilot/internal/shared/logger"
)

type InitiateCheckoutCommand struct {
	UserID   string
	Email    string
	PlanType vo.PlanType
	PriceRef string // optional; resolved from configuration when empty
}

type InitiateCheckoutResult struct {
	SessionURL string
}

// InitiateCheckoutUseCase exchanges a desired plan for a redirect target to
// the hosted payment page. It never writes the subscription record store:
// the store is updated solely by reconciliation handlers once the provider
// confirms payment, so a client can never self-assert "I paid".
type InitiateCheckoutUseCase struct {
	gateway Gateway
	cfg     config.BillingConfig
	logger  logger.Interface
}

func NewInitiateCheckoutUseCase(
	gateway Gateway,
	cfg config.BillingConfig,
	logger logger.Interface,
) *InitiateCheckoutUseCase {
	return &InitiateCheckoutUseCase{
		gateway: gateway,
		cfg:     cfg,
		logger:  logger,
	}
}

func (uc *InitiateCheckoutUseCase) Execute(ctx context.Context, cmd InitiateCheckoutCommand) (*InitiateCheckoutResult, error) {
	if cmd.UserID == "" {
		return nil, errors.NewUnauthorizedError("user not authenticated")
	}
	if !cmd.PlanType.IsPaid() {
		return nil, errors.NewValidationError("plan cannot be checked out", fmt.Sprintf("plan type %q has no paid tier", cmd.PlanType))
	}

	priceRef := cmd.PriceRef
	if priceRef == "" {
		priceRef = uc.cfg.PriceRefs[cmd.PlanType.String()]
	}
	if priceRef == "" {
		uc.logger.Errorw("no price reference configured for plan",
			"plan_type", cmd.PlanType,
			"user_id", cmd.UserID,
		)
		return nil, errors.NewConfigurationError(fmt.Sprintf("plan %q has no configured price reference", cmd.PlanType))
	}

	customerRef, err := uc.gateway.EnsureCustomer(ctx, cmd.UserID, cmd.Email)
	if err != nil {
		uc.logger.Errorw("failed to resolve billing customer",
			"error", err,
			"user_id", cmd.UserID,
		)
		return nil, errors.NewUpstreamError(err.Error())
	}

	session, err := uc.gateway.CreateCheckoutSession(ctx, CheckoutSessionParams{
		CustomerRef: customerRef,
		PriceRef:    priceRef,
		SuccessURL:  uc.cfg.CheckoutSuccessURL,
		CancelURL:   uc.cfg.CheckoutCancelURL,
		Metadata: map[string]string{
			"user_id":   cmd.UserID,
			"plan_type": cmd.PlanType.String(),
		},
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		uc.logger.Errorw("failed to create checkout session",
			"error", err,
			"user_id", cmd.UserID,
			"plan_type", cmd.PlanType,
		)
		return nil, errors.NewUpstreamError(err.Error())
	}

	uc.logger.Infow("checkout session created",
		"user_id", cmd.UserID,
		"plan_type", cmd.PlanType,
		"session_id", session.ID,
	)

	return &InitiateCheckoutResult{SessionURL: session.URL}, nil
}
