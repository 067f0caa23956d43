package mappers

import (
	"encoding/json"
	"fmt"

	"demopilot/internal/domain/subscription"
	vo "demopilot/internal/domain/subscription/valueobjects"
	"demopilot/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	planType := vo.PlanType(model.PlanType)
	if !vo.ValidPlanTypes[planType] {
		return nil, fmt.Errorf("invalid plan type: %s", model.PlanType)
	}

	status := vo.SubscriptionStatus(model.Status)
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", model.Status)
	}

	var metadata map[string]interface{}
	if model.Metadata != nil {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	entity, err := subscription.ReconstructSubscription(subscription.SubscriptionReconstructParams{
		ID:                     model.ID,
		UserID:                 model.UserID,
		PlanType:               planType,
		Status:                 status,
		CurrentPeriodStart:     model.CurrentPeriodStart,
		CurrentPeriodEnd:       model.CurrentPeriodEnd,
		CancelAtPeriodEnd:      model.CancelAtPeriodEnd,
		BillingCustomerRef:     model.BillingCustomerRef,
		BillingSubscriptionRef: model.BillingSubscriptionRef,
		BillingPriceRef:        model.BillingPriceRef,
		Metadata:               metadata,
		CreatedAt:              model.CreatedAt,
		UpdatedAt:              model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}

	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	var metadata []byte
	if len(entity.Metadata()) > 0 {
		data, err := json.Marshal(entity.Metadata())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		metadata = data
	}

	return &models.SubscriptionModel{
		ID:                     entity.ID(),
		UserID:                 entity.UserID(),
		PlanType:               entity.PlanType().String(),
		Status:                 entity.Status().String(),
		CurrentPeriodStart:     entity.CurrentPeriodStart(),
		CurrentPeriodEnd:       entity.CurrentPeriodEnd(),
		CancelAtPeriodEnd:      entity.CancelAtPeriodEnd(),
		BillingCustomerRef:     entity.BillingCustomerRef(),
		BillingSubscriptionRef: entity.BillingSubscriptionRef(),
		BillingPriceRef:        entity.BillingPriceRef(),
		Metadata:               metadata,
		CreatedAt:              entity.CreatedAt(),
		UpdatedAt:              entity.UpdatedAt(),
	}, nil
}
