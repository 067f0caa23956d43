package dto

import (
	"time"

	"demopilot/internal/domain/subscription"
)

// SubscriptionDTO is the read model served to profile screens and the
// post-checkout poller. EffectivePlan and EffectiveStatus carry the derived
// grace-period state; readers must use them, not the raw stored values.
type SubscriptionDTO struct {
	UserID                 string     `json:"user_id"`
	PlanType               string     `json:"plan_type"`
	Status                 string     `json:"status"`
	EffectivePlan          string     `json:"effective_plan"`
	EffectiveStatus        string     `json:"effective_status"`
	CurrentPeriodStart     *time.Time `json:"current_period_start,omitempty"`
	CurrentPeriodEnd       *time.Time `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd      bool       `json:"cancel_at_period_end"`
	BillingCustomerRef     *string    `json:"billing_customer_ref,omitempty"`
	BillingSubscriptionRef *string    `json:"billing_subscription_ref,omitempty"`
	BillingPriceRef        *string    `json:"billing_price_ref,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// ToSubscriptionDTO converts the aggregate to its read model, evaluating
// the grace-period rule at the given instant.
func ToSubscriptionDTO(entity *subscription.Subscription, now time.Time) *SubscriptionDTO {
	if entity == nil {
		return nil
	}

	return &SubscriptionDTO{
		UserID:                 entity.UserID(),
		PlanType:               entity.PlanType().String(),
		Status:                 entity.Status().String(),
		EffectivePlan:          entity.EffectivePlan(now).String(),
		EffectiveStatus:        entity.EffectiveStatus(now).String(),
		CurrentPeriodStart:     entity.CurrentPeriodStart(),
		CurrentPeriodEnd:       entity.CurrentPeriodEnd(),
		CancelAtPeriodEnd:      entity.CancelAtPeriodEnd(),
		BillingCustomerRef:     entity.BillingCustomerRef(),
		BillingSubscriptionRef: entity.BillingSubscriptionRef(),
		BillingPriceRef:        entity.BillingPriceRef(),
		CreatedAt:              entity.CreatedAt(),
		UpdatedAt:              entity.UpdatedAt(),
	}
}
