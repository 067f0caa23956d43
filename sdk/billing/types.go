package billing

import "time"

// Subscription is the read model served by the subscription endpoints.
// EffectivePlan and EffectiveStatus carry the server-derived entitlement
// state; clients must gate features on them, never on PlanType or Status.
type Subscription struct {
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

// HasPaidPlan reports whether the subscription currently grants paid
// entitlements.
func (s *Subscription) HasPaidPlan() bool {
	return s.EffectivePlan != "" && s.EffectivePlan != "free"
}

// CheckoutSession is the hosted payment page to redirect the user to.
type CheckoutSession struct {
	SessionURL string `json:"session_url"`
}

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
	Message string    `json:"message,omitempty"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
