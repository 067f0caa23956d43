package subscription

import (
	"fmt"
	"time"

	vo "demopilot/internal/domain/subscription/valueobjects"
)

// Subscription represents the billing state aggregate, one row per user.
// It is mutated exclusively by reconciliation handlers applying provider
// events, and by the user-initiated cancellation flip.
type Subscription struct {
	id                     uint
	userID                 string
	planType               vo.PlanType
	status                 vo.SubscriptionStatus
	currentPeriodStart     *time.Time
	currentPeriodEnd       *time.Time
	cancelAtPeriodEnd      bool
	billingCustomerRef     *string
	billingSubscriptionRef *string
	billingPriceRef        *string
	metadata               map[string]interface{}
	createdAt              time.Time
	updatedAt              time.Time
}

// NewFreeSubscription creates the default subscription a user holds before
// any checkout: free plan, active status, no period bounds, no billing refs.
func NewFreeSubscription(userID string) (*Subscription, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	now := time.Now().UTC()
	return &Subscription{
		userID:    userID,
		planType:  vo.PlanTypeFree,
		status:    vo.StatusActive,
		metadata:  make(map[string]interface{}),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// SubscriptionReconstructParams carries all persisted fields for rebuilding
// the aggregate from storage.
type SubscriptionReconstructParams struct {
	ID                     uint
	UserID                 string
	PlanType               vo.PlanType
	Status                 vo.SubscriptionStatus
	CurrentPeriodStart     *time.Time
	CurrentPeriodEnd       *time.Time
	CancelAtPeriodEnd      bool
	BillingCustomerRef     *string
	BillingSubscriptionRef *string
	BillingPriceRef        *string
	Metadata               map[string]interface{}
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// ReconstructSubscription rebuilds a subscription from persistence
func ReconstructSubscription(p SubscriptionReconstructParams) (*Subscription, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if p.UserID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if !vo.ValidPlanTypes[p.PlanType] {
		return nil, fmt.Errorf("invalid plan type: %s", p.PlanType)
	}
	if !vo.ValidStatuses[p.Status] {
		return nil, fmt.Errorf("invalid subscription status: %s", p.Status)
	}

	metadata := p.Metadata
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Subscription{
		id:                     p.ID,
		userID:                 p.UserID,
		planType:               p.PlanType,
		status:                 p.Status,
		currentPeriodStart:     p.CurrentPeriodStart,
		currentPeriodEnd:       p.CurrentPeriodEnd,
		cancelAtPeriodEnd:      p.CancelAtPeriodEnd,
		billingCustomerRef:     p.BillingCustomerRef,
		billingSubscriptionRef: p.BillingSubscriptionRef,
		billingPriceRef:        p.BillingPriceRef,
		metadata:               metadata,
		createdAt:              p.CreatedAt,
		updatedAt:              p.UpdatedAt,
	}, nil
}

// ID returns the subscription ID
func (s *Subscription) ID() uint {
	return s.id
}

// UserID returns the owning user identity
func (s *Subscription) UserID() string {
	return s.userID
}

// PlanType returns the stored plan type
func (s *Subscription) PlanType() vo.PlanType {
	return s.planType
}

// Status returns the stored subscription status
func (s *Subscription) Status() vo.SubscriptionStatus {
	return s.status
}

// CurrentPeriodStart returns the paid period start, nil for free subscriptions
func (s *Subscription) CurrentPeriodStart() *time.Time {
	return s.currentPeriodStart
}

// CurrentPeriodEnd returns the paid period end, nil for free subscriptions
func (s *Subscription) CurrentPeriodEnd() *time.Time {
	return s.currentPeriodEnd
}

// CancelAtPeriodEnd reports whether the subscription lapses at the period end
func (s *Subscription) CancelAtPeriodEnd() bool {
	return s.cancelAtPeriodEnd
}

// BillingCustomerRef returns the provider customer reference
func (s *Subscription) BillingCustomerRef() *string {
	return s.billingCustomerRef
}

// BillingSubscriptionRef returns the provider subscription reference
func (s *Subscription) BillingSubscriptionRef() *string {
	return s.billingSubscriptionRef
}

// BillingPriceRef returns the provider price reference
func (s *Subscription) BillingPriceRef() *string {
	return s.billingPriceRef
}

// Metadata returns the subscription metadata
func (s *Subscription) Metadata() map[string]interface{} {
	return s.metadata
}

// CreatedAt returns when the subscription was created
func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns when the subscription was last updated
func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// InGracePeriod reports whether a cancelled paid subscription still has paid
// access because the period it was paid for has not ended yet.
func (s *Subscription) InGracePeriod(now time.Time) bool {
	if s.status != vo.StatusCancelled || !s.planType.IsPaid() {
		return false
	}
	return s.currentPeriodEnd != nil && now.Before(*s.currentPeriodEnd)
}

// EffectivePlan returns the plan type readers must honor at the given
// instant. A cancelled paid subscription counts as its paid plan until
// current_period_end, then as free, regardless of what the row still says:
// the webhook rewriting the row may simply not have arrived.
func (s *Subscription) EffectivePlan(now time.Time) vo.PlanType {
	if !s.planType.IsPaid() {
		return s.planType
	}

	switch s.status {
	case vo.StatusActive:
		return s.planType
	case vo.StatusCancelled:
		if s.InGracePeriod(now) {
			return s.planType
		}
		return vo.PlanTypeFree
	default:
		return vo.PlanTypeFree
	}
}

// EffectiveStatus returns the status readers must honor at the given
// instant, applying the same grace-period rule as EffectivePlan.
func (s *Subscription) EffectiveStatus(now time.Time) vo.SubscriptionStatus {
	if s.status == vo.StatusCancelled && s.planType.IsPaid() && !s.InGracePeriod(now) {
		return vo.StatusExpired
	}
	return s.status
}

// HasCompletedCheckout reports whether the user has ever completed a
// checkout. The subscription ref is cleared only on terminal deletion.
func (s *Subscription) HasCompletedCheckout() bool {
	return s.billingSubscriptionRef != nil && *s.billingSubscriptionRef != ""
}

// Validate performs domain-level validation
func (s *Subscription) Validate() error {
	if s.userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if !vo.ValidPlanTypes[s.planType] {
		return fmt.Errorf("invalid plan type: %s", s.planType)
	}
	if !vo.ValidStatuses[s.status] {
		return fmt.Errorf("invalid status: %s", s.status)
	}
	if s.currentPeriodStart != nil && s.currentPeriodEnd != nil &&
		s.currentPeriodEnd.Before(*s.currentPeriodStart) {
		return fmt.Errorf("current period end must be after current period start")
	}
	return nil
}
