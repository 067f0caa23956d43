package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"demopilot/internal/domain/subscription"
	vo "demopilot/internal/domain/subscription/valueobjects"
	"demopilot/internal/infrastructure/persistence/mappers"
	"demopilot/internal/infrastructure/persistence/models"
	"demopilot/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(
	db *gorm.DB,
	logger logger.Interface,
) subscription.Repository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

// EnsureForUser inserts the default free row if absent, then reads it back.
// The unique constraint on user_id makes concurrent calls converge: the
// losing insert is a no-op and both callers read the same row.
func (r *SubscriptionRepositoryImpl) EnsureForUser(ctx context.Context, userID string) (*subscription.Subscription, error) {
	entity, err := subscription.NewFreeSubscription(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to build default subscription: %w", err)
	}

	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to map subscription entity: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(model).Error; err != nil {
		r.logger.Errorw("failed to ensure subscription row", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to ensure subscription: %w", err)
	}

	return r.GetByUserID(ctx, userID)
}

func (r *SubscriptionRepositoryImpl) GetByUserID(ctx context.Context, userID string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by user ID", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map subscription model to entity", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}

	return entity, nil
}

func (r *SubscriptionRepositoryImpl) GetByCustomerRef(ctx context.Context, customerRef string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := r.db.WithContext(ctx).Where("billing_customer_ref = ?", customerRef).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by customer ref", "customer_ref", customerRef, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map subscription model to entity", "customer_ref", customerRef, "error", err)
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}

	return entity, nil
}

// ApplyCheckoutState upserts the full post-checkout state in one statement.
// Re-applying the same event rewrites identical values, so provider
// redelivery is harmless.
func (r *SubscriptionRepositoryImpl) ApplyCheckoutState(ctx context.Context, userID string, state subscription.CheckoutState) error {
	model := &models.SubscriptionModel{
		UserID:                 userID,
		PlanType:               state.PlanType.String(),
		Status:                 state.Status.String(),
		CurrentPeriodStart:     &state.CurrentPeriodStart,
		CurrentPeriodEnd:       &state.CurrentPeriodEnd,
		CancelAtPeriodEnd:      state.CancelAtPeriodEnd,
		BillingCustomerRef:     nullableRef(state.BillingCustomerRef),
		BillingSubscriptionRef: nullableRef(state.BillingSubscriptionRef),
		BillingPriceRef:        nullableRef(state.BillingPriceRef),
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"plan_type",
				"status",
				"current_period_start",
				"current_period_end",
				"cancel_at_period_end",
				"billing_customer_ref",
				"billing_subscription_ref",
				"billing_price_ref",
				"updated_at",
			}),
		}).
		Create(model).Error; err != nil {
		r.logger.Errorw("failed to apply checkout state", "error", err, "user_id", userID)
		return fmt.Errorf("failed to apply checkout state: %w", err)
	}

	return nil
}

// ApplySubscriptionState overwrites the event-owned fields for the row
// matching the customer ref in one UPDATE. Returns the matched row count;
// the caller treats zero as an unmatched customer reference.
func (r *SubscriptionRepositoryImpl) ApplySubscriptionState(ctx context.Context, customerRef string, state subscription.SubscriptionState) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Where("billing_customer_ref = ?", customerRef).
		Updates(map[string]interface{}{
			"status":                   state.Status.String(),
			"current_period_start":     state.CurrentPeriodStart,
			"current_period_end":       state.CurrentPeriodEnd,
			"cancel_at_period_end":     state.CancelAtPeriodEnd,
			"billing_subscription_ref": nullableRef(state.BillingSubscriptionRef),
			"billing_price_ref":        nullableRef(state.BillingPriceRef),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to apply subscription state", "error", result.Error, "customer_ref", customerRef)
		return 0, fmt.Errorf("failed to apply subscription state: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// ApplyDeletedState writes the terminal free state for the row matching the
// customer ref. The billing refs are cleared because the provider-side
// object no longer exists.
func (r *SubscriptionRepositoryImpl) ApplyDeletedState(ctx context.Context, customerRef string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Where("billing_customer_ref = ?", customerRef).
		Updates(map[string]interface{}{
			"plan_type":                vo.PlanTypeFree.String(),
			"status":                   vo.StatusCancelled.String(),
			"current_period_start":     nil,
			"current_period_end":       nil,
			"cancel_at_period_end":     false,
			"billing_customer_ref":     nil,
			"billing_subscription_ref": nil,
			"billing_price_ref":        nil,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to apply deleted state", "error", result.Error, "customer_ref", customerRef)
		return 0, fmt.Errorf("failed to apply deleted state: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// SetCancelAtPeriodEnd flips only the cancellation flag; status and period
// bounds stay untouched so a racing provider webhook wins on those fields.
func (r *SubscriptionRepositoryImpl) SetCancelAtPeriodEnd(ctx context.Context, userID string, cancel bool) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Where("user_id = ?", userID).
		Update("cancel_at_period_end", cancel)
	if result.Error != nil {
		r.logger.Errorw("failed to set cancel_at_period_end", "error", result.Error, "user_id", userID)
		return 0, fmt.Errorf("failed to set cancel_at_period_end: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func nullableRef(ref string) *string {
	if ref == "" {
		return nil
	}
	return &ref
}
