package usecases

import (
	"context"

	"demopilot/internal/domain/subscription"
	"demopilot/internal/shared/logger"
)

type mockSubscriptionRepository struct {
	EnsureForUserFunc          func(ctx context.Context, userID string) (*subscription.Subscription, error)
	GetByUserIDFunc            func(ctx context.Context, userID string) (*subscription.Subscription, error)
	GetByCustomerRefFunc       func(ctx context.Context, customerRef string) (*subscription.Subscription, error)
	ApplyCheckoutStateFunc     func(ctx context.Context, userID string, state subscription.CheckoutState) error
	ApplySubscriptionStateFunc func(ctx context.Context, customerRef string, state subscription.SubscriptionState) (int64, error)
	ApplyDeletedStateFunc      func(ctx context.Context, customerRef string) (int64, error)
	SetCancelAtPeriodEndFunc   func(ctx context.Context, userID string, cancel bool) (int64, error)
}

func (m *mockSubscriptionRepository) EnsureForUser(ctx context.Context, userID string) (*subscription.Subscription, error) {
	if m.EnsureForUserFunc != nil {
		return m.EnsureForUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) GetByUserID(ctx context.Context, userID string) (*subscription.Subscription, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) GetByCustomerRef(ctx context.Context, customerRef string) (*subscription.Subscription, error) {
	if m.GetByCustomerRefFunc != nil {
		return m.GetByCustomerRefFunc(ctx, customerRef)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) ApplyCheckoutState(ctx context.Context, userID string, state subscription.CheckoutState) error {
	if m.ApplyCheckoutStateFunc != nil {
		return m.ApplyCheckoutStateFunc(ctx, userID, state)
	}
	return nil
}

func (m *mockSubscriptionRepository) ApplySubscriptionState(ctx context.Context, customerRef string, state subscription.SubscriptionState) (int64, error) {
	if m.ApplySubscriptionStateFunc != nil {
		return m.ApplySubscriptionStateFunc(ctx, customerRef, state)
	}
	return 1, nil
}

func (m *mockSubscriptionRepository) ApplyDeletedState(ctx context.Context, customerRef string) (int64, error) {
	if m.ApplyDeletedStateFunc != nil {
		return m.ApplyDeletedStateFunc(ctx, customerRef)
	}
	return 1, nil
}

func (m *mockSubscriptionRepository) SetCancelAtPeriodEnd(ctx context.Context, userID string, cancel bool) (int64, error) {
	if m.SetCancelAtPeriodEndFunc != nil {
		return m.SetCancelAtPeriodEndFunc(ctx, userID, cancel)
	}
	return 1, nil
}

type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any)                   {}
func (noopLogger) Info(msg string, args ...any)                    {}
func (noopLogger) Warn(msg string, args ...any)                    {}
func (noopLogger) Error(msg string, args ...any)                   {}
func (noopLogger) Fatal(msg string, args ...any)                   {}
func (noopLogger) With(args ...any) logger.Interface               { return noopLogger{} }
func (noopLogger) Named(name string) logger.Interface              { return noopLogger{} }
func (noopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Fatalw(msg string, keysAndValues ...interface{}) {}
