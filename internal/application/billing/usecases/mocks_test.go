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

type mockGateway struct {
	EnsureCustomerFunc        func(ctx context.Context, userID, email string) (string, error)
	CreateCheckoutSessionFunc func(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error)
}

func (m *mockGateway) EnsureCustomer(ctx context.Context, userID, email string) (string, error) {
	if m.EnsureCustomerFunc != nil {
		return m.EnsureCustomerFunc(ctx, userID, email)
	}
	return "cus_mock", nil
}

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error) {
	if m.CreateCheckoutSessionFunc != nil {
		return m.CreateCheckoutSessionFunc(ctx, params)
	}
	return &CheckoutSession{ID: "cs_mock", URL: "https://checkout.example.com/cs_mock"}, nil
}

type mockAlertNotifier struct {
	NotifySubscriptionDeletedFunc func(ctx context.Context, customerRef string) error
	NotifyUnmatchedCustomerFunc   func(ctx context.Context, eventID, customerRef string) error
}

func (m *mockAlertNotifier) NotifySubscriptionDeleted(ctx context.Context, customerRef string) error {
	if m.NotifySubscriptionDeletedFunc != nil {
		return m.NotifySubscriptionDeletedFunc(ctx, customerRef)
	}
	return nil
}

func (m *mockAlertNotifier) NotifyUnmatchedCustomer(ctx context.Context, eventID, customerRef string) error {
	if m.NotifyUnmatchedCustomerFunc != nil {
		return m.NotifyUnmatchedCustomerFunc(ctx, eventID, customerRef)
	}
	return nil
}

type mockLogger struct {
	InfowFunc  func(msg string, keysAndValues ...interface{})
	WarnwFunc  func(msg string, keysAndValues ...interface{})
	ErrorwFunc func(msg string, keysAndValues ...interface{})
}

func (m *mockLogger) Debug(msg string, args ...any) {}
func (m *mockLogger) Info(msg string, args ...any)  {}
func (m *mockLogger) Warn(msg string, args ...any)  {}
func (m *mockLogger) Error(msg string, args ...any) {}
func (m *mockLogger) Fatal(msg string, args ...any) {}

func (m *mockLogger) With(args ...any) logger.Interface  { return m }
func (m *mockLogger) Named(name string) logger.Interface { return m }

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}

func (m *mockLogger) Infow(msg string, keysAndValues ...interface{}) {
	if m.InfowFunc != nil {
		m.InfowFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	if m.WarnwFunc != nil {
		m.WarnwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Fatalw(msg string, keysAndValues ...interface{}) {}
