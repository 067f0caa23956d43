package handlers

import (
	"context"

	"demopilot/internal/application/billing/usecases"
	"demopilot/internal/domain/billing"
	"demopilot/internal/domain/subscription"
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
	return subscription.NewFreeSubscription(userID)
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

type mockEventVerifier struct {
	VerifyFunc func(payload []byte, signatureHeader string) (*billing.Event, error)
}

func (m *mockEventVerifier) Verify(payload []byte, signatureHeader string) (*billing.Event, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(payload, signatureHeader)
	}
	return &billing.Event{ID: "evt_mock", Kind: billing.KindUnhandled}, nil
}

type mockGateway struct {
	EnsureCustomerFunc        func(ctx context.Context, userID, email string) (string, error)
	CreateCheckoutSessionFunc func(ctx context.Context, params usecases.CheckoutSessionParams) (*usecases.CheckoutSession, error)
}

func (m *mockGateway) EnsureCustomer(ctx context.Context, userID, email string) (string, error) {
	if m.EnsureCustomerFunc != nil {
		return m.EnsureCustomerFunc(ctx, userID, email)
	}
	return "cus_mock", nil
}

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, params usecases.CheckoutSessionParams) (*usecases.CheckoutSession, error) {
	if m.CreateCheckoutSessionFunc != nil {
		return m.CreateCheckoutSessionFunc(ctx, params)
	}
	return &usecases.CheckoutSession{ID: "cs_mock", URL: "https://pay.example.com/cs_mock"}, nil
}
