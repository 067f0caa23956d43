package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingusecases "demopilot/internal/application/billing/usecases"
	"demopilot/internal/interfaces/http/handlers/testutil"
	"demopilot/internal/interfaces/http/validators"
	"demopilot/internal/shared/config"
	"demopilot/internal/shared/logger"
)

func init() {
	if err := validators.Register(); err != nil {
		panic(err)
	}
}

func newBillingHandler(gateway *mockGateway) *BillingHandler {
	cfg := config.BillingConfig{
		PriceRefs: map[string]string{
			"pro":        "price_pro",
			"enterprise": "price_enterprise",
		},
		CheckoutSuccessURL: "https://app.example.com/billing/success",
		CheckoutCancelURL:  "https://app.example.com/billing/cancelled",
		IntervalDays:       30,
	}
	return NewBillingHandler(billingusecases.NewInitiateCheckoutUseCase(gateway, cfg, logger.NewLogger()))
}

func TestBillingHandler_InitiateCheckout(t *testing.T) {
	var gotMetadata map[string]string
	gateway := &mockGateway{
		CreateCheckoutSessionFunc: func(ctx context.Context, params billingusecases.CheckoutSessionParams) (*billingusecases.CheckoutSession, error) {
			gotMetadata = params.Metadata
			return &billingusecases.CheckoutSession{ID: "cs_1", URL: "https://pay.example.com/cs_1"}, nil
		},
	}
	handler := newBillingHandler(gateway)

	c, w := testutil.NewTestContext(http.MethodPost, "/api/billing/checkout", InitiateCheckoutRequest{PlanType: "pro"})
	testutil.SetAuthContext(c, "user-1", "user@example.com")
	handler.InitiateCheckout(c)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeData(t, w.Body.Bytes())
	assert.Equal(t, "https://pay.example.com/cs_1", data["session_url"])
	assert.Equal(t, "user-1", gotMetadata["user_id"])
}

func TestBillingHandler_InitiateCheckout_InvalidPlan(t *testing.T) {
	handler := newBillingHandler(&mockGateway{})

	tests := []struct {
		name string
		body interface{}
		want int
	}{
		{name: "unknown plan", body: InitiateCheckoutRequest{PlanType: "platinum"}, want: http.StatusBadRequest},
		{name: "missing plan", body: map[string]string{}, want: http.StatusBadRequest},
		{name: "free plan has no checkout", body: InitiateCheckoutRequest{PlanType: "free"}, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testutil.NewTestContext(http.MethodPost, "/api/billing/checkout", tt.body)
			testutil.SetAuthContext(c, "user-1", "user@example.com")
			handler.InitiateCheckout(c)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestBillingHandler_InitiateCheckout_Unauthenticated(t *testing.T) {
	handler := newBillingHandler(&mockGateway{})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/billing/checkout", InitiateCheckoutRequest{PlanType: "pro"})
	handler.InitiateCheckout(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
