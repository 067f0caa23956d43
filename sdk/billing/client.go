// Package billing is the client SDK for the subscription and checkout
// endpoints of the API.
package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the billing API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// NewClient creates a new billing API client.
//
// Parameters:
//   - baseURL: The API base URL (e.g., "https://api.example.com")
//   - token: The user's access token
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetMySubscription retrieves the caller's subscription, including the
// derived effective plan and status.
func (c *Client) GetMySubscription(ctx context.Context) (*Subscription, error) {
	url := fmt.Sprintf("%s/api/subscriptions/me", c.baseURL)

	var sub Subscription
	if err := c.doRequest(ctx, http.MethodGet, url, nil, &sub); err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &sub, nil
}

// InitiateCheckout requests a hosted payment page for the given paid plan.
// The caller should redirect the user to the returned session URL and then
// poll the subscription until the payment is reflected.
func (c *Client) InitiateCheckout(ctx context.Context, planType string) (*CheckoutSession, error) {
	url := fmt.Sprintf("%s/api/billing/checkout", c.baseURL)

	body := map[string]any{
		"plan_type": planType,
	}

	var session CheckoutSession
	if err := c.doRequest(ctx, http.MethodPost, url, body, &session); err != nil {
		return nil, fmt.Errorf("initiate checkout: %w", err)
	}
	return &session, nil
}

// CancelMySubscription schedules cancellation at the end of the current
// paid period and returns the updated subscription.
func (c *Client) CancelMySubscription(ctx context.Context) (*Subscription, error) {
	url := fmt.Sprintf("%s/api/subscriptions/me/cancel", c.baseURL)

	var sub Subscription
	if err := c.doRequest(ctx, http.MethodPost, url, nil, &sub); err != nil {
		return nil, fmt.Errorf("cancel subscription: %w", err)
	}
	return &sub, nil
}

// doRequest performs an HTTP request and decodes the response.
func (c *Client) doRequest(ctx context.Context, method, url string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("unauthorized: invalid access token")
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return fmt.Errorf("api error: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	if !apiResp.Success {
		if apiResp.Error != nil {
			return fmt.Errorf("api error: %s (%s)", apiResp.Error.Message, apiResp.Error.Type)
		}
		return fmt.Errorf("api error: status=%d", resp.StatusCode)
	}

	if result == nil || apiResp.Data == nil {
		return nil
	}

	dataBytes, err := json.Marshal(apiResp.Data)
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}

	if err := json.Unmarshal(dataBytes, result); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}

	return nil
}
