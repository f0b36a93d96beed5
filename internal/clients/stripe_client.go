package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/oriain86/Trading-Platform-Application/internal/config"
	"github.com/oriain86/Trading-Platform-Application/internal/models"
)

// stripeClient creates hosted Checkout sessions. Stripe's API is
// form-encoded, unlike Razorpay's JSON.
type stripeClient struct {
	secretKey  string
	baseURL    string
	callback   string
	httpClient *http.Client
}

func NewStripeClient(cfg config.PaymentConfig) PaymentClient {
	return &stripeClient{
		secretKey: cfg.StripeSecretKey,
		baseURL:   cfg.StripeBaseURL,
		callback:  cfg.CallbackBaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type stripeSessionResponse struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
}

func (c *stripeClient) CreatePaymentLink(ctx context.Context, user *models.User, amount int64, paymentOrderID uint) (*PaymentLink, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("customer_email", user.Email)
	form.Set("success_url", fmt.Sprintf("%s/wallet/%d", c.callback, paymentOrderID))
	form.Set("cancel_url", c.callback+"/payment/cancel")
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", "usd")
	form.Set("line_items[0][price_data][product_data][name]", "Top up wallet")
	// Stripe amounts are in the currency's smallest unit.
	form.Set("line_items[0][price_data][unit_amount]", fmt.Sprintf("%d", amount*100))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	var session stripeSessionResponse
	if err := c.do(req, &session); err != nil {
		return nil, err
	}

	return &PaymentLink{URL: session.URL, ReferenceID: session.ID}, nil
}

func (c *stripeClient) IsPaymentCaptured(ctx context.Context, sessionID string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/checkout/sessions/"+sessionID, nil)
	if err != nil {
		return false, fmt.Errorf("stripe: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	var session stripeSessionResponse
	if err := c.do(req, &session); err != nil {
		return false, err
	}

	return session.PaymentStatus == "paid", nil
}

func (c *stripeClient) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("stripe: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("stripe: failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("stripe: unexpected status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("stripe: failed to parse response: %w", err)
	}
	return nil
}
