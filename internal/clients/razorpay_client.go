package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/oriain86/Trading-Platform-Application/internal/config"
	"github.com/oriain86/Trading-Platform-Application/internal/models"
)

// razorpayClient drives the Razorpay payment-links API. Amounts are sent in
// paise, so the quote-currency amount is multiplied by 100 on the way out.
type razorpayClient struct {
	keyID      string
	keySecret  string
	baseURL    string
	callback   string
	httpClient *http.Client
}

func NewRazorpayClient(cfg config.PaymentConfig) PaymentClient {
	return &razorpayClient{
		keyID:     cfg.RazorpayKeyID,
		keySecret: cfg.RazorpayKeySecret,
		baseURL:   cfg.RazorpayBaseURL,
		callback:  cfg.CallbackBaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type razorpayLinkRequest struct {
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Customer    razorpayCustomer  `json:"customer"`
	Notify      map[string]bool   `json:"notify"`
	ReminderOn  bool              `json:"reminder_enable"`
	CallbackURL string            `json:"callback_url"`
	Notes       map[string]string `json:"notes"`
}

type razorpayCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type razorpayLinkResponse struct {
	ID       string `json:"id"`
	ShortURL string `json:"short_url"`
}

func (c *razorpayClient) CreatePaymentLink(ctx context.Context, user *models.User, amount int64, paymentOrderID uint) (*PaymentLink, error) {
	payload := razorpayLinkRequest{
		Amount:   amount * 100,
		Currency: "USD",
		Customer: razorpayCustomer{
			Name:  user.FullName,
			Email: user.Email,
		},
		Notify:      map[string]bool{"email": true},
		CallbackURL: fmt.Sprintf("%s/wallet/%d", c.callback, paymentOrderID),
		Notes:       map[string]string{"payment_order_id": fmt.Sprintf("%d", paymentOrderID)},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to encode payment link request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment_links", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	var link razorpayLinkResponse
	if err := c.do(req, &link); err != nil {
		return nil, err
	}

	return &PaymentLink{URL: link.ShortURL, ReferenceID: link.ID}, nil
}

type razorpayPaymentResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// IsPaymentCaptured checks a payment's status; only "captured" counts as
// settled.
func (c *razorpayClient) IsPaymentCaptured(ctx context.Context, paymentID string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/payments/"+paymentID, nil)
	if err != nil {
		return false, fmt.Errorf("razorpay: failed to build request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)

	var payment razorpayPaymentResponse
	if err := c.do(req, &payment); err != nil {
		return false, err
	}

	return payment.Status == "captured", nil
}

func (c *razorpayClient) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("razorpay: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("razorpay: failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("razorpay: unexpected status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("razorpay: failed to parse response: %w", err)
	}
	return nil
}
