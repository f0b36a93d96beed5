package clients

import (
	"context"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
)

// PaymentLink is a hosted checkout page created at a payment gateway. The
// reference ID is the gateway's identifier for the session and is stored on
// the payment order for later verification.
type PaymentLink struct {
	URL         string `json:"payment_url"`
	ReferenceID string `json:"reference_id"`
}

// PaymentClient abstracts one payment gateway. Implementations exist for
// Razorpay and Stripe.
type PaymentClient interface {
	CreatePaymentLink(ctx context.Context, user *models.User, amount int64, paymentOrderID uint) (*PaymentLink, error)
	IsPaymentCaptured(ctx context.Context, paymentID string) (bool, error)
}
