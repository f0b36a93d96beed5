package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oriain86/Trading-Platform-Application/internal/clients"
	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/internal/repositories"
)

// PaymentService creates deposit orders at an external gateway and settles
// them when the user returns from checkout. Settlement is idempotent: only a
// PENDING order can credit the wallet, and only once.
type PaymentService interface {
	CreatePaymentOrder(ctx context.Context, user *models.User, amount int64, method models.PaymentMethod) (*models.PaymentOrder, *clients.PaymentLink, error)
	GetPaymentOrderByID(ctx context.Context, paymentOrderID uint) (*models.PaymentOrder, error)
	ProceedPaymentOrder(ctx context.Context, order *models.PaymentOrder, paymentID string) (bool, error)
}

type paymentService struct {
	paymentOrderRepo repositories.PaymentOrderRepository
	razorpayClient   clients.PaymentClient
	stripeClient     clients.PaymentClient
}

func NewPaymentService(paymentOrderRepo repositories.PaymentOrderRepository, razorpayClient, stripeClient clients.PaymentClient) PaymentService {
	return &paymentService{
		paymentOrderRepo: paymentOrderRepo,
		razorpayClient:   razorpayClient,
		stripeClient:     stripeClient,
	}
}

func (s *paymentService) CreatePaymentOrder(ctx context.Context, user *models.User, amount int64, method models.PaymentMethod) (*models.PaymentOrder, *clients.PaymentLink, error) {
	order := &models.PaymentOrder{
		UserID:        user.ID,
		Amount:        amount,
		Status:        models.PaymentOrderStatusPending,
		PaymentMethod: method,
	}
	if err := s.paymentOrderRepo.Create(ctx, order); err != nil {
		return nil, nil, err
	}

	client, err := s.clientFor(method)
	if err != nil {
		return nil, nil, err
	}
	link, err := client.CreatePaymentLink(ctx, user, amount, order.ID)
	if err != nil {
		return nil, nil, err
	}

	order.ReferenceID = link.ReferenceID
	if err := s.paymentOrderRepo.Save(ctx, order); err != nil {
		return nil, nil, err
	}

	logrus.WithFields(logrus.Fields{
		"payment_order_id": order.ID,
		"user_id":          user.ID,
		"method":           method,
		"amount":           amount,
	}).Info("payment order created")

	return order, link, nil
}

func (s *paymentService) GetPaymentOrderByID(ctx context.Context, paymentOrderID uint) (*models.PaymentOrder, error) {
	order, err := s.paymentOrderRepo.GetByID(ctx, paymentOrderID)
	if err != nil {
		return nil, ErrPaymentOrderNotFound
	}
	return order, nil
}

// ProceedPaymentOrder verifies the gateway payment and flips the order to
// SUCCESS. It reports whether the wallet credit should happen now; replays of
// an already-settled order report false.
func (s *paymentService) ProceedPaymentOrder(ctx context.Context, order *models.PaymentOrder, paymentID string) (bool, error) {
	if order.Status != models.PaymentOrderStatusPending {
		return false, nil
	}

	if order.PaymentMethod == models.PaymentMethodRazorpay {
		captured, err := s.razorpayClient.IsPaymentCaptured(ctx, paymentID)
		if err != nil {
			return false, err
		}
		if !captured {
			return false, nil
		}
	}

	order.Status = models.PaymentOrderStatusSuccess
	if err := s.paymentOrderRepo.Save(ctx, order); err != nil {
		return false, err
	}
	return true, nil
}

func (s *paymentService) clientFor(method models.PaymentMethod) (clients.PaymentClient, error) {
	switch method {
	case models.PaymentMethodRazorpay:
		return s.razorpayClient, nil
	case models.PaymentMethodStripe:
		return s.stripeClient, nil
	default:
		return nil, ErrInvalidPaymentMethod
	}
}
