package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/pkg/database"
)

type PaymentOrderRepository interface {
	Create(ctx context.Context, order *models.PaymentOrder) error
	GetByID(ctx context.Context, id uint) (*models.PaymentOrder, error)
	Save(ctx context.Context, order *models.PaymentOrder) error
}

type paymentOrderRepository struct {
	db *gorm.DB
}

func NewPaymentOrderRepository(db *gorm.DB) PaymentOrderRepository {
	return &paymentOrderRepository{db: db}
}

func (r *paymentOrderRepository) Create(ctx context.Context, order *models.PaymentOrder) error {
	db := database.FromContext(ctx, r.db)
	if err := db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create payment order: %w", err)
	}
	return nil
}

func (r *paymentOrderRepository) GetByID(ctx context.Context, id uint) (*models.PaymentOrder, error) {
	db := database.FromContext(ctx, r.db)
	var order models.PaymentOrder
	if err := db.First(&order, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get payment order %d: %w", id, err)
	}
	return &order, nil
}

func (r *paymentOrderRepository) Save(ctx context.Context, order *models.PaymentOrder) error {
	db := database.FromContext(ctx, r.db)
	if err := db.Save(order).Error; err != nil {
		return fmt.Errorf("failed to save payment order: %w", err)
	}
	return nil
}
