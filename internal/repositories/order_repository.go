package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/pkg/database"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	Save(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	ListByUserID(ctx context.Context, userID uint) ([]models.Order, error)
	Delete(ctx context.Context, order *models.Order) error
	CreateItem(ctx context.Context, item *models.OrderItem) error
	SaveItem(ctx context.Context, item *models.OrderItem) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	db := database.FromContext(ctx, r.db)
	if err := db.Omit("OrderItem").Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepository) Save(ctx context.Context, order *models.Order) error {
	db := database.FromContext(ctx, r.db)
	if err := db.Omit("OrderItem").Save(order).Error; err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	db := database.FromContext(ctx, r.db)
	var order models.Order
	if err := db.Preload("OrderItem").Preload("OrderItem.Coin").First(&order, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return &order, nil
}

func (r *orderRepository) ListByUserID(ctx context.Context, userID uint) ([]models.Order, error) {
	db := database.FromContext(ctx, r.db)
	var orders []models.Order
	if err := db.Preload("OrderItem").Preload("OrderItem.Coin").
		Where("user_id = ?", userID).Order("timestamp DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders for user %d: %w", userID, err)
	}
	return orders, nil
}

// Delete removes the order row; the item row follows via the FK cascade.
func (r *orderRepository) Delete(ctx context.Context, order *models.Order) error {
	db := database.FromContext(ctx, r.db)
	if err := db.Delete(order).Error; err != nil {
		return fmt.Errorf("failed to delete order %d: %w", order.ID, err)
	}
	return nil
}

func (r *orderRepository) CreateItem(ctx context.Context, item *models.OrderItem) error {
	db := database.FromContext(ctx, r.db)
	if err := db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create order item: %w", err)
	}
	return nil
}

func (r *orderRepository) SaveItem(ctx context.Context, item *models.OrderItem) error {
	db := database.FromContext(ctx, r.db)
	if err := db.Save(item).Error; err != nil {
		return fmt.Errorf("failed to save order item: %w", err)
	}
	return nil
}
