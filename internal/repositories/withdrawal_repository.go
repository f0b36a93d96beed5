package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/pkg/database"
)

type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *models.Withdrawal) error
	GetByID(ctx context.Context, id uint) (*models.Withdrawal, error)
	Save(ctx context.Context, withdrawal *models.Withdrawal) error
	ListByUserID(ctx context.Context, userID uint) ([]models.Withdrawal, error)
	ListAll(ctx context.Context) ([]models.Withdrawal, error)
}

type withdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) WithdrawalRepository {
	return &withdrawalRepository{db: db}
}

func (r *withdrawalRepository) Create(ctx context.Context, withdrawal *models.Withdrawal) error {
	db := database.FromContext(ctx, r.db)
	if err := db.Create(withdrawal).Error; err != nil {
		return fmt.Errorf("failed to create withdrawal: %w", err)
	}
	return nil
}

func (r *withdrawalRepository) GetByID(ctx context.Context, id uint) (*models.Withdrawal, error) {
	db := database.FromContext(ctx, r.db)
	var withdrawal models.Withdrawal
	if err := db.First(&withdrawal, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get withdrawal %d: %w", id, err)
	}
	return &withdrawal, nil
}

func (r *withdrawalRepository) Save(ctx context.Context, withdrawal *models.Withdrawal) error {
	db := database.FromContext(ctx, r.db)
	if err := db.Save(withdrawal).Error; err != nil {
		return fmt.Errorf("failed to save withdrawal: %w", err)
	}
	return nil
}

func (r *withdrawalRepository) ListByUserID(ctx context.Context, userID uint) ([]models.Withdrawal, error) {
	db := database.FromContext(ctx, r.db)
	var withdrawals []models.Withdrawal
	if err := db.Where("user_id = ?", userID).Order("date DESC").Find(&withdrawals).Error; err != nil {
		return nil, fmt.Errorf("failed to list withdrawals for user %d: %w", userID, err)
	}
	return withdrawals, nil
}

func (r *withdrawalRepository) ListAll(ctx context.Context) ([]models.Withdrawal, error) {
	db := database.FromContext(ctx, r.db)
	var withdrawals []models.Withdrawal
	if err := db.Order("date DESC").Find(&withdrawals).Error; err != nil {
		return nil, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	return withdrawals, nil
}
