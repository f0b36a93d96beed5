package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/pkg/database"
)

type WalletTransactionRepository interface {
	Create(ctx context.Context, transaction *models.WalletTransaction) error
	ListByWalletID(ctx context.Context, walletID uint) ([]models.WalletTransaction, error)
}

type walletTransactionRepository struct {
	db *gorm.DB
}

func NewWalletTransactionRepository(db *gorm.DB) WalletTransactionRepository {
	return &walletTransactionRepository{db: db}
}

func (r *walletTransactionRepository) Create(ctx context.Context, transaction *models.WalletTransaction) error {
	db := database.FromContext(ctx, r.db)
	if err := db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create wallet transaction: %w", err)
	}
	return nil
}

func (r *walletTransactionRepository) ListByWalletID(ctx context.Context, walletID uint) ([]models.WalletTransaction, error) {
	db := database.FromContext(ctx, r.db)
	var transactions []models.WalletTransaction
	if err := db.Where("wallet_id = ?", walletID).
		Order("date DESC, id DESC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to list wallet transactions: %w", err)
	}
	return transactions, nil
}
