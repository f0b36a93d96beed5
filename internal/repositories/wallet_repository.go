package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/pkg/database"
)

type WalletRepository interface {
	Create(ctx context.Context, wallet *models.Wallet) error
	GetByID(ctx context.Context, id uint) (*models.Wallet, error)
	// GetByUserID returns (nil, nil) when the user has no wallet yet.
	GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error)
	Save(ctx context.Context, wallet *models.Wallet) error
}

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) Create(ctx context.Context, wallet *models.Wallet) error {
	db := database.FromContext(ctx, r.db)
	if err := db.Create(wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("wallet already exists for user %d: %w", wallet.UserID, err)
		}
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) GetByID(ctx context.Context, id uint) (*models.Wallet, error) {
	db := database.FromContext(ctx, r.db)
	var wallet models.Wallet
	if err := db.First(&wallet, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get wallet %d: %w", id, err)
	}
	return &wallet, nil
}

func (r *walletRepository) GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error) {
	db := database.FromContext(ctx, r.db)
	var wallet models.Wallet
	if err := db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get wallet for user %d: %w", userID, err)
	}
	return &wallet, nil
}

func (r *walletRepository) Save(ctx context.Context, wallet *models.Wallet) error {
	db := database.FromContext(ctx, r.db)
	if err := db.Save(wallet).Error; err != nil {
		return fmt.Errorf("failed to save wallet: %w", err)
	}
	return nil
}
