package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/pkg/database"
)

type AssetRepository interface {
	Create(ctx context.Context, asset *models.Asset) error
	GetByID(ctx context.Context, id uint) (*models.Asset, error)
	GetByIDAndUserID(ctx context.Context, id, userID uint) (*models.Asset, error)
	// GetByUserAndCoin returns (nil, nil) when the user holds none of the coin.
	GetByUserAndCoin(ctx context.Context, userID uint, coinID string) (*models.Asset, error)
	ListByUserID(ctx context.Context, userID uint) ([]models.Asset, error)
	// AddQuantity applies a signed delta atomically in the database, avoiding
	// read-modify-write lost updates under concurrent trades.
	AddQuantity(ctx context.Context, id uint, delta float64) error
	Delete(ctx context.Context, id uint) error
}

type assetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) Create(ctx context.Context, asset *models.Asset) error {
	db := database.FromContext(ctx, r.db)
	if err := db.Create(asset).Error; err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}
	return nil
}

func (r *assetRepository) GetByID(ctx context.Context, id uint) (*models.Asset, error) {
	db := database.FromContext(ctx, r.db)
	var asset models.Asset
	if err := db.Preload("Coin").First(&asset, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get asset %d: %w", id, err)
	}
	return &asset, nil
}

func (r *assetRepository) GetByIDAndUserID(ctx context.Context, id, userID uint) (*models.Asset, error) {
	db := database.FromContext(ctx, r.db)
	var asset models.Asset
	if err := db.Preload("Coin").Where("id = ? AND user_id = ?", id, userID).First(&asset).Error; err != nil {
		return nil, fmt.Errorf("failed to get asset %d for user %d: %w", id, userID, err)
	}
	return &asset, nil
}

func (r *assetRepository) GetByUserAndCoin(ctx context.Context, userID uint, coinID string) (*models.Asset, error) {
	db := database.FromContext(ctx, r.db)
	var asset models.Asset
	if err := db.Preload("Coin").Where("user_id = ? AND coin_id = ?", userID, coinID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get asset for user %d coin %s: %w", userID, coinID, err)
	}
	return &asset, nil
}

func (r *assetRepository) ListByUserID(ctx context.Context, userID uint) ([]models.Asset, error) {
	db := database.FromContext(ctx, r.db)
	var assets []models.Asset
	if err := db.Preload("Coin").Where("user_id = ?", userID).Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("failed to list assets for user %d: %w", userID, err)
	}
	return assets, nil
}

func (r *assetRepository) AddQuantity(ctx context.Context, id uint, delta float64) error {
	db := database.FromContext(ctx, r.db)
	result := db.Model(&models.Asset{}).Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to update asset quantity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update asset quantity: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *assetRepository) Delete(ctx context.Context, id uint) error {
	db := database.FromContext(ctx, r.db)
	if err := db.Delete(&models.Asset{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete asset %d: %w", id, err)
	}
	return nil
}
