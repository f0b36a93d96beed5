package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/internal/repositories"
)

// AssetService maintains per-user coin holdings. Each user holds at most one
// asset row per coin; trades adjust its quantity in place.
type AssetService interface {
	CreateAsset(ctx context.Context, user *models.User, coin *models.Coin, quantity float64) (*models.Asset, error)
	GetAssetByID(ctx context.Context, assetID uint) (*models.Asset, error)
	GetAssetByUserAndID(ctx context.Context, userID, assetID uint) (*models.Asset, error)
	GetUsersAssets(ctx context.Context, userID uint) ([]models.Asset, error)
	UpdateAsset(ctx context.Context, assetID uint, deltaQuantity float64) (*models.Asset, error)
	FindAssetByUserIDAndCoinID(ctx context.Context, userID uint, coinID string) (*models.Asset, error)
	DeleteAsset(ctx context.Context, assetID uint) error
}

type assetService struct {
	assetRepo repositories.AssetRepository
}

func NewAssetService(assetRepo repositories.AssetRepository) AssetService {
	return &assetService{assetRepo: assetRepo}
}

// CreateAsset opens a new holding priced at the coin's current reference
// price.
func (s *assetService) CreateAsset(ctx context.Context, user *models.User, coin *models.Coin, quantity float64) (*models.Asset, error) {
	asset := &models.Asset{
		UserID:   user.ID,
		CoinID:   coin.ID,
		Quantity: quantity,
		BuyPrice: coin.CurrentPrice,
	}
	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}
	asset.Coin = *coin
	return asset, nil
}

func (s *assetService) GetAssetByID(ctx context.Context, assetID uint) (*models.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return asset, nil
}

func (s *assetService) GetAssetByUserAndID(ctx context.Context, userID, assetID uint) (*models.Asset, error) {
	asset, err := s.assetRepo.GetByIDAndUserID(ctx, assetID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return asset, nil
}

func (s *assetService) GetUsersAssets(ctx context.Context, userID uint) ([]models.Asset, error) {
	return s.assetRepo.ListByUserID(ctx, userID)
}

// UpdateAsset applies a signed quantity delta atomically and returns the
// refreshed row. The buy price is never recomputed on top-ups.
func (s *assetService) UpdateAsset(ctx context.Context, assetID uint, deltaQuantity float64) (*models.Asset, error) {
	if err := s.assetRepo.AddQuantity(ctx, assetID, deltaQuantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return s.assetRepo.GetByID(ctx, assetID)
}

// FindAssetByUserIDAndCoinID returns (nil, nil) when the user holds no such
// coin.
func (s *assetService) FindAssetByUserIDAndCoinID(ctx context.Context, userID uint, coinID string) (*models.Asset, error) {
	return s.assetRepo.GetByUserAndCoin(ctx, userID, coinID)
}

func (s *assetService) DeleteAsset(ctx context.Context, assetID uint) error {
	return s.assetRepo.Delete(ctx, assetID)
}
