package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/pkg/database"
)

type WatchlistRepository interface {
	Create(ctx context.Context, watchlist *models.Watchlist) error
	// GetByUserID returns (nil, nil) when the user has no watchlist yet.
	GetByUserID(ctx context.Context, userID uint) (*models.Watchlist, error)
	GetByID(ctx context.Context, id uint) (*models.Watchlist, error)
	AddCoin(ctx context.Context, watchlist *models.Watchlist, coin *models.Coin) error
	RemoveCoin(ctx context.Context, watchlist *models.Watchlist, coin *models.Coin) error
	HasCoin(ctx context.Context, watchlistID uint, coinID string) (bool, error)
}

type watchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

func (r *watchlistRepository) Create(ctx context.Context, watchlist *models.Watchlist) error {
	db := database.FromContext(ctx, r.db)
	if err := db.Create(watchlist).Error; err != nil {
		return fmt.Errorf("failed to create watchlist: %w", err)
	}
	return nil
}

func (r *watchlistRepository) GetByUserID(ctx context.Context, userID uint) (*models.Watchlist, error) {
	db := database.FromContext(ctx, r.db)
	var watchlist models.Watchlist
	if err := db.Preload("Coins").Where("user_id = ?", userID).First(&watchlist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get watchlist for user %d: %w", userID, err)
	}
	return &watchlist, nil
}

func (r *watchlistRepository) GetByID(ctx context.Context, id uint) (*models.Watchlist, error) {
	db := database.FromContext(ctx, r.db)
	var watchlist models.Watchlist
	if err := db.Preload("Coins").First(&watchlist, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get watchlist %d: %w", id, err)
	}
	return &watchlist, nil
}

func (r *watchlistRepository) AddCoin(ctx context.Context, watchlist *models.Watchlist, coin *models.Coin) error {
	db := database.FromContext(ctx, r.db)
	if err := db.Model(watchlist).Association("Coins").Append(coin); err != nil {
		return fmt.Errorf("failed to add coin to watchlist: %w", err)
	}
	return nil
}

func (r *watchlistRepository) RemoveCoin(ctx context.Context, watchlist *models.Watchlist, coin *models.Coin) error {
	db := database.FromContext(ctx, r.db)
	if err := db.Model(watchlist).Association("Coins").Delete(coin); err != nil {
		return fmt.Errorf("failed to remove coin from watchlist: %w", err)
	}
	return nil
}

func (r *watchlistRepository) HasCoin(ctx context.Context, watchlistID uint, coinID string) (bool, error) {
	db := database.FromContext(ctx, r.db)
	var count int64
	if err := db.Table("watchlist_coins").
		Where("watchlist_id = ? AND coin_id = ?", watchlistID, coinID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check watchlist coin: %w", err)
	}
	return count > 0, nil
}
