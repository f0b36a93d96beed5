package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/pkg/database"
)

type CoinRepository interface {
	GetByID(ctx context.Context, id string) (*models.Coin, error)
	Upsert(ctx context.Context, coins []models.Coin) error
	List(ctx context.Context, offset, limit int) ([]models.Coin, error)
	SearchByName(ctx context.Context, query string, limit int) ([]models.Coin, error)
}

type coinRepository struct {
	db *gorm.DB
}

func NewCoinRepository(db *gorm.DB) CoinRepository {
	return &coinRepository{db: db}
}

func (r *coinRepository) GetByID(ctx context.Context, id string) (*models.Coin, error) {
	db := database.FromContext(ctx, r.db)
	var coin models.Coin
	if err := db.First(&coin, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get coin %s: %w", id, err)
	}
	return &coin, nil
}

// Upsert inserts new coins and refreshes the market snapshot of existing ones.
func (r *coinRepository) Upsert(ctx context.Context, coins []models.Coin) error {
	if len(coins) == 0 {
		return nil
	}
	db := database.FromContext(ctx, r.db)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&coins).Error; err != nil {
		return fmt.Errorf("failed to upsert coins: %w", err)
	}
	return nil
}

func (r *coinRepository) List(ctx context.Context, offset, limit int) ([]models.Coin, error) {
	db := database.FromContext(ctx, r.db)
	var coins []models.Coin
	if err := db.Order("market_cap_rank ASC").Offset(offset).Limit(limit).Find(&coins).Error; err != nil {
		return nil, fmt.Errorf("failed to list coins: %w", err)
	}
	return coins, nil
}

func (r *coinRepository) SearchByName(ctx context.Context, query string, limit int) ([]models.Coin, error) {
	db := database.FromContext(ctx, r.db)
	var coins []models.Coin
	pattern := "%" + query + "%"
	if err := db.Where("name LIKE ? OR symbol LIKE ?", pattern, pattern).
		Order("market_cap_rank ASC").Limit(limit).Find(&coins).Error; err != nil {
		return nil, fmt.Errorf("failed to search coins: %w", err)
	}
	return coins, nil
}
