package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/oriain86/Trading-Platform-Application/internal/cache"
	"github.com/oriain86/Trading-Platform-Application/internal/clients"
	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/internal/repositories"
)

const topCoinsLimit = 50

// CoinService serves market data through a Redis read-through cache backed by
// the external provider, with the coins table as a stale-but-available
// fallback when the provider is down. Trades price against the table, so it
// is upserted on every successful provider fetch.
type CoinService interface {
	GetCoinList(ctx context.Context, page int) ([]models.Coin, error)
	GetTop50CoinsByMarketCapRank(ctx context.Context) ([]models.Coin, error)
	FindCoinByID(ctx context.Context, coinID string) (*models.Coin, error)
	GetCoinDetails(ctx context.Context, coinID string) (*models.Coin, error)
	GetMarketChart(ctx context.Context, coinID string, days int) (json.RawMessage, error)
	SearchCoin(ctx context.Context, keyword string) (json.RawMessage, error)
	RefreshCoins(ctx context.Context, pages int) error
}

type coinService struct {
	coinRepo     repositories.CoinRepository
	marketClient clients.MarketClient
	marketCache  cache.MarketCache
}

func NewCoinService(coinRepo repositories.CoinRepository, marketClient clients.MarketClient, marketCache cache.MarketCache) CoinService {
	return &coinService{
		coinRepo:     coinRepo,
		marketClient: marketClient,
		marketCache:  marketCache,
	}
}

func (s *coinService) GetCoinList(ctx context.Context, page int) (coins []models.Coin, err error) {
	if page < 1 {
		page = 1
	}
	key := cache.CoinListKey(page)
	if coins, ok := s.marketCache.GetCoins(ctx, key); ok {
		return coins, nil
	}

	coins, err = s.marketClient.GetCoinList(ctx, page)
	if err != nil {
		logrus.WithError(err).Warn("market provider unavailable, serving coin list from database")
		return s.coinRepo.List(ctx, (page-1)*10, 10)
	}

	s.marketCache.SetCoins(ctx, key, coins)
	s.persistCoins(ctx, coins)
	return coins, nil
}

func (s *coinService) GetTop50CoinsByMarketCapRank(ctx context.Context) ([]models.Coin, error) {
	key := cache.TopCoinsKey(topCoinsLimit)
	if coins, ok := s.marketCache.GetCoins(ctx, key); ok {
		return coins, nil
	}

	coins, err := s.marketClient.GetTopCoinsByMarketCap(ctx, topCoinsLimit)
	if err != nil {
		logrus.WithError(err).Warn("market provider unavailable, serving top coins from database")
		return s.coinRepo.List(ctx, 0, topCoinsLimit)
	}

	s.marketCache.SetCoins(ctx, key, coins)
	s.persistCoins(ctx, coins)
	return coins, nil
}

// FindCoinByID resolves a coin for trading. The coins table is authoritative
// here; an unknown coin is fetched from the provider once and stored.
func (s *coinService) FindCoinByID(ctx context.Context, coinID string) (*models.Coin, error) {
	coin, err := s.coinRepo.GetByID(ctx, coinID)
	if err == nil {
		return coin, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	coin, err = s.marketClient.GetCoinDetails(ctx, coinID)
	if err != nil {
		return nil, ErrCoinNotFound
	}
	s.persistCoins(ctx, []models.Coin{*coin})
	return coin, nil
}

func (s *coinService) GetCoinDetails(ctx context.Context, coinID string) (*models.Coin, error) {
	key := cache.CoinDetailsKey(coinID)
	if coin, ok := s.marketCache.GetCoin(ctx, key); ok {
		return coin, nil
	}

	coin, err := s.marketClient.GetCoinDetails(ctx, coinID)
	if err != nil {
		logrus.WithError(err).WithField("coin_id", coinID).Warn("market provider unavailable, serving coin details from database")
		dbCoin, dbErr := s.coinRepo.GetByID(ctx, coinID)
		if dbErr != nil {
			if errors.Is(dbErr, gorm.ErrRecordNotFound) {
				return nil, ErrCoinNotFound
			}
			return nil, dbErr
		}
		return dbCoin, nil
	}

	s.marketCache.SetCoin(ctx, key, coin)
	s.persistCoins(ctx, []models.Coin{*coin})
	return coin, nil
}

func (s *coinService) GetMarketChart(ctx context.Context, coinID string, days int) (json.RawMessage, error) {
	key := cache.ChartKey(coinID, days)
	if data, ok := s.marketCache.GetRaw(ctx, key); ok {
		return data, nil
	}

	data, err := s.marketClient.GetMarketChart(ctx, coinID, days)
	if err != nil {
		return nil, err
	}
	s.marketCache.SetRaw(ctx, key, data)
	return data, nil
}

func (s *coinService) SearchCoin(ctx context.Context, keyword string) (json.RawMessage, error) {
	key := cache.SearchKey(keyword)
	if data, ok := s.marketCache.GetRaw(ctx, key); ok {
		return data, nil
	}

	data, err := s.marketClient.SearchCoin(ctx, keyword)
	if err != nil {
		return nil, err
	}
	s.marketCache.SetRaw(ctx, key, data)
	return data, nil
}

// RefreshCoins re-fetches the first `pages` market pages and upserts them, so
// trade pricing keeps tracking the provider even with no read traffic.
func (s *coinService) RefreshCoins(ctx context.Context, pages int) error {
	for page := 1; page <= pages; page++ {
		coins, err := s.marketClient.GetCoinList(ctx, page)
		if err != nil {
			return fmt.Errorf("failed to refresh coins page %d: %w", page, err)
		}
		if err := s.coinRepo.Upsert(ctx, coins); err != nil {
			return fmt.Errorf("failed to store refreshed coins page %d: %w", page, err)
		}
	}
	return nil
}

func (s *coinService) persistCoins(ctx context.Context, coins []models.Coin) {
	if len(coins) == 0 {
		return
	}
	if err := s.coinRepo.Upsert(ctx, coins); err != nil {
		logrus.WithError(err).Warn("failed to persist coin snapshot")
	}
}
