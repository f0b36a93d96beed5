package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/oriain86/Trading-Platform-Application/internal/cache"
	"github.com/oriain86/Trading-Platform-Application/internal/models"
)

func marketPage() []models.Coin {
	return []models.Coin{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", CurrentPrice: 64000, MarketCapRank: 1},
		{ID: "ethereum", Symbol: "eth", Name: "Ethereum", CurrentPrice: 3100, MarketCapRank: 2},
	}
}

func TestGetCoinListCacheMiss(t *testing.T) {
	coinRepo := new(MockCoinRepository)
	marketClient := new(MockMarketClient)
	marketCache := newFakeMarketCache()
	service := NewCoinService(coinRepo, marketClient, marketCache)

	coins := marketPage()
	marketClient.On("GetCoinList", mock.Anything, 1).Return(coins, nil).Once()
	coinRepo.On("Upsert", mock.Anything, coins).Return(nil)

	got, err := service.GetCoinList(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, coins, got)

	// Second call is served from the cache without another provider hit.
	got, err = service.GetCoinList(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, coins, got)
	marketClient.AssertNumberOfCalls(t, "GetCoinList", 1)
}

func TestGetCoinListProviderDownFallsBackToDatabase(t *testing.T) {
	coinRepo := new(MockCoinRepository)
	marketClient := new(MockMarketClient)
	service := NewCoinService(coinRepo, marketClient, newFakeMarketCache())

	stale := marketPage()
	marketClient.On("GetCoinList", mock.Anything, 2).Return(nil, errors.New("provider timeout"))
	coinRepo.On("List", mock.Anything, 10, 10).Return(stale, nil)

	got, err := service.GetCoinList(context.Background(), 2)
	assert.NoError(t, err)
	assert.Equal(t, stale, got)
	coinRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestGetTop50ServedFromCache(t *testing.T) {
	coinRepo := new(MockCoinRepository)
	marketClient := new(MockMarketClient)
	marketCache := newFakeMarketCache()
	service := NewCoinService(coinRepo, marketClient, marketCache)

	cached := marketPage()
	marketCache.SetCoins(context.Background(), cache.TopCoinsKey(50), cached)

	got, err := service.GetTop50CoinsByMarketCapRank(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, cached, got)
	marketClient.AssertNotCalled(t, "GetTopCoinsByMarketCap", mock.Anything, mock.Anything)
}

func TestFindCoinByIDKnownCoinSkipsProvider(t *testing.T) {
	coinRepo := new(MockCoinRepository)
	marketClient := new(MockMarketClient)
	service := NewCoinService(coinRepo, marketClient, newFakeMarketCache())

	coin := &models.Coin{ID: "bitcoin", Symbol: "btc", CurrentPrice: 64000}
	coinRepo.On("GetByID", mock.Anything, "bitcoin").Return(coin, nil)

	got, err := service.FindCoinByID(context.Background(), "bitcoin")
	assert.NoError(t, err)
	assert.Equal(t, coin, got)
	marketClient.AssertNotCalled(t, "GetCoinDetails", mock.Anything, mock.Anything)
}

func TestFindCoinByIDUnknownCoinFetchedAndStored(t *testing.T) {
	coinRepo := new(MockCoinRepository)
	marketClient := new(MockMarketClient)
	service := NewCoinService(coinRepo, marketClient, newFakeMarketCache())

	coin := &models.Coin{ID: "solana", Symbol: "sol", CurrentPrice: 145}
	coinRepo.On("GetByID", mock.Anything, "solana").Return(nil, gorm.ErrRecordNotFound)
	marketClient.On("GetCoinDetails", mock.Anything, "solana").Return(coin, nil)
	coinRepo.On("Upsert", mock.Anything, []models.Coin{*coin}).Return(nil)

	got, err := service.FindCoinByID(context.Background(), "solana")
	assert.NoError(t, err)
	assert.Equal(t, coin, got)
	coinRepo.AssertExpectations(t)
}

func TestFindCoinByIDUnknownEverywhere(t *testing.T) {
	coinRepo := new(MockCoinRepository)
	marketClient := new(MockMarketClient)
	service := NewCoinService(coinRepo, marketClient, newFakeMarketCache())

	coinRepo.On("GetByID", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)
	marketClient.On("GetCoinDetails", mock.Anything, "nope").Return(nil, errors.New("404"))

	_, err := service.FindCoinByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCoinNotFound)
}

func TestGetMarketChartCachesRawPayload(t *testing.T) {
	coinRepo := new(MockCoinRepository)
	marketClient := new(MockMarketClient)
	service := NewCoinService(coinRepo, marketClient, newFakeMarketCache())

	payload := json.RawMessage(`{"prices":[[1,64000]]}`)
	marketClient.On("GetMarketChart", mock.Anything, "bitcoin", 7).Return(payload, nil).Once()

	for i := 0; i < 2; i++ {
		got, err := service.GetMarketChart(context.Background(), "bitcoin", 7)
		assert.NoError(t, err)
		assert.JSONEq(t, string(payload), string(got))
	}
	marketClient.AssertNumberOfCalls(t, "GetMarketChart", 1)
}

func TestRefreshCoinsUpsertsEveryPage(t *testing.T) {
	coinRepo := new(MockCoinRepository)
	marketClient := new(MockMarketClient)
	service := NewCoinService(coinRepo, marketClient, newFakeMarketCache())

	coins := marketPage()
	marketClient.On("GetCoinList", mock.Anything, 1).Return(coins, nil)
	marketClient.On("GetCoinList", mock.Anything, 2).Return(coins, nil)
	coinRepo.On("Upsert", mock.Anything, coins).Return(nil).Times(2)

	err := service.RefreshCoins(context.Background(), 2)
	assert.NoError(t, err)
	coinRepo.AssertExpectations(t)
}

func TestRefreshCoinsStopsOnProviderError(t *testing.T) {
	coinRepo := new(MockCoinRepository)
	marketClient := new(MockMarketClient)
	service := NewCoinService(coinRepo, marketClient, newFakeMarketCache())

	marketClient.On("GetCoinList", mock.Anything, 1).Return(nil, errors.New("provider timeout"))

	err := service.RefreshCoins(context.Background(), 3)
	assert.Error(t, err)
	coinRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
