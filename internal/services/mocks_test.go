package services

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
)

// Hand-rolled testify mocks for the repository interfaces, shared by the
// service tests in this package.

type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Create(ctx context.Context, wallet *models.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetByID(ctx context.Context, id uint) (*models.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepository) Save(ctx context.Context, wallet *models.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

type MockWalletTransactionRepository struct {
	mock.Mock
}

func (m *MockWalletTransactionRepository) Create(ctx context.Context, transaction *models.WalletTransaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockWalletTransactionRepository) ListByWalletID(ctx context.Context, walletID uint) ([]models.WalletTransaction, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WalletTransaction), args.Error(1)
}

type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) GetByID(ctx context.Context, id uint) (*models.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetRepository) GetByIDAndUserID(ctx context.Context, id, userID uint) (*models.Asset, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetRepository) GetByUserAndCoin(ctx context.Context, userID uint, coinID string) (*models.Asset, error) {
	args := m.Called(ctx, userID, coinID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetRepository) ListByUserID(ctx context.Context, userID uint) ([]models.Asset, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Asset), args.Error(1)
}

func (m *MockAssetRepository) AddQuantity(ctx context.Context, id uint, delta float64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockAssetRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUserID(ctx context.Context, userID uint) ([]models.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateItem(ctx context.Context, item *models.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveItem(ctx context.Context, item *models.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) Create(ctx context.Context, withdrawal *models.Withdrawal) error {
	args := m.Called(ctx, withdrawal)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) GetByID(ctx context.Context, id uint) (*models.Withdrawal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) Save(ctx context.Context, withdrawal *models.Withdrawal) error {
	args := m.Called(ctx, withdrawal)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) ListByUserID(ctx context.Context, userID uint) ([]models.Withdrawal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) ListAll(ctx context.Context) ([]models.Withdrawal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Withdrawal), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type MockCoinRepository struct {
	mock.Mock
}

func (m *MockCoinRepository) GetByID(ctx context.Context, id string) (*models.Coin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coin), args.Error(1)
}

func (m *MockCoinRepository) Upsert(ctx context.Context, coins []models.Coin) error {
	args := m.Called(ctx, coins)
	return args.Error(0)
}

func (m *MockCoinRepository) List(ctx context.Context, offset, limit int) ([]models.Coin, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Coin), args.Error(1)
}

func (m *MockCoinRepository) SearchByName(ctx context.Context, query string, limit int) ([]models.Coin, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Coin), args.Error(1)
}

type MockMarketClient struct {
	mock.Mock
}

func (m *MockMarketClient) GetCoinList(ctx context.Context, page int) ([]models.Coin, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Coin), args.Error(1)
}

func (m *MockMarketClient) GetTopCoinsByMarketCap(ctx context.Context, limit int) ([]models.Coin, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Coin), args.Error(1)
}

func (m *MockMarketClient) GetCoinDetails(ctx context.Context, coinID string) (*models.Coin, error) {
	args := m.Called(ctx, coinID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coin), args.Error(1)
}

func (m *MockMarketClient) GetMarketChart(ctx context.Context, coinID string, days int) (json.RawMessage, error) {
	args := m.Called(ctx, coinID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockMarketClient) SearchCoin(ctx context.Context, keyword string) (json.RawMessage, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// fakeMarketCache is an in-memory stand-in for the Redis cache.
type fakeMarketCache struct {
	coinLists map[string][]models.Coin
	coins     map[string]*models.Coin
	raw       map[string]json.RawMessage
}

func newFakeMarketCache() *fakeMarketCache {
	return &fakeMarketCache{
		coinLists: make(map[string][]models.Coin),
		coins:     make(map[string]*models.Coin),
		raw:       make(map[string]json.RawMessage),
	}
}

func (c *fakeMarketCache) GetCoins(_ context.Context, key string) ([]models.Coin, bool) {
	coins, ok := c.coinLists[key]
	return coins, ok
}

func (c *fakeMarketCache) SetCoins(_ context.Context, key string, coins []models.Coin) {
	c.coinLists[key] = coins
}

func (c *fakeMarketCache) GetCoin(_ context.Context, key string) (*models.Coin, bool) {
	coin, ok := c.coins[key]
	return coin, ok
}

func (c *fakeMarketCache) SetCoin(_ context.Context, key string, coin *models.Coin) {
	c.coins[key] = coin
}

func (c *fakeMarketCache) GetRaw(_ context.Context, key string) (json.RawMessage, bool) {
	data, ok := c.raw[key]
	return data, ok
}

func (c *fakeMarketCache) SetRaw(_ context.Context, key string, data []byte) {
	c.raw[key] = data
}

// fakeTxManager runs the callback inline without a real transaction.
type fakeTxManager struct{}

func (fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// stubPublisher swallows events.
type stubPublisher struct{}

func (stubPublisher) PublishOrderExecuted(context.Context, *models.Order) error  { return nil }
func (stubPublisher) PublishOrderCancelled(context.Context, *models.Order) error { return nil }
func (stubPublisher) PublishWithdrawalRequested(context.Context, *models.Withdrawal) error {
	return nil
}
func (stubPublisher) PublishWithdrawalSettled(context.Context, *models.Withdrawal) error {
	return nil
}
