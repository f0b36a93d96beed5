package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
)

type orderServiceFixture struct {
	orderRepo  *MockOrderRepository
	assetRepo  *MockAssetRepository
	walletRepo *MockWalletRepository
	txRepo     *MockWalletTransactionRepository
	service    OrderService
}

func newOrderServiceFixture() *orderServiceFixture {
	f := &orderServiceFixture{
		orderRepo:  new(MockOrderRepository),
		assetRepo:  new(MockAssetRepository),
		walletRepo: new(MockWalletRepository),
		txRepo:     new(MockWalletTransactionRepository),
	}
	transactionService := NewWalletTransactionService(f.txRepo)
	walletService := NewWalletService(f.walletRepo, transactionService)
	assetService := NewAssetService(f.assetRepo)
	f.service = NewOrderService(f.orderRepo, assetService, walletService, fakeTxManager{}, stubPublisher{})
	return f
}

func (f *orderServiceFixture) expectOrderCreation(orderID, itemID uint) {
	f.orderRepo.On("CreateItem", mock.Anything, mock.AnythingOfType("*models.OrderItem")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.OrderItem).ID = itemID
		}).Return(nil)
	f.orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Order).ID = orderID
		}).Return(nil)
	f.orderRepo.On("SaveItem", mock.Anything, mock.AnythingOfType("*models.OrderItem")).Return(nil)
}

func testCoin() *models.Coin {
	return &models.Coin{
		ID:           "bitcoin",
		Symbol:       "btc",
		Name:         "Bitcoin",
		CurrentPrice: 10,
	}
}

func testUser() *models.User {
	return &models.User{
		ID:       1,
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Role:     models.RoleCustomer,
	}
}

func TestProcessOrderBuySuccess(t *testing.T) {
	f := newOrderServiceFixture()
	user := testUser()
	coin := testCoin()
	wallet := &models.Wallet{ID: 1, UserID: user.ID, Balance: decimal.NewFromInt(1000)}

	f.expectOrderCreation(10, 1)
	f.walletRepo.On("GetByUserID", mock.Anything, user.ID).Return(wallet, nil)

	var recorded *models.WalletTransaction
	f.txRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.WalletTransaction")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*models.WalletTransaction)
		}).Return(nil)
	f.walletRepo.On("Save", mock.Anything, wallet).Return(nil)
	f.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil)
	f.assetRepo.On("GetByUserAndCoin", mock.Anything, user.ID, "bitcoin").Return(nil, nil)
	f.assetRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Asset")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Asset).ID = 3
		}).Return(nil)

	order, err := f.service.ProcessOrder(context.Background(), coin, 5, models.OrderTypeBuy, user)

	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusSuccess, order.Status)
	assert.Equal(t, models.OrderTypeBuy, order.OrderType)
	assert.True(t, order.Price.Equal(decimal.NewFromInt(50)), "order price should be currentPrice*quantity")
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(950)), "wallet should be debited by the order price")

	// Ledger entry mirrors the debit.
	assert.Equal(t, models.TransactionBuyAsset, recorded.Type)
	assert.Equal(t, int64(-50), recorded.Amount)
	assert.Equal(t, "BUY bitcoin", recorded.Purpose)
	assert.Equal(t, "btc", recorded.TransferID)

	f.assetRepo.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(a *models.Asset) bool {
		return a.UserID == user.ID && a.CoinID == "bitcoin" && a.Quantity == 5 && a.BuyPrice == 10
	}))
}

func TestProcessOrderBuyTopsUpExistingAsset(t *testing.T) {
	f := newOrderServiceFixture()
	user := testUser()
	coin := testCoin()
	wallet := &models.Wallet{ID: 1, UserID: user.ID, Balance: decimal.NewFromInt(1000)}
	existing := &models.Asset{ID: 7, UserID: user.ID, CoinID: "bitcoin", Quantity: 3, BuyPrice: 8}

	f.expectOrderCreation(10, 1)
	f.walletRepo.On("GetByUserID", mock.Anything, user.ID).Return(wallet, nil)
	f.txRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.walletRepo.On("Save", mock.Anything, wallet).Return(nil)
	f.orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.assetRepo.On("GetByUserAndCoin", mock.Anything, user.ID, "bitcoin").Return(existing, nil)
	f.assetRepo.On("AddQuantity", mock.Anything, uint(7), float64(5)).Return(nil)
	f.assetRepo.On("GetByID", mock.Anything, uint(7)).
		Return(&models.Asset{ID: 7, UserID: user.ID, CoinID: "bitcoin", Quantity: 8, BuyPrice: 8}, nil)

	_, err := f.service.ProcessOrder(context.Background(), coin, 5, models.OrderTypeBuy, user)

	assert.NoError(t, err)
	f.assetRepo.AssertCalled(t, "AddQuantity", mock.Anything, uint(7), float64(5))
	f.assetRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProcessOrderBuyInsufficientFunds(t *testing.T) {
	// Balance 99 covers the 50 order once but the post-debit balance (49)
	// does not cover the price again, so the buy is rejected.
	f := newOrderServiceFixture()
	user := testUser()
	coin := testCoin()
	wallet := &models.Wallet{ID: 1, UserID: user.ID, Balance: decimal.NewFromInt(99)}

	f.expectOrderCreation(10, 1)
	f.walletRepo.On("GetByUserID", mock.Anything, user.ID).Return(wallet, nil)

	_, err := f.service.ProcessOrder(context.Background(), coin, 5, models.OrderTypeBuy, user)

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	f.walletRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProcessOrderBuyBalanceExactlyTwicePrice(t *testing.T) {
	// The boundary case: post-debit balance equal to the price is accepted.
	f := newOrderServiceFixture()
	user := testUser()
	coin := testCoin()
	wallet := &models.Wallet{ID: 1, UserID: user.ID, Balance: decimal.NewFromInt(100)}

	f.expectOrderCreation(10, 1)
	f.walletRepo.On("GetByUserID", mock.Anything, user.ID).Return(wallet, nil)
	f.txRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.walletRepo.On("Save", mock.Anything, wallet).Return(nil)
	f.orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.assetRepo.On("GetByUserAndCoin", mock.Anything, user.ID, "bitcoin").Return(nil, nil)
	f.assetRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	order, err := f.service.ProcessOrder(context.Background(), coin, 5, models.OrderTypeBuy, user)

	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusSuccess, order.Status)
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(50)))
}

func TestProcessOrderBuyNegativeQuantity(t *testing.T) {
	f := newOrderServiceFixture()

	_, err := f.service.ProcessOrder(context.Background(), testCoin(), -1, models.OrderTypeBuy, testUser())

	assert.ErrorIs(t, err, ErrInvalidQuantity)
	f.orderRepo.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
}

func TestProcessOrderBuyZeroQuantity(t *testing.T) {
	// Zero is not rejected; the order settles at zero cost.
	f := newOrderServiceFixture()
	user := testUser()
	wallet := &models.Wallet{ID: 1, UserID: user.ID, Balance: decimal.NewFromInt(100)}

	f.expectOrderCreation(10, 1)
	f.walletRepo.On("GetByUserID", mock.Anything, user.ID).Return(wallet, nil)
	f.txRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.walletRepo.On("Save", mock.Anything, wallet).Return(nil)
	f.orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.assetRepo.On("GetByUserAndCoin", mock.Anything, user.ID, "bitcoin").Return(nil, nil)
	f.assetRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	order, err := f.service.ProcessOrder(context.Background(), testCoin(), 0, models.OrderTypeBuy, user)

	assert.NoError(t, err)
	assert.True(t, order.Price.IsZero())
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(100)))
}

func TestProcessOrderSellSuccess(t *testing.T) {
	f := newOrderServiceFixture()
	user := testUser()
	coin := testCoin()
	wallet := &models.Wallet{ID: 1, UserID: user.ID, Balance: decimal.NewFromInt(100)}
	holding := &models.Asset{ID: 3, UserID: user.ID, CoinID: "bitcoin", Quantity: 10, BuyPrice: 8}

	f.expectOrderCreation(20, 2)
	f.assetRepo.On("GetByUserAndCoin", mock.Anything, user.ID, "bitcoin").Return(holding, nil)
	f.orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.walletRepo.On("GetByUserID", mock.Anything, user.ID).Return(wallet, nil)

	var recorded *models.WalletTransaction
	f.txRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.WalletTransaction")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*models.WalletTransaction)
		}).Return(nil)
	f.walletRepo.On("Save", mock.Anything, wallet).Return(nil)
	f.assetRepo.On("AddQuantity", mock.Anything, uint(3), float64(-5)).Return(nil)
	f.assetRepo.On("GetByID", mock.Anything, uint(3)).
		Return(&models.Asset{ID: 3, UserID: user.ID, CoinID: "bitcoin", Quantity: 5, BuyPrice: 8}, nil)

	order, err := f.service.ProcessOrder(context.Background(), coin, 5, models.OrderTypeSell, user)

	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusSuccess, order.Status)
	assert.Equal(t, models.OrderTypeSell, order.OrderType)
	// Item snapshots the holding's buy price and the coin's current price.
	assert.Equal(t, float64(8), order.OrderItem.BuyPrice)
	assert.Equal(t, float64(10), order.OrderItem.SellPrice)
	// Credit of price, 5*10.
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, models.TransactionSellAsset, recorded.Type)
	assert.Equal(t, int64(50), recorded.Amount)
	// Remaining position worth 50, well above dust.
	f.assetRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProcessOrderSellClosesDustPosition(t *testing.T) {
	// Selling down to 0.05 coins at price 10 leaves 0.50 of value, which is
	// under the dust threshold, so the position is removed entirely.
	f := newOrderServiceFixture()
	user := testUser()
	coin := testCoin()
	wallet := &models.Wallet{ID: 1, UserID: user.ID, Balance: decimal.NewFromInt(0)}
	holding := &models.Asset{ID: 3, UserID: user.ID, CoinID: "bitcoin", Quantity: 5.05, BuyPrice: 8}

	f.expectOrderCreation(20, 2)
	f.assetRepo.On("GetByUserAndCoin", mock.Anything, user.ID, "bitcoin").Return(holding, nil)
	f.orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.walletRepo.On("GetByUserID", mock.Anything, user.ID).Return(wallet, nil)
	f.txRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.walletRepo.On("Save", mock.Anything, wallet).Return(nil)
	f.assetRepo.On("AddQuantity", mock.Anything, uint(3), float64(-5)).Return(nil)
	f.assetRepo.On("GetByID", mock.Anything, uint(3)).
		Return(&models.Asset{ID: 3, UserID: user.ID, CoinID: "bitcoin", Quantity: 0.05, BuyPrice: 8}, nil)
	f.assetRepo.On("Delete", mock.Anything, uint(3)).Return(nil)

	_, err := f.service.ProcessOrder(context.Background(), coin, 5, models.OrderTypeSell, user)

	assert.NoError(t, err)
	f.assetRepo.AssertCalled(t, "Delete", mock.Anything, uint(3))
}

func TestProcessOrderSellInsufficientHoldings(t *testing.T) {
	f := newOrderServiceFixture()
	user := testUser()
	coin := testCoin()
	holding := &models.Asset{ID: 3, UserID: user.ID, CoinID: "bitcoin", Quantity: 2, BuyPrice: 8}

	f.expectOrderCreation(20, 2)
	f.assetRepo.On("GetByUserAndCoin", mock.Anything, user.ID, "bitcoin").Return(holding, nil)
	f.orderRepo.On("Delete", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil)

	_, err := f.service.ProcessOrder(context.Background(), coin, 5, models.OrderTypeSell, user)

	assert.ErrorIs(t, err, ErrInsufficientHoldings)
	f.orderRepo.AssertCalled(t, "Delete", mock.Anything, mock.Anything)
	f.walletRepo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
}

func TestProcessOrderSellWithoutHolding(t *testing.T) {
	f := newOrderServiceFixture()
	f.assetRepo.On("GetByUserAndCoin", mock.Anything, uint(1), "bitcoin").Return(nil, nil)

	_, err := f.service.ProcessOrder(context.Background(), testCoin(), 5, models.OrderTypeSell, testUser())

	assert.ErrorIs(t, err, ErrAssetNotFound)
	f.orderRepo.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
}

func TestProcessOrderUnknownType(t *testing.T) {
	f := newOrderServiceFixture()

	_, err := f.service.ProcessOrder(context.Background(), testCoin(), 5, models.OrderType("LIMIT"), testUser())

	assert.ErrorIs(t, err, ErrInvalidOrderType)
}

func TestCancelOrder(t *testing.T) {
	tests := []struct {
		name    string
		status  models.OrderStatus
		wantErr error
	}{
		{name: "pending order is cancelled", status: models.OrderStatusPending},
		{name: "settled order cannot be cancelled", status: models.OrderStatusSuccess, wantErr: ErrOrderNotCancellable},
		{name: "cancelled order cannot be cancelled again", status: models.OrderStatusCancelled, wantErr: ErrOrderNotCancellable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderServiceFixture()
			f.orderRepo.On("GetByID", mock.Anything, uint(10)).
				Return(&models.Order{ID: 10, UserID: 1, Status: tt.status}, nil)
			f.orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

			order, err := f.service.CancelOrder(context.Background(), 10)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, models.OrderStatusCancelled, order.Status)
		})
	}
}

func TestGetAllOrdersForUserFilters(t *testing.T) {
	orders := []models.Order{
		{ID: 1, OrderType: models.OrderTypeBuy, OrderItem: models.OrderItem{Coin: models.Coin{Symbol: "btc"}}},
		{ID: 2, OrderType: models.OrderTypeSell, OrderItem: models.OrderItem{Coin: models.Coin{Symbol: "btc"}}},
		{ID: 3, OrderType: models.OrderTypeBuy, OrderItem: models.OrderItem{Coin: models.Coin{Symbol: "eth"}}},
	}

	tests := []struct {
		name        string
		orderType   string
		assetSymbol string
		wantIDs     []uint
		wantErr     error
	}{
		{name: "no filters", wantIDs: []uint{1, 2, 3}},
		{name: "type filter is case-insensitive", orderType: "buy", wantIDs: []uint{1, 3}},
		{name: "symbol filter is exact", assetSymbol: "btc", wantIDs: []uint{1, 2}},
		{name: "filters combine with AND", orderType: "SELL", assetSymbol: "btc", wantIDs: []uint{2}},
		{name: "symbol case mismatch matches nothing", assetSymbol: "BTC", wantIDs: []uint{}},
		{name: "unknown type filter", orderType: "limit", wantErr: ErrInvalidOrderType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderServiceFixture()
			f.orderRepo.On("ListByUserID", mock.Anything, uint(1)).Return(orders, nil)

			got, err := f.service.GetAllOrdersForUser(context.Background(), 1, tt.orderType, tt.assetSymbol)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			gotIDs := make([]uint, 0, len(got))
			for _, o := range got {
				gotIDs = append(gotIDs, o.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}
