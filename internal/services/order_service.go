package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/internal/monitoring"
	"github.com/oriain86/Trading-Platform-Application/internal/repositories"
	"github.com/oriain86/Trading-Platform-Application/pkg/database"
)

// Positions whose market value drops to this threshold or below after a sell
// are closed entirely instead of keeping a dust row around.
const dustValueThreshold = 1.0

// OrderService executes buy and sell orders against the coin's current
// reference price. Every order settles in full immediately or not at all;
// there is no matching engine and no partial fills.
type OrderService interface {
	ProcessOrder(ctx context.Context, coin *models.Coin, quantity float64, orderType models.OrderType, user *models.User) (*models.Order, error)
	GetOrderByID(ctx context.Context, orderID uint) (*models.Order, error)
	GetAllOrdersForUser(ctx context.Context, userID uint, orderType, assetSymbol string) ([]models.Order, error)
	CancelOrder(ctx context.Context, orderID uint) (*models.Order, error)
}

type orderService struct {
	orderRepo     repositories.OrderRepository
	assetService  AssetService
	walletService WalletService
	txManager     database.TxManager
	publisher     EventPublisher
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	assetService AssetService,
	walletService WalletService,
	txManager database.TxManager,
	publisher EventPublisher,
) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		assetService:  assetService,
		walletService: walletService,
		txManager:     txManager,
		publisher:     publisher,
	}
}

// ProcessOrder runs the whole trade inside a single transaction: order row,
// wallet debit or credit, ledger entry and asset adjustment commit together
// or not at all.
func (s *orderService) ProcessOrder(ctx context.Context, coin *models.Coin, quantity float64, orderType models.OrderType, user *models.User) (*models.Order, error) {
	var order *models.Order
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		switch orderType {
		case models.OrderTypeBuy:
			order, txErr = s.buyAsset(txCtx, coin, quantity, user)
		case models.OrderTypeSell:
			order, txErr = s.sellAsset(txCtx, coin, quantity, user)
		default:
			txErr = ErrInvalidOrderType
		}
		return txErr
	})
	if err != nil {
		monitoring.OrdersProcessed.WithLabelValues(string(orderType), "rejected").Inc()
		return nil, err
	}

	monitoring.OrdersProcessed.WithLabelValues(string(orderType), "success").Inc()

	if pubErr := s.publisher.PublishOrderExecuted(ctx, order); pubErr != nil {
		logrus.WithError(pubErr).WithField("order_id", order.ID).Warn("failed to publish order executed event")
	}

	return order, nil
}

// buyAsset debits the wallet for quantity*currentPrice and opens or tops up
// the user's holding in the coin. Zero-quantity buys are accepted and settle
// at zero cost.
func (s *orderService) buyAsset(ctx context.Context, coin *models.Coin, quantity float64, user *models.User) (*models.Order, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.createOrderItem(ctx, coin, quantity, coin.CurrentPrice, 0)
	if err != nil {
		return nil, err
	}
	order, err := s.createOrder(ctx, user, item, models.OrderTypeBuy)
	if err != nil {
		return nil, err
	}

	if _, err := s.walletService.PayOrderPayment(ctx, order, user); err != nil {
		return nil, err
	}

	order.Status = models.OrderStatusSuccess
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	asset, err := s.assetService.FindAssetByUserIDAndCoinID(ctx, user.ID, coin.ID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		if _, err := s.assetService.CreateAsset(ctx, user, coin, quantity); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.assetService.UpdateAsset(ctx, asset.ID, quantity); err != nil {
			return nil, err
		}
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  user.ID,
		"coin_id":  coin.ID,
		"quantity": quantity,
	}).Info("buy order executed")

	return order, nil
}

// sellAsset credits the wallet with quantity*currentPrice and reduces the
// holding. A position worth dust after the sale is deleted outright.
func (s *orderService) sellAsset(ctx context.Context, coin *models.Coin, quantity float64, user *models.User) (*models.Order, error) {
	assetToSell, err := s.assetService.FindAssetByUserIDAndCoinID(ctx, user.ID, coin.ID)
	if err != nil {
		return nil, err
	}
	if assetToSell == nil {
		return nil, ErrAssetNotFound
	}

	item, err := s.createOrderItem(ctx, coin, quantity, assetToSell.BuyPrice, coin.CurrentPrice)
	if err != nil {
		return nil, err
	}
	order, err := s.createOrder(ctx, user, item, models.OrderTypeSell)
	if err != nil {
		return nil, err
	}

	if assetToSell.Quantity < quantity {
		if delErr := s.orderRepo.Delete(ctx, order); delErr != nil {
			return nil, delErr
		}
		return nil, ErrInsufficientHoldings
	}

	order.Status = models.OrderStatusSuccess
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	if _, err := s.walletService.PayOrderPayment(ctx, order, user); err != nil {
		return nil, err
	}

	updated, err := s.assetService.UpdateAsset(ctx, assetToSell.ID, -quantity)
	if err != nil {
		return nil, err
	}
	if updated.Quantity*coin.CurrentPrice <= dustValueThreshold {
		if err := s.assetService.DeleteAsset(ctx, updated.ID); err != nil {
			return nil, err
		}
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  user.ID,
		"coin_id":  coin.ID,
		"quantity": quantity,
	}).Info("sell order executed")

	return order, nil
}

func (s *orderService) createOrderItem(ctx context.Context, coin *models.Coin, quantity, buyPrice, sellPrice float64) (*models.OrderItem, error) {
	item := &models.OrderItem{
		CoinID:    coin.ID,
		Quantity:  quantity,
		BuyPrice:  buyPrice,
		SellPrice: sellPrice,
	}
	if err := s.orderRepo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	item.Coin = *coin
	return item, nil
}

func (s *orderService) createOrder(ctx context.Context, user *models.User, item *models.OrderItem, orderType models.OrderType) (*models.Order, error) {
	price := decimal.NewFromFloat(item.Coin.CurrentPrice * item.Quantity)
	order := &models.Order{
		UserID:    user.ID,
		OrderType: orderType,
		Price:     price,
		Timestamp: time.Now(),
		Status:    models.OrderStatusPending,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	item.OrderID = order.ID
	if err := s.orderRepo.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	order.OrderItem = *item

	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// GetAllOrdersForUser lists the user's orders newest first, optionally
// narrowed by order type and by the traded coin's symbol. Both filters must
// match when both are given. The type filter is case-insensitive; the symbol
// filter is exact.
func (s *orderService) GetAllOrdersForUser(ctx context.Context, userID uint, orderType, assetSymbol string) ([]models.Order, error) {
	orders, err := s.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if orderType != "" {
		parsed, ok := models.ParseOrderType(orderType)
		if !ok {
			return nil, ErrInvalidOrderType
		}
		orders = filterOrders(orders, func(o models.Order) bool {
			return o.OrderType == parsed
		})
	}
	if assetSymbol != "" {
		orders = filterOrders(orders, func(o models.Order) bool {
			return o.OrderItem.Coin.Symbol == assetSymbol
		})
	}

	return orders, nil
}

func filterOrders(orders []models.Order, keep func(models.Order) bool) []models.Order {
	filtered := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if keep(o) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// CancelOrder flips a pending order to cancelled. Orders that already settled
// or were already cancelled are not touched.
func (s *orderService) CancelOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	var order *models.Order
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		order, txErr = s.GetOrderByID(txCtx, orderID)
		if txErr != nil {
			return txErr
		}
		if !order.IsPending() {
			return ErrOrderNotCancellable
		}
		order.Status = models.OrderStatusCancelled
		return s.orderRepo.Save(txCtx, order)
	})
	if err != nil {
		return nil, err
	}

	if pubErr := s.publisher.PublishOrderCancelled(ctx, order); pubErr != nil {
		logrus.WithError(pubErr).WithField("order_id", order.ID).Warn("failed to publish order cancelled event")
	}

	return order, nil
}
