package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/internal/repositories"
)

// WalletService owns the fiat balance of every user: lazy wallet creation,
// top-ups, order settlement and wallet-to-wallet transfers.
type WalletService interface {
	GetUserWallet(ctx context.Context, user *models.User) (*models.Wallet, error)
	FindWalletByID(ctx context.Context, walletID uint) (*models.Wallet, error)
	AddBalanceToWallet(ctx context.Context, wallet *models.Wallet, money int64) (*models.Wallet, error)
	PayOrderPayment(ctx context.Context, order *models.Order, user *models.User) (*models.Wallet, error)
	WalletToWalletTransfer(ctx context.Context, sender *models.User, receiverWallet *models.Wallet, amount int64) (*models.Wallet, error)
}

type walletService struct {
	walletRepo         repositories.WalletRepository
	transactionService WalletTransactionService
}

func NewWalletService(walletRepo repositories.WalletRepository, transactionService WalletTransactionService) WalletService {
	return &walletService{
		walletRepo:         walletRepo,
		transactionService: transactionService,
	}
}

// GetUserWallet returns the user's wallet, creating an empty one on first
// access. Two concurrent first accesses race on the unique user_id index; the
// loser re-reads the winner's row.
func (s *walletService) GetUserWallet(ctx context.Context, user *models.User) (*models.Wallet, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if wallet != nil {
		return wallet, nil
	}

	wallet = &models.Wallet{
		UserID:  user.ID,
		Balance: decimal.Zero,
	}
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.walletRepo.GetByUserID(ctx, user.ID)
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"wallet_id": wallet.ID,
	}).Info("wallet created")

	return wallet, nil
}

func (s *walletService) FindWalletByID(ctx context.Context, walletID uint) (*models.Wallet, error) {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return wallet, nil
}

// AddBalanceToWallet credits the wallet unconditionally. Negative amounts are
// accepted and debit the wallet; callers that need a floor check it first.
func (s *walletService) AddBalanceToWallet(ctx context.Context, wallet *models.Wallet, money int64) (*models.Wallet, error) {
	wallet.Balance = wallet.Balance.Add(decimal.NewFromInt(money))
	if err := s.walletRepo.Save(ctx, wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

// PayOrderPayment settles an order against the user's wallet: debit for a
// buy, credit for a sell, plus a ledger entry either way. A buy is rejected
// when the balance remaining after the debit would still not cover the order
// price a second time.
func (s *walletService) PayOrderPayment(ctx context.Context, order *models.Order, user *models.User) (*models.Wallet, error) {
	wallet, err := s.GetUserWallet(ctx, user)
	if err != nil {
		return nil, err
	}

	var (
		txType models.WalletTransactionType
		amount int64
	)
	switch order.OrderType {
	case models.OrderTypeBuy:
		newBalance := wallet.Balance.Sub(order.Price)
		if newBalance.LessThan(order.Price) {
			return nil, ErrInsufficientFunds
		}
		wallet.Balance = newBalance
		txType = models.TransactionBuyAsset
		amount = -order.Price.IntPart()
	case models.OrderTypeSell:
		wallet.Balance = wallet.Balance.Add(order.Price)
		txType = models.TransactionSellAsset
		amount = order.Price.IntPart()
	default:
		return nil, ErrInvalidOrderType
	}

	purpose := fmt.Sprintf("%s %s", order.OrderType, order.OrderItem.CoinID)
	if _, err := s.transactionService.CreateTransaction(ctx, wallet, txType, order.OrderItem.Coin.Symbol, purpose, amount); err != nil {
		return nil, err
	}
	if err := s.walletRepo.Save(ctx, wallet); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"wallet_id":  wallet.ID,
		"order_id":   order.ID,
		"order_type": order.OrderType,
		"amount":     amount,
	}).Info("order payment settled")

	return wallet, nil
}

// WalletToWalletTransfer moves `amount` from the sender's wallet to the
// receiver's. The receiver wallet is addressed directly and may belong to any
// user, including the sender.
func (s *walletService) WalletToWalletTransfer(ctx context.Context, sender *models.User, receiverWallet *models.Wallet, amount int64) (*models.Wallet, error) {
	senderWallet, err := s.GetUserWallet(ctx, sender)
	if err != nil {
		return nil, err
	}

	money := decimal.NewFromInt(amount)
	if senderWallet.Balance.LessThan(money) {
		return nil, ErrInsufficientBalance
	}

	senderWallet.Balance = senderWallet.Balance.Sub(money)
	if err := s.walletRepo.Save(ctx, senderWallet); err != nil {
		return nil, err
	}

	receiverWallet.Balance = receiverWallet.Balance.Add(money)
	if err := s.walletRepo.Save(ctx, receiverWallet); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"sender_wallet_id":   senderWallet.ID,
		"receiver_wallet_id": receiverWallet.ID,
		"amount":             amount,
	}).Info("wallet transfer completed")

	return senderWallet, nil
}
