package services

import (
	"context"
	"time"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/internal/monitoring"
	"github.com/oriain86/Trading-Platform-Application/internal/repositories"
)

// WalletTransactionService records and lists ledger entries for a wallet.
type WalletTransactionService interface {
	CreateTransaction(ctx context.Context, wallet *models.Wallet, txType models.WalletTransactionType, transferID, purpose string, amount int64) (*models.WalletTransaction, error)
	GetTransactions(ctx context.Context, wallet *models.Wallet) ([]models.WalletTransaction, error)
}

type walletTransactionService struct {
	transactionRepo repositories.WalletTransactionRepository
}

func NewWalletTransactionService(transactionRepo repositories.WalletTransactionRepository) WalletTransactionService {
	return &walletTransactionService{transactionRepo: transactionRepo}
}

func (s *walletTransactionService) CreateTransaction(ctx context.Context, wallet *models.Wallet, txType models.WalletTransactionType, transferID, purpose string, amount int64) (*models.WalletTransaction, error) {
	transaction := &models.WalletTransaction{
		WalletID:   wallet.ID,
		Type:       txType,
		Date:       time.Now(),
		TransferID: transferID,
		Purpose:    purpose,
		Amount:     amount,
	}
	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, err
	}
	monitoring.WalletTransactionsTotal.WithLabelValues(string(txType)).Inc()
	return transaction, nil
}

func (s *walletTransactionService) GetTransactions(ctx context.Context, wallet *models.Wallet) ([]models.WalletTransaction, error) {
	return s.transactionRepo.ListByWalletID(ctx, wallet.ID)
}
