package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/internal/monitoring"
	"github.com/oriain86/Trading-Platform-Application/internal/repositories"
)

// WithdrawalService tracks cash-out requests through their admin review. The
// wallet debit happens up front at request time; a decline refunds it. Both
// balance moves are driven by the caller so the review flow stays independent
// of the wallet.
type WithdrawalService interface {
	RequestWithdrawal(ctx context.Context, amount int64, user *models.User) (*models.Withdrawal, error)
	ProceedWithWithdrawal(ctx context.Context, withdrawalID uint, accept bool) (*models.Withdrawal, error)
	GetWithdrawalByID(ctx context.Context, withdrawalID uint) (*models.Withdrawal, error)
	GetUsersWithdrawalHistory(ctx context.Context, userID uint) ([]models.Withdrawal, error)
	GetAllWithdrawalRequests(ctx context.Context) ([]models.Withdrawal, error)
}

type withdrawalService struct {
	withdrawalRepo repositories.WithdrawalRepository
}

func NewWithdrawalService(withdrawalRepo repositories.WithdrawalRepository) WithdrawalService {
	return &withdrawalService{withdrawalRepo: withdrawalRepo}
}

func (s *withdrawalService) RequestWithdrawal(ctx context.Context, amount int64, user *models.User) (*models.Withdrawal, error) {
	withdrawal := &models.Withdrawal{
		UserID: user.ID,
		Amount: amount,
		Status: models.WithdrawalStatusPending,
		Date:   time.Now(),
	}
	if err := s.withdrawalRepo.Create(ctx, withdrawal); err != nil {
		return nil, err
	}
	return withdrawal, nil
}

// ProceedWithWithdrawal settles a pending request: accepted requests become
// SUCCESS, rejected ones DECLINE. The review date overwrites the request
// date.
func (s *withdrawalService) ProceedWithWithdrawal(ctx context.Context, withdrawalID uint, accept bool) (*models.Withdrawal, error) {
	withdrawal, err := s.GetWithdrawalByID(ctx, withdrawalID)
	if err != nil {
		return nil, err
	}
	if !withdrawal.IsPending() {
		return nil, ErrWithdrawalNotPending
	}

	withdrawal.Date = time.Now()
	if accept {
		withdrawal.Status = models.WithdrawalStatusSuccess
	} else {
		withdrawal.Status = models.WithdrawalStatusDecline
	}
	if err := s.withdrawalRepo.Save(ctx, withdrawal); err != nil {
		return nil, err
	}
	monitoring.WithdrawalsTotal.WithLabelValues(string(withdrawal.Status)).Inc()
	return withdrawal, nil
}

func (s *withdrawalService) GetWithdrawalByID(ctx context.Context, withdrawalID uint) (*models.Withdrawal, error) {
	withdrawal, err := s.withdrawalRepo.GetByID(ctx, withdrawalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWithdrawalNotFound
		}
		return nil, err
	}
	return withdrawal, nil
}

func (s *withdrawalService) GetUsersWithdrawalHistory(ctx context.Context, userID uint) ([]models.Withdrawal, error) {
	return s.withdrawalRepo.ListByUserID(ctx, userID)
}

func (s *withdrawalService) GetAllWithdrawalRequests(ctx context.Context) ([]models.Withdrawal, error) {
	return s.withdrawalRepo.ListAll(ctx)
}
