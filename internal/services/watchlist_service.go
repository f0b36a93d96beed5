package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/internal/repositories"
)

// WatchlistService manages each user's saved coins. Adding a coin that is
// already on the list toggles it off.
type WatchlistService interface {
	GetUserWatchlist(ctx context.Context, user *models.User) (*models.Watchlist, error)
	GetWatchlistByID(ctx context.Context, watchlistID uint) (*models.Watchlist, error)
	AddItemToWatchlist(ctx context.Context, user *models.User, coin *models.Coin) (*models.Coin, error)
}

type watchlistService struct {
	watchlistRepo repositories.WatchlistRepository
}

func NewWatchlistService(watchlistRepo repositories.WatchlistRepository) WatchlistService {
	return &watchlistService{watchlistRepo: watchlistRepo}
}

func (s *watchlistService) GetUserWatchlist(ctx context.Context, user *models.User) (*models.Watchlist, error) {
	watchlist, err := s.watchlistRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if watchlist != nil {
		return watchlist, nil
	}

	watchlist = &models.Watchlist{UserID: user.ID}
	if err := s.watchlistRepo.Create(ctx, watchlist); err != nil {
		return nil, err
	}
	return watchlist, nil
}

func (s *watchlistService) GetWatchlistByID(ctx context.Context, watchlistID uint) (*models.Watchlist, error) {
	watchlist, err := s.watchlistRepo.GetByID(ctx, watchlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWatchlistNotFound
		}
		return nil, err
	}
	return watchlist, nil
}

func (s *watchlistService) AddItemToWatchlist(ctx context.Context, user *models.User, coin *models.Coin) (*models.Coin, error) {
	watchlist, err := s.GetUserWatchlist(ctx, user)
	if err != nil {
		return nil, err
	}

	present, err := s.watchlistRepo.HasCoin(ctx, watchlist.ID, coin.ID)
	if err != nil {
		return nil, err
	}
	if present {
		if err := s.watchlistRepo.RemoveCoin(ctx, watchlist, coin); err != nil {
			return nil, err
		}
		return coin, nil
	}

	if err := s.watchlistRepo.AddCoin(ctx, watchlist, coin); err != nil {
		return nil, err
	}
	return coin, nil
}
