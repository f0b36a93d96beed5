package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oriain86/Trading-Platform-Application/internal/services"
	"github.com/oriain86/Trading-Platform-Application/pkg/utils"
)

type WatchlistController struct {
	watchlistService services.WatchlistService
	coinService      services.CoinService
	userService      services.UserService
}

func NewWatchlistController(watchlistService services.WatchlistService, coinService services.CoinService, userService services.UserService) *WatchlistController {
	return &WatchlistController{
		watchlistService: watchlistService,
		coinService:      coinService,
		userService:      userService,
	}
}

func (wc *WatchlistController) GetUserWatchlist(c *gin.Context) {
	user, ok := currentUser(c, wc.userService)
	if !ok {
		return
	}

	watchlist, err := wc.watchlistService.GetUserWatchlist(c.Request.Context(), user)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SendSuccessResponse(c, http.StatusOK, "", watchlist)
}

// AddCoin toggles a coin on the caller's watchlist.
func (wc *WatchlistController) AddCoin(c *gin.Context) {
	user, ok := currentUser(c, wc.userService)
	if !ok {
		return
	}

	coin, err := wc.coinService.FindCoinByID(c.Request.Context(), c.Param("coinId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	result, err := wc.watchlistService.AddItemToWatchlist(c.Request.Context(), user, coin)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SendSuccessResponse(c, http.StatusOK, "Watchlist updated", result)
}
