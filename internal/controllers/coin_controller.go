package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oriain86/Trading-Platform-Application/internal/services"
	"github.com/oriain86/Trading-Platform-Application/pkg/utils"
)

type CoinController struct {
	coinService services.CoinService
}

func NewCoinController(coinService services.CoinService) *CoinController {
	return &CoinController{coinService: coinService}
}

func (cc *CoinController) GetCoinList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	coins, err := cc.coinService.GetCoinList(c.Request.Context(), page)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SendSuccessResponse(c, http.StatusOK, "", coins)
}

func (cc *CoinController) GetTop50Coins(c *gin.Context) {
	coins, err := cc.coinService.GetTop50CoinsByMarketCapRank(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SendSuccessResponse(c, http.StatusOK, "", coins)
}

func (cc *CoinController) GetCoinDetails(c *gin.Context) {
	coin, err := cc.coinService.GetCoinDetails(c.Request.Context(), c.Param("coinId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SendSuccessResponse(c, http.StatusOK, "", coin)
}

// GetMarketChart proxies the provider's chart payload untouched, so the
// response shape is whatever the provider returns.
func (cc *CoinController) GetMarketChart(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "1"))
	if err != nil || days < 1 {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid days parameter")
		return
	}

	data, err := cc.coinService.GetMarketChart(c.Request.Context(), c.Param("coinId"), days)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

func (cc *CoinController) SearchCoin(c *gin.Context) {
	keyword := c.Query("q")
	if keyword == "" {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Search keyword is required")
		return
	}

	data, err := cc.coinService.SearchCoin(c.Request.Context(), keyword)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}
