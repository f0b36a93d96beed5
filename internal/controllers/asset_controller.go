package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oriain86/Trading-Platform-Application/internal/services"
	"github.com/oriain86/Trading-Platform-Application/pkg/utils"
)

type AssetController struct {
	assetService services.AssetService
	userService  services.UserService
}

func NewAssetController(assetService services.AssetService, userService services.UserService) *AssetController {
	return &AssetController{
		assetService: assetService,
		userService:  userService,
	}
}

func (ac *AssetController) GetAssetByID(c *gin.Context) {
	user, ok := currentUser(c, ac.userService)
	if !ok {
		return
	}
	assetID, ok := parseUintParam(c, "assetId")
	if !ok {
		return
	}

	asset, err := ac.assetService.GetAssetByUserAndID(c.Request.Context(), user.ID, assetID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SendSuccessResponse(c, http.StatusOK, "", asset)
}

func (ac *AssetController) GetAssetByCoin(c *gin.Context) {
	user, ok := currentUser(c, ac.userService)
	if !ok {
		return
	}

	asset, err := ac.assetService.FindAssetByUserIDAndCoinID(c.Request.Context(), user.ID, c.Param("coinId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if asset == nil {
		utils.SendNotFoundError(c, "Asset")
		return
	}

	utils.SendSuccessResponse(c, http.StatusOK, "", asset)
}

func (ac *AssetController) GetUserAssets(c *gin.Context) {
	user, ok := currentUser(c, ac.userService)
	if !ok {
		return
	}

	assets, err := ac.assetService.GetUsersAssets(c.Request.Context(), user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SendSuccessResponse(c, http.StatusOK, "", assets)
}
