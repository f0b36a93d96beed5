package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oriain86/Trading-Platform-Application/internal/middleware"
	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/internal/services"
	"github.com/oriain86/Trading-Platform-Application/pkg/utils"
)

// currentUser loads the authenticated user set by the auth middleware. On
// failure it has already written the response.
func currentUser(c *gin.Context, userService services.UserService) (*models.User, bool) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.SendUnauthorizedError(c, "Authentication required")
		return nil, false
	}
	user, err := userService.FindUserByID(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return nil, false
	}
	return user, true
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(value), true
}

// handleServiceError maps domain errors onto HTTP status codes. Anything
// unrecognized is a 500.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCoinNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrWalletNotFound),
		errors.Is(err, services.ErrAssetNotFound),
		errors.Is(err, services.ErrWithdrawalNotFound),
		errors.Is(err, services.ErrWatchlistNotFound),
		errors.Is(err, services.ErrPaymentOrderNotFound):
		utils.SendErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidOrderType),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidPaymentMethod),
		errors.Is(err, services.ErrInsufficientFunds),
		errors.Is(err, services.ErrInsufficientBalance),
		errors.Is(err, services.ErrInsufficientHoldings),
		errors.Is(err, services.ErrOrderNotCancellable),
		errors.Is(err, services.ErrWithdrawalNotPending),
		errors.Is(err, services.ErrPaymentOrderNotPending):
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrEmailAlreadyUsed):
		utils.SendErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.SendUnauthorizedError(c, err.Error())
	default:
		utils.SendInternalError(c, err)
	}
}
