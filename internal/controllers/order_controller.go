package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oriain86/Trading-Platform-Application/internal/dto"
	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/internal/services"
	"github.com/oriain86/Trading-Platform-Application/pkg/utils"
)

type OrderController struct {
	orderService services.OrderService
	coinService  services.CoinService
	userService  services.UserService
}

func NewOrderController(orderService services.OrderService, coinService services.CoinService, userService services.UserService) *OrderController {
	return &OrderController{
		orderService: orderService,
		coinService:  coinService,
		userService:  userService,
	}
}

func (oc *OrderController) PayOrder(c *gin.Context) {
	user, ok := currentUser(c, oc.userService)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err)
		return
	}

	orderType, ok := models.ParseOrderType(req.OrderType)
	if !ok {
		handleServiceError(c, services.ErrInvalidOrderType)
		return
	}

	coin, err := oc.coinService.FindCoinByID(c.Request.Context(), req.CoinID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	order, err := oc.orderService.ProcessOrder(c.Request.Context(), coin, req.Quantity, orderType, user)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SendSuccessResponse(c, http.StatusCreated, "Order executed successfully", order)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	user, ok := currentUser(c, oc.userService)
	if !ok {
		return
	}
	orderID, ok := parseUintParam(c, "orderId")
	if !ok {
		return
	}

	order, err := oc.orderService.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if order.UserID != user.ID && !user.IsAdmin() {
		utils.SendForbiddenError(c, "You don't have access to this order")
		return
	}

	utils.SendSuccessResponse(c, http.StatusOK, "", order)
}

func (oc *OrderController) GetAllOrders(c *gin.Context) {
	user, ok := currentUser(c, oc.userService)
	if !ok {
		return
	}

	orders, err := oc.orderService.GetAllOrdersForUser(
		c.Request.Context(),
		user.ID,
		c.Query("order_type"),
		c.Query("asset_symbol"),
	)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SendSuccessResponse(c, http.StatusOK, "", orders)
}

func (oc *OrderController) CancelOrder(c *gin.Context) {
	user, ok := currentUser(c, oc.userService)
	if !ok {
		return
	}
	orderID, ok := parseUintParam(c, "orderId")
	if !ok {
		return
	}

	order, err := oc.orderService.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if order.UserID != user.ID {
		utils.SendForbiddenError(c, "You don't have access to this order")
		return
	}

	cancelled, err := oc.orderService.CancelOrder(c.Request.Context(), orderID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SendSuccessResponse(c, http.StatusOK, "Order cancelled successfully", cancelled)
}
