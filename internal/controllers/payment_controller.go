package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/internal/services"
	"github.com/oriain86/Trading-Platform-Application/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentService
	userService    services.UserService
}

func NewPaymentController(paymentService services.PaymentService, userService services.UserService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		userService:    userService,
	}
}

// CreatePayment opens a gateway checkout session for a wallet top-up and
// returns the hosted payment link.
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	user, ok := currentUser(c, pc.userService)
	if !ok {
		return
	}

	method, ok := models.ParsePaymentMethod(c.Param("paymentMethod"))
	if !ok {
		handleServiceError(c, services.ErrInvalidPaymentMethod)
		return
	}

	amount, err := strconv.ParseInt(c.Param("amount"), 10, 64)
	if err != nil || amount <= 0 {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid amount")
		return
	}

	order, link, err := pc.paymentService.CreatePaymentOrder(c.Request.Context(), user, amount, method)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SendSuccessResponse(c, http.StatusCreated, "Payment link created", gin.H{
		"payment_order_id": order.ID,
		"payment_url":      link.URL,
		"reference_id":     link.ReferenceID,
	})
}
