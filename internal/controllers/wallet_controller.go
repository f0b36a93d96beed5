package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oriain86/Trading-Platform-Application/internal/dto"
	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/internal/services"
	"github.com/oriain86/Trading-Platform-Application/pkg/utils"
)

type WalletController struct {
	walletService      services.WalletService
	transactionService services.WalletTransactionService
	paymentService     services.PaymentService
	orderService       services.OrderService
	userService        services.UserService
}

func NewWalletController(
	walletService services.WalletService,
	transactionService services.WalletTransactionService,
	paymentService services.PaymentService,
	orderService services.OrderService,
	userService services.UserService,
) *WalletController {
	return &WalletController{
		walletService:      walletService,
		transactionService: transactionService,
		paymentService:     paymentService,
		orderService:       orderService,
		userService:        userService,
	}
}

func (wc *WalletController) GetUserWallet(c *gin.Context) {
	user, ok := currentUser(c, wc.userService)
	if !ok {
		return
	}

	wallet, err := wc.walletService.GetUserWallet(c.Request.Context(), user)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SendSuccessResponse(c, http.StatusOK, "", wallet)
}

func (wc *WalletController) GetTransactions(c *gin.Context) {
	user, ok := currentUser(c, wc.userService)
	if !ok {
		return
	}

	wallet, err := wc.walletService.GetUserWallet(c.Request.Context(), user)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	transactions, err := wc.transactionService.GetTransactions(c.Request.Context(), wallet)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SendSuccessResponse(c, http.StatusOK, "", transactions)
}

// CompleteDeposit finishes the payment-gateway round trip: verifies the
// payment order, credits the wallet once and records the ADD_MONEY ledger
// entry. Replays find the payment order already settled and return the wallet
// unchanged.
func (wc *WalletController) CompleteDeposit(c *gin.Context) {
	user, ok := currentUser(c, wc.userService)
	if !ok {
		return
	}

	orderID, ok := parseUintParam(c, "paymentOrderId")
	if !ok {
		return
	}
	paymentID := c.Query("payment_id")

	ctx := c.Request.Context()
	paymentOrder, err := wc.paymentService.GetPaymentOrderByID(ctx, orderID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if paymentOrder.UserID != user.ID {
		utils.SendForbiddenError(c, "You don't have access to this payment order")
		return
	}

	wallet, err := wc.walletService.GetUserWallet(ctx, user)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	credited, err := wc.paymentService.ProceedPaymentOrder(ctx, paymentOrder, paymentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if credited {
		wallet, err = wc.walletService.AddBalanceToWallet(ctx, wallet, paymentOrder.Amount)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		_, err = wc.transactionService.CreateTransaction(ctx, wallet,
			models.TransactionAddMoney,
			paymentOrder.ReferenceID,
			fmt.Sprintf("Deposit via %s", paymentOrder.PaymentMethod),
			paymentOrder.Amount)
		if err != nil {
			handleServiceError(c, err)
			return
		}
	}

	utils.SendSuccessResponse(c, http.StatusOK, "Deposit processed", wallet)
}

// Transfer moves funds to another wallet by ID and records the ledger entry
// on the sender's side only; the receiver's balance changes without one.
func (wc *WalletController) Transfer(c *gin.Context) {
	user, ok := currentUser(c, wc.userService)
	if !ok {
		return
	}

	receiverWalletID, ok := parseUintParam(c, "walletId")
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err)
		return
	}

	ctx := c.Request.Context()
	receiverWallet, err := wc.walletService.FindWalletByID(ctx, receiverWalletID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	senderWallet, err := wc.walletService.WalletToWalletTransfer(ctx, user, receiverWallet, req.Amount)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	_, err = wc.transactionService.CreateTransaction(ctx, senderWallet,
		models.TransactionWalletTransfer,
		fmt.Sprintf("%d", receiverWallet.ID),
		req.Purpose,
		-req.Amount)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SendSuccessResponse(c, http.StatusOK, "Transfer completed", senderWallet)
}

// PayOrder settles an existing order against the caller's wallet.
func (wc *WalletController) PayOrder(c *gin.Context) {
	user, ok := currentUser(c, wc.userService)
	if !ok {
		return
	}

	orderID, ok := parseUintParam(c, "orderId")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	order, err := wc.orderService.GetOrderByID(ctx, orderID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if order.UserID != user.ID {
		utils.SendForbiddenError(c, "You don't have access to this order")
		return
	}

	wallet, err := wc.walletService.PayOrderPayment(ctx, order, user)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SendSuccessResponse(c, http.StatusOK, "Order paid", wallet)
}
