package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/internal/services"
	"github.com/oriain86/Trading-Platform-Application/pkg/utils"
)

type WithdrawalController struct {
	withdrawalService  services.WithdrawalService
	walletService      services.WalletService
	transactionService services.WalletTransactionService
	userService        services.UserService
	publisher          services.EventPublisher
}

func NewWithdrawalController(
	withdrawalService services.WithdrawalService,
	walletService services.WalletService,
	transactionService services.WalletTransactionService,
	userService services.UserService,
	publisher services.EventPublisher,
) *WithdrawalController {
	return &WithdrawalController{
		withdrawalService:  withdrawalService,
		walletService:      walletService,
		transactionService: transactionService,
		userService:        userService,
		publisher:          publisher,
	}
}

// RequestWithdrawal debits the wallet immediately and files a PENDING request
// for admin review. The funds are held by the debit until the review settles
// or refunds them.
func (wc *WithdrawalController) RequestWithdrawal(c *gin.Context) {
	user, ok := currentUser(c, wc.userService)
	if !ok {
		return
	}

	amount, err := strconv.ParseInt(c.Param("amount"), 10, 64)
	if err != nil || amount <= 0 {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid withdrawal amount")
		return
	}

	ctx := c.Request.Context()
	wallet, err := wc.walletService.GetUserWallet(ctx, user)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if wallet.Balance.LessThan(decimal.NewFromInt(amount)) {
		handleServiceError(c, services.ErrInsufficientBalance)
		return
	}

	if _, err := wc.walletService.AddBalanceToWallet(ctx, wallet, -amount); err != nil {
		handleServiceError(c, err)
		return
	}

	withdrawal, err := wc.withdrawalService.RequestWithdrawal(ctx, amount, user)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	_, err = wc.transactionService.CreateTransaction(ctx, wallet,
		models.TransactionWithdrawal, "", "Bank withdrawal", -amount)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if pubErr := wc.publisher.PublishWithdrawalRequested(ctx, withdrawal); pubErr != nil {
		logrus.WithError(pubErr).WithField("withdrawal_id", withdrawal.ID).Warn("failed to publish withdrawal requested event")
	}

	utils.SendSuccessResponse(c, http.StatusCreated, "Withdrawal requested", withdrawal)
}

func (wc *WithdrawalController) GetWithdrawalHistory(c *gin.Context) {
	user, ok := currentUser(c, wc.userService)
	if !ok {
		return
	}

	withdrawals, err := wc.withdrawalService.GetUsersWithdrawalHistory(c.Request.Context(), user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SendSuccessResponse(c, http.StatusOK, "", withdrawals)
}

func (wc *WithdrawalController) GetAllWithdrawalRequests(c *gin.Context) {
	withdrawals, err := wc.withdrawalService.GetAllWithdrawalRequests(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SendSuccessResponse(c, http.StatusOK, "", withdrawals)
}

// ProceedWithdrawal is the admin review action. A decline refunds the debit
// taken at request time.
func (wc *WithdrawalController) ProceedWithdrawal(c *gin.Context) {
	withdrawalID, ok := parseUintParam(c, "withdrawalId")
	if !ok {
		return
	}
	accept, err := strconv.ParseBool(c.Param("accept"))
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid accept flag")
		return
	}

	ctx := c.Request.Context()
	withdrawal, err := wc.withdrawalService.ProceedWithWithdrawal(ctx, withdrawalID, accept)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if withdrawal.Status == models.WithdrawalStatusDecline {
		owner, err := wc.userService.FindUserByID(ctx, withdrawal.UserID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		wallet, err := wc.walletService.GetUserWallet(ctx, owner)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		if _, err := wc.walletService.AddBalanceToWallet(ctx, wallet, withdrawal.Amount); err != nil {
			handleServiceError(c, err)
			return
		}
	}

	if pubErr := wc.publisher.PublishWithdrawalSettled(ctx, withdrawal); pubErr != nil {
		logrus.WithError(pubErr).WithField("withdrawal_id", withdrawal.ID).Warn("failed to publish withdrawal settled event")
	}

	utils.SendSuccessResponse(c, http.StatusOK, "Withdrawal processed", withdrawal)
}
