package services

import "errors"

// Domain errors raised by the service layer. Controllers match these with
// errors.Is and translate them to HTTP status codes; nothing in the service
// layer retries or swallows them.
var (
	// Not-found family.
	ErrUserNotFound         = errors.New("user not found")
	ErrCoinNotFound         = errors.New("coin not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrWalletNotFound       = errors.New("wallet not found")
	ErrAssetNotFound        = errors.New("asset not found")
	ErrWithdrawalNotFound   = errors.New("withdrawal not found")
	ErrWatchlistNotFound    = errors.New("watchlist not found")
	ErrPaymentOrderNotFound = errors.New("payment order not found")

	// Invalid arguments.
	ErrInvalidOrderType     = errors.New("invalid order type")
	ErrInvalidQuantity      = errors.New("quantity should be > 0")
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")

	// Funds and holdings.
	ErrInsufficientFunds    = errors.New("insufficient funds for this transaction")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrInsufficientHoldings = errors.New("insufficient quantity to sell")

	// State transitions.
	ErrOrderNotCancellable    = errors.New("cannot cancel order, it is already processed or cancelled")
	ErrWithdrawalNotPending   = errors.New("withdrawal is already processed")
	ErrPaymentOrderNotPending = errors.New("payment order is already processed")

	// Authentication.
	ErrEmailAlreadyUsed   = errors.New("email is already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
