package dto

// Auth requests.

type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Trading requests.

type CreateOrderRequest struct {
	CoinID string `json:"coin_id" binding:"required"`
	// No binding constraint: zero is a legal (zero-value) order and negative
	// quantities are rejected by the order processor itself.
	Quantity  float64 `json:"quantity"`
	OrderType string  `json:"order_type" binding:"required"`
}

// Wallet requests.

type AddMoneyRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

type TransferRequest struct {
	Amount  int64  `json:"amount" binding:"required,gt=0"`
	Purpose string `json:"purpose"`
}

type WithdrawalRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// Payment requests.

type CreatePaymentRequest struct {
	Amount        int64  `json:"amount" binding:"required,gt=0"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}
