package models

import "time"

type WalletTransactionType string

const (
	TransactionWithdrawal     WalletTransactionType = "WITHDRAWAL"
	TransactionWalletTransfer WalletTransactionType = "WALLET_TRANSFER"
	TransactionAddMoney       WalletTransactionType = "ADD_MONEY"
	TransactionBuyAsset       WalletTransactionType = "BUY_ASSET"
	TransactionSellAsset      WalletTransactionType = "SELL_ASSET"
)

// WalletTransaction is an immutable ledger entry recorded alongside every
// balance change. Amount is a signed whole number of quote currency units:
// negative for debits, positive for credits.
type WalletTransaction struct {
	ID         uint                  `json:"id" gorm:"primaryKey;autoIncrement"`
	WalletID   uint                  `json:"wallet_id" gorm:"not null;index"`
	Type       WalletTransactionType `json:"type" gorm:"size:20"`
	Date       time.Time             `json:"date" gorm:"not null;index"`
	TransferID string                `json:"transfer_id" gorm:"size:100"`
	Purpose    string                `json:"purpose" gorm:"size:255"`
	Amount     int64                 `json:"amount" gorm:"not null"`
	CreatedAt  time.Time             `json:"created_at"`

	Wallet Wallet `json:"-" gorm:"foreignKey:WalletID"`
}

func (t *WalletTransaction) TableName() string {
	return "wallet_transactions"
}

// IsDebit reports whether the entry removed funds from the wallet.
func (t *WalletTransaction) IsDebit() bool {
	return t.Amount < 0
}
