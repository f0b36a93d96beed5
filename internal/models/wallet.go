package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds a user's quote-currency balance. One wallet per user, created
// lazily on first access and never deleted. Balance is mutated only through
// the wallet service so every change is paired with a ledger entry or an
// explicit deposit/withdrawal flow.
type Wallet struct {
	ID        uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint            `json:"user_id" gorm:"uniqueIndex;not null"`
	Balance   decimal.Decimal `json:"balance" gorm:"type:decimal(20,8);not null;default:0"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (w *Wallet) TableName() string {
	return "wallets"
}

// HasSufficientBalance reports whether the wallet can cover amount.
func (w *Wallet) HasSufficientBalance(amount decimal.Decimal) bool {
	return w.Balance.GreaterThanOrEqual(amount)
}
