package models

import "time"

type WithdrawalStatus string

const (
	WithdrawalStatusPending WithdrawalStatus = "PENDING"
	WithdrawalStatusSuccess WithdrawalStatus = "SUCCESS"
	WithdrawalStatusDecline WithdrawalStatus = "DECLINE"
)

// Withdrawal is a request to move funds out of the platform. The wallet is
// debited at request time; an admin decision moves the record to SUCCESS or
// DECLINE, and a decline credits the amount back.
type Withdrawal struct {
	ID        uint             `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint             `json:"user_id" gorm:"not null;index"`
	Amount    int64            `json:"amount" gorm:"not null"`
	Status    WithdrawalStatus `json:"status" gorm:"size:10;not null"`
	Date      time.Time        `json:"date" gorm:"not null"`
	CreatedAt time.Time        `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (w *Withdrawal) TableName() string {
	return "withdrawals"
}

func (w *Withdrawal) IsPending() bool {
	return w.Status == WithdrawalStatusPending
}
