package models

import "time"

type PaymentMethod string

const (
	PaymentMethodRazorpay PaymentMethod = "RAZORPAY"
	PaymentMethodStripe   PaymentMethod = "STRIPE"
)

type PaymentOrderStatus string

const (
	PaymentOrderStatusPending PaymentOrderStatus = "PENDING"
	PaymentOrderStatusSuccess PaymentOrderStatus = "SUCCESS"
	PaymentOrderStatusFailed  PaymentOrderStatus = "FAILED"
)

// PaymentOrder tracks a deposit initiated through an external payment
// gateway. A successful gateway callback flips it to SUCCESS exactly once;
// replays see the non-pending status and do not credit the wallet again.
type PaymentOrder struct {
	ID            uint               `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID        uint               `json:"user_id" gorm:"not null;index"`
	Amount        int64              `json:"amount" gorm:"not null"`
	Status        PaymentOrderStatus `json:"status" gorm:"size:10;not null"`
	PaymentMethod PaymentMethod      `json:"payment_method" gorm:"size:10;not null"`
	ReferenceID   string             `json:"reference_id" gorm:"size:100;index"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (p *PaymentOrder) TableName() string {
	return "payment_orders"
}

// ParsePaymentMethod maps a request string onto the payment-method enum.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentMethodRazorpay:
		return PaymentMethodRazorpay, true
	case PaymentMethodStripe:
		return PaymentMethodStripe, true
	}
	return "", false
}
