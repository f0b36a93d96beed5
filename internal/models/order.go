package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderTypeBuy  OrderType = "BUY"
	OrderTypeSell OrderType = "SELL"
)

// ParseOrderType maps a request string onto the order-type enum,
// case-insensitively. The second return is false for unknown values.
func ParseOrderType(s string) (OrderType, bool) {
	switch OrderType(strings.ToUpper(s)) {
	case OrderTypeBuy:
		return OrderTypeBuy, true
	case OrderTypeSell:
		return OrderTypeSell, true
	}
	return "", false
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusSuccess   OrderStatus = "SUCCESS"
	OrderStatusCancelled OrderStatus = "CANCELLED"

	// Defined for completeness; no current flow produces these. Orders execute
	// full-or-nothing against the reference price, so partial fills never occur.
	OrderStatusFilled          OrderStatus = "FILLED"
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusError           OrderStatus = "ERROR"
)

// Order is a single buy or sell trade request and its outcome. Price is the
// coin's reference price times quantity, fixed at creation time.
type Order struct {
	ID        uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint            `json:"user_id" gorm:"not null;index"`
	OrderType OrderType       `json:"order_type" gorm:"size:10;not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(20,8);not null"`
	Timestamp time.Time       `json:"timestamp" gorm:"not null"`
	Status    OrderStatus     `json:"status" gorm:"size:20;not null"`

	OrderItem OrderItem `json:"order_item" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
}

func (o *Order) TableName() string {
	return "orders"
}

func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// OrderItem is the immutable snapshot of the trade terms at order-creation
// time: the coin, quantity and the prices the trade was struck at.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint    `json:"-" gorm:"index"`
	CoinID    string  `json:"coin_id" gorm:"not null;size:100"`
	Quantity  float64 `json:"quantity" gorm:"not null"`
	BuyPrice  float64 `json:"buy_price" gorm:"not null"`
	SellPrice float64 `json:"sell_price" gorm:"not null"`

	Coin Coin `json:"coin" gorm:"foreignKey:CoinID"`
}

func (i *OrderItem) TableName() string {
	return "order_items"
}
