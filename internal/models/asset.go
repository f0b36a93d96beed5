package models

import "time"

// Asset is a user's holding of one coin. At most one row exists per
// (user, coin) pair; buys and sells adjust Quantity in place. BuyPrice is the
// coin's reference price at first acquisition and is intentionally not
// recomputed on later buys.
type Asset struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_assets_user_coin"`
	CoinID    string    `json:"coin_id" gorm:"not null;size:100;uniqueIndex:idx_assets_user_coin"`
	Quantity  float64   `json:"quantity" gorm:"not null"`
	BuyPrice  float64   `json:"buy_price" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Coin Coin `json:"coin" gorm:"foreignKey:CoinID"`
	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (a *Asset) TableName() string {
	return "assets"
}

// CurrentValue returns the position value at the given reference price.
func (a *Asset) CurrentValue(price float64) float64 {
	return a.Quantity * price
}
