package models

import "time"

// Watchlist is a user's saved set of coins. One watchlist per user, created
// on first access.
type Watchlist struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Coins []Coin `json:"coins" gorm:"many2many:watchlist_coins"`
	User  User   `json:"-" gorm:"foreignKey:UserID"`
}

func (w *Watchlist) TableName() string {
	return "watchlists"
}
