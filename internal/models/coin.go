package models

import "time"

// Coin is a snapshot of one tradable asset's market data, refreshed from the
// external market-data provider. The core trading flows only read CurrentPrice
// and Symbol; the remaining fields exist for the market endpoints.
type Coin struct {
	ID                           string    `json:"id" gorm:"primaryKey;size:100"`
	Symbol                       string    `json:"symbol" gorm:"index;size:20"`
	Name                         string    `json:"name" gorm:"size:100"`
	Image                        string    `json:"image" gorm:"size:255"`
	CurrentPrice                 float64   `json:"current_price"`
	MarketCap                    int64     `json:"market_cap"`
	MarketCapRank                int       `json:"market_cap_rank"`
	FullyDilutedValuation        int64     `json:"fully_diluted_valuation"`
	TotalVolume                  int64     `json:"total_volume"`
	High24h                      float64   `json:"high_24h"`
	Low24h                       float64   `json:"low_24h"`
	PriceChange24h               float64   `json:"price_change_24h"`
	PriceChangePercentage24h     float64   `json:"price_change_percentage_24h"`
	MarketCapChange24h           int64     `json:"market_cap_change_24h"`
	MarketCapChangePercentage24h float64   `json:"market_cap_change_percentage_24h"`
	CirculatingSupply            float64   `json:"circulating_supply"`
	TotalSupply                  float64   `json:"total_supply"`
	MaxSupply                    float64   `json:"max_supply"`
	ATH                          float64   `json:"ath"`
	ATHChangePercentage          float64   `json:"ath_change_percentage"`
	ATHDate                      time.Time `json:"ath_date"`
	ATL                          float64   `json:"atl"`
	ATLChangePercentage          float64   `json:"atl_change_percentage"`
	ATLDate                      time.Time `json:"atl_date"`
	LastUpdated                  time.Time `json:"last_updated"`
}

func (c *Coin) TableName() string {
	return "coins"
}
