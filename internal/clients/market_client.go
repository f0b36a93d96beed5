package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/oriain86/Trading-Platform-Application/internal/config"
	"github.com/oriain86/Trading-Platform-Application/internal/models"
	"github.com/oriain86/Trading-Platform-Application/internal/monitoring"
)

const coinsPerPage = 10

// MarketClient talks to the external market-data provider (CoinGecko API
// shape). All calls are rate limited client-side to stay inside the free
// tier.
type MarketClient interface {
	GetCoinList(ctx context.Context, page int) ([]models.Coin, error)
	GetTopCoinsByMarketCap(ctx context.Context, limit int) ([]models.Coin, error)
	GetCoinDetails(ctx context.Context, coinID string) (*models.Coin, error)
	GetMarketChart(ctx context.Context, coinID string, days int) (json.RawMessage, error)
	SearchCoin(ctx context.Context, keyword string) (json.RawMessage, error)
}

type marketClient struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

// NewMarketClient builds a client for cfg.BaseURL with a 50 req/min limiter.
func NewMarketClient(cfg config.MarketConfig) MarketClient {
	return &marketClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Every(time.Minute/50), 1),
	}
}

func (c *marketClient) GetCoinList(ctx context.Context, page int) ([]models.Coin, error) {
	if page < 1 {
		page = 1
	}
	endpoint := fmt.Sprintf("/coins/markets?vs_currency=usd&per_page=%d&page=%d", coinsPerPage, page)
	return c.fetchCoins(ctx, endpoint)
}

func (c *marketClient) GetTopCoinsByMarketCap(ctx context.Context, limit int) ([]models.Coin, error) {
	endpoint := fmt.Sprintf("/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=%d&page=1", limit)
	return c.fetchCoins(ctx, endpoint)
}

func (c *marketClient) fetchCoins(ctx context.Context, endpoint string) ([]models.Coin, error) {
	data, err := c.makeRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	var coins []models.Coin
	if err := json.Unmarshal(data, &coins); err != nil {
		return nil, fmt.Errorf("market: failed to parse coin list: %w", err)
	}
	return coins, nil
}

// GetCoinDetails fetches /coins/{id} and flattens the nested market_data
// block into the Coin model.
func (c *marketClient) GetCoinDetails(ctx context.Context, coinID string) (*models.Coin, error) {
	endpoint := fmt.Sprintf("/coins/%s?localization=false&tickers=false&community_data=false&developer_data=false", url.PathEscape(coinID))
	data, err := c.makeRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var details coinDetailsResponse
	if err := json.Unmarshal(data, &details); err != nil {
		return nil, fmt.Errorf("market: failed to parse coin details: %w", err)
	}

	return details.toCoin(), nil
}

func (c *marketClient) GetMarketChart(ctx context.Context, coinID string, days int) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("/coins/%s/market_chart?vs_currency=usd&days=%d", url.PathEscape(coinID), days)
	return c.makeRequest(ctx, endpoint)
}

func (c *marketClient) SearchCoin(ctx context.Context, keyword string) (json.RawMessage, error) {
	endpoint := "/search?query=" + url.QueryEscape(keyword)
	return c.makeRequest(ctx, endpoint)
}

func (c *marketClient) makeRequest(ctx context.Context, endpoint string) (json.RawMessage, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("market: rate limit wait cancelled: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("market: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		monitoring.ExternalCallsTotal.WithLabelValues("market", "error").Inc()
		return nil, fmt.Errorf("market: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		monitoring.ExternalCallsTotal.WithLabelValues("market", "error").Inc()
		return nil, fmt.Errorf("market: failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		monitoring.ExternalCallsTotal.WithLabelValues("market", "error").Inc()
		return nil, fmt.Errorf("market: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	monitoring.ExternalCallsTotal.WithLabelValues("market", "success").Inc()
	return body, nil
}

// coinDetailsResponse mirrors the provider's nested /coins/{id} payload.
type coinDetailsResponse struct {
	ID         string `json:"id"`
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	Image      struct {
		Large string `json:"large"`
	} `json:"image"`
	MarketCapRank int `json:"market_cap_rank"`
	MarketData    struct {
		CurrentPrice             map[string]float64 `json:"current_price"`
		MarketCap                map[string]float64 `json:"market_cap"`
		TotalVolume              map[string]float64 `json:"total_volume"`
		High24h                  map[string]float64 `json:"high_24h"`
		Low24h                   map[string]float64 `json:"low_24h"`
		PriceChange24h           float64            `json:"price_change_24h"`
		PriceChangePercentage24h float64            `json:"price_change_percentage_24h"`
		CirculatingSupply        float64            `json:"circulating_supply"`
		TotalSupply              float64            `json:"total_supply"`
	} `json:"market_data"`
	LastUpdated time.Time `json:"last_updated"`
}

func (r *coinDetailsResponse) toCoin() *models.Coin {
	return &models.Coin{
		ID:                       r.ID,
		Symbol:                   r.Symbol,
		Name:                     r.Name,
		Image:                    r.Image.Large,
		CurrentPrice:             r.MarketData.CurrentPrice["usd"],
		MarketCap:                int64(r.MarketData.MarketCap["usd"]),
		MarketCapRank:            r.MarketCapRank,
		TotalVolume:              int64(r.MarketData.TotalVolume["usd"]),
		High24h:                  r.MarketData.High24h["usd"],
		Low24h:                   r.MarketData.Low24h["usd"],
		PriceChange24h:           r.MarketData.PriceChange24h,
		PriceChangePercentage24h: r.MarketData.PriceChangePercentage24h,
		CirculatingSupply:        r.MarketData.CirculatingSupply,
		TotalSupply:              r.MarketData.TotalSupply,
		LastUpdated:              r.LastUpdated,
	}
}
