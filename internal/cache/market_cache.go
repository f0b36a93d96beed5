package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oriain86/Trading-Platform-Application/internal/config"
	"github.com/oriain86/Trading-Platform-Application/internal/models"
)

// NewRedisClient connects to Redis and verifies the connection with a ping.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// MarketCache is a short-TTL read-through cache in front of the market-data
// provider. Every failure degrades to a miss so Redis outages never break the
// market endpoints.
type MarketCache interface {
	GetCoins(ctx context.Context, key string) ([]models.Coin, bool)
	SetCoins(ctx context.Context, key string, coins []models.Coin)
	GetCoin(ctx context.Context, key string) (*models.Coin, bool)
	SetCoin(ctx context.Context, key string, coin *models.Coin)
	GetRaw(ctx context.Context, key string) (json.RawMessage, bool)
	SetRaw(ctx context.Context, key string, data []byte)
}

type marketCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMarketCache(client *redis.Client, ttl time.Duration) MarketCache {
	return &marketCache{client: client, ttl: ttl}
}

// Cache key builders. Keys embed every request parameter so distinct queries
// never collide.
func CoinListKey(page int) string          { return fmt.Sprintf("market:coins:page:%d", page) }
func TopCoinsKey(limit int) string         { return fmt.Sprintf("market:coins:top:%d", limit) }
func CoinDetailsKey(coinID string) string  { return "market:coin:" + coinID }
func ChartKey(coinID string, d int) string { return fmt.Sprintf("market:chart:%s:%d", coinID, d) }
func SearchKey(keyword string) string      { return "market:search:" + keyword }

func (c *marketCache) GetCoins(ctx context.Context, key string) ([]models.Coin, bool) {
	data, ok := c.get(ctx, key)
	if !ok {
		return nil, false
	}
	var coins []models.Coin
	if err := json.Unmarshal(data, &coins); err != nil {
		logrus.WithError(err).WithField("key", key).Debug("cache entry corrupt, treating as miss")
		return nil, false
	}
	return coins, true
}

func (c *marketCache) SetCoins(ctx context.Context, key string, coins []models.Coin) {
	data, err := json.Marshal(coins)
	if err != nil {
		return
	}
	c.set(ctx, key, data)
}

func (c *marketCache) GetCoin(ctx context.Context, key string) (*models.Coin, bool) {
	data, ok := c.get(ctx, key)
	if !ok {
		return nil, false
	}
	var coin models.Coin
	if err := json.Unmarshal(data, &coin); err != nil {
		logrus.WithError(err).WithField("key", key).Debug("cache entry corrupt, treating as miss")
		return nil, false
	}
	return &coin, true
}

func (c *marketCache) SetCoin(ctx context.Context, key string, coin *models.Coin) {
	data, err := json.Marshal(coin)
	if err != nil {
		return
	}
	c.set(ctx, key, data)
}

func (c *marketCache) GetRaw(ctx context.Context, key string) (json.RawMessage, bool) {
	return c.get(ctx, key)
}

func (c *marketCache) SetRaw(ctx context.Context, key string, data []byte) {
	c.set(ctx, key, data)
}

func (c *marketCache) get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).WithField("key", key).Debug("cache read failed")
		}
		return nil, false
	}
	return data, true
}

func (c *marketCache) set(ctx context.Context, key string, data []byte) {
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Debug("cache write failed")
	}
}
