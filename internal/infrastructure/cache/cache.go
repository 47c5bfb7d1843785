package cache

import (
	"context"
	"encoding/json"
	"time"

	v1 "github.com/tradesys/market-data-engine/internal/domain/marketdata/v1"
	"github.com/tradesys/market-data-engine/pkg/errors"
	"github.com/tradesys/market-data-engine/pkg/logger"
	"github.com/tradesys/market-data-engine/pkg/redis"
)

// Config holds the per-data-type TTLs for cached market data.
type Config struct {
	Prefix       string        `env:"PREFIX" envDefault:"md:"`
	CandlesTTL   time.Duration `env:"CANDLES_TTL" envDefault:"1h"`
	TickerTTL    time.Duration `env:"TICKER_TTL" envDefault:"1m"`
	OrderBookTTL time.Duration `env:"ORDERBOOK_TTL" envDefault:"30s"`
	TradesTTL    time.Duration `env:"TRADES_TTL" envDefault:"5m"`
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() *Config {
	return &Config{
		Prefix:       "md:",
		CandlesTTL:   time.Hour,
		TickerTTL:    time.Minute,
		OrderBookTTL: 30 * time.Second,
		TradesTTL:    5 * time.Minute,
	}
}

type marketCache struct {
	client redis.Client
	config *Config
	logger logger.Interface
}

// NewMarketCache creates a market data cache backed by Redis.
func NewMarketCache(client redis.Client, config *Config, logger logger.Interface) MarketCache {
	if config == nil {
		config = DefaultConfig()
	}
	return &marketCache{
		client: client,
		config: config,
		logger: logger,
	}
}

func (c *marketCache) SetCandles(ctx context.Context, symbol, timeframe, exchange string, candles []*v1.Candle) error {
	return c.set(ctx, candlesKey(c.config.Prefix, symbol, timeframe, exchange), candles, c.config.CandlesTTL)
}

func (c *marketCache) GetCandles(ctx context.Context, symbol, timeframe, exchange string) ([]*v1.Candle, error) {
	var candles []*v1.Candle
	found, err := c.get(ctx, candlesKey(c.config.Prefix, symbol, timeframe, exchange), &candles)
	if err != nil || !found {
		return nil, err
	}
	return candles, nil
}

func (c *marketCache) SetTicker(ctx context.Context, ticker *v1.Ticker) error {
	return c.set(ctx, tickerKey(c.config.Prefix, ticker.Symbol, ticker.Exchange), ticker, c.config.TickerTTL)
}

func (c *marketCache) GetTicker(ctx context.Context, symbol, exchange string) (*v1.Ticker, error) {
	ticker := &v1.Ticker{}
	found, err := c.get(ctx, tickerKey(c.config.Prefix, symbol, exchange), ticker)
	if err != nil || !found {
		return nil, err
	}
	return ticker, nil
}

func (c *marketCache) SetOrderBook(ctx context.Context, book *v1.OrderBook) error {
	return c.set(ctx, orderBookKey(c.config.Prefix, book.Symbol, book.Exchange), book, c.config.OrderBookTTL)
}

func (c *marketCache) GetOrderBook(ctx context.Context, symbol, exchange string) (*v1.OrderBook, error) {
	book := &v1.OrderBook{}
	found, err := c.get(ctx, orderBookKey(c.config.Prefix, symbol, exchange), book)
	if err != nil || !found {
		return nil, err
	}
	return book, nil
}

func (c *marketCache) SetTrades(ctx context.Context, symbol, exchange string, trades []*v1.Trade) error {
	return c.set(ctx, tradesKey(c.config.Prefix, symbol, exchange), trades, c.config.TradesTTL)
}

func (c *marketCache) GetTrades(ctx context.Context, symbol, exchange string) ([]*v1.Trade, error) {
	var trades []*v1.Trade
	found, err := c.get(ctx, tradesKey(c.config.Prefix, symbol, exchange), &trades)
	if err != nil || !found {
		return nil, err
	}
	return trades, nil
}

func (c *marketCache) InvalidateSymbol(ctx context.Context, symbol, timeframe, exchange string) error {
	_, err := c.client.Del(ctx,
		candlesKey(c.config.Prefix, symbol, timeframe, exchange),
		tickerKey(c.config.Prefix, symbol, exchange),
		orderBookKey(c.config.Prefix, symbol, exchange),
		tradesKey(c.config.Prefix, symbol, exchange),
	)
	return err
}

func (c *marketCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx)
}

func (c *marketCache) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return errors.NewErrorDetails("Failed to marshal cache payload", string(errors.CacheSetError), key)
	}
	return c.client.Set(ctx, key, payload, ttl)
}

// get unmarshals the cached value into dest. It returns false when the key
// is absent or expired.
func (c *marketCache) get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.client.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if val == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, errors.NewErrorDetails("Failed to unmarshal cache payload", string(errors.CacheGetError), key)
	}
	return true, nil
}
