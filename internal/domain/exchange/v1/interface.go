package v1

import (
	"context"
	"time"

	marketdata "github.com/tradesys/market-data-engine/internal/domain/marketdata/v1"
)

//go:generate mockgen -source=interface.go -destination=mock/manager_mock.go -package=mock

// Manager fetches market data from an upstream exchange and registers
// streaming subscriptions. Implementations wrap a specific venue's REST
// and streaming APIs; streamed records arrive through the event consumer.
type Manager interface {
	Name() string

	GetCandles(ctx context.Context, symbol, timeframe string, from, to time.Time, limit int) ([]*marketdata.Candle, error)
	GetTicker(ctx context.Context, symbol string) (*marketdata.Ticker, error)
	GetOrderBook(ctx context.Context, symbol string, depth int) (*marketdata.OrderBook, error)
	GetRecentTrades(ctx context.Context, symbol string, limit int) ([]*marketdata.Trade, error)

	SubscribeCandles(ctx context.Context, symbol, timeframe string) error
	SubscribeTickers(ctx context.Context, symbol string) error
	SubscribeOrderBooks(ctx context.Context, symbol string) error
	SubscribeTrades(ctx context.Context, symbol string) error
}
