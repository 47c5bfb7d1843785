package v1

import (
	"context"
	"time"

	marketdata "github.com/tradesys/market-data-engine/internal/domain/marketdata/v1"
	"github.com/tradesys/market-data-engine/pkg/errors"
)

// NoopManager satisfies Manager for deployments where no exchange
// connector is wired and all data arrives through the event consumer.
// Fetches fail with an exchange fetch error; subscriptions succeed so the
// registry still tracks intent.
type NoopManager struct{}

// NewNoopManager creates a NoopManager.
func NewNoopManager() *NoopManager {
	return &NoopManager{}
}

// Name returns the connector name.
func (m *NoopManager) Name() string { return "noop" }

// GetCandles always fails.
func (m *NoopManager) GetCandles(ctx context.Context, symbol, timeframe string, from, to time.Time, limit int) ([]*marketdata.Candle, error) {
	return nil, m.unavailable("get_candles")
}

// GetTicker always fails.
func (m *NoopManager) GetTicker(ctx context.Context, symbol string) (*marketdata.Ticker, error) {
	return nil, m.unavailable("get_ticker")
}

// GetOrderBook always fails.
func (m *NoopManager) GetOrderBook(ctx context.Context, symbol string, depth int) (*marketdata.OrderBook, error) {
	return nil, m.unavailable("get_order_book")
}

// GetRecentTrades always fails.
func (m *NoopManager) GetRecentTrades(ctx context.Context, symbol string, limit int) ([]*marketdata.Trade, error) {
	return nil, m.unavailable("get_recent_trades")
}

// SubscribeCandles records nothing and succeeds.
func (m *NoopManager) SubscribeCandles(ctx context.Context, symbol, timeframe string) error {
	return nil
}

// SubscribeTickers records nothing and succeeds.
func (m *NoopManager) SubscribeTickers(ctx context.Context, symbol string) error { return nil }

// SubscribeOrderBooks records nothing and succeeds.
func (m *NoopManager) SubscribeOrderBooks(ctx context.Context, symbol string) error { return nil }

// SubscribeTrades records nothing and succeeds.
func (m *NoopManager) SubscribeTrades(ctx context.Context, symbol string) error { return nil }

func (m *NoopManager) unavailable(op string) error {
	return errors.NewErrorDetails("No exchange manager configured", string(errors.ExchangeFetchError), op)
}
