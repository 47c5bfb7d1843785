package cache

import (
	"context"

	v1 "github.com/tradesys/market-data-engine/internal/domain/marketdata/v1"
)

//go:generate mockgen -source=interface.go -destination=mock/cache_mock.go -package=mock

// MarketCache caches the most recent market data per symbol with a TTL.
type MarketCache interface {
	SetCandles(ctx context.Context, symbol, timeframe, exchange string, candles []*v1.Candle) error
	GetCandles(ctx context.Context, symbol, timeframe, exchange string) ([]*v1.Candle, error)

	SetTicker(ctx context.Context, ticker *v1.Ticker) error
	GetTicker(ctx context.Context, symbol, exchange string) (*v1.Ticker, error)

	SetOrderBook(ctx context.Context, book *v1.OrderBook) error
	GetOrderBook(ctx context.Context, symbol, exchange string) (*v1.OrderBook, error)

	SetTrades(ctx context.Context, symbol, exchange string, trades []*v1.Trade) error
	GetTrades(ctx context.Context, symbol, exchange string) ([]*v1.Trade, error)

	InvalidateSymbol(ctx context.Context, symbol, timeframe, exchange string) error
	Ping(ctx context.Context) error
}
