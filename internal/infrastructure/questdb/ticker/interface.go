package ticker

import (
	"context"

	v1 "github.com/tradesys/market-data-engine/internal/domain/marketdata/v1"
)

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// TickerRepository represents the repository interface for ticker snapshots.
type TickerRepository interface {
	Store(ctx context.Context, ticker *v1.Ticker) error
	StoreBatch(ctx context.Context, tickers []*v1.Ticker) error
	GetLatest(ctx context.Context, symbol, exchange string) (*v1.Ticker, error)
}
