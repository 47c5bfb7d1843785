package candle

import (
	"context"

	v1 "github.com/tradesys/market-data-engine/internal/domain/marketdata/v1"
)

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// CandleRepository represents the repository interface for candle data.
type CandleRepository interface {
	Upsert(ctx context.Context, candle *v1.Candle) error
	UpsertBatch(ctx context.Context, candles []*v1.Candle) error
	GetByFilter(ctx context.Context, filter v1.CandleFilter) ([]*v1.Candle, error)
	GetLatest(ctx context.Context, symbol, timeframe, exchange string) (*v1.Candle, error)
}
