package trade

import (
	"context"
	"time"

	v1 "github.com/tradesys/market-data-engine/internal/domain/marketdata/v1"
)

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// TradeRepository represents the repository interface for executed trades.
type TradeRepository interface {
	StoreBatch(ctx context.Context, trades []*v1.Trade) error
	GetRecent(ctx context.Context, symbol, exchange string, limit int) ([]*v1.Trade, error)
	GetRange(ctx context.Context, symbol, exchange string, from, to time.Time) ([]*v1.Trade, error)
}
