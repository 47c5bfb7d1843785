package ticker

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	v1 "github.com/tradesys/market-data-engine/internal/domain/marketdata/v1"
	"github.com/tradesys/market-data-engine/internal/infrastructure/questdb"
)

var tickerColumns = []string{
	"timestamp", "symbol", "exchange", "price", "volume", "bid", "ask",
	"change_24h", "change_pct_24h", "high_24h", "low_24h", "quote_volume",
}

// Repository represents the repository for ticker snapshots.
type Repository struct {
	client questdb.Client
}

// NewRepository creates a new ticker repository.
func NewRepository(client questdb.Client) *Repository {
	return &Repository{
		client: client,
	}
}

// Store stores a single ticker snapshot.
func (r *Repository) Store(ctx context.Context, ticker *v1.Ticker) error {
	query := `INSERT INTO tickers (timestamp, symbol, exchange, price, volume, bid, ask, change_24h, change_pct_24h, high_24h, low_24h, quote_volume)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	err := r.client.Exec(ctx, query,
		ticker.Timestamp, ticker.Symbol, ticker.Exchange, ticker.Price, ticker.Volume,
		ticker.Bid, ticker.Ask, ticker.Change24h, ticker.ChangePct24h,
		ticker.High24h, ticker.Low24h, ticker.QuoteVolume)

	if err != nil {
		return fmt.Errorf("failed to store ticker: %w", err)
	}

	return nil
}

// StoreBatch stores a batch of ticker snapshots.
func (r *Repository) StoreBatch(ctx context.Context, tickers []*v1.Ticker) error {
	if len(tickers) == 0 {
		return nil
	}

	// Use CopyFrom for better performance
	_, err := r.client.CopyFrom(
		ctx,
		pgx.Identifier{"tickers"},
		tickerColumns,
		pgx.CopyFromSlice(len(tickers), func(i int) ([]any, error) {
			ticker := tickers[i]
			return []any{
				ticker.Timestamp,
				ticker.Symbol,
				ticker.Exchange,
				ticker.Price,
				ticker.Volume,
				ticker.Bid,
				ticker.Ask,
				ticker.Change24h,
				ticker.ChangePct24h,
				ticker.High24h,
				ticker.Low24h,
				ticker.QuoteVolume,
			}, nil
		}),
	)

	if err != nil {
		return fmt.Errorf("failed to copy ticker batch: %w", err)
	}

	return nil
}

// GetLatest retrieves the most recent ticker snapshot for a symbol.
func (r *Repository) GetLatest(ctx context.Context, symbol, exchange string) (*v1.Ticker, error) {
	query := `SELECT timestamp, symbol, exchange, price, volume, bid, ask, change_24h, change_pct_24h, high_24h, low_24h, quote_volume
			  FROM tickers
			  WHERE symbol = $1 AND exchange = $2
			  ORDER BY timestamp DESC
			  LIMIT 1`

	ticker := &v1.Ticker{}
	err := r.client.QueryRow(ctx, query, symbol, exchange).Scan(
		&ticker.Timestamp, &ticker.Symbol, &ticker.Exchange, &ticker.Price, &ticker.Volume,
		&ticker.Bid, &ticker.Ask, &ticker.Change24h, &ticker.ChangePct24h,
		&ticker.High24h, &ticker.Low24h, &ticker.QuoteVolume)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest ticker: %w", err)
	}

	return ticker, nil
}
