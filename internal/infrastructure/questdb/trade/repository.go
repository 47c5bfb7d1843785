package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	v1 "github.com/tradesys/market-data-engine/internal/domain/marketdata/v1"
	"github.com/tradesys/market-data-engine/internal/infrastructure/questdb"
)

// Repository represents the repository for executed trades.
type Repository struct {
	client questdb.Client
}

// NewRepository creates a new trade repository.
func NewRepository(client questdb.Client) *Repository {
	return &Repository{
		client: client,
	}
}

// StoreBatch stores a batch of trades.
func (r *Repository) StoreBatch(ctx context.Context, trades []*v1.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	// Use CopyFrom for better performance
	_, err := r.client.CopyFrom(
		ctx,
		pgx.Identifier{"trades"},
		[]string{"timestamp", "symbol", "exchange", "trade_id", "price", "quantity", "side"},
		pgx.CopyFromSlice(len(trades), func(i int) ([]any, error) {
			trade := trades[i]
			return []any{
				trade.Timestamp,
				trade.Symbol,
				trade.Exchange,
				trade.TradeID,
				trade.Price,
				trade.Quantity,
				trade.Side,
			}, nil
		}),
	)

	if err != nil {
		return fmt.Errorf("failed to copy trade batch: %w", err)
	}

	return nil
}

// GetRecent retrieves the most recent trades for a symbol.
func (r *Repository) GetRecent(ctx context.Context, symbol, exchange string, limit int) ([]*v1.Trade, error) {
	query := `SELECT timestamp, symbol, exchange, trade_id, price, quantity, side
			  FROM trades
			  WHERE symbol = $1 AND exchange = $2
			  ORDER BY timestamp DESC
			  LIMIT $3`

	rows, err := r.client.Query(ctx, query, symbol, exchange, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent trades: %w", err)
	}
	defer rows.Close()

	return scanTrades(rows)
}

// GetRange retrieves trades within a time window, oldest first.
func (r *Repository) GetRange(ctx context.Context, symbol, exchange string, from, to time.Time) ([]*v1.Trade, error) {
	query := `SELECT timestamp, symbol, exchange, trade_id, price, quantity, side
			  FROM trades
			  WHERE symbol = $1 AND exchange = $2 AND timestamp >= $3 AND timestamp <= $4
			  ORDER BY timestamp ASC`

	rows, err := r.client.Query(ctx, query, symbol, exchange, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade range: %w", err)
	}
	defer rows.Close()

	return scanTrades(rows)
}

func scanTrades(rows questdb.RowsInterface) ([]*v1.Trade, error) {
	var trades []*v1.Trade
	for rows.Next() {
		trade := &v1.Trade{}
		err := rows.Scan(&trade.Timestamp, &trade.Symbol, &trade.Exchange,
			&trade.TradeID, &trade.Price, &trade.Quantity, &trade.Side)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return trades, nil
}
