package candle

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	v1 "github.com/tradesys/market-data-engine/internal/domain/marketdata/v1"
	"github.com/tradesys/market-data-engine/internal/infrastructure/questdb"
)

// The candles table is created with DEDUP UPSERT KEYS(timestamp, symbol,
// exchange, timeframe), so a plain insert replaces any existing row with
// the same key.
const upsertQuery = `INSERT INTO candles (timestamp, symbol, exchange, timeframe, open, high, low, close, volume)
		  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Repository represents the repository for candle data.
type Repository struct {
	client questdb.Client
}

// NewRepository creates a new candle repository.
func NewRepository(client questdb.Client) *Repository {
	return &Repository{
		client: client,
	}
}

// Upsert writes a single candle, replacing any existing row with the same
// (symbol, exchange, timeframe, timestamp) key.
func (r *Repository) Upsert(ctx context.Context, candle *v1.Candle) error {
	err := r.client.Exec(ctx, upsertQuery,
		candle.Timestamp, candle.Symbol, candle.Exchange, candle.Timeframe,
		candle.Open, candle.High, candle.Low, candle.Close, candle.Volume)

	if err != nil {
		return fmt.Errorf("failed to upsert candle: %w", err)
	}

	return nil
}

// UpsertBatch writes a batch of candles. Each row is keyed on
// (symbol, exchange, timeframe, timestamp), so retrying a failed batch
// never produces duplicate rows.
func (r *Repository) UpsertBatch(ctx context.Context, candles []*v1.Candle) error {
	if len(candles) == 0 {
		return nil
	}

	for _, candle := range candles {
		err := r.client.Exec(ctx, upsertQuery,
			candle.Timestamp, candle.Symbol, candle.Exchange, candle.Timeframe,
			candle.Open, candle.High, candle.Low, candle.Close, candle.Volume)
		if err != nil {
			return fmt.Errorf("failed to upsert candle batch: %w", err)
		}
	}

	return nil
}

// GetByFilter retrieves candles by filter, most recent first.
func (r *Repository) GetByFilter(ctx context.Context, filter v1.CandleFilter) ([]*v1.Candle, error) {
	query := "SELECT timestamp, symbol, exchange, timeframe, open, high, low, close, volume FROM candles WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.Symbol != "" {
		query += fmt.Sprintf(" AND symbol = $%d", argIndex)
		args = append(args, filter.Symbol)
		argIndex++
	}

	if filter.Exchange != "" {
		query += fmt.Sprintf(" AND exchange = $%d", argIndex)
		args = append(args, filter.Exchange)
		argIndex++
	}

	if filter.Timeframe != "" {
		query += fmt.Sprintf(" AND timeframe = $%d", argIndex)
		args = append(args, filter.Timeframe)
		argIndex++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND timestamp >= $%d", argIndex)
		args = append(args, *filter.From)
		argIndex++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND timestamp <= $%d", argIndex)
		args = append(args, *filter.To)
		argIndex++
	}

	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
	}

	rows, err := r.client.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candles: %w", err)
	}
	defer rows.Close()

	var candles []*v1.Candle
	for rows.Next() {
		candle := &v1.Candle{}
		err := rows.Scan(&candle.Timestamp, &candle.Symbol, &candle.Exchange, &candle.Timeframe,
			&candle.Open, &candle.High, &candle.Low, &candle.Close, &candle.Volume)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candle: %w", err)
		}
		candles = append(candles, candle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return candles, nil
}

// GetLatest retrieves the most recent candle for a symbol and timeframe.
func (r *Repository) GetLatest(ctx context.Context, symbol, timeframe, exchange string) (*v1.Candle, error) {
	query := `SELECT timestamp, symbol, exchange, timeframe, open, high, low, close, volume
			  FROM candles
			  WHERE symbol = $1 AND timeframe = $2 AND exchange = $3
			  ORDER BY timestamp DESC
			  LIMIT 1`

	candle := &v1.Candle{}
	err := r.client.QueryRow(ctx, query, symbol, timeframe, exchange).Scan(
		&candle.Timestamp, &candle.Symbol, &candle.Exchange, &candle.Timeframe,
		&candle.Open, &candle.High, &candle.Low, &candle.Close, &candle.Volume)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest candle: %w", err)
	}

	return candle, nil
}
