package questdb

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock

// Client defines the interface for QuestDB operations
type Client interface {
	// Basic query operations
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (RowsInterface, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row

	// Batch operations
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)

	// Connection management
	Ping(ctx context.Context) error
	Close()

	// Pool access (for advanced operations if needed)
	Pool() *pgxpool.Pool
}

// RowsInterface narrows pgx.Rows to the operations repositories use,
// keeping result iteration mockable.
type RowsInterface interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// rowsWrapper adapts pgx.Rows to RowsInterface.
type rowsWrapper struct {
	rows pgx.Rows
}

// NewRowsWrapper wraps pgx.Rows into a RowsInterface.
func NewRowsWrapper(rows pgx.Rows) RowsInterface {
	return &rowsWrapper{rows: rows}
}

func (w *rowsWrapper) Next() bool             { return w.rows.Next() }
func (w *rowsWrapper) Scan(dest ...any) error { return w.rows.Scan(dest...) }
func (w *rowsWrapper) Err() error             { return w.rows.Err() }
func (w *rowsWrapper) Close()                 { w.rows.Close() }
