package service

import "time"

// Config holds the ingestion orchestrator configuration.
type Config struct {
	Exchange        string        `env:"EXCHANGE" envDefault:"binance"`
	BatchSize       int           `env:"BATCH_SIZE" envDefault:"100"`
	FlushInterval   time.Duration `env:"FLUSH_INTERVAL" envDefault:"10s"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"1h"`
	QualityLookback time.Duration `env:"QUALITY_LOOKBACK" envDefault:"1h"`
	HistoryLimit    int           `env:"HISTORY_LIMIT" envDefault:"500"`
	RecentTradesCap int           `env:"RECENT_TRADES_CAP" envDefault:"100"`
}

// DefaultConfig returns the default orchestrator configuration.
func DefaultConfig() Config {
	return Config{
		Exchange:        "binance",
		BatchSize:       100,
		FlushInterval:   10 * time.Second,
		CleanupInterval: time.Hour,
		QualityLookback: time.Hour,
		HistoryLimit:    500,
		RecentTradesCap: 100,
	}
}
