package timeframe

import (
	"fmt"
)

// Config holds timeframe-related configuration
type Config struct {
	BaseTimeframe    string   `env:"BASE_TIMEFRAME" envDefault:"1m"`
	TargetTimeframes []string `env:"TARGET_TIMEFRAMES" envSeparator:"," envDefault:"5m,15m,30m,1h,4h,1d"`
}

// GetTargetTimeframes returns the configured aggregation targets.
func (c Config) GetTargetTimeframes() ([]Timeframe, error) {
	targets := make([]Timeframe, 0, len(c.TargetTimeframes))

	for _, name := range c.TargetTimeframes {
		tf, err := Get(name)
		if err != nil {
			return nil, fmt.Errorf("invalid timeframe in config: %s", name)
		}
		targets = append(targets, tf)
	}

	return targets, nil
}

// GetBaseTimeframe returns the configured base granularity.
func (c Config) GetBaseTimeframe() (Timeframe, error) {
	tf, err := Get(c.BaseTimeframe)
	if err != nil {
		return Timeframe{}, fmt.Errorf("invalid base timeframe in config: %s", c.BaseTimeframe)
	}
	return tf, nil
}
