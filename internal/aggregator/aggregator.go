package aggregator

import (
	"fmt"
	"sort"
	"sync"
	"time"

	v1 "github.com/tradesys/market-data-engine/internal/domain/marketdata/v1"
	"github.com/tradesys/market-data-engine/internal/events"
	"github.com/tradesys/market-data-engine/pkg/logger"
	"github.com/tradesys/market-data-engine/pkg/timeframe"
)

// Config holds aggregation buffer limits and retention.
type Config struct {
	MaxCandlesPerTimeframe int           `env:"MAX_CANDLES_PER_TIMEFRAME" envDefault:"500"`
	Retention              time.Duration `env:"RETENTION" envDefault:"24h"`
}

// DefaultConfig returns the default aggregation settings.
func DefaultConfig() Config {
	return Config{
		MaxCandlesPerTimeframe: 500,
		Retention:              24 * time.Hour,
	}
}

// Aggregator owns per symbol, per timeframe candle buffers and derives
// larger timeframes from the base granularity. Buffers are mutated only
// through the processing entry points; every read hands out copies.
type Aggregator struct {
	config  Config
	targets []timeframe.Timeframe

	publisher events.Publisher
	logger    logger.Interface

	mu      sync.RWMutex
	buffers map[string]map[string][]*v1.Candle // symbol -> timeframe -> ascending by timestamp

	// now is swappable for tests.
	now func() time.Time
}

// New creates an aggregator rolling candles up into the given target
// timeframes.
func New(config Config, targets []timeframe.Timeframe, publisher events.Publisher, log logger.Interface) *Aggregator {
	return &Aggregator{
		config:    config,
		targets:   targets,
		publisher: publisher,
		logger:    log,
		buffers:   make(map[string]map[string][]*v1.Candle),
		now:       time.Now,
	}
}

// ProcessCandle applies one just-arrived candle: it is inserted (or
// replaced in place on an equal timestamp) into its own timeframe buffer,
// then merged into every configured target timeframe with a strictly
// larger duration. One aggregation event is emitted per target update.
func (a *Aggregator) ProcessCandle(candle *v1.Candle) error {
	source, err := timeframe.Get(candle.Timeframe)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	own := *candle
	a.upsertLocked(candle.Symbol, candle.Timeframe, &own)

	for _, target := range a.targets {
		if target.Duration <= source.Duration {
			continue
		}
		updated := a.mergeLocked(candle, target)
		if a.publisher != nil {
			emitted := *updated
			a.publisher.Publish(events.Event{
				Type:     events.TypeAggregatedCandle,
				Exchange: emitted.Exchange,
				Candle:   &emitted,
			})
		}
	}

	return nil
}

// AggregateHistoricalCandles rolls a historical batch from one timeframe
// up into another in a single pass. The trailing group is included even
// when it does not span a full target period.
func (a *Aggregator) AggregateHistoricalCandles(candles []*v1.Candle, sourceName, targetName string) ([]*v1.Candle, error) {
	source, err := timeframe.Get(sourceName)
	if err != nil {
		return nil, err
	}
	target, err := timeframe.Get(targetName)
	if err != nil {
		return nil, err
	}
	if !timeframe.CanAggregate(source, target) {
		return nil, fmt.Errorf("cannot aggregate %s candles into %s: target must be a strictly larger multiple of the source", sourceName, targetName)
	}
	if len(candles) == 0 {
		return nil, nil
	}

	sorted := make([]*v1.Candle, len(candles))
	copy(sorted, candles)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var aggregated []*v1.Candle
	var current *v1.Candle
	for _, candle := range sorted {
		aligned := target.Align(candle.Timestamp)
		if current == nil || !current.Timestamp.Equal(aligned) {
			current = &v1.Candle{
				Symbol:    candle.Symbol,
				Timeframe: targetName,
				Timestamp: aligned,
				Open:      candle.Open,
				High:      candle.High,
				Low:       candle.Low,
				Close:     candle.Close,
				Volume:    candle.Volume,
				Exchange:  candle.Exchange,
			}
			aggregated = append(aggregated, current)
			continue
		}
		if candle.High > current.High {
			current.High = candle.High
		}
		if candle.Low < current.Low {
			current.Low = candle.Low
		}
		current.Close = candle.Close
		current.Volume += candle.Volume
	}

	return aggregated, nil
}

// CanAggregate reports whether candles of the source timeframe can be
// rolled up into the target timeframe.
func (a *Aggregator) CanAggregate(sourceName, targetName string) bool {
	return timeframe.CanAggregateNames(sourceName, targetName)
}

// GetCandles returns a copy of the buffer for one symbol and timeframe,
// truncated to the most recent limit entries when limit > 0.
func (a *Aggregator) GetCandles(symbol, timeframeName string, limit int) []*v1.Candle {
	a.mu.RLock()
	defer a.mu.RUnlock()

	buffer := a.buffers[symbol][timeframeName]
	if len(buffer) == 0 {
		return nil
	}
	if limit > 0 && limit < len(buffer) {
		buffer = buffer[len(buffer)-limit:]
	}

	copies := make([]*v1.Candle, len(buffer))
	for i, candle := range buffer {
		clone := *candle
		copies[i] = &clone
	}
	return copies
}

// GetMultiTimeframeCandles returns buffers across the requested
// timeframes, or all configured targets when none are given.
func (a *Aggregator) GetMultiTimeframeCandles(symbol string, timeframes ...string) map[string][]*v1.Candle {
	if len(timeframes) == 0 {
		timeframes = make([]string, 0, len(a.targets))
		for _, target := range a.targets {
			timeframes = append(timeframes, target.Name)
		}
	}

	result := make(map[string][]*v1.Candle, len(timeframes))
	for _, name := range timeframes {
		result[name] = a.GetCandles(symbol, name, 0)
	}
	return result
}

// Cleanup drops candles older than the retention window for one symbol.
// Empty timeframe buffers and symbols are removed entirely.
func (a *Aggregator) Cleanup(symbol string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cleanupSymbolLocked(symbol)
}

// CleanupAll runs retention cleanup across every symbol.
func (a *Aggregator) CleanupAll() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for symbol := range a.buffers {
		a.cleanupSymbolLocked(symbol)
	}
}

func (a *Aggregator) cleanupSymbolLocked(symbol string) {
	timeframes, ok := a.buffers[symbol]
	if !ok {
		return
	}

	cutoff := a.now().Add(-a.config.Retention)
	removed := 0
	for name, buffer := range timeframes {
		idx := sort.Search(len(buffer), func(i int) bool {
			return !buffer[i].Timestamp.Before(cutoff)
		})
		if idx == 0 {
			continue
		}
		removed += idx
		if idx == len(buffer) {
			delete(timeframes, name)
			continue
		}
		timeframes[name] = append([]*v1.Candle(nil), buffer[idx:]...)
	}
	if removed > 0 && a.logger != nil {
		a.logger.Debug("evicted stale candles", logger.Field{
			Key:   "symbol",
			Value: symbol,
		}, logger.Field{
			Key:   "removed",
			Value: removed,
		})
	}

	if len(timeframes) == 0 {
		delete(a.buffers, symbol)
	}
}

// SymbolStatistics describes buffer occupancy for one symbol.
type SymbolStatistics struct {
	Timeframes   int                         `json:"timeframes"`
	TotalCandles int                         `json:"totalCandles"`
	Buffers      map[string]BufferStatistics `json:"buffers"`
}

// BufferStatistics describes one timeframe buffer.
type BufferStatistics struct {
	Count  int       `json:"count"`
	Oldest time.Time `json:"oldest"`
	Newest time.Time `json:"newest"`
}

// GetStatistics reports buffer occupancy per symbol for operational
// visibility.
func (a *Aggregator) GetStatistics() map[string]SymbolStatistics {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stats := make(map[string]SymbolStatistics, len(a.buffers))
	for symbol, timeframes := range a.buffers {
		symbolStats := SymbolStatistics{
			Timeframes: len(timeframes),
			Buffers:    make(map[string]BufferStatistics, len(timeframes)),
		}
		for name, buffer := range timeframes {
			if len(buffer) == 0 {
				continue
			}
			symbolStats.TotalCandles += len(buffer)
			symbolStats.Buffers[name] = BufferStatistics{
				Count:  len(buffer),
				Oldest: buffer[0].Timestamp,
				Newest: buffer[len(buffer)-1].Timestamp,
			}
		}
		stats[symbol] = symbolStats
	}
	return stats
}

// upsertLocked inserts the candle in chronological position, replacing in
// place when a candle with the same timestamp already exists, then trims
// the buffer front to the configured maximum.
func (a *Aggregator) upsertLocked(symbol, timeframeName string, candle *v1.Candle) {
	timeframes, ok := a.buffers[symbol]
	if !ok {
		timeframes = make(map[string][]*v1.Candle)
		a.buffers[symbol] = timeframes
	}

	buffer := timeframes[timeframeName]
	idx := sort.Search(len(buffer), func(i int) bool {
		return !buffer[i].Timestamp.Before(candle.Timestamp)
	})

	if idx < len(buffer) && buffer[idx].Timestamp.Equal(candle.Timestamp) {
		buffer[idx] = candle
		timeframes[timeframeName] = buffer
		return
	}

	buffer = append(buffer, nil)
	copy(buffer[idx+1:], buffer[idx:])
	buffer[idx] = candle

	if limit := a.config.MaxCandlesPerTimeframe; limit > 0 && len(buffer) > limit {
		buffer = append([]*v1.Candle(nil), buffer[len(buffer)-limit:]...)
	}
	timeframes[timeframeName] = buffer
}

// mergeLocked folds one source candle into the target timeframe bucket it
// falls in: the first write of a period creates the bucket seeded from the
// source, subsequent writes merge. The latest close always wins.
func (a *Aggregator) mergeLocked(source *v1.Candle, target timeframe.Timeframe) *v1.Candle {
	aligned := target.Align(source.Timestamp)

	buffer := a.buffers[source.Symbol][target.Name]
	idx := sort.Search(len(buffer), func(i int) bool {
		return !buffer[i].Timestamp.Before(aligned)
	})

	if idx < len(buffer) && buffer[idx].Timestamp.Equal(aligned) {
		existing := buffer[idx]
		if source.High > existing.High {
			existing.High = source.High
		}
		if source.Low < existing.Low {
			existing.Low = source.Low
		}
		existing.Close = source.Close
		existing.Volume += source.Volume
		return existing
	}

	created := &v1.Candle{
		Symbol:    source.Symbol,
		Timeframe: target.Name,
		Timestamp: aligned,
		Open:      source.Open,
		High:      source.High,
		Low:       source.Low,
		Close:     source.Close,
		Volume:    source.Volume,
		Exchange:  source.Exchange,
	}
	a.upsertLocked(source.Symbol, target.Name, created)
	return created
}
