package validator

import (
	"fmt"
	"math"
	"sync"
	"time"

	v1 "github.com/tradesys/market-data-engine/internal/domain/marketdata/v1"
	"github.com/tradesys/market-data-engine/pkg/timeframe"
)

// Config holds validation thresholds. Defaults mirror the production
// gating behaviour; override per environment.
type Config struct {
	MaxPriceRangePercent      float64       `env:"MAX_PRICE_RANGE_PERCENT" envDefault:"50"`
	MaxSpreadPercent          float64       `env:"MAX_SPREAD_PERCENT" envDefault:"10"`
	FutureTolerance           time.Duration `env:"FUTURE_TOLERANCE" envDefault:"60s"`
	LargeGapPercent           float64       `env:"LARGE_GAP_PERCENT" envDefault:"50"`
	MissingPeriodSlackPercent float64       `env:"MISSING_PERIOD_SLACK_PERCENT" envDefault:"10"`
}

// DefaultConfig returns the default validation thresholds.
func DefaultConfig() Config {
	return Config{
		MaxPriceRangePercent:      50,
		MaxSpreadPercent:          10,
		FutureTolerance:           60 * time.Second,
		LargeGapPercent:           50,
		MissingPeriodSlackPercent: 10,
	}
}

// Validator classifies market data records as valid or invalid and
// accumulates per data type quality metrics. Safe for concurrent use.
type Validator struct {
	config Config

	mu      sync.Mutex
	metrics map[v1.DataType]*v1.QualityMetrics

	// now is swappable for tests.
	now func() time.Time
}

// New creates a validator with the given thresholds.
func New(config Config) *Validator {
	return &Validator{
		config:  config,
		metrics: make(map[v1.DataType]*v1.QualityMetrics),
		now:     time.Now,
	}
}

// ValidateCandle reports whether a candle may enter the system.
func (v *Validator) ValidateCandle(candle *v1.Candle) bool {
	return v.ValidateCandleDetailed(candle).IsValid
}

// ValidateCandleDetailed validates a candle and returns the full result.
func (v *Validator) ValidateCandleDetailed(candle *v1.Candle) *v1.ValidationResult {
	result := v1.NewValidationResult()

	if candle.Symbol == "" {
		result.AddError("Missing required field: symbol")
	}
	if candle.Timeframe == "" {
		result.AddError("Missing required field: timeframe")
	} else if !timeframe.IsValid(candle.Timeframe) {
		result.AddError(fmt.Sprintf("Invalid timeframe: %s", candle.Timeframe))
	}
	if candle.Timestamp.IsZero() {
		result.AddError("Missing required field: timestamp")
	}

	pricesValid := true
	for _, price := range []struct {
		name  string
		value float64
	}{
		{"open", candle.Open},
		{"high", candle.High},
		{"low", candle.Low},
		{"close", candle.Close},
	} {
		if !isPositiveFinite(price.value) {
			result.AddError(fmt.Sprintf("Invalid %s price: must be a positive finite number", price.name))
			pricesValid = false
		}
	}
	if math.IsNaN(candle.Volume) || math.IsInf(candle.Volume, 0) || candle.Volume < 0 {
		result.AddError("Invalid volume: must be a non-negative finite number")
	}

	// OHLC relationships only make sense once every price passed its
	// individual range check.
	if pricesValid {
		if candle.High < candle.Open {
			result.AddError("High price is less than open price")
		}
		if candle.High < candle.Close {
			result.AddError("High price is less than close price")
		}
		if candle.Low > candle.Open {
			result.AddError("Low price is greater than open price")
		}
		if candle.Low > candle.Close {
			result.AddError("Low price is greater than close price")
		}
		if candle.High < candle.Low {
			result.AddError("High price is less than low price")
		}
	}

	if pricesValid {
		average := (candle.Open + candle.High + candle.Low + candle.Close) / 4
		priceRange := candle.High - candle.Low
		if average > 0 && priceRange/average*100 > v.config.MaxPriceRangePercent {
			result.AddWarning(fmt.Sprintf("Unusually large price range: %.2f%% of average price", priceRange/average*100))
		}
		if priceRange == 0 {
			result.AddWarning("Zero price range: high equals low")
		}
	}
	if !candle.Timestamp.IsZero() && candle.Timestamp.After(v.now().Add(v.config.FutureTolerance)) {
		result.AddWarning(fmt.Sprintf("Future timestamp beyond tolerance: %s", candle.Timestamp.UTC().Format(time.RFC3339)))
	}

	v.record(v1.DataTypeCandles, result)
	return result
}

// ValidateTicker reports whether a ticker may enter the system.
func (v *Validator) ValidateTicker(ticker *v1.Ticker) bool {
	return v.ValidateTickerDetailed(ticker).IsValid
}

// ValidateTickerDetailed validates a ticker and returns the full result.
func (v *Validator) ValidateTickerDetailed(ticker *v1.Ticker) *v1.ValidationResult {
	result := v1.NewValidationResult()

	if ticker.Symbol == "" {
		result.AddError("Missing required field: symbol")
	}
	if ticker.Timestamp.IsZero() {
		result.AddError("Missing required field: timestamp")
	}

	if !isPositiveFinite(ticker.Price) {
		result.AddError("Invalid price: must be a positive finite number")
	}
	if !isPositiveFinite(ticker.Bid) {
		result.AddError("Invalid bid: must be a positive finite number")
	}
	if !isPositiveFinite(ticker.Ask) {
		result.AddError("Invalid ask: must be a positive finite number")
	}
	if math.IsNaN(ticker.Volume) || math.IsInf(ticker.Volume, 0) || ticker.Volume < 0 {
		result.AddError("Invalid volume: must be a non-negative finite number")
	}

	if isPositiveFinite(ticker.Bid) && isPositiveFinite(ticker.Ask) {
		if ticker.Ask <= ticker.Bid {
			result.AddError(fmt.Sprintf("Ask price %.8g must be greater than bid price %.8g", ticker.Ask, ticker.Bid))
		} else if isPositiveFinite(ticker.Price) {
			spreadPct := (ticker.Ask - ticker.Bid) / ticker.Price * 100
			if spreadPct > v.config.MaxSpreadPercent {
				result.AddWarning(fmt.Sprintf("Large bid-ask spread: %.2f%% of price", spreadPct))
			}
			if ticker.Price < ticker.Bid || ticker.Price > ticker.Ask {
				result.AddWarning("Price is outside the bid-ask range")
			}
		}
	}

	v.record(v1.DataTypeTickers, result)
	return result
}

// ValidateOrderBook reports whether an order book snapshot may enter the system.
func (v *Validator) ValidateOrderBook(book *v1.OrderBook) bool {
	return v.ValidateOrderBookDetailed(book).IsValid
}

// ValidateOrderBookDetailed validates an order book and returns the full result.
func (v *Validator) ValidateOrderBookDetailed(book *v1.OrderBook) *v1.ValidationResult {
	result := v1.NewValidationResult()

	if book.Symbol == "" {
		result.AddError("Missing required field: symbol")
	}
	if book.Timestamp.IsZero() {
		result.AddError("Missing required field: timestamp")
	}

	validateSide(result, "bid", book.Bids, false)
	validateSide(result, "ask", book.Asks, true)

	bestBid, hasBid := book.BestBid()
	bestAsk, hasAsk := book.BestAsk()
	if hasBid && hasAsk && isPositiveFinite(bestBid.Price) && isPositiveFinite(bestAsk.Price) {
		if bestBid.Price >= bestAsk.Price {
			result.AddError(fmt.Sprintf("Crossed book: best bid %.8g is greater than or equal to best ask %.8g", bestBid.Price, bestAsk.Price))
		} else {
			mid := (bestBid.Price + bestAsk.Price) / 2
			spreadPct := (bestAsk.Price - bestBid.Price) / mid * 100
			if spreadPct > v.config.MaxSpreadPercent {
				result.AddWarning(fmt.Sprintf("Large bid-ask spread: %.2f%% of mid price", spreadPct))
			}
		}
	}

	v.record(v1.DataTypeOrderBooks, result)
	return result
}

// ValidateTrade reports whether a trade may enter the system.
func (v *Validator) ValidateTrade(trade *v1.Trade) bool {
	return v.ValidateTradeDetailed(trade).IsValid
}

// ValidateTradeDetailed validates a trade and returns the full result.
func (v *Validator) ValidateTradeDetailed(trade *v1.Trade) *v1.ValidationResult {
	result := v1.NewValidationResult()

	if trade.Symbol == "" {
		result.AddError("Missing required field: symbol")
	}
	if trade.Timestamp.IsZero() {
		result.AddError("Missing required field: timestamp")
	}
	if trade.TradeID == "" {
		result.AddError("Missing required field: tradeId")
	}
	if !isPositiveFinite(trade.Price) {
		result.AddError("Invalid price: must be a positive finite number")
	}
	if !isPositiveFinite(trade.Quantity) {
		result.AddError("Invalid quantity: must be a positive finite number")
	}
	if trade.Side != "buy" && trade.Side != "sell" {
		result.AddError(fmt.Sprintf("Invalid side: %q, must be \"buy\" or \"sell\"", trade.Side))
	}

	v.record(v1.DataTypeTrades, result)
	return result
}

// GetQualityMetrics returns a copy of the metrics for one data type, or
// nil if that type has not been validated yet.
func (v *Validator) GetQualityMetrics(dataType v1.DataType) *v1.QualityMetrics {
	v.mu.Lock()
	defer v.mu.Unlock()

	metrics, ok := v.metrics[dataType]
	if !ok {
		return nil
	}
	return metrics.Clone()
}

// GetAllQualityMetrics returns a copy of the metrics for every tracked type.
func (v *Validator) GetAllQualityMetrics() map[v1.DataType]*v1.QualityMetrics {
	v.mu.Lock()
	defer v.mu.Unlock()

	all := make(map[v1.DataType]*v1.QualityMetrics, len(v.metrics))
	for dataType, metrics := range v.metrics {
		all[dataType] = metrics.Clone()
	}
	return all
}

// ResetQualityMetrics clears the counters for one data type.
func (v *Validator) ResetQualityMetrics(dataType v1.DataType) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.metrics, dataType)
}

// ResetAllQualityMetrics clears the counters for every data type.
func (v *Validator) ResetAllQualityMetrics() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.metrics = make(map[v1.DataType]*v1.QualityMetrics)
}

// record lazily creates the metrics entry for a data type and applies
// one validation outcome.
func (v *Validator) record(dataType v1.DataType, result *v1.ValidationResult) {
	v.mu.Lock()
	defer v.mu.Unlock()

	metrics, ok := v.metrics[dataType]
	if !ok {
		metrics = v1.NewQualityMetrics()
		v.metrics[dataType] = metrics
	}
	metrics.Record(result)
}

// validateSide checks level well-formedness and strict price ordering.
// ascending=false means strictly descending (bids).
func validateSide(result *v1.ValidationResult, side string, levels []v1.PriceLevel, ascending bool) {
	for i, level := range levels {
		if !isPositiveFinite(level.Price) {
			result.AddError(fmt.Sprintf("Invalid %s price at index %d: must be a positive finite number", side, i))
		}
		if math.IsNaN(level.Quantity) || math.IsInf(level.Quantity, 0) || level.Quantity < 0 {
			result.AddError(fmt.Sprintf("Invalid %s quantity at index %d: must be a non-negative finite number", side, i))
		}
	}
	for i := 1; i < len(levels); i++ {
		prev, curr := levels[i-1].Price, levels[i].Price
		if ascending && curr <= prev {
			result.AddError(fmt.Sprintf("%ss are not strictly ascending at index %d", side, i))
		}
		if !ascending && curr >= prev {
			result.AddError(fmt.Sprintf("%ss are not strictly descending at index %d", side, i))
		}
	}
}

func isPositiveFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0) && value > 0
}
