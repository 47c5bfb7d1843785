package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	v1 "github.com/tradesys/market-data-engine/internal/domain/marketdata/v1"
)

func validCandle() *v1.Candle {
	return &v1.Candle{
		Symbol:    "BTCUSDT",
		Timeframe: "1m",
		Timestamp: time.UnixMilli(1700000040000).UTC(),
		Open:      47000,
		High:      47100,
		Low:       46900,
		Close:     47050,
		Volume:    12.5,
		Exchange:  "binance",
	}
}

func TestValidator_ValidateCandleDetailed(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(c *v1.Candle)
		assertFn func(t *testing.T, res *v1.ValidationResult)
	}{
		{
			name:   "valid candle",
			mutate: func(c *v1.Candle) {},
			assertFn: func(t *testing.T, res *v1.ValidationResult) {
				assert.True(t, res.IsValid)
				assert.Empty(t, res.Errors)
			},
		},
		{
			name:   "missing symbol",
			mutate: func(c *v1.Candle) { c.Symbol = "" },
			assertFn: func(t *testing.T, res *v1.ValidationResult) {
				assert.False(t, res.IsValid)
				assert.Contains(t, res.Errors, "Missing required field: symbol")
			},
		},
		{
			name:   "unknown timeframe",
			mutate: func(c *v1.Candle) { c.Timeframe = "2m" },
			assertFn: func(t *testing.T, res *v1.ValidationResult) {
				assert.False(t, res.IsValid)
				assert.Contains(t, res.Errors, "Invalid timeframe: 2m")
			},
		},
		{
			name:   "high below open",
			mutate: func(c *v1.Candle) { c.High = c.Open - 100; c.Low = c.High - 50; c.Close = c.High },
			assertFn: func(t *testing.T, res *v1.ValidationResult) {
				assert.False(t, res.IsValid)
				assert.Contains(t, res.Errors, "High price is less than open price")
			},
		},
		{
			name:   "negative price skips relationship checks",
			mutate: func(c *v1.Candle) { c.Open = -1 },
			assertFn: func(t *testing.T, res *v1.ValidationResult) {
				assert.False(t, res.IsValid)
				assert.Len(t, res.Errors, 1)
				assert.Contains(t, res.Errors[0], "Invalid open price")
			},
		},
		{
			name:   "negative volume",
			mutate: func(c *v1.Candle) { c.Volume = -3 },
			assertFn: func(t *testing.T, res *v1.ValidationResult) {
				assert.False(t, res.IsValid)
				assert.Contains(t, res.Errors, "Invalid volume: must be a non-negative finite number")
			},
		},
		{
			name: "zero price range warns without invalidating",
			mutate: func(c *v1.Candle) {
				c.Open, c.High, c.Low, c.Close = 47000, 47000, 47000, 47000
			},
			assertFn: func(t *testing.T, res *v1.ValidationResult) {
				assert.True(t, res.IsValid)
				assert.Contains(t, res.Warnings, "Zero price range: high equals low")
			},
		},
		{
			name: "large price range warns without invalidating",
			mutate: func(c *v1.Candle) {
				c.Open, c.High, c.Low, c.Close = 100, 200, 50, 150
			},
			assertFn: func(t *testing.T, res *v1.ValidationResult) {
				assert.True(t, res.IsValid)
				assert.NotEmpty(t, res.Warnings)
				assert.Contains(t, res.Warnings[0], "Unusually large price range")
			},
		},
		{
			name:   "future timestamp warns without invalidating",
			mutate: func(c *v1.Candle) { c.Timestamp = time.Now().Add(5 * time.Minute) },
			assertFn: func(t *testing.T, res *v1.ValidationResult) {
				assert.True(t, res.IsValid)
				assert.NotEmpty(t, res.Warnings)
				assert.Contains(t, res.Warnings[0], "Future timestamp")
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			validator := New(DefaultConfig())
			candle := validCandle()
			testCase.mutate(candle)

			testCase.assertFn(t, validator.ValidateCandleDetailed(candle))
		})
	}
}

func TestValidator_QualityMetrics(t *testing.T) {
	validator := New(DefaultConfig())

	assert.Nil(t, validator.GetQualityMetrics(v1.DataTypeCandles))

	assert.True(t, validator.ValidateCandle(validCandle()))

	invalid := validCandle()
	invalid.High = invalid.Low - 1
	assert.False(t, validator.ValidateCandle(invalid))

	metrics := validator.GetQualityMetrics(v1.DataTypeCandles)
	assert.NotNil(t, metrics)
	assert.Equal(t, int64(2), metrics.TotalRecords)
	assert.Equal(t, int64(1), metrics.ValidRecords)
	assert.Equal(t, int64(1), metrics.InvalidRecords)
	assert.Equal(t, float64(50), metrics.ValidationRate())
	assert.NotEmpty(t, metrics.CommonErrors)

	// each distinct error message is counted per occurrence
	assert.False(t, validator.ValidateCandle(invalid))
	metrics = validator.GetQualityMetrics(v1.DataTypeCandles)
	assert.Equal(t, int64(2), metrics.InvalidRecords)
	for _, count := range metrics.CommonErrors {
		assert.Equal(t, int64(2), count)
	}

	validator.ResetQualityMetrics(v1.DataTypeCandles)
	assert.Nil(t, validator.GetQualityMetrics(v1.DataTypeCandles))

	assert.True(t, validator.ValidateCandle(validCandle()))
	validator.ResetAllQualityMetrics()
	assert.Empty(t, validator.GetAllQualityMetrics())
}

func TestValidator_ValidateTickerDetailed(t *testing.T) {
	base := func() *v1.Ticker {
		return &v1.Ticker{
			Symbol:    "BTCUSDT",
			Exchange:  "binance",
			Price:     47000,
			Volume:    100,
			Timestamp: time.UnixMilli(1700000040000).UTC(),
			Bid:       46995,
			Ask:       47005,
		}
	}

	testCases := []struct {
		name     string
		mutate   func(tk *v1.Ticker)
		assertFn func(t *testing.T, res *v1.ValidationResult)
	}{
		{
			name:   "valid ticker",
			mutate: func(tk *v1.Ticker) {},
			assertFn: func(t *testing.T, res *v1.ValidationResult) {
				assert.True(t, res.IsValid)
				assert.Empty(t, res.Warnings)
			},
		},
		{
			name:   "ask not above bid is a hard error",
			mutate: func(tk *v1.Ticker) { tk.Ask = tk.Bid },
			assertFn: func(t *testing.T, res *v1.ValidationResult) {
				assert.False(t, res.IsValid)
				assert.Contains(t, res.Errors[0], "must be greater than bid")
			},
		},
		{
			name:   "wide spread warns only",
			mutate: func(tk *v1.Ticker) { tk.Bid = 40000; tk.Ask = 50000; tk.Price = 45000 },
			assertFn: func(t *testing.T, res *v1.ValidationResult) {
				assert.True(t, res.IsValid)
				assert.Contains(t, res.Warnings[0], "Large bid-ask spread")
			},
		},
		{
			name:   "price outside bid-ask warns only",
			mutate: func(tk *v1.Ticker) { tk.Price = tk.Ask + 10 },
			assertFn: func(t *testing.T, res *v1.ValidationResult) {
				assert.True(t, res.IsValid)
				assert.Contains(t, res.Warnings, "Price is outside the bid-ask range")
			},
		},
		{
			name:   "zero bid",
			mutate: func(tk *v1.Ticker) { tk.Bid = 0 },
			assertFn: func(t *testing.T, res *v1.ValidationResult) {
				assert.False(t, res.IsValid)
				assert.Contains(t, res.Errors, "Invalid bid: must be a positive finite number")
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			validator := New(DefaultConfig())
			ticker := base()
			testCase.mutate(ticker)

			testCase.assertFn(t, validator.ValidateTickerDetailed(ticker))
		})
	}
}

func TestValidator_ValidateOrderBookDetailed(t *testing.T) {
	ts := time.UnixMilli(1700000040000).UTC()

	testCases := []struct {
		name     string
		book     *v1.OrderBook
		assertFn func(t *testing.T, res *v1.ValidationResult)
	}{
		{
			name: "valid book",
			book: &v1.OrderBook{
				Symbol:    "BTCUSDT",
				Timestamp: ts,
				Bids:      []v1.PriceLevel{{Price: 47000, Quantity: 1}, {Price: 46999, Quantity: 2}},
				Asks:      []v1.PriceLevel{{Price: 47001, Quantity: 1.2}, {Price: 47002, Quantity: 0.5}},
			},
			assertFn: func(t *testing.T, res *v1.ValidationResult) {
				assert.True(t, res.IsValid)
			},
		},
		{
			name: "crossed book is a hard error",
			book: &v1.OrderBook{
				Symbol:    "BTCUSDT",
				Timestamp: ts,
				Bids:      []v1.PriceLevel{{Price: 47005, Quantity: 1.0}},
				Asks:      []v1.PriceLevel{{Price: 47001, Quantity: 1.2}},
			},
			assertFn: func(t *testing.T, res *v1.ValidationResult) {
				assert.False(t, res.IsValid)
				assert.Contains(t, res.Errors[0], "greater than or equal to")
			},
		},
		{
			name: "out of order bids reported with index",
			book: &v1.OrderBook{
				Symbol:    "BTCUSDT",
				Timestamp: ts,
				Bids:      []v1.PriceLevel{{Price: 46999, Quantity: 1}, {Price: 47000, Quantity: 1}},
				Asks:      []v1.PriceLevel{{Price: 47001, Quantity: 1}},
			},
			assertFn: func(t *testing.T, res *v1.ValidationResult) {
				assert.False(t, res.IsValid)
				assert.Contains(t, res.Errors, "bids are not strictly descending at index 1")
			},
		},
		{
			name: "non-positive ask price reported with index",
			book: &v1.OrderBook{
				Symbol:    "BTCUSDT",
				Timestamp: ts,
				Bids:      []v1.PriceLevel{{Price: 47000, Quantity: 1}},
				Asks:      []v1.PriceLevel{{Price: 0, Quantity: 1}},
			},
			assertFn: func(t *testing.T, res *v1.ValidationResult) {
				assert.False(t, res.IsValid)
				assert.Contains(t, res.Errors, "Invalid ask price at index 0: must be a positive finite number")
			},
		},
		{
			name: "one empty side is fine",
			book: &v1.OrderBook{
				Symbol:    "BTCUSDT",
				Timestamp: ts,
				Bids:      []v1.PriceLevel{{Price: 47000, Quantity: 1}},
			},
			assertFn: func(t *testing.T, res *v1.ValidationResult) {
				assert.True(t, res.IsValid)
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			validator := New(DefaultConfig())
			testCase.assertFn(t, validator.ValidateOrderBookDetailed(testCase.book))
		})
	}
}

func TestValidator_ValidateTradeDetailed(t *testing.T) {
	base := func() *v1.Trade {
		return &v1.Trade{
			Symbol:    "BTCUSDT",
			Exchange:  "binance",
			Timestamp: time.UnixMilli(1700000040000).UTC(),
			Price:     47000,
			Quantity:  0.25,
			Side:      "buy",
			TradeID:   "t-100",
		}
	}

	testCases := []struct {
		name     string
		mutate   func(tr *v1.Trade)
		valid    bool
		errorHas string
	}{
		{name: "valid trade", mutate: func(tr *v1.Trade) {}, valid: true},
		{name: "missing trade id", mutate: func(tr *v1.Trade) { tr.TradeID = "" }, valid: false, errorHas: "tradeId"},
		{name: "bad side", mutate: func(tr *v1.Trade) { tr.Side = "hold" }, valid: false, errorHas: "Invalid side"},
		{name: "zero quantity", mutate: func(tr *v1.Trade) { tr.Quantity = 0 }, valid: false, errorHas: "Invalid quantity"},
		{name: "sell side", mutate: func(tr *v1.Trade) { tr.Side = "sell" }, valid: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			validator := New(DefaultConfig())
			trade := base()
			testCase.mutate(trade)

			result := validator.ValidateTradeDetailed(trade)
			assert.Equal(t, testCase.valid, result.IsValid)
			if testCase.errorHas != "" {
				assert.Contains(t, result.Errors[0], testCase.errorHas)
			}
		})
	}
}
