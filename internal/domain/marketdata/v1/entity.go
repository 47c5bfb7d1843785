package v1

import (
	"time"
)

// DataType identifies a market data record kind for metrics and queueing.
type DataType string

const (
	// DataTypeCandles is the data type key for candle records.
	DataTypeCandles DataType = "candles"
	// DataTypeTickers is the data type key for ticker records.
	DataTypeTickers DataType = "tickers"
	// DataTypeOrderBooks is the data type key for order book records.
	DataTypeOrderBooks DataType = "orderbooks"
	// DataTypeTrades is the data type key for trade records.
	DataTypeTrades DataType = "trades"
)

// DefaultExchange is assumed when a record arrives without an exchange tag.
const DefaultExchange = "binance"

// Candle represents a single OHLCV data point for one symbol and period.
type Candle struct {
	Symbol    string    `json:"symbol"`
	Timeframe string    `json:"timeframe"`
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
	Exchange  string    `json:"exchange"`
}

// Ticker represents a best bid/ask snapshot with last traded price.
type Ticker struct {
	Symbol       string    `json:"symbol"`
	Exchange     string    `json:"exchange"`
	Price        float64   `json:"price"`
	Volume       float64   `json:"volume"`
	Timestamp    time.Time `json:"timestamp"`
	Bid          float64   `json:"bid"`
	Ask          float64   `json:"ask"`
	Change24h    float64   `json:"change24h,omitempty"`
	ChangePct24h float64   `json:"changePct24h,omitempty"`
	High24h      float64   `json:"high24h,omitempty"`
	Low24h       float64   `json:"low24h,omitempty"`
	QuoteVolume  float64   `json:"quoteVolume,omitempty"`
	PrevClose24h float64   `json:"prevClose24h,omitempty"`
}

// PriceLevel is one (price, quantity) entry on an order book side.
type PriceLevel struct {
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// OrderBook represents an order book snapshot. Bids are expected strictly
// descending by price, asks strictly ascending.
type OrderBook struct {
	Symbol    string       `json:"symbol"`
	Exchange  string       `json:"exchange"`
	Timestamp time.Time    `json:"timestamp"`
	Bids      []PriceLevel `json:"bids"`
	Asks      []PriceLevel `json:"asks"`
}

// BestBid returns the top bid level, if any.
func (o *OrderBook) BestBid() (PriceLevel, bool) {
	if len(o.Bids) == 0 {
		return PriceLevel{}, false
	}
	return o.Bids[0], true
}

// BestAsk returns the top ask level, if any.
func (o *OrderBook) BestAsk() (PriceLevel, bool) {
	if len(o.Asks) == 0 {
		return PriceLevel{}, false
	}
	return o.Asks[0], true
}

// Trade represents a single executed trade.
type Trade struct {
	Symbol    string    `json:"symbol"`
	Exchange  string    `json:"exchange"`
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
	Quantity  float64   `json:"quantity"`
	Side      string    `json:"side"`
	TradeID   string    `json:"tradeId"`
}

// CandleFilter represents the filter criteria for candle reads.
type CandleFilter struct {
	Symbol    string
	Timeframe string
	Exchange  string
	From      *time.Time
	To        *time.Time
	Limit     int
}
