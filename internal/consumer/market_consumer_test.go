package consumer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	v1 "github.com/tradesys/market-data-engine/internal/domain/marketdata/v1"
	"github.com/tradesys/market-data-engine/pkg/logger"
)

type recordingOrchestrator struct {
	candles    []*v1.Candle
	tickers    []*v1.Ticker
	orderBooks []*v1.OrderBook
	trades     []*v1.Trade
}

func (r *recordingOrchestrator) HandleCandle(_ context.Context, c *v1.Candle) error {
	r.candles = append(r.candles, c)
	return nil
}

func (r *recordingOrchestrator) HandleTicker(_ context.Context, t *v1.Ticker) error {
	r.tickers = append(r.tickers, t)
	return nil
}

func (r *recordingOrchestrator) HandleOrderBook(_ context.Context, b *v1.OrderBook) error {
	r.orderBooks = append(r.orderBooks, b)
	return nil
}

func (r *recordingOrchestrator) HandleTrade(_ context.Context, t *v1.Trade) error {
	r.trades = append(r.trades, t)
	return nil
}

func newTestConsumer(t *testing.T) (*MarketConsumer, *recordingOrchestrator) {
	t.Helper()

	log, err := logger.NewLogger()
	assert.NoError(t, err)

	rec := &recordingOrchestrator{}
	return &MarketConsumer{
		logger:       log,
		orchestrator: rec,
	}, rec
}

func mustEnvelope(t *testing.T, dataType v1.DataType, exchange string, payload any) *v1.RawMarketEvent {
	t.Helper()

	raw, err := json.Marshal(payload)
	assert.NoError(t, err)
	return &v1.RawMarketEvent{
		Type:     dataType,
		Exchange: exchange,
		Payload:  raw,
	}
}

func TestMarketConsumer_HandleEvent(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Minute)

	testCases := []struct {
		name     string
		event    func(t *testing.T) *v1.RawMarketEvent
		assertFn func(t *testing.T, rec *recordingOrchestrator, err error)
	}{
		{
			name: "candle envelope dispatches to HandleCandle",
			event: func(t *testing.T) *v1.RawMarketEvent {
				return mustEnvelope(t, v1.DataTypeCandles, "kraken", &v1.Candle{
					Symbol:    "BTC/USDT",
					Timeframe: "1m",
					Timestamp: now,
					Open:      50000,
					High:      50100,
					Low:       49900,
					Close:     50050,
					Volume:    12.5,
				})
			},
			assertFn: func(t *testing.T, rec *recordingOrchestrator, err error) {
				assert.NoError(t, err)
				assert.Len(t, rec.candles, 1)
				// exchange tag from the envelope fills the record
				assert.Equal(t, "kraken", rec.candles[0].Exchange)
			},
		},
		{
			name: "ticker envelope dispatches to HandleTicker",
			event: func(t *testing.T) *v1.RawMarketEvent {
				return mustEnvelope(t, v1.DataTypeTickers, "binance", &v1.Ticker{
					Symbol:    "ETH/USDT",
					Price:     3000,
					Bid:       2999,
					Ask:       3001,
					Timestamp: now,
				})
			},
			assertFn: func(t *testing.T, rec *recordingOrchestrator, err error) {
				assert.NoError(t, err)
				assert.Len(t, rec.tickers, 1)
				assert.Equal(t, "binance", rec.tickers[0].Exchange)
			},
		},
		{
			name: "orderbook envelope dispatches to HandleOrderBook",
			event: func(t *testing.T) *v1.RawMarketEvent {
				return mustEnvelope(t, v1.DataTypeOrderBooks, "binance", &v1.OrderBook{
					Symbol:    "BTC/USDT",
					Timestamp: now,
					Bids:      []v1.PriceLevel{{Price: 49990, Quantity: 1}},
					Asks:      []v1.PriceLevel{{Price: 50010, Quantity: 1}},
				})
			},
			assertFn: func(t *testing.T, rec *recordingOrchestrator, err error) {
				assert.NoError(t, err)
				assert.Len(t, rec.orderBooks, 1)
			},
		},
		{
			name: "trade envelope dispatches to HandleTrade",
			event: func(t *testing.T) *v1.RawMarketEvent {
				return mustEnvelope(t, v1.DataTypeTrades, "binance", &v1.Trade{
					Symbol:    "BTC/USDT",
					Timestamp: now,
					Price:     50000,
					Quantity:  0.5,
					Side:      "buy",
					TradeID:   "t-1",
				})
			},
			assertFn: func(t *testing.T, rec *recordingOrchestrator, err error) {
				assert.NoError(t, err)
				assert.Len(t, rec.trades, 1)
			},
		},
		{
			name: "record exchange tag wins over envelope",
			event: func(t *testing.T) *v1.RawMarketEvent {
				return mustEnvelope(t, v1.DataTypeCandles, "kraken", &v1.Candle{
					Symbol:    "BTC/USDT",
					Timeframe: "1m",
					Timestamp: now,
					Open:      50000,
					High:      50100,
					Low:       49900,
					Close:     50050,
					Volume:    12.5,
					Exchange:  "binance",
				})
			},
			assertFn: func(t *testing.T, rec *recordingOrchestrator, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "binance", rec.candles[0].Exchange)
			},
		},
		{
			name: "unknown type is ignored",
			event: func(t *testing.T) *v1.RawMarketEvent {
				return &v1.RawMarketEvent{Type: "unknown", Payload: []byte(`{}`)}
			},
			assertFn: func(t *testing.T, rec *recordingOrchestrator, err error) {
				assert.NoError(t, err)
				assert.Empty(t, rec.candles)
				assert.Empty(t, rec.tickers)
			},
		},
		{
			name: "malformed payload errors",
			event: func(t *testing.T) *v1.RawMarketEvent {
				return &v1.RawMarketEvent{Type: v1.DataTypeCandles, Payload: []byte(`not json`)}
			},
			assertFn: func(t *testing.T, rec *recordingOrchestrator, err error) {
				assert.Error(t, err)
				assert.Empty(t, rec.candles)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestConsumer(t)
			err := c.handleEvent(context.Background(), tc.event(t))
			tc.assertFn(t, rec, err)
		})
	}
}
