package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	v1 "github.com/tradesys/market-data-engine/internal/domain/marketdata/v1"
	"github.com/tradesys/market-data-engine/pkg/logger"
	redis_mock "github.com/tradesys/market-data-engine/pkg/redis/mock"
	"go.uber.org/mock/gomock"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger()
	assert.NoError(t, err)
	return log
}

func TestMarketCache_Candles(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Minute)
	candles := []*v1.Candle{
		{Symbol: "BTC/USDT", Timeframe: "1m", Timestamp: now, Open: 50000, High: 50100, Low: 49900, Close: 50050, Volume: 12.5, Exchange: "binance"},
	}

	testCases := []struct {
		name   string
		mockFn func(mock *redis_mock.MockClient)
		runFn  func(t *testing.T, c MarketCache)
	}{
		{
			name: "set uses candles key and TTL",
			mockFn: func(mock *redis_mock.MockClient) {
				payload, _ := json.Marshal(candles)
				mock.EXPECT().Set(gomock.Any(), "md:candles:BTC/USDT:1m:binance", payload, time.Hour).Return(nil)
			},
			runFn: func(t *testing.T, c MarketCache) {
				err := c.SetCandles(context.Background(), "BTC/USDT", "1m", "binance", candles)
				assert.NoError(t, err)
			},
		},
		{
			name: "get hit returns cached candles",
			mockFn: func(mock *redis_mock.MockClient) {
				payload, _ := json.Marshal(candles)
				mock.EXPECT().Get(gomock.Any(), "md:candles:BTC/USDT:1m:binance").Return(string(payload), nil)
			},
			runFn: func(t *testing.T, c MarketCache) {
				got, err := c.GetCandles(context.Background(), "BTC/USDT", "1m", "binance")
				assert.NoError(t, err)
				assert.Len(t, got, 1)
				assert.Equal(t, 50050.0, got[0].Close)
			},
		},
		{
			name: "get miss returns nil without error",
			mockFn: func(mock *redis_mock.MockClient) {
				mock.EXPECT().Get(gomock.Any(), "md:candles:BTC/USDT:1m:binance").Return("", nil)
			},
			runFn: func(t *testing.T, c MarketCache) {
				got, err := c.GetCandles(context.Background(), "BTC/USDT", "1m", "binance")
				assert.NoError(t, err)
				assert.Nil(t, got)
			},
		},
		{
			name: "get propagates client error",
			mockFn: func(mock *redis_mock.MockClient) {
				mock.EXPECT().Get(gomock.Any(), "md:candles:BTC/USDT:1m:binance").Return("", errors.New("get failed"))
			},
			runFn: func(t *testing.T, c MarketCache) {
				got, err := c.GetCandles(context.Background(), "BTC/USDT", "1m", "binance")
				assert.Error(t, err)
				assert.Nil(t, got)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := redis_mock.NewMockClient(ctrl)
			tc.mockFn(mockClient)

			c := NewMarketCache(mockClient, DefaultConfig(), newTestLogger(t))
			tc.runFn(t, c)
		})
	}
}

func TestMarketCache_Ticker(t *testing.T) {
	ticker := &v1.Ticker{
		Symbol:    "ETH/USDT",
		Exchange:  "binance",
		Price:     3000,
		Bid:       2999,
		Ask:       3001,
		Timestamp: time.Now().UTC(),
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := redis_mock.NewMockClient(ctrl)
	payload, _ := json.Marshal(ticker)
	mockClient.EXPECT().Set(gomock.Any(), "md:ticker:ETH/USDT:binance", payload, time.Minute).Return(nil)
	mockClient.EXPECT().Get(gomock.Any(), "md:ticker:ETH/USDT:binance").Return(string(payload), nil)

	c := NewMarketCache(mockClient, DefaultConfig(), newTestLogger(t))

	assert.NoError(t, c.SetTicker(context.Background(), ticker))

	got, err := c.GetTicker(context.Background(), "ETH/USDT", "binance")
	assert.NoError(t, err)
	assert.Equal(t, 3000.0, got.Price)
	assert.Equal(t, 2999.0, got.Bid)
}

func TestMarketCache_InvalidateSymbol(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := redis_mock.NewMockClient(ctrl)
	mockClient.EXPECT().Del(gomock.Any(),
		"md:candles:BTC/USDT:1m:binance",
		"md:ticker:BTC/USDT:binance",
		"md:orderbook:BTC/USDT:binance",
		"md:trades:BTC/USDT:binance",
	).Return(int64(4), nil)

	c := NewMarketCache(mockClient, DefaultConfig(), newTestLogger(t))
	err := c.InvalidateSymbol(context.Background(), "BTC/USDT", "1m", "binance")
	assert.NoError(t, err)
}
