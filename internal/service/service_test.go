package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tradesys/market-data-engine/internal/aggregator"
	exchangeMock "github.com/tradesys/market-data-engine/internal/domain/exchange/v1/mock"
	v1 "github.com/tradesys/market-data-engine/internal/domain/marketdata/v1"
	"github.com/tradesys/market-data-engine/internal/events"
	cacheMock "github.com/tradesys/market-data-engine/internal/infrastructure/cache/mock"
	candleMock "github.com/tradesys/market-data-engine/internal/infrastructure/questdb/candle/mock"
	tickerMock "github.com/tradesys/market-data-engine/internal/infrastructure/questdb/ticker/mock"
	tradeMock "github.com/tradesys/market-data-engine/internal/infrastructure/questdb/trade/mock"
	"github.com/tradesys/market-data-engine/internal/validator"
	"github.com/tradesys/market-data-engine/pkg/logger"
	"github.com/tradesys/market-data-engine/pkg/timeframe"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	candleRepo *candleMock.MockCandleRepository
	tickerRepo *tickerMock.MockTickerRepository
	tradeRepo  *tradeMock.MockTradeRepository
	cache      *cacheMock.MockMarketCache
	exchange   *exchangeMock.MockManager
	bus        *events.Bus
}

func newTestService(t *testing.T, ctrl *gomock.Controller) (*Service, *serviceMocks) {
	t.Helper()

	log, err := logger.NewLogger()
	assert.NoError(t, err)

	targets, err := timeframe.Config{
		BaseTimeframe:    "1m",
		TargetTimeframes: []string{"5m", "15m"},
	}.GetTargetTimeframes()
	assert.NoError(t, err)

	bus := events.NewBus(64)
	agg := aggregator.New(aggregator.DefaultConfig(), targets, bus, log)

	mocks := &serviceMocks{
		candleRepo: candleMock.NewMockCandleRepository(ctrl),
		tickerRepo: tickerMock.NewMockTickerRepository(ctrl),
		tradeRepo:  tradeMock.NewMockTradeRepository(ctrl),
		cache:      cacheMock.NewMockMarketCache(ctrl),
		exchange:   exchangeMock.NewMockManager(ctrl),
		bus:        bus,
	}

	svc := New(
		DefaultConfig(),
		validator.New(validator.DefaultConfig()),
		agg,
		mocks.candleRepo,
		mocks.tickerRepo,
		mocks.tradeRepo,
		mocks.cache,
		mocks.exchange,
		bus,
		log,
	)
	return svc, mocks
}

func testCandle(ts time.Time) *v1.Candle {
	return &v1.Candle{
		Symbol:    "BTC/USDT",
		Timeframe: "1m",
		Timestamp: ts,
		Open:      50000,
		High:      50100,
		Low:       49900,
		Close:     50050,
		Volume:    12.5,
		Exchange:  "binance",
	}
}

func TestService_HandleCandle(t *testing.T) {
	t0 := time.UnixMilli(1700000100000).UTC()

	testCases := []struct {
		name     string
		candle   *v1.Candle
		mockFn   func(mocks *serviceMocks)
		assertFn func(t *testing.T, svc *Service, err error)
	}{
		{
			name:   "valid candle is cached, aggregated and queued",
			candle: testCandle(t0),
			mockFn: func(mocks *serviceMocks) {
				mocks.cache.EXPECT().
					SetCandles(gomock.Any(), "BTC/USDT", "1m", "binance", gomock.Any()).
					Return(nil)
			},
			assertFn: func(t *testing.T, svc *Service, err error) {
				assert.NoError(t, err)
				stats := svc.GetStatistics()
				assert.Equal(t, 1, stats.QueueSizes[v1.DataTypeCandles])
				assert.Contains(t, stats.Aggregator, "BTC/USDT")
			},
		},
		{
			name: "invalid candle is dropped without side effects",
			candle: &v1.Candle{
				Symbol:    "BTC/USDT",
				Timeframe: "1m",
				Timestamp: t0,
				Open:      -1,
				High:      50100,
				Low:       49900,
				Close:     50050,
				Volume:    12.5,
			},
			mockFn: func(mocks *serviceMocks) {},
			assertFn: func(t *testing.T, svc *Service, err error) {
				assert.NoError(t, err)
				stats := svc.GetStatistics()
				assert.Equal(t, 0, stats.QueueSizes[v1.DataTypeCandles])
				assert.Equal(t, int64(1), stats.Validation[v1.DataTypeCandles].InvalidRecords)
			},
		},
		{
			name: "missing exchange defaults before queueing",
			candle: &v1.Candle{
				Symbol:    "ETH/USDT",
				Timeframe: "1m",
				Timestamp: t0,
				Open:      3000,
				High:      3010,
				Low:       2990,
				Close:     3005,
				Volume:    4,
			},
			mockFn: func(mocks *serviceMocks) {
				mocks.cache.EXPECT().
					SetCandles(gomock.Any(), "ETH/USDT", "1m", v1.DefaultExchange, gomock.Any()).
					Return(nil)
			},
			assertFn: func(t *testing.T, svc *Service, err error) {
				assert.NoError(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mocks := newTestService(t, ctrl)
			tc.mockFn(mocks)

			err := svc.HandleCandle(context.Background(), tc.candle)
			tc.assertFn(t, svc, err)
		})
	}
}

func TestService_HandleCandle_PublishesEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestService(t, ctrl)
	mocks.cache.EXPECT().SetCandles(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	sub := mocks.bus.Subscribe(events.TypeCandle, events.TypeAggregatedCandle)
	defer mocks.bus.Unsubscribe(sub)

	err := svc.HandleCandle(context.Background(), testCandle(time.UnixMilli(1700000100000).UTC()))
	assert.NoError(t, err)

	// one candle event plus one aggregated event per target timeframe
	received := 0
	timeout := time.After(time.Second)
	for received < 3 {
		select {
		case <-sub.C():
			received++
		case <-timeout:
			t.Fatalf("expected 3 events, got %d", received)
		}
	}
}

func TestService_FlushRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestService(t, ctrl)
	ctx := context.Background()

	mocks.cache.EXPECT().SetCandles(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	c1 := testCandle(time.UnixMilli(1700000100000).UTC())
	c2 := testCandle(time.UnixMilli(1700000160000).UTC())
	assert.NoError(t, svc.HandleCandle(ctx, c1))
	assert.NoError(t, svc.HandleCandle(ctx, c2))

	var firstBatch []*v1.Candle
	gomock.InOrder(
		mocks.candleRepo.EXPECT().
			UpsertBatch(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, batch []*v1.Candle) error {
				firstBatch = batch
				return errors.New("store unavailable")
			}),
		mocks.candleRepo.EXPECT().
			UpsertBatch(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, batch []*v1.Candle) error {
				// the retried batch carries exactly the same rows
				assert.Equal(t, firstBatch, batch)
				return nil
			}),
	)

	svc.flush(ctx, v1.DataTypeCandles)
	assert.Equal(t, 2, svc.GetStatistics().QueueSizes[v1.DataTypeCandles])

	svc.flush(ctx, v1.DataTypeCandles)
	assert.Equal(t, 0, svc.GetStatistics().QueueSizes[v1.DataTypeCandles])
}

func TestService_FlushRespectsBatchSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestService(t, ctrl)
	svc.config.BatchSize = 1
	ctx := context.Background()

	mocks.cache.EXPECT().SetCandles(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	assert.NoError(t, svc.HandleCandle(ctx, testCandle(time.UnixMilli(1700000100000).UTC())))
	assert.NoError(t, svc.HandleCandle(ctx, testCandle(time.UnixMilli(1700000160000).UTC())))

	mocks.candleRepo.EXPECT().
		UpsertBatch(gomock.Any(), gomock.Len(1)).
		Return(nil)

	svc.flush(ctx, v1.DataTypeCandles)
	assert.Equal(t, 1, svc.GetStatistics().QueueSizes[v1.DataTypeCandles])
}

func TestService_StopDrainsDeepQueues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestService(t, ctrl)
	svc.config.BatchSize = 1
	ctx := context.Background()

	mocks.cache.EXPECT().SetCandles(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(3)
	assert.NoError(t, svc.HandleCandle(ctx, testCandle(time.UnixMilli(1700000100000).UTC())))
	assert.NoError(t, svc.HandleCandle(ctx, testCandle(time.UnixMilli(1700000160000).UTC())))
	assert.NoError(t, svc.HandleCandle(ctx, testCandle(time.UnixMilli(1700000220000).UTC())))

	mocks.candleRepo.EXPECT().
		UpsertBatch(gomock.Any(), gomock.Len(1)).
		Return(nil).
		Times(3)

	svc.Stop(ctx)
	assert.Equal(t, 0, svc.GetStatistics().QueueSizes[v1.DataTypeCandles])
}

func TestService_StopStopsOnStalledQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestService(t, ctrl)
	svc.config.BatchSize = 1
	ctx := context.Background()

	mocks.cache.EXPECT().SetCandles(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	assert.NoError(t, svc.HandleCandle(ctx, testCandle(time.UnixMilli(1700000100000).UTC())))
	assert.NoError(t, svc.HandleCandle(ctx, testCandle(time.UnixMilli(1700000160000).UTC())))

	// first batch is requeued, so the drain must give up instead of spinning
	mocks.candleRepo.EXPECT().
		UpsertBatch(gomock.Any(), gomock.Len(1)).
		Return(errors.New("store unavailable"))

	svc.Stop(ctx)
	assert.Equal(t, 2, svc.GetStatistics().QueueSizes[v1.DataTypeCandles])
}

func TestService_GetHistoricalCandles(t *testing.T) {
	t0 := time.UnixMilli(1700000100000).UTC()
	cached := []*v1.Candle{testCandle(t0)}

	testCases := []struct {
		name     string
		mockFn   func(mocks *serviceMocks)
		assertFn func(t *testing.T, candles []*v1.Candle, err error)
	}{
		{
			name: "cache hit returns immediately",
			mockFn: func(mocks *serviceMocks) {
				mocks.cache.EXPECT().
					GetCandles(gomock.Any(), "BTC/USDT", "1m", "binance").
					Return(cached, nil)
			},
			assertFn: func(t *testing.T, candles []*v1.Candle, err error) {
				assert.NoError(t, err)
				assert.Equal(t, cached, candles)
			},
		},
		{
			name: "cache miss fetches, filters invalid and caches",
			mockFn: func(mocks *serviceMocks) {
				mocks.cache.EXPECT().
					GetCandles(gomock.Any(), "BTC/USDT", "1m", "binance").
					Return(nil, nil)
				fetched := []*v1.Candle{
					testCandle(t0),
					{Symbol: "BTC/USDT", Timeframe: "1m", Timestamp: t0.Add(time.Minute), Open: -5, High: 1, Low: 1, Close: 1, Volume: 1},
				}
				mocks.exchange.EXPECT().
					GetCandles(gomock.Any(), "BTC/USDT", "1m", gomock.Any(), gomock.Any(), 500).
					Return(fetched, nil)
				mocks.cache.EXPECT().
					SetCandles(gomock.Any(), "BTC/USDT", "1m", "binance", gomock.Len(1)).
					Return(nil)
			},
			assertFn: func(t *testing.T, candles []*v1.Candle, err error) {
				assert.NoError(t, err)
				assert.Len(t, candles, 1)
			},
		},
		{
			name: "exchange failure propagates",
			mockFn: func(mocks *serviceMocks) {
				mocks.cache.EXPECT().
					GetCandles(gomock.Any(), "BTC/USDT", "1m", "binance").
					Return(nil, nil)
				mocks.exchange.EXPECT().
					GetCandles(gomock.Any(), "BTC/USDT", "1m", gomock.Any(), gomock.Any(), 500).
					Return(nil, errors.New("fetch failed"))
			},
			assertFn: func(t *testing.T, candles []*v1.Candle, err error) {
				assert.Error(t, err)
				assert.Nil(t, candles)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mocks := newTestService(t, ctrl)
			tc.mockFn(mocks)

			candles, err := svc.GetHistoricalCandles(context.Background(), "BTC/USDT", "1m", 0)
			tc.assertFn(t, candles, err)
		})
	}
}

func TestService_GetMultiTimeframeData_IsolatesFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestService(t, ctrl)
	t0 := time.UnixMilli(1700000100000).UTC()

	mocks.cache.EXPECT().
		GetCandles(gomock.Any(), "BTC/USDT", "1m", "binance").
		Return([]*v1.Candle{testCandle(t0)}, nil)
	mocks.cache.EXPECT().
		GetCandles(gomock.Any(), "BTC/USDT", "5m", "binance").
		Return(nil, nil)
	mocks.exchange.EXPECT().
		GetCandles(gomock.Any(), "BTC/USDT", "5m", gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("fetch failed"))

	out := svc.GetMultiTimeframeData(context.Background(), "BTC/USDT", []string{"1m", "5m"}, 0)

	assert.Len(t, out["1m"], 1)
	assert.Empty(t, out["5m"])
}

func TestService_HandleTicker(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestService(t, ctrl)

	ticker := &v1.Ticker{
		Symbol:    "BTC/USDT",
		Exchange:  "binance",
		Price:     50000,
		Volume:    10,
		Bid:       49990,
		Ask:       50010,
		Timestamp: time.Now().UTC(),
	}
	mocks.cache.EXPECT().SetTicker(gomock.Any(), ticker).Return(nil)

	err := svc.HandleTicker(context.Background(), ticker)
	assert.NoError(t, err)
	assert.Equal(t, 1, svc.GetStatistics().QueueSizes[v1.DataTypeTickers])
}

func TestService_HandleTrade_CachesRecentWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestService(t, ctrl)
	svc.config.RecentTradesCap = 2
	ctx := context.Background()

	mocks.cache.EXPECT().SetTrades(gomock.Any(), "BTC/USDT", "binance", gomock.Len(1)).Return(nil)
	mocks.cache.EXPECT().SetTrades(gomock.Any(), "BTC/USDT", "binance", gomock.Len(2)).Return(nil)
	mocks.cache.EXPECT().SetTrades(gomock.Any(), "BTC/USDT", "binance", gomock.Len(2)).Return(nil)

	for i := range 3 {
		err := svc.HandleTrade(ctx, &v1.Trade{
			Symbol:    "BTC/USDT",
			Exchange:  "binance",
			Timestamp: time.Now().UTC(),
			Price:     50000,
			Quantity:  1,
			Side:      "buy",
			TradeID:   string(rune('a' + i)),
		})
		assert.NoError(t, err)
	}

	assert.Equal(t, 3, svc.GetStatistics().QueueSizes[v1.DataTypeTrades])
}

func TestService_Subscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestService(t, ctrl)
	ctx := context.Background()

	mocks.exchange.EXPECT().SubscribeCandles(ctx, "BTC/USDT", "1m").Return(nil)
	mocks.exchange.EXPECT().SubscribeTickers(ctx, "BTC/USDT").Return(nil)

	err := svc.Subscribe(ctx, "binance", "BTC/USDT", "1m", v1.DataTypeCandles, v1.DataTypeTickers)
	assert.NoError(t, err)

	subs := svc.Subscriptions()
	assert.Contains(t, subs["binance"][v1.DataTypeCandles], "BTC/USDT")
	assert.Contains(t, subs["binance"][v1.DataTypeTickers], "BTC/USDT")
}

func TestService_GetRealtimeData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestService(t, ctrl)

	ticker := &v1.Ticker{Symbol: "BTC/USDT", Price: 50000}
	mocks.cache.EXPECT().GetTicker(gomock.Any(), "BTC/USDT", "binance").Return(ticker, nil)
	mocks.cache.EXPECT().GetOrderBook(gomock.Any(), "BTC/USDT", "binance").Return(nil, nil)
	mocks.cache.EXPECT().GetTrades(gomock.Any(), "BTC/USDT", "binance").Return(nil, nil)

	data, err := svc.GetRealtimeData(context.Background(), "BTC/USDT")
	assert.NoError(t, err)
	assert.Equal(t, ticker, data.Ticker)
	assert.Nil(t, data.OrderBook)
}
