package service

import (
	"context"
	"sync"
	"time"

	"github.com/tradesys/market-data-engine/internal/aggregator"
	exchangev1 "github.com/tradesys/market-data-engine/internal/domain/exchange/v1"
	v1 "github.com/tradesys/market-data-engine/internal/domain/marketdata/v1"
	"github.com/tradesys/market-data-engine/internal/events"
	"github.com/tradesys/market-data-engine/internal/infrastructure/cache"
	"github.com/tradesys/market-data-engine/internal/infrastructure/questdb/candle"
	"github.com/tradesys/market-data-engine/internal/infrastructure/questdb/ticker"
	"github.com/tradesys/market-data-engine/internal/infrastructure/questdb/trade"
	"github.com/tradesys/market-data-engine/internal/validator"
	"github.com/tradesys/market-data-engine/pkg/errors"
	"github.com/tradesys/market-data-engine/pkg/logger"
)

// Service orchestrates ingestion: it validates inbound records, keeps the
// cache and aggregator current, queues rows for timed flushing to the
// durable store, and serves historical and realtime reads.
type Service struct {
	config     Config
	validator  *validator.Validator
	aggregator *aggregator.Aggregator
	candleRepo candle.CandleRepository
	tickerRepo ticker.TickerRepository
	tradeRepo  trade.TradeRepository
	cache      cache.MarketCache
	exchange   exchangev1.Manager
	bus        *events.Bus
	logger     logger.Interface

	mu          sync.Mutex
	candleQueue []*v1.Candle
	tickerQueue []*v1.Ticker
	tradeQueue  []*v1.Trade
	lastTrades  map[string][]*v1.Trade

	subMu         sync.RWMutex
	subscriptions map[string]map[v1.DataType]map[string]struct{}

	stopCh chan struct{}
	wg     sync.WaitGroup
	now    func() time.Time
}

// New creates a new ingestion service.
func New(
	config Config,
	val *validator.Validator,
	agg *aggregator.Aggregator,
	candleRepo candle.CandleRepository,
	tickerRepo ticker.TickerRepository,
	tradeRepo trade.TradeRepository,
	marketCache cache.MarketCache,
	exchange exchangev1.Manager,
	bus *events.Bus,
	log logger.Interface,
) *Service {
	return &Service{
		config:        config,
		validator:     val,
		aggregator:    agg,
		candleRepo:    candleRepo,
		tickerRepo:    tickerRepo,
		tradeRepo:     tradeRepo,
		cache:         marketCache,
		exchange:      exchange,
		bus:           bus,
		logger:        log,
		lastTrades:    make(map[string][]*v1.Trade),
		subscriptions: make(map[string]map[v1.DataType]map[string]struct{}),
		stopCh:        make(chan struct{}),
		now:           time.Now,
	}
}

// Start launches the flush and cleanup loops. It returns immediately.
func (s *Service) Start(ctx context.Context) {
	for _, dataType := range []v1.DataType{v1.DataTypeCandles, v1.DataTypeTickers, v1.DataTypeTrades} {
		s.wg.Add(1)
		go s.flushLoop(ctx, dataType)
	}

	s.wg.Add(1)
	go s.cleanupLoop(ctx)

	s.logger.Info("Ingestion service started", logger.Field{
		Key:   "flushInterval",
		Value: s.config.FlushInterval,
	}, logger.Field{
		Key:   "batchSize",
		Value: s.config.BatchSize,
	})
}

// Stop stops the background loops and performs a final flush of every queue.
func (s *Service) Stop(ctx context.Context) {
	close(s.stopCh)
	s.wg.Wait()

	for _, dataType := range []v1.DataType{v1.DataTypeCandles, v1.DataTypeTickers, v1.DataTypeTrades} {
		s.drain(ctx, dataType)
	}

	s.logger.Info("Ingestion service stopped")
}

// drain flushes one queue batch by batch until it is empty. A failed batch
// is requeued by flush, so a stalled queue size means the store is down;
// drain stops there and logs what is left behind.
func (s *Service) drain(ctx context.Context, dataType v1.DataType) {
	for {
		before := s.queueSize(dataType)
		if before == 0 {
			return
		}

		s.flush(ctx, dataType)

		after := s.queueSize(dataType)
		if after >= before {
			s.logger.Warn("Queue not drained on shutdown", logger.Field{
				Key:   "dataType",
				Value: string(dataType),
			}, logger.Field{
				Key:   "remaining",
				Value: after,
			})
			return
		}
	}
}

func (s *Service) queueSize(dataType v1.DataType) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch dataType {
	case v1.DataTypeCandles:
		return len(s.candleQueue)
	case v1.DataTypeTickers:
		return len(s.tickerQueue)
	case v1.DataTypeTrades:
		return len(s.tradeQueue)
	}
	return 0
}

// HandleCandle validates a candle, feeds the aggregator, refreshes the
// cache and queues the row for flushing. Invalid records are dropped and
// counted, never returned as errors.
func (s *Service) HandleCandle(ctx context.Context, c *v1.Candle) error {
	if c.Exchange == "" {
		c.Exchange = v1.DefaultExchange
	}

	result := s.validator.ValidateCandleDetailed(c)
	if !result.IsValid {
		s.logger.Debug("Dropping invalid candle", logger.Field{
			Key:   "symbol",
			Value: c.Symbol,
		}, logger.Field{
			Key:   "errors",
			Value: result.Errors,
		})
		return nil
	}

	if len(result.Warnings) > 0 {
		s.logger.Warn("Candle accepted with warnings", logger.Field{
			Key:   "symbol",
			Value: c.Symbol,
		}, logger.Field{
			Key:   "warnings",
			Value: result.Warnings,
		})
	}

	if err := s.aggregator.ProcessCandle(c); err != nil {
		s.logger.Warn("Dropping candle the aggregator rejected", logger.Field{
			Key:   "symbol",
			Value: c.Symbol,
		}, logger.Field{
			Key:   "timeframe",
			Value: c.Timeframe,
		}, logger.Field{
			Key:   "error",
			Value: err.Error(),
		})
		return nil
	}

	buffered := s.aggregator.GetCandles(c.Symbol, c.Timeframe, s.config.HistoryLimit)
	if err := s.cache.SetCandles(ctx, c.Symbol, c.Timeframe, c.Exchange, buffered); err != nil {
		s.logger.Error(errors.TracerFromError(err), logger.Field{
			Key:   "symbol",
			Value: c.Symbol,
		})
	}

	s.mu.Lock()
	s.candleQueue = append(s.candleQueue, c)
	s.mu.Unlock()

	s.bus.Publish(events.Event{Type: events.TypeCandle, Exchange: c.Exchange, Candle: c})
	return nil
}

// HandleTicker validates a ticker snapshot, caches it and queues it for
// flushing.
func (s *Service) HandleTicker(ctx context.Context, t *v1.Ticker) error {
	if t.Exchange == "" {
		t.Exchange = v1.DefaultExchange
	}

	result := s.validator.ValidateTickerDetailed(t)
	if !result.IsValid {
		s.logger.Debug("Dropping invalid ticker", logger.Field{
			Key:   "symbol",
			Value: t.Symbol,
		}, logger.Field{
			Key:   "errors",
			Value: result.Errors,
		})
		return nil
	}

	if err := s.cache.SetTicker(ctx, t); err != nil {
		s.logger.Error(errors.TracerFromError(err), logger.Field{
			Key:   "symbol",
			Value: t.Symbol,
		})
	}

	s.mu.Lock()
	s.tickerQueue = append(s.tickerQueue, t)
	s.mu.Unlock()

	s.bus.Publish(events.Event{Type: events.TypeTicker, Exchange: t.Exchange, Ticker: t})
	return nil
}

// HandleOrderBook validates an order book snapshot and caches it. Order
// books are not persisted; downstream consumers receive them as events.
func (s *Service) HandleOrderBook(ctx context.Context, book *v1.OrderBook) error {
	if book.Exchange == "" {
		book.Exchange = v1.DefaultExchange
	}

	result := s.validator.ValidateOrderBookDetailed(book)
	if !result.IsValid {
		s.logger.Debug("Dropping invalid order book", logger.Field{
			Key:   "symbol",
			Value: book.Symbol,
		}, logger.Field{
			Key:   "errors",
			Value: result.Errors,
		})
		return nil
	}

	if err := s.cache.SetOrderBook(ctx, book); err != nil {
		s.logger.Error(errors.TracerFromError(err), logger.Field{
			Key:   "symbol",
			Value: book.Symbol,
		})
	}

	s.bus.Publish(events.Event{Type: events.TypeOrderBook, Exchange: book.Exchange, OrderBook: book})
	return nil
}

// HandleTrade validates a trade, caches the recent-trades window and
// queues the row for flushing.
func (s *Service) HandleTrade(ctx context.Context, t *v1.Trade) error {
	if t.Exchange == "" {
		t.Exchange = v1.DefaultExchange
	}

	result := s.validator.ValidateTradeDetailed(t)
	if !result.IsValid {
		s.logger.Debug("Dropping invalid trade", logger.Field{
			Key:   "symbol",
			Value: t.Symbol,
		}, logger.Field{
			Key:   "errors",
			Value: result.Errors,
		})
		return nil
	}

	s.mu.Lock()
	s.tradeQueue = append(s.tradeQueue, t)
	recent := append(s.lastTrades[t.Symbol], t)
	if len(recent) > s.config.RecentTradesCap {
		recent = recent[len(recent)-s.config.RecentTradesCap:]
	}
	s.lastTrades[t.Symbol] = recent
	snapshot := make([]*v1.Trade, len(recent))
	copy(snapshot, recent)
	s.mu.Unlock()

	if err := s.cache.SetTrades(ctx, t.Symbol, t.Exchange, snapshot); err != nil {
		s.logger.Error(errors.TracerFromError(err), logger.Field{
			Key:   "symbol",
			Value: t.Symbol,
		})
	}

	s.bus.Publish(events.Event{Type: events.TypeTrade, Exchange: t.Exchange, Trade: t})
	return nil
}

// Subscribe registers the symbol for the given data kinds on the exchange
// and records it in the subscription registry.
func (s *Service) Subscribe(ctx context.Context, exchangeName, symbol, timeframe string, kinds ...v1.DataType) error {
	for _, kind := range kinds {
		var err error
		switch kind {
		case v1.DataTypeCandles:
			err = s.exchange.SubscribeCandles(ctx, symbol, timeframe)
		case v1.DataTypeTickers:
			err = s.exchange.SubscribeTickers(ctx, symbol)
		case v1.DataTypeOrderBooks:
			err = s.exchange.SubscribeOrderBooks(ctx, symbol)
		case v1.DataTypeTrades:
			err = s.exchange.SubscribeTrades(ctx, symbol)
		default:
			err = errors.NewErrorDetails("Unknown data type", string(errors.GeneralBadRequestError), string(kind))
		}
		if err != nil {
			return errors.TracerFromError(err)
		}

		s.subMu.Lock()
		byType, ok := s.subscriptions[exchangeName]
		if !ok {
			byType = make(map[v1.DataType]map[string]struct{})
			s.subscriptions[exchangeName] = byType
		}
		symbols, ok := byType[kind]
		if !ok {
			symbols = make(map[string]struct{})
			byType[kind] = symbols
		}
		symbols[symbol] = struct{}{}
		s.subMu.Unlock()
	}

	return nil
}

// Subscriptions returns a copy of the subscription registry.
func (s *Service) Subscriptions() map[string]map[v1.DataType][]string {
	s.subMu.RLock()
	defer s.subMu.RUnlock()

	out := make(map[string]map[v1.DataType][]string, len(s.subscriptions))
	for exchangeName, byType := range s.subscriptions {
		out[exchangeName] = make(map[v1.DataType][]string, len(byType))
		for kind, symbols := range byType {
			list := make([]string, 0, len(symbols))
			for symbol := range symbols {
				list = append(list, symbol)
			}
			out[exchangeName][kind] = list
		}
	}
	return out
}

// GetHistoricalCandles serves candles from the cache when possible,
// otherwise fetches from the exchange, filters invalid records, caches the
// result and persists it asynchronously.
func (s *Service) GetHistoricalCandles(ctx context.Context, symbol, timeframeName string, limit int) ([]*v1.Candle, error) {
	cached, err := s.cache.GetCandles(ctx, symbol, timeframeName, s.config.Exchange)
	if err != nil {
		s.logger.Error(errors.TracerFromError(err), logger.Field{
			Key:   "symbol",
			Value: symbol,
		})
	}
	if len(cached) > 0 {
		return cached, nil
	}

	if limit <= 0 {
		limit = s.config.HistoryLimit
	}

	to := s.now()
	from := to.Add(-s.config.QualityLookback)
	fetched, err := s.exchange.GetCandles(ctx, symbol, timeframeName, from, to, limit)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	valid := make([]*v1.Candle, 0, len(fetched))
	for _, c := range fetched {
		if c.Exchange == "" {
			c.Exchange = s.config.Exchange
		}
		if s.validator.ValidateCandle(c) {
			valid = append(valid, c)
		}
	}

	if len(valid) == 0 {
		return nil, nil
	}

	if err := s.cache.SetCandles(ctx, symbol, timeframeName, s.config.Exchange, valid); err != nil {
		s.logger.Error(errors.TracerFromError(err), logger.Field{
			Key:   "symbol",
			Value: symbol,
		})
	}

	s.mu.Lock()
	s.candleQueue = append(s.candleQueue, valid...)
	s.mu.Unlock()

	return valid, nil
}

// GetMultiTimeframeData fetches historical candles for every requested
// timeframe independently. A failing timeframe yields an empty result for
// that timeframe only.
func (s *Service) GetMultiTimeframeData(ctx context.Context, symbol string, timeframes []string, limit int) map[string][]*v1.Candle {
	out := make(map[string][]*v1.Candle, len(timeframes))
	for _, tf := range timeframes {
		candles, err := s.GetHistoricalCandles(ctx, symbol, tf, limit)
		if err != nil {
			s.logger.Warn("Historical fetch failed for timeframe", logger.Field{
				Key:   "symbol",
				Value: symbol,
			}, logger.Field{
				Key:   "timeframe",
				Value: tf,
			}, logger.Field{
				Key:   "error",
				Value: err.Error(),
			})
			out[tf] = []*v1.Candle{}
			continue
		}
		out[tf] = candles
	}
	return out
}

// RealtimeData is the latest cached view of one symbol.
type RealtimeData struct {
	Symbol    string        `json:"symbol"`
	Ticker    *v1.Ticker    `json:"ticker,omitempty"`
	OrderBook *v1.OrderBook `json:"orderBook,omitempty"`
	Trades    []*v1.Trade   `json:"trades,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// GetRealtimeData returns the latest cached ticker, order book and recent
// trades for a symbol. Missing pieces are left nil.
func (s *Service) GetRealtimeData(ctx context.Context, symbol string) (*RealtimeData, error) {
	data := &RealtimeData{
		Symbol:    symbol,
		Timestamp: s.now(),
	}

	ticker, err := s.cache.GetTicker(ctx, symbol, s.config.Exchange)
	if err != nil {
		s.logger.Error(errors.TracerFromError(err), logger.Field{Key: "symbol", Value: symbol})
	} else {
		data.Ticker = ticker
	}

	book, err := s.cache.GetOrderBook(ctx, symbol, s.config.Exchange)
	if err != nil {
		s.logger.Error(errors.TracerFromError(err), logger.Field{Key: "symbol", Value: symbol})
	} else {
		data.OrderBook = book
	}

	trades, err := s.cache.GetTrades(ctx, symbol, s.config.Exchange)
	if err != nil {
		s.logger.Error(errors.TracerFromError(err), logger.Field{Key: "symbol", Value: symbol})
	} else {
		data.Trades = trades
	}

	return data, nil
}

// Statistics is an operational snapshot of the service.
type Statistics struct {
	QueueSizes    map[v1.DataType]int                    `json:"queueSizes"`
	Aggregator    map[string]aggregator.SymbolStatistics `json:"aggregator"`
	Validation    map[v1.DataType]*v1.QualityMetrics     `json:"validation"`
	EventsDropped int64                                  `json:"eventsDropped"`
}

// GetStatistics reports queue depths, aggregator buffers and validation
// metrics.
func (s *Service) GetStatistics() Statistics {
	s.mu.Lock()
	queues := map[v1.DataType]int{
		v1.DataTypeCandles: len(s.candleQueue),
		v1.DataTypeTickers: len(s.tickerQueue),
		v1.DataTypeTrades:  len(s.tradeQueue),
	}
	s.mu.Unlock()

	return Statistics{
		QueueSizes:    queues,
		Aggregator:    s.aggregator.GetStatistics(),
		Validation:    s.validator.GetAllQualityMetrics(),
		EventsDropped: s.bus.Dropped(),
	}
}

func (s *Service) flushLoop(ctx context.Context, dataType v1.DataType) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.flush(ctx, dataType)
		}
	}
}

// flush drains up to BatchSize items from one queue and writes them to the
// durable store. A failed batch is prepended back onto its queue so the
// next tick retries it; the store's upsert path keeps retries idempotent.
func (s *Service) flush(ctx context.Context, dataType v1.DataType) {
	switch dataType {
	case v1.DataTypeCandles:
		s.mu.Lock()
		batch := takeBatch(&s.candleQueue, s.config.BatchSize)
		s.mu.Unlock()
		if len(batch) == 0 {
			return
		}
		if err := s.candleRepo.UpsertBatch(ctx, batch); err != nil {
			s.requeueCandles(batch, err)
		}
	case v1.DataTypeTickers:
		s.mu.Lock()
		batch := takeBatch(&s.tickerQueue, s.config.BatchSize)
		s.mu.Unlock()
		if len(batch) == 0 {
			return
		}
		if err := s.tickerRepo.StoreBatch(ctx, batch); err != nil {
			s.mu.Lock()
			s.tickerQueue = append(batch, s.tickerQueue...)
			s.mu.Unlock()
			s.logFlushFailure(dataType, len(batch), err)
		}
	case v1.DataTypeTrades:
		s.mu.Lock()
		batch := takeBatch(&s.tradeQueue, s.config.BatchSize)
		s.mu.Unlock()
		if len(batch) == 0 {
			return
		}
		if err := s.tradeRepo.StoreBatch(ctx, batch); err != nil {
			s.mu.Lock()
			s.tradeQueue = append(batch, s.tradeQueue...)
			s.mu.Unlock()
			s.logFlushFailure(dataType, len(batch), err)
		}
	}
}

func (s *Service) requeueCandles(batch []*v1.Candle, err error) {
	s.mu.Lock()
	s.candleQueue = append(batch, s.candleQueue...)
	s.mu.Unlock()
	s.logFlushFailure(v1.DataTypeCandles, len(batch), err)
}

func (s *Service) logFlushFailure(dataType v1.DataType, size int, err error) {
	s.logger.Error(errors.TracerFromError(
		errors.NewErrorDetails("Flush failed, batch requeued", string(errors.StoreFlushError), string(dataType)),
	), logger.Field{
		Key:   "dataType",
		Value: string(dataType),
	}, logger.Field{
		Key:   "batchSize",
		Value: size,
	}, logger.Field{
		Key:   "error",
		Value: err.Error(),
	})
}

func (s *Service) cleanupLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.aggregator.CleanupAll()
		}
	}
}

// takeBatch removes and returns up to limit items from the front of the
// queue.
func takeBatch[T any](queue *[]T, limit int) []T {
	n := len(*queue)
	if n == 0 {
		return nil
	}
	if limit > 0 && n > limit {
		n = limit
	}
	batch := make([]T, n)
	copy(batch, (*queue)[:n])
	*queue = (*queue)[n:]
	return batch
}
