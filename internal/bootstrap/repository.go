package bootstrap

import (
	"github.com/tradesys/market-data-engine/internal/infrastructure/cache"
	candleInfra "github.com/tradesys/market-data-engine/internal/infrastructure/questdb/candle"
	tickerInfra "github.com/tradesys/market-data-engine/internal/infrastructure/questdb/ticker"
	tradeInfra "github.com/tradesys/market-data-engine/internal/infrastructure/questdb/trade"
)

// Repository holds the storage-facing components.
type Repository struct {
	CandleRepository candleInfra.CandleRepository
	TickerRepository tickerInfra.TickerRepository
	TradeRepository  tradeInfra.TradeRepository
	MarketCache      cache.MarketCache
}

// registerRepository registers the repositories and the cache.
func (b *Bootstrap) registerRepository() {
	b.Repository.CandleRepository = candleInfra.NewRepository(b.QuestDB)
	b.Repository.TickerRepository = tickerInfra.NewRepository(b.QuestDB)
	b.Repository.TradeRepository = tradeInfra.NewRepository(b.QuestDB)
	b.Repository.MarketCache = cache.NewMarketCache(b.Redis, &b.Config.Cache, b.Logger)
}
