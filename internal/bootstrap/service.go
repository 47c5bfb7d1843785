package bootstrap

import (
	"github.com/tradesys/market-data-engine/internal/aggregator"
	"github.com/tradesys/market-data-engine/internal/consumer"
	"github.com/tradesys/market-data-engine/internal/events"
	"github.com/tradesys/market-data-engine/internal/service"
	"github.com/tradesys/market-data-engine/internal/validator"
)

// Service holds the processing components.
type Service struct {
	Bus        *events.Bus
	Validator  *validator.Validator
	Aggregator *aggregator.Aggregator
	Ingestion  *service.Service
	Consumer   *consumer.MarketConsumer
}

// registerService registers the event bus, validator, aggregator,
// ingestion service and consumer.
func (b *Bootstrap) registerService() error {
	targets, err := b.Config.Timeframes.GetTargetTimeframes()
	if err != nil {
		return err
	}

	b.Service.Bus = events.NewBus(b.Config.App.EventBuffer)
	b.Service.Validator = validator.New(b.Config.Validation)
	b.Service.Aggregator = aggregator.New(b.Config.Aggregation, targets, b.Service.Bus, b.Logger)
	b.Service.Ingestion = service.New(
		b.Config.Service,
		b.Service.Validator,
		b.Service.Aggregator,
		b.Repository.CandleRepository,
		b.Repository.TickerRepository,
		b.Repository.TradeRepository,
		b.Repository.MarketCache,
		b.Exchange,
		b.Service.Bus,
		b.Logger,
	)
	b.Service.Consumer = consumer.NewMarketConsumer(b.Config.MarketKafka, b.Logger, b.Service.Ingestion)

	return nil
}
