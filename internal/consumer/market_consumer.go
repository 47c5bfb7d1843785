package consumer

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	v1 "github.com/tradesys/market-data-engine/internal/domain/marketdata/v1"
	"github.com/tradesys/market-data-engine/pkg/config"
	"github.com/tradesys/market-data-engine/pkg/logger"
)

// Orchestrator is the ingestion surface the consumer forwards decoded
// records to.
type Orchestrator interface {
	HandleCandle(ctx context.Context, candle *v1.Candle) error
	HandleTicker(ctx context.Context, ticker *v1.Ticker) error
	HandleOrderBook(ctx context.Context, book *v1.OrderBook) error
	HandleTrade(ctx context.Context, trade *v1.Trade) error
}

// MarketConsumer is the consumer for the inbound market data topic.
type MarketConsumer struct {
	kafkaReader *kafka.Reader
	logger      logger.Interface

	orchestrator Orchestrator
	msgChan      chan kafka.Message
}

// NewMarketConsumer creates a new MarketConsumer.
func NewMarketConsumer(cfg config.MarketKafkaConfig, log logger.Interface, orchestrator Orchestrator) *MarketConsumer {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.ConsumerGroup,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})
	return &MarketConsumer{
		kafkaReader:  kafkaReader,
		logger:       log,
		orchestrator: orchestrator,
		msgChan:      make(chan kafka.Message),
	}
}

// Start starts reading from Kafka and forwarding messages to the
// subscription loop.
func (c *MarketConsumer) Start(ctx context.Context) {
	c.logger.InfoContext(ctx, "starting market consumer", logger.Field{
		Key:   "action",
		Value: "market_consumer_start",
	})

	for {
		select {
		case <-ctx.Done():
			c.logger.InfoContext(ctx, "context done", logger.Field{
				Key:   "action",
				Value: "market_consumer_stop",
			})
			return
		default:
			msg, err := c.kafkaReader.ReadMessage(ctx)
			if err != nil {
				c.logger.ErrorContext(ctx, err, logger.Field{
					Key:   "action",
					Value: "read_message",
				})
				continue
			}

			c.msgChan <- msg
		}
	}
}

// Stop stops the MarketConsumer.
func (c *MarketConsumer) Stop() error {
	c.logger.InfoContext(context.Background(), "stopping market consumer", logger.Field{
		Key:   "action",
		Value: "market_consumer_stop",
	})
	return c.kafkaReader.Close()
}

// Subscribe drains the message channel, decoding each envelope and
// invoking the matching orchestrator handler.
func (c *MarketConsumer) Subscribe(ctx context.Context) {
	c.logger.InfoContext(ctx, "subscribing to market consumer", logger.Field{
		Key:   "action",
		Value: "market_consumer_subscribe",
	})

	for msg := range c.msgChan {
		var event v1.RawMarketEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "unmarshal_event",
			})
			continue
		}

		if err := c.handleEvent(ctx, &event); err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "handle_event",
			})
		}

		if err := c.kafkaReader.CommitMessages(ctx, msg); err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "commit_message",
			})
		}
	}
}

func (c *MarketConsumer) handleEvent(ctx context.Context, event *v1.RawMarketEvent) error {
	switch event.Type {
	case v1.DataTypeCandles:
		candle := &v1.Candle{}
		if err := json.Unmarshal(event.Payload, candle); err != nil {
			return err
		}
		if candle.Exchange == "" {
			candle.Exchange = event.Exchange
		}
		return c.orchestrator.HandleCandle(ctx, candle)
	case v1.DataTypeTickers:
		ticker := &v1.Ticker{}
		if err := json.Unmarshal(event.Payload, ticker); err != nil {
			return err
		}
		if ticker.Exchange == "" {
			ticker.Exchange = event.Exchange
		}
		return c.orchestrator.HandleTicker(ctx, ticker)
	case v1.DataTypeOrderBooks:
		book := &v1.OrderBook{}
		if err := json.Unmarshal(event.Payload, book); err != nil {
			return err
		}
		if book.Exchange == "" {
			book.Exchange = event.Exchange
		}
		return c.orchestrator.HandleOrderBook(ctx, book)
	case v1.DataTypeTrades:
		trade := &v1.Trade{}
		if err := json.Unmarshal(event.Payload, trade); err != nil {
			return err
		}
		if trade.Exchange == "" {
			trade.Exchange = event.Exchange
		}
		return c.orchestrator.HandleTrade(ctx, trade)
	default:
		c.logger.Warn("unknown event type", logger.Field{
			Key:   "type",
			Value: string(event.Type),
		})
		return nil
	}
}
