package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/tradesys/market-data-engine/internal/aggregator"
	"github.com/tradesys/market-data-engine/internal/infrastructure/cache"
	"github.com/tradesys/market-data-engine/internal/infrastructure/questdb"
	"github.com/tradesys/market-data-engine/internal/service"
	"github.com/tradesys/market-data-engine/internal/validator"
	"github.com/tradesys/market-data-engine/pkg/redis"
	"github.com/tradesys/market-data-engine/pkg/timeframe"
)

// Config represents the application configuration.
type Config struct {
	App         AppConfig         `envPrefix:"APP_"`
	QuestDB     questdb.Config    `envPrefix:"QUESTDB_"`
	Redis       redis.Config      `envPrefix:"REDIS_"`
	Cache       cache.Config      `envPrefix:"CACHE_"`
	MarketKafka MarketKafkaConfig `envPrefix:"MARKET_KAFKA_"`
	Timeframes  timeframe.Config  `envPrefix:"TIMEFRAME_"`
	Validation  validator.Config  `envPrefix:"VALIDATION_"`
	Aggregation aggregator.Config `envPrefix:"AGGREGATION_"`
	Service     service.Config    `envPrefix:"SERVICE_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"market-data-engine"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	EventBuffer int    `env:"EVENT_BUFFER" envDefault:"256"`
}

// MarketKafkaConfig represents the Kafka configuration for inbound
// normalized market data events.
type MarketKafkaConfig struct {
	Brokers       []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic         string   `env:"TOPIC" envDefault:"market-data"`
	ConsumerGroup string   `env:"CONSUMER_GROUP" envDefault:"market-data-engine"`
	MaxRetries    int      `env:"MAX_RETRIES" envDefault:"3"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
