package bootstrap

import (
	exchangev1 "github.com/tradesys/market-data-engine/internal/domain/exchange/v1"
	"github.com/tradesys/market-data-engine/internal/infrastructure/questdb"
	"github.com/tradesys/market-data-engine/pkg/config"
	"github.com/tradesys/market-data-engine/pkg/logger"
	"github.com/tradesys/market-data-engine/pkg/redis"
)

// Bootstrap wires the market data engine together.
type Bootstrap struct {
	Logger     logger.Interface
	Config     *config.Config
	Repository Repository
	Service    Service

	QuestDB  questdb.Client
	Redis    redis.Client
	Exchange exchangev1.Manager
}

// BootstrapConfig is the config for the bootstrap.
type BootstrapConfig struct {
	Config   *config.Config
	Logger   logger.Interface
	QuestDB  questdb.Client
	Redis    redis.Client
	Exchange exchangev1.Manager
}

// Init initializes the bootstrap.
func (b *Bootstrap) Init(cfg BootstrapConfig) (*Bootstrap, error) {
	b.Config = cfg.Config
	b.Logger = cfg.Logger
	b.QuestDB = cfg.QuestDB
	b.Redis = cfg.Redis
	b.Exchange = cfg.Exchange
	if b.Exchange == nil {
		b.Exchange = exchangev1.NewNoopManager()
	}

	b.registerRepository()
	if err := b.registerService(); err != nil {
		return nil, err
	}

	return b, nil
}
