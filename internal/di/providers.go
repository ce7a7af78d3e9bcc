package di

import (
	"fmt"

	"github.com/nischitpatel/stock-price-analysis-system/internal/domain/repository"
	"github.com/nischitpatel/stock-price-analysis-system/internal/handler/api"
	"github.com/nischitpatel/stock-price-analysis-system/internal/service/yahoo"
	"github.com/nischitpatel/stock-price-analysis-system/internal/usecase"
	"github.com/nischitpatel/stock-price-analysis-system/pkg/cache"
	"github.com/nischitpatel/stock-price-analysis-system/pkg/config"
	xhttp "github.com/nischitpatel/stock-price-analysis-system/pkg/http"
	applogger "github.com/nischitpatel/stock-price-analysis-system/pkg/logger"
	"github.com/nischitpatel/stock-price-analysis-system/pkg/metrics"
	"github.com/nischitpatel/stock-price-analysis-system/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := cfg.Logging.Level
	if level == "" {
		level = "info"
	}
	format := cfg.Logging.Format
	if format == "" {
		format = "console"
	}
	output := cfg.Logging.Output
	if output == "" {
		output = "stdout"
	}
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: output})
}

// ProvideCache creates the provider-response cache backend.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Backend {
	case "redis":
		redisOpts := []cache.RedisOption{
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		}
		if cfg.Cache.Redis.Prefix != "" {
			redisOpts = append(redisOpts, cache.WithRedisPrefix(cfg.Cache.Redis.Prefix))
		}
		c, err := cache.NewRedisCache(redisOpts...)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	case "memory", "":
		memOpts := []cache.MemoryOption{}
		if cfg.Cache.Memory.MaxSize > 0 {
			memOpts = append(memOpts, cache.WithMemoryMaxSize(cfg.Cache.Memory.MaxSize))
		}
		return cache.NewMemoryCache(memOpts...), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideMarketData creates the upstream provider client.
func ProvideMarketData(
	cfg *config.Config,
	cacheSvc cache.Service,
	m repository.Metrics,
	logger *applogger.Logger,
) repository.MarketData {
	return yahoo.New(yahoo.Config{
		BaseURL:   cfg.Yahoo.BaseURL,
		UserAgent: cfg.Yahoo.UserAgent,
		Timeout:   cfg.Yahoo.Timeout,
		TTL: yahoo.TTLConfig{
			Fundamentals: cfg.Cache.TTL.Fundamentals,
			Prices:       cfg.Cache.TTL.Prices,
			Summary:      cfg.Cache.TTL.Summary,
			Quote:        cfg.Cache.TTL.Quote,
		},
	}, cacheSvc, m, logger)
}

// ProvideFundamentalsUseCase creates the statement normalizer use case.
func ProvideFundamentalsUseCase(provider repository.MarketData) *usecase.FundamentalsUseCase {
	return usecase.NewFundamentalsUseCase(provider)
}

// ProvideValuationUseCase creates the valuation reconciler use case.
func ProvideValuationUseCase(provider repository.MarketData) *usecase.ValuationUseCase {
	return usecase.NewValuationUseCase(provider)
}

// ProvideOwnershipUseCase creates the ownership reconciler use case.
func ProvideOwnershipUseCase(provider repository.MarketData) *usecase.OwnershipUseCase {
	return usecase.NewOwnershipUseCase(provider)
}

// ProvideHandler creates the API route handler.
func ProvideHandler(
	logger *applogger.Logger,
	fund *usecase.FundamentalsUseCase,
	val *usecase.ValuationUseCase,
	own *usecase.OwnershipUseCase,
) xhttp.Handler {
	return api.NewStocksEchoHandler(logger, fund, val, own)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	cacheSvc cache.Service,
) *server.App {
	return server.New(cfg, logger, handler, cacheSvc)
}
