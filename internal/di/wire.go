//go:build wireinject
// +build wireinject

package di

import (
	"github.com/nischitpatel/stock-price-analysis-system/pkg/config"
	"github.com/nischitpatel/stock-price-analysis-system/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient services
		ProvideLogger,
		ProvideCache,
		ProvideMetrics,

		// Provider client
		ProvideMarketData,

		// Use cases
		ProvideFundamentalsUseCase,
		ProvideValuationUseCase,
		ProvideOwnershipUseCase,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
