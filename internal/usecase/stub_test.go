package usecase

import (
	"context"

	"github.com/nischitpatel/stock-price-analysis-system/internal/domain/models"
	domrepo "github.com/nischitpatel/stock-price-analysis-system/internal/domain/repository"
)

// stubMarket implements repository.MarketData for tests. Unset hooks return
// empty results.
type stubMarket struct {
	fundamentals func(symbol string, q domrepo.FundamentalsQuery) ([]models.VendorRow, error)
	prices       func(symbol string, q domrepo.PriceQuery) ([]models.PriceBar, error)
	quote        func(symbol string) (*models.Quote, error)
	summary      func(symbol string, modules []string) (models.QuoteSummary, error)
}

func (s *stubMarket) FundamentalsTimeSeries(_ context.Context, symbol string, q domrepo.FundamentalsQuery) ([]models.VendorRow, error) {
	if s.fundamentals == nil {
		return nil, nil
	}
	return s.fundamentals(symbol, q)
}

func (s *stubMarket) PriceSeries(_ context.Context, symbol string, q domrepo.PriceQuery) ([]models.PriceBar, error) {
	if s.prices == nil {
		return nil, nil
	}
	return s.prices(symbol, q)
}

func (s *stubMarket) Quote(_ context.Context, symbol string) (*models.Quote, error) {
	if s.quote == nil {
		return nil, nil
	}
	return s.quote(symbol)
}

func (s *stubMarket) QuoteSummary(_ context.Context, symbol string, modules []string) (models.QuoteSummary, error) {
	if s.summary == nil {
		return models.QuoteSummary{}, nil
	}
	return s.summary(symbol, modules)
}
