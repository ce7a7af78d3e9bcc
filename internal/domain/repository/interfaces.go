package repository

import (
	"context"

	"github.com/nischitpatel/stock-price-analysis-system/internal/domain/models"
)

// Provider module names understood by the market-data vendor.
const (
	ModuleBalanceSheet   = "balance-sheet"
	ModuleFinancials     = "financials"
	ModuleMajorHolders   = "majorHoldersBreakdown"
	ModuleInstitutions   = "institutionOwnership"
	ModuleFunds          = "fundOwnership"
	ModuleSummaryProfile = "summaryProfile"
	ModuleKeyStatistics  = "defaultKeyStatistics"
	ModuleSummaryDetail  = "summaryDetail"
)

// FundamentalsQuery selects one statement module over a date range.
type FundamentalsQuery struct {
	Type        ReportType
	Module      string
	PeriodStart string // YYYY-MM-DD
	PeriodEnd   string // YYYY-MM-DD
}

// PriceQuery selects a bar series over a date range.
type PriceQuery struct {
	Interval    string // e.g. "1d"
	PeriodStart string // YYYY-MM-DD
	PeriodEnd   string // YYYY-MM-DD
}

// MarketData is the upstream provider capability. Implementations own all
// transport, auth and retry concerns; callers only see rows, bars and quotes.
type MarketData interface {
	FundamentalsTimeSeries(ctx context.Context, symbol string, q FundamentalsQuery) ([]models.VendorRow, error)
	PriceSeries(ctx context.Context, symbol string, q PriceQuery) ([]models.PriceBar, error)
	Quote(ctx context.Context, symbol string) (*models.Quote, error)
	QuoteSummary(ctx context.Context, symbol string, modules []string) (models.QuoteSummary, error)
}

type Metrics interface {
	RecordProviderQuery(endpoint, symbol string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
