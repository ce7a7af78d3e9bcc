package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/nischitpatel/stock-price-analysis-system/internal/domain/models"
	domrepo "github.com/nischitpatel/stock-price-analysis-system/internal/domain/repository"
)

func quarterlyIncomeRow(date string, eps float64) models.VendorRow {
	return models.VendorRow{
		"date":                date,
		"periodType":          "3M",
		"quarterlyDilutedEPS": eps,
	}
}

func quarterlyBalanceRow(date string, equity, shares float64) models.VendorRow {
	return models.VendorRow{
		"date":                          date,
		"quarterlyStockholdersEquity":   equity,
		"quarterlyOrdinarySharesNumber": shares,
	}
}

func TestValuationTTMSlidingWindow(t *testing.T) {
	income := []models.VendorRow{
		quarterlyIncomeRow("2023-03-31", 1.0),
		quarterlyIncomeRow("2023-06-30", 1.1),
		quarterlyIncomeRow("2023-09-30", 1.2),
		quarterlyIncomeRow("2023-12-31", 1.3),
	}
	balance := []models.VendorRow{
		quarterlyBalanceRow("2023-12-31", 1000, 100),
	}
	provider := &stubMarket{
		fundamentals: func(_ string, q domrepo.FundamentalsQuery) ([]models.VendorRow, error) {
			if q.Module == domrepo.ModuleFinancials {
				return income, nil
			}
			return balance, nil
		},
		prices: func(_ string, _ domrepo.PriceQuery) ([]models.PriceBar, error) {
			return []models.PriceBar{
				{Date: time.Date(2023, 12, 29, 0, 0, 0, 0, time.UTC), Close: 92.0},
			}, nil
		},
	}
	uc := NewValuationUseCase(provider)

	res, err := uc.GetValuationHistory(context.Background(), "ACME", ValuationParams{
		Type: domrepo.ReportQuarterly,
		From: "2023-01-01",
		To:   "2024-01-01",
		TTM:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(res.Series) != 4 {
		t.Fatalf("expected 4 points, got %d", len(res.Series))
	}

	newest := res.Series[0]
	if newest.EndDate != "2023-12-31T00:00:00.000Z" {
		t.Fatalf("unexpected newest point %s", newest.EndDate)
	}
	if newest.EPS == nil || math.Abs(*newest.EPS-4.6) > 1e-9 {
		t.Fatalf("expected TTM EPS 4.6, got %v", newest.EPS)
	}
	// Close for 2023-12-31 found by walking back to 2023-12-29.
	if newest.PriceClose == nil || *newest.PriceClose != 92 {
		t.Fatalf("expected close 92, got %v", newest.PriceClose)
	}
	if newest.PE == nil || math.Abs(*newest.PE-92/4.6) > 1e-9 {
		t.Fatalf("unexpected pe %v", newest.PE)
	}
	if newest.BVPS == nil || *newest.BVPS != 10 {
		t.Fatalf("unexpected bvps %v", newest.BVPS)
	}
	if newest.PB == nil || *newest.PB != 9.2 {
		t.Fatalf("unexpected pb %v", newest.PB)
	}

	// Earlier points lack a full 4-quarter window.
	for _, pt := range res.Series[1:] {
		if pt.EPS != nil {
			t.Fatalf("expected unknown TTM EPS for %s, got %v", pt.EndDate, pt.EPS)
		}
	}
}

func TestValuationTTMUnknownQuarterPoisonsWindow(t *testing.T) {
	income := []models.VendorRow{
		quarterlyIncomeRow("2023-03-31", 1.0),
		{"date": "2023-06-30", "periodType": "3M"}, // EPS missing
		quarterlyIncomeRow("2023-09-30", 1.2),
		quarterlyIncomeRow("2023-12-31", 1.3),
	}
	provider := &stubMarket{
		fundamentals: func(_ string, q domrepo.FundamentalsQuery) ([]models.VendorRow, error) {
			if q.Module == domrepo.ModuleFinancials {
				return income, nil
			}
			return nil, nil
		},
	}
	uc := NewValuationUseCase(provider)

	res, err := uc.GetValuationHistory(context.Background(), "ACME", ValuationParams{
		Type: domrepo.ReportQuarterly,
		From: "2023-01-01",
		To:   "2024-01-01",
		TTM:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.Series[0].EPS != nil {
		t.Fatalf("expected unknown TTM EPS, got %v", res.Series[0].EPS)
	}
}

func TestValuationNegativeEPSYieldsUnknownPE(t *testing.T) {
	provider := &stubMarket{
		fundamentals: func(_ string, q domrepo.FundamentalsQuery) ([]models.VendorRow, error) {
			if q.Module == domrepo.ModuleFinancials {
				return []models.VendorRow{{
					"date":             "2023-12-31",
					"periodType":       "12M",
					"annualDilutedEPS": -2.0,
				}}, nil
			}
			return nil, nil
		},
		prices: func(_ string, _ domrepo.PriceQuery) ([]models.PriceBar, error) {
			return []models.PriceBar{
				{Date: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), Close: 100.0},
			}, nil
		},
	}
	uc := NewValuationUseCase(provider)

	res, err := uc.GetValuationHistory(context.Background(), "ACME", ValuationParams{
		Type: domrepo.ReportAnnual,
		From: "2023-01-01",
		To:   "2024-01-01",
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	pt := res.Series[0]
	if pt.PriceClose == nil || *pt.PriceClose != 100 {
		t.Fatalf("expected price 100, got %v", pt.PriceClose)
	}
	if pt.EPS == nil || *pt.EPS != -2 {
		t.Fatalf("expected eps -2, got %v", pt.EPS)
	}
	if pt.PE != nil {
		t.Fatalf("expected unknown pe for negative eps, got %v", *pt.PE)
	}
}

func TestValuationOuterJoinKeepsOneSidedPeriods(t *testing.T) {
	provider := &stubMarket{
		fundamentals: func(_ string, q domrepo.FundamentalsQuery) ([]models.VendorRow, error) {
			if q.Module == domrepo.ModuleFinancials {
				return []models.VendorRow{quarterlyIncomeRow("2023-06-30", 1.5)}, nil
			}
			return []models.VendorRow{quarterlyBalanceRow("2023-09-30", 500, 50)}, nil
		},
	}
	uc := NewValuationUseCase(provider)

	res, err := uc.GetValuationHistory(context.Background(), "ACME", ValuationParams{
		Type: domrepo.ReportQuarterly,
		From: "2023-01-01",
		To:   "2024-01-01",
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(res.Series) != 2 {
		t.Fatalf("expected both one-sided periods, got %d", len(res.Series))
	}
	balanceOnly := res.Series[0] // 2023-09-30
	if balanceOnly.EPS != nil {
		t.Fatalf("expected unknown eps on balance-only period")
	}
	if balanceOnly.BVPS == nil || *balanceOnly.BVPS != 10 {
		t.Fatalf("unexpected bvps %v", balanceOnly.BVPS)
	}
	incomeOnly := res.Series[1] // 2023-06-30
	if incomeOnly.EPS == nil || *incomeOnly.EPS != 1.5 {
		t.Fatalf("unexpected eps %v", incomeOnly.EPS)
	}
	if incomeOnly.BVPS != nil {
		t.Fatalf("expected unknown bvps on income-only period")
	}
}

func TestValuationIncomeFetchFailureIsHard(t *testing.T) {
	provider := &stubMarket{
		fundamentals: func(_ string, q domrepo.FundamentalsQuery) ([]models.VendorRow, error) {
			if q.Module == domrepo.ModuleFinancials {
				return nil, errors.New("upstream down")
			}
			return nil, nil
		},
	}
	uc := NewValuationUseCase(provider)
	if _, err := uc.GetValuationHistory(context.Background(), "ACME", ValuationParams{Type: domrepo.ReportAnnual}); err == nil {
		t.Fatalf("expected hard failure")
	}
}

func TestCurrentSnapshotSurvivesQuoteFailure(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	provider := &stubMarket{
		fundamentals: func(_ string, q domrepo.FundamentalsQuery) ([]models.VendorRow, error) {
			// Historical fetches use the annual type; only the snapshot
			// sub-fetches ask for quarterly data.
			if q.Type != domrepo.ReportQuarterly {
				return nil, nil
			}
			if q.Module == domrepo.ModuleFinancials {
				return []models.VendorRow{
					quarterlyIncomeRow("2023-09-30", 1.0),
					quarterlyIncomeRow("2023-12-31", 1.1),
					quarterlyIncomeRow("2024-03-31", 1.2),
					quarterlyIncomeRow("2023-06-30", 1.3),
				}, nil
			}
			return []models.VendorRow{quarterlyBalanceRow("2024-03-31", 2000, 100)}, nil
		},
		quote: func(string) (*models.Quote, error) {
			return nil, errors.New("quote unavailable")
		},
		summary: func(_ string, _ []string) (models.QuoteSummary, error) {
			return models.QuoteSummary{
				domrepo.ModuleKeyStatistics: {"trailingPE": 21.5},
				domrepo.ModuleSummaryDetail: {"priceToBook": 3.25},
			}, nil
		},
	}
	uc := NewValuationUseCase(provider)
	uc.now = func() time.Time { return now }

	res, err := uc.GetValuationHistory(context.Background(), "ACME", ValuationParams{
		Type:           domrepo.ReportAnnual,
		IncludeCurrent: true,
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(res.Series) != 1 {
		t.Fatalf("expected only the current point, got %d", len(res.Series))
	}
	cur := res.Series[0]
	if cur.EndDate != "2024-06-15T00:00:00.000Z" {
		t.Fatalf("expected snapshot dated at reconciliation time, got %s", cur.EndDate)
	}
	if cur.PriceClose != nil {
		t.Fatalf("expected unknown price after quote failure, got %v", *cur.PriceClose)
	}
	if cur.EPS == nil || math.Abs(*cur.EPS-4.6) > 1e-9 {
		t.Fatalf("expected TTM EPS 4.6, got %v", cur.EPS)
	}
	if cur.BVPS == nil || *cur.BVPS != 20 {
		t.Fatalf("expected latest bvps 20, got %v", cur.BVPS)
	}
	// Vendor-reported ratios preferred over derived ones.
	if cur.PE == nil || *cur.PE != 21.5 {
		t.Fatalf("unexpected pe %v", cur.PE)
	}
	if cur.PB == nil || *cur.PB != 3.25 {
		t.Fatalf("unexpected pb %v", cur.PB)
	}
}

func TestCurrentSnapshotDerivesRatiosWhenVendorMissing(t *testing.T) {
	provider := &stubMarket{
		fundamentals: func(_ string, q domrepo.FundamentalsQuery) ([]models.VendorRow, error) {
			if q.Type != domrepo.ReportQuarterly {
				return nil, nil
			}
			if q.Module == domrepo.ModuleFinancials {
				return []models.VendorRow{
					quarterlyIncomeRow("2023-06-30", 1.0),
					quarterlyIncomeRow("2023-09-30", 1.0),
					quarterlyIncomeRow("2023-12-31", 1.0),
					quarterlyIncomeRow("2024-03-31", 1.0),
				}, nil
			}
			return []models.VendorRow{quarterlyBalanceRow("2024-03-31", 1000, 100)}, nil
		},
		quote: func(string) (*models.Quote, error) {
			return &models.Quote{Symbol: "ACME", RegularMarketPrice: ptr(100)}, nil
		},
		summary: func(_ string, _ []string) (models.QuoteSummary, error) {
			return nil, errors.New("summary unavailable")
		},
	}
	uc := NewValuationUseCase(provider)

	res, err := uc.GetValuationHistory(context.Background(), "ACME", ValuationParams{
		Type:           domrepo.ReportAnnual,
		IncludeCurrent: true,
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	cur := res.Series[0]
	if cur.PE == nil || *cur.PE != 25 {
		t.Fatalf("expected derived pe 25, got %v", cur.PE)
	}
	if cur.PB == nil || *cur.PB != 10 {
		t.Fatalf("expected derived pb 10, got %v", cur.PB)
	}
}

func TestValuationSortAndLimit(t *testing.T) {
	income := []models.VendorRow{
		quarterlyIncomeRow("2023-03-31", 1.0),
		quarterlyIncomeRow("2023-06-30", 1.1),
		quarterlyIncomeRow("2023-09-30", 1.2),
		quarterlyIncomeRow("2023-12-31", 1.3),
	}
	provider := &stubMarket{
		fundamentals: func(_ string, q domrepo.FundamentalsQuery) ([]models.VendorRow, error) {
			if q.Module == domrepo.ModuleFinancials {
				return income, nil
			}
			return nil, nil
		},
	}
	uc := NewValuationUseCase(provider)

	res, err := uc.GetValuationHistory(context.Background(), "ACME", ValuationParams{
		Type:  domrepo.ReportQuarterly,
		From:  "2023-01-01",
		To:    "2024-01-01",
		Limit: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(res.Series) != 2 {
		t.Fatalf("expected limit applied, got %d", len(res.Series))
	}
	for i := 0; i+1 < len(res.Series); i++ {
		if res.Series[i].EndDate < res.Series[i+1].EndDate {
			t.Fatalf("expected descending series")
		}
	}
}
