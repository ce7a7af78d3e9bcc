package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/nischitpatel/stock-price-analysis-system/internal/domain/models"
	domrepo "github.com/nischitpatel/stock-price-analysis-system/internal/domain/repository"
)

func TestOwnershipCountryInferredFromSuffix(t *testing.T) {
	uc := NewOwnershipUseCase(&stubMarket{})
	res, err := uc.GetOwnershipPattern(context.Background(), "RELIANCE.NS")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.Country != "India" {
		t.Fatalf("expected India, got %s", res.Country)
	}
}

func TestOwnershipProfileCountryWins(t *testing.T) {
	provider := &stubMarket{
		summary: func(_ string, _ []string) (models.QuoteSummary, error) {
			return models.QuoteSummary{
				domrepo.ModuleSummaryProfile: {"country": "Germany"},
			}, nil
		},
	}
	uc := NewOwnershipUseCase(provider)
	res, err := uc.GetOwnershipPattern(context.Background(), "SAP.NS")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.Country != "Germany" {
		t.Fatalf("expected profile country to win, got %s", res.Country)
	}
}

func TestOwnershipSplitPartition(t *testing.T) {
	provider := &stubMarket{
		summary: func(_ string, _ []string) (models.QuoteSummary, error) {
			return models.QuoteSummary{
				domrepo.ModuleMajorHolders: {
					"heldByInsiders":     0.40,
					"heldByInstitutions": 0.20,
				},
				domrepo.ModuleInstitutions: {
					"ownershipList": []any{
						map[string]any{"country": "India", "pctHeld": 0.10},
					},
				},
				domrepo.ModuleFunds: {
					"ownershipList": []any{
						map[string]any{"country": "United States", "pctHeld": 0.05},
					},
				},
			}, nil
		},
	}
	uc := NewOwnershipUseCase(provider)
	res, err := uc.GetOwnershipPattern(context.Background(), "RELIANCE.NS")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	tt := res.Totals
	if tt.Promoters == nil || *tt.Promoters != 40 {
		t.Fatalf("unexpected promoters %v", tt.Promoters)
	}
	if tt.DII == nil || *tt.DII != 10 {
		t.Fatalf("unexpected dii %v", tt.DII)
	}
	if tt.FII == nil || *tt.FII != 5 {
		t.Fatalf("unexpected fii %v", tt.FII)
	}
	// Split preferred over the raw aggregate.
	if tt.Institutions == nil || *tt.Institutions != 15 {
		t.Fatalf("unexpected institutions %v", tt.Institutions)
	}
	if tt.Public == nil || *tt.Public != 45 {
		t.Fatalf("unexpected public %v", tt.Public)
	}
	if tt.Others == nil || *tt.Others != 0 {
		t.Fatalf("unexpected others %v", tt.Others)
	}

	sum := 0.0
	for _, v := range []*float64{tt.Promoters, tt.DII, tt.FII, tt.Public, tt.Others} {
		if v != nil {
			if *v < 0 || *v > 100 {
				t.Fatalf("component out of range: %v", *v)
			}
			sum += *v
		}
	}
	if sum > 100.0001 {
		t.Fatalf("partition exceeds 100: %v", sum)
	}
}

func TestOwnershipFallsBackToAggregateWithoutSplit(t *testing.T) {
	provider := &stubMarket{
		summary: func(_ string, _ []string) (models.QuoteSummary, error) {
			return models.QuoteSummary{
				domrepo.ModuleMajorHolders: {
					"heldByInsiders":     0.30,
					"heldByInstitutions": 0.50,
				},
			}, nil
		},
	}
	uc := NewOwnershipUseCase(provider)
	res, err := uc.GetOwnershipPattern(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	tt := res.Totals
	if tt.DII != nil || tt.FII != nil {
		t.Fatalf("expected no fabricated split")
	}
	if tt.Institutions == nil || *tt.Institutions != 50 {
		t.Fatalf("unexpected institutions %v", tt.Institutions)
	}
	if tt.Public == nil || *tt.Public != 20 {
		t.Fatalf("unexpected public %v", tt.Public)
	}
	if len(res.Notes) == 0 {
		t.Fatalf("expected explanatory notes")
	}
}

func TestOwnershipProviderFailureDegrades(t *testing.T) {
	provider := &stubMarket{
		summary: func(_ string, _ []string) (models.QuoteSummary, error) {
			return nil, errors.New("upstream down")
		},
	}
	uc := NewOwnershipUseCase(provider)
	res, err := uc.GetOwnershipPattern(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("expected degraded result, got error %v", err)
	}
	tt := res.Totals
	if tt.Promoters != nil || tt.DII != nil || tt.FII != nil || tt.Public != nil || tt.Institutions != nil {
		t.Fatalf("expected unknown components, got %+v", tt)
	}
	// Mechanical remainder rule: with no known components, others is 100.
	if tt.Others == nil || *tt.Others != 100 {
		t.Fatalf("unexpected others %v", tt.Others)
	}
}

func TestOwnershipPercentValuesAboveOnePassThrough(t *testing.T) {
	provider := &stubMarket{
		summary: func(_ string, _ []string) (models.QuoteSummary, error) {
			return models.QuoteSummary{
				domrepo.ModuleMajorHolders: {
					"heldByInsiders":     43.5, // already percent
					"heldByInstitutions": 120.0,
				},
			}, nil
		},
	}
	uc := NewOwnershipUseCase(provider)
	res, err := uc.GetOwnershipPattern(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.Totals.Promoters == nil || *res.Totals.Promoters != 43.5 {
		t.Fatalf("unexpected promoters %v", res.Totals.Promoters)
	}
	// Over-100 aggregates clamp.
	if res.Totals.Institutions == nil || *res.Totals.Institutions != 100 {
		t.Fatalf("unexpected institutions %v", res.Totals.Institutions)
	}
}
