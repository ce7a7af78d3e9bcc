package fundamentals

import (
	"testing"

	"github.com/nischitpatel/stock-price-analysis-system/internal/domain/models"
)

func TestNumberPrefixedFormWins(t *testing.T) {
	row := models.VendorRow{
		"annualTotalAssets": 5.0,
		"TotalAssets":       9.0,
	}
	r := NewRowReader(row, "annual")
	got := r.Number("TotalAssets")
	if got == nil || *got != 5 {
		t.Fatalf("expected prefixed value 5, got %v", got)
	}
}

func TestNumberCaseInsensitive(t *testing.T) {
	row := models.VendorRow{"totalrevenue": 123.0}
	r := NewRowReader(row, "annual")
	got := r.Number("TotalRevenue")
	if got == nil || *got != 123 {
		t.Fatalf("expected 123, got %v", got)
	}
}

func TestNumberAliasOrder(t *testing.T) {
	row := models.VendorRow{
		"CommonStockEquity":  200.0,
		"StockholdersEquity": 100.0,
	}
	r := NewRowReader(row, "annual")
	got := r.Number("StockholdersEquity", "CommonStockEquity")
	if got == nil || *got != 100 {
		t.Fatalf("expected first alias to win, got %v", got)
	}
}

func TestNumberTypeMismatchIsAbsent(t *testing.T) {
	row := models.VendorRow{
		"TotalAssets": "not a number",
		"Assets":      42.0,
	}
	r := NewRowReader(row, "annual")
	got := r.Number("TotalAssets", "Assets")
	if got == nil || *got != 42 {
		t.Fatalf("expected string field skipped, got %v", got)
	}
}

func TestNumberEmptyRow(t *testing.T) {
	r := NewRowReader(nil, "annual")
	if got := r.Number("TotalAssets"); got != nil {
		t.Fatalf("expected nil for empty row, got %v", got)
	}
}

func TestEndDateFromString(t *testing.T) {
	row := models.VendorRow{"date": "2023-12-31"}
	if got := EndDate(row); got != "2023-12-31T00:00:00.000Z" {
		t.Fatalf("unexpected end date %q", got)
	}
}

func TestEndDateFromEpochSeconds(t *testing.T) {
	row := models.VendorRow{"date": 1703980800.0} // 2023-12-31T00:00:00Z
	if got := EndDate(row); got != "2023-12-31T00:00:00.000Z" {
		t.Fatalf("unexpected end date %q", got)
	}
}

func TestEndDateMissing(t *testing.T) {
	if got := EndDate(models.VendorRow{"TotalAssets": 1.0}); got != "" {
		t.Fatalf("expected empty end date, got %q", got)
	}
}
