package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nischitpatel/stock-price-analysis-system/internal/domain/models"
	domrepo "github.com/nischitpatel/stock-price-analysis-system/internal/domain/repository"
	fin "github.com/nischitpatel/stock-price-analysis-system/internal/services/fundamentals"
	"github.com/nischitpatel/stock-price-analysis-system/pkg/util"
)

// OwnershipUseCase reconciles holder breakdowns into a percentage partition:
// promoters, DII, FII, public and a non-negative remainder.
type OwnershipUseCase struct {
	provider domrepo.MarketData
	now      func() time.Time
}

func NewOwnershipUseCase(provider domrepo.MarketData) *OwnershipUseCase {
	return &OwnershipUseCase{provider: provider, now: time.Now}
}

// Issuer country by exchange suffix, used when the profile carries none.
var exchangeCountries = []struct {
	suffix  string
	country string
}{
	{".NS", "India"},
	{".BO", "India"},
	{".L", "United Kingdom"},
	{".HK", "Hong Kong"},
	{".T", "Japan"},
	{".TO", "Canada"},
	{".V", "Canada"},
	{".AX", "Australia"},
	{".SS", "China"},
	{".TW", "Taiwan"},
}

// GetOwnershipPattern builds the shareholding partition for one symbol. A
// provider failure degrades to an empty payload rather than an error: the
// partition then reports every component as unknown.
func (uc *OwnershipUseCase) GetOwnershipPattern(ctx context.Context, symbol string) (*models.OwnershipPattern, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}

	qs, err := uc.provider.QuoteSummary(ctx, symbol, []string{
		domrepo.ModuleMajorHolders,
		domrepo.ModuleInstitutions,
		domrepo.ModuleFunds,
		domrepo.ModuleSummaryProfile,
	})
	if err != nil {
		qs = models.QuoteSummary{}
	}

	country := issuerCountry(symbol, qs[domrepo.ModuleSummaryProfile])

	mh := fin.NewRowReader(qs[domrepo.ModuleMajorHolders], "")
	promoters := toPct(mh.Number("HeldByInsiders", "InsidersPercentHeld"))
	instTotal := toPct(mh.Number("HeldByInstitutions", "InstitutionsPercentHeld"))

	holders := append(holderList(qs[domrepo.ModuleInstitutions]), holderList(qs[domrepo.ModuleFunds])...)
	dii := sumHolderPct(holders, func(c string) bool { return c == country })
	fii := sumHolderPct(holders, func(c string) bool { return c != "" && c != country })

	// Prefer the DII/FII split when it yields anything; never fabricate a
	// split from a single aggregate.
	hasSplit := dii > 0 || fii > 0
	var institutions *float64
	if hasSplit {
		institutions = ptr(dii + fii)
	} else {
		institutions = instTotal
	}

	// Public is a complement, computed only when both inputs are known.
	var public *float64
	if promoters != nil && institutions != nil {
		public = ptr(100 - *promoters - *institutions)
	}

	totals := models.OwnershipTotals{
		Promoters:    clampPct(promoters),
		Public:       clampPct(public),
		Institutions: clampPct(institutions),
	}
	if hasSplit {
		totals.DII = clampPct(ptr(dii))
		totals.FII = clampPct(ptr(fii))
	}

	// Others absorbs rounding slack and unclassified holdings.
	knownSum := 0.0
	for _, v := range []*float64{totals.Promoters, totals.DII, totals.FII, totals.Public} {
		if v != nil {
			knownSum += *v
		}
	}
	totals.Others = clampPct(ptr(100 - knownSum))

	notes := make([]string, 0, 2)
	if hasSplit {
		notes = append(notes, "DII/FII split computed by aggregating institution and fund holders by country versus issuer country.")
	} else {
		notes = append(notes, "DII/FII split was not available from holders data for this symbol; dii and fii set to null.")
	}
	notes = append(notes, "Promoters approximated from the vendor insider-held percentage, which may differ from local definitions for some markets.")

	return &models.OwnershipPattern{
		Symbol:  symbol,
		Country: country,
		Units:   "percent",
		AsOf:    util.FormatISO(uc.now()),
		Totals:  totals,
		Notes:   notes,
	}, nil
}

func issuerCountry(symbol string, profile models.VendorRow) string {
	if c, ok := profile["country"].(string); ok && c != "" {
		return c
	}
	s := strings.ToUpper(symbol)
	for _, e := range exchangeCountries {
		if strings.HasSuffix(s, e.suffix) {
			return e.country
		}
	}
	return "United States"
}

// holderList extracts the holder rows from an ownership module payload.
func holderList(m models.VendorRow) []models.VendorRow {
	for _, key := range []string{"ownershipList", "holders"} {
		raw, ok := m[key].([]any)
		if !ok {
			continue
		}
		out := make([]models.VendorRow, 0, len(raw))
		for _, v := range raw {
			if h, ok := v.(map[string]any); ok {
				out = append(out, models.VendorRow(h))
			}
		}
		return out
	}
	return nil
}

func holderCountry(h models.VendorRow) string {
	if c, ok := h["country"].(string); ok && c != "" {
		return c
	}
	if c, ok := h["location"].(string); ok {
		return c
	}
	return ""
}

// sumHolderPct totals the held percentage of holders whose country matches.
func sumHolderPct(holders []models.VendorRow, match func(country string) bool) float64 {
	total := 0.0
	for _, h := range holders {
		if !match(holderCountry(h)) {
			continue
		}
		r := fin.NewRowReader(h, "")
		if v := toPct(r.Number("PctHeld", "PercentHeld", "PercentageHeld")); v != nil {
			total += *v
		}
	}
	return total
}

// toPct normalizes a vendor percentage to 0..100: values at or below 1 are
// fractions and scale by 100, larger ones are already percent.
func toPct(v *float64) *float64 {
	if v == nil {
		return nil
	}
	if *v <= 1 {
		return ptr(*v * 100)
	}
	return v
}

func clampPct(v *float64) *float64 {
	if v == nil {
		return nil
	}
	switch {
	case *v < 0:
		return ptr(0)
	case *v > 100:
		return ptr(100)
	default:
		return v
	}
}
