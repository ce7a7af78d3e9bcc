package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nischitpatel/stock-price-analysis-system/internal/domain/models"
	domrepo "github.com/nischitpatel/stock-price-analysis-system/internal/domain/repository"
	fin "github.com/nischitpatel/stock-price-analysis-system/internal/services/fundamentals"
	"github.com/nischitpatel/stock-price-analysis-system/pkg/util"
)

const (
	defaultValuationLimit = 8

	// Price series padding around the statement window, so a trading day
	// exists near each boundary.
	pricePadBefore = 10
	pricePadAfter  = 2

	// How far back to walk from a period end looking for a close.
	priceLookbackDays = 10

	// Quarters in a trailing-twelve-month window.
	ttmQuarters = 4
)

// ValuationUseCase reconciles income, balance and price series into a
// P/E & P/B history.
type ValuationUseCase struct {
	provider domrepo.MarketData
	now      func() time.Time
}

func NewValuationUseCase(provider domrepo.MarketData) *ValuationUseCase {
	return &ValuationUseCase{provider: provider, now: time.Now}
}

type ValuationParams struct {
	Type           domrepo.ReportType
	From           string
	To             string
	Limit          int
	TTM            bool
	IncludeCurrent bool
}

// periodIncome and periodBalance are the light projections merged per period.
type periodIncome struct {
	endDate       string
	epsDiluted    *float64
	sharesDiluted *float64
}

type periodBalance struct {
	endDate      string
	equity       *float64
	sharesIssued *float64
}

type mergedPeriod struct {
	endDate       string
	epsDiluted    *float64
	sharesDiluted *float64
	equity        *float64
	sharesIssued  *float64
}

// GetValuationHistory builds the descending-by-date valuation series,
// optionally appending a synthetic "as of now" point.
func (uc *ValuationUseCase) GetValuationHistory(ctx context.Context, symbol string, p ValuationParams) (*models.ValuationHistory, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if !domrepo.IsValidReportType(p.Type) {
		return nil, fmt.Errorf("invalid report type %q", p.Type)
	}
	if p.Limit <= 0 {
		p.Limit = defaultValuationLimit
	}
	start, end := fin.PeriodRange(p.Type, p.From, p.To, uc.now())

	// Income and balance fetches are independent; join before merging.
	type fetched struct {
		name string
		rows []models.VendorRow
		err  error
	}
	ch := make(chan fetched, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		rows, err := uc.provider.FundamentalsTimeSeries(ctx, symbol, domrepo.FundamentalsQuery{
			Type: p.Type, Module: domrepo.ModuleFinancials, PeriodStart: start, PeriodEnd: end,
		})
		ch <- fetched{"income", rows, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		rows, err := uc.provider.FundamentalsTimeSeries(ctx, symbol, domrepo.FundamentalsQuery{
			Type: p.Type, Module: domrepo.ModuleBalanceSheet, PeriodStart: start, PeriodEnd: end,
		})
		ch <- fetched{"balance", rows, err}
	}()

	go func() { wg.Wait(); close(ch) }()

	var incRows, balRows []models.VendorRow
	for f := range ch {
		if f.err != nil {
			return nil, fmt.Errorf("fetch %s rows: %w", f.name, f.err)
		}
		switch f.name {
		case "income":
			incRows = f.rows
		case "balance":
			balRows = f.rows
		}
	}

	prefix := p.Type.Prefix()
	merged := mergeByEndDate(incomeProjection(incRows, prefix), balanceProjection(balRows, prefix))

	priceMap, err := uc.priceMap(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	series := make([]models.ValuationPoint, 0, len(merged)+1)
	for i, m := range merged {
		price := closeOnOrBefore(m.endDate, priceMap)

		eps := m.epsDiluted
		if p.TTM && p.Type == domrepo.ReportQuarterly {
			eps = ttmWindow(merged, i)
		}

		shares := firstKnown(m.sharesIssued, m.sharesDiluted)
		bvps := div(m.equity, shares)

		series = append(series, models.ValuationPoint{
			EndDate:    m.endDate,
			PriceClose: price,
			EPS:        eps,
			PE:         divPos(price, eps),
			BVPS:       bvps,
			PB:         divPos(price, bvps),
		})
	}

	if p.IncludeCurrent {
		series = append(series, uc.currentSnapshot(ctx, symbol))
	}

	sort.Slice(series, func(i, j int) bool { return series[i].EndDate > series[j].EndDate })
	if len(series) > p.Limit {
		series = series[:p.Limit]
	}

	return &models.ValuationHistory{
		Symbol:      symbol,
		Type:        string(p.Type),
		TTM:         p.TTM,
		PeriodStart: start,
		PeriodEnd:   end,
		Count:       len(series),
		Series:      series,
	}, nil
}

func incomeProjection(rows []models.VendorRow, prefix string) []periodIncome {
	out := make([]periodIncome, 0, len(rows))
	for _, row := range rows {
		if row == nil || (fin.TypeTag(row) != "FINANCIALS" && !fin.HasPeriodType(row)) {
			continue
		}
		endDate := fin.EndDate(row)
		if endDate == "" {
			continue
		}
		r := fin.NewRowReader(row, prefix)
		out = append(out, periodIncome{
			endDate:       endDate,
			epsDiluted:    r.Number(fin.AliasEPSDiluted...),
			sharesDiluted: r.Number(fin.AliasSharesDiluted...),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].endDate < out[j].endDate })
	return out
}

func balanceProjection(rows []models.VendorRow, prefix string) []periodBalance {
	out := make([]periodBalance, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		endDate := fin.EndDate(row)
		if endDate == "" {
			continue
		}
		r := fin.NewRowReader(row, prefix)
		out = append(out, periodBalance{
			endDate:      endDate,
			equity:       r.Number(fin.AliasStockholderEquity...),
			sharesIssued: r.Number(fin.AliasSharesIssued...),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].endDate < out[j].endDate })
	return out
}

// mergeByEndDate outer-joins the two projections on the end-date string. A
// period present on only one side keeps the other side's fields unknown.
// Result is chronological (oldest first) so the TTM window can slide forward.
func mergeByEndDate(inc []periodIncome, bal []periodBalance) []mergedPeriod {
	byDate := make(map[string]*mergedPeriod, len(inc)+len(bal))
	get := func(endDate string) *mergedPeriod {
		if m, ok := byDate[endDate]; ok {
			return m
		}
		m := &mergedPeriod{endDate: endDate}
		byDate[endDate] = m
		return m
	}
	for _, r := range inc {
		m := get(r.endDate)
		m.epsDiluted = r.epsDiluted
		m.sharesDiluted = r.sharesDiluted
	}
	for _, r := range bal {
		m := get(r.endDate)
		m.equity = r.equity
		m.sharesIssued = r.sharesIssued
	}

	out := make([]mergedPeriod, 0, len(byDate))
	for _, m := range byDate {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].endDate < out[j].endDate })
	return out
}

// ttmWindow sums diluted EPS over the four-point window ending at idx. Any
// unknown value in the window makes the whole sum unknown.
func ttmWindow(periods []mergedPeriod, idx int) *float64 {
	if idx < ttmQuarters-1 {
		return nil
	}
	sum := 0.0
	for k := idx; k > idx-ttmQuarters; k-- {
		v := periods[k].epsDiluted
		if v == nil {
			return nil
		}
		sum += *v
	}
	return &sum
}

// priceMap fetches daily closes over the padded statement window, keyed by
// calendar day.
func (uc *ValuationUseCase) priceMap(ctx context.Context, symbol, start, end string) (map[string]float64, error) {
	s, ok := util.ParseYMD(start)
	if !ok {
		return nil, fmt.Errorf("bad period start %q", start)
	}
	e, ok := util.ParseYMD(end)
	if !ok {
		return nil, fmt.Errorf("bad period end %q", end)
	}

	bars, err := uc.provider.PriceSeries(ctx, symbol, domrepo.PriceQuery{
		Interval:    "1d",
		PeriodStart: util.FormatYMD(s.AddDate(0, 0, -pricePadBefore)),
		PeriodEnd:   util.FormatYMD(e.AddDate(0, 0, pricePadAfter)),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch price series: %w", err)
	}

	m := make(map[string]float64, len(bars))
	for _, b := range bars {
		m[util.FormatYMD(b.Date)] = b.Close
	}
	return m, nil
}

// closeOnOrBefore walks back day by day from the period end until a close is
// found, giving up after the lookback window.
func closeOnOrBefore(endDate string, prices map[string]float64) *float64 {
	t, ok := util.ParseTime(endDate)
	if !ok {
		return nil
	}
	for i := 0; i < priceLookbackDays; i++ {
		if c, ok := prices[util.FormatYMD(t)]; ok {
			return &c
		}
		t = t.AddDate(0, 0, -1)
	}
	return nil
}

// currentSnapshot builds the synthetic "as of now" point. The four source
// fetches are independent and joined concurrently; each one degrades to
// unknown on failure instead of aborting the series. Vendor-reported ratios
// are preferred; missing ones are derived from price and fundamentals.
func (uc *ValuationUseCase) currentSnapshot(ctx context.Context, symbol string) models.ValuationPoint {
	type item struct {
		name string
		a, b *float64
	}
	ch := make(chan item, 4)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		var price *float64
		if q, err := uc.provider.Quote(ctx, symbol); err == nil && q != nil {
			price = q.RegularMarketPrice
		}
		ch <- item{name: "quote", a: price}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		ch <- item{name: "eps", a: uc.trailingEPS(ctx, symbol)}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		ch <- item{name: "bvps", a: uc.latestBVPS(ctx, symbol)}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		pe, pb := uc.vendorRatios(ctx, symbol)
		ch <- item{name: "ratios", a: pe, b: pb}
	}()

	go func() { wg.Wait(); close(ch) }()

	var price, epsTTM, bvps, peNow, pbNow *float64
	for it := range ch {
		switch it.name {
		case "quote":
			price = it.a
		case "eps":
			epsTTM = it.a
		case "bvps":
			bvps = it.a
		case "ratios":
			peNow, pbNow = it.a, it.b
		}
	}

	if peNow == nil {
		peNow = divPos(price, epsTTM)
	}
	if pbNow == nil {
		pbNow = divPos(price, bvps)
	}

	return models.ValuationPoint{
		EndDate:    util.FormatISO(uc.now()),
		PriceClose: price,
		EPS:        epsTTM,
		PE:         peNow,
		BVPS:       bvps,
		PB:         pbNow,
	}
}

// trailingEPS computes TTM EPS from the four most recent quarterly income
// rows over a two-year lookback. Unknown when fewer than four quarters exist
// or any quarter's EPS is unknown.
func (uc *ValuationUseCase) trailingEPS(ctx context.Context, symbol string) *float64 {
	now := uc.now()
	rows, err := uc.provider.FundamentalsTimeSeries(ctx, symbol, domrepo.FundamentalsQuery{
		Type:        domrepo.ReportQuarterly,
		Module:      domrepo.ModuleFinancials,
		PeriodStart: util.FormatYMD(now.AddDate(-2, 0, 0)),
		PeriodEnd:   util.FormatYMD(now),
	})
	if err != nil {
		return nil
	}

	inc := incomeProjection(rows, domrepo.ReportQuarterly.Prefix())
	if len(inc) < ttmQuarters {
		return nil
	}
	sum := 0.0
	for _, q := range inc[len(inc)-ttmQuarters:] {
		if q.epsDiluted == nil {
			return nil
		}
		sum += *q.epsDiluted
	}
	return &sum
}

// latestBVPS computes book value per share from the most recent quarterly
// balance row.
func (uc *ValuationUseCase) latestBVPS(ctx context.Context, symbol string) *float64 {
	now := uc.now()
	rows, err := uc.provider.FundamentalsTimeSeries(ctx, symbol, domrepo.FundamentalsQuery{
		Type:        domrepo.ReportQuarterly,
		Module:      domrepo.ModuleBalanceSheet,
		PeriodStart: util.FormatYMD(now.AddDate(-2, 0, 0)),
		PeriodEnd:   util.FormatYMD(now),
	})
	if err != nil {
		return nil
	}

	bal := balanceProjection(rows, domrepo.ReportQuarterly.Prefix())
	if len(bal) == 0 {
		return nil
	}
	latest := bal[len(bal)-1]
	return div(latest.equity, latest.sharesIssued)
}

// vendorRatios reads the provider's own trailing P/E and price-to-book, the
// preferred source of truth for the current point.
func (uc *ValuationUseCase) vendorRatios(ctx context.Context, symbol string) (pe, pb *float64) {
	qs, err := uc.provider.QuoteSummary(ctx, symbol, []string{
		domrepo.ModuleKeyStatistics, domrepo.ModuleSummaryDetail,
	})
	if err != nil {
		return nil, nil
	}
	ks := fin.NewRowReader(qs[domrepo.ModuleKeyStatistics], "")
	sd := fin.NewRowReader(qs[domrepo.ModuleSummaryDetail], "")
	pe = firstKnown(ks.Number("TrailingPE"), sd.Number("TrailingPE"))
	pb = firstKnown(ks.Number("PriceToBook"), sd.Number("PriceToBook"))
	return pe, pb
}
