package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/nischitpatel/stock-price-analysis-system/internal/domain/models"
	domrepo "github.com/nischitpatel/stock-price-analysis-system/internal/domain/repository"
	fin "github.com/nischitpatel/stock-price-analysis-system/internal/services/fundamentals"
)

const defaultStatementLimit = 6

// FundamentalsUseCase turns raw vendor statement rows into normalized,
// ratio-enriched records.
type FundamentalsUseCase struct {
	provider domrepo.MarketData
	now      func() time.Time
}

func NewFundamentalsUseCase(provider domrepo.MarketData) *FundamentalsUseCase {
	return &FundamentalsUseCase{provider: provider, now: time.Now}
}

type StatementParams struct {
	Type  domrepo.ReportType
	From  string
	To    string
	Limit int
}

type BalanceSheetResult struct {
	Symbol      string                         `json:"symbol"`
	Type        string                         `json:"type"`
	PeriodStart string                         `json:"period1"`
	PeriodEnd   string                         `json:"period2"`
	Count       int                            `json:"count"`
	Statements  []models.BalanceSheetStatement `json:"statements"`
}

type IncomeStatementResult struct {
	Symbol      string                   `json:"symbol"`
	Type        string                   `json:"type"`
	PeriodStart string                   `json:"period1"`
	PeriodEnd   string                   `json:"period2"`
	Count       int                      `json:"count"`
	Statements  []models.IncomeStatement `json:"statements"`
}

// RawStatementResult is the unmodified vendor payload plus the computed window.
type RawStatementResult struct {
	Symbol      string             `json:"symbol"`
	Type        string             `json:"type"`
	Module      string             `json:"module"`
	PeriodStart string             `json:"period1"`
	PeriodEnd   string             `json:"period2"`
	Count       int                `json:"count"`
	Rows        []models.VendorRow `json:"data"`
}

func (p *StatementParams) normalize() error {
	if !domrepo.IsValidReportType(p.Type) {
		return fmt.Errorf("invalid report type %q", p.Type)
	}
	if p.Limit <= 0 {
		p.Limit = defaultStatementLimit
	}
	return nil
}

// GetBalanceSheet fetches and normalizes balance-sheet rows for one symbol.
func (uc *FundamentalsUseCase) GetBalanceSheet(ctx context.Context, symbol string, p StatementParams) (*BalanceSheetResult, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if err := p.normalize(); err != nil {
		return nil, err
	}
	start, end := fin.PeriodRange(p.Type, p.From, p.To, uc.now())

	rows, err := uc.provider.FundamentalsTimeSeries(ctx, symbol, domrepo.FundamentalsQuery{
		Type:        p.Type,
		Module:      domrepo.ModuleBalanceSheet,
		PeriodStart: start,
		PeriodEnd:   end,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch balance sheet: %w", err)
	}

	statements := normalizeBalanceRows(rows, p.Type.Prefix(), p.Limit)
	return &BalanceSheetResult{
		Symbol:      symbol,
		Type:        string(p.Type),
		PeriodStart: start,
		PeriodEnd:   end,
		Count:       len(statements),
		Statements:  statements,
	}, nil
}

// GetIncomeStatement fetches and normalizes income-statement rows for one symbol.
func (uc *FundamentalsUseCase) GetIncomeStatement(ctx context.Context, symbol string, p StatementParams) (*IncomeStatementResult, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if err := p.normalize(); err != nil {
		return nil, err
	}
	start, end := fin.PeriodRange(p.Type, p.From, p.To, uc.now())

	rows, err := uc.provider.FundamentalsTimeSeries(ctx, symbol, domrepo.FundamentalsQuery{
		Type:        p.Type,
		Module:      domrepo.ModuleFinancials,
		PeriodStart: start,
		PeriodEnd:   end,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch income statement: %w", err)
	}

	statements := normalizeIncomeRows(rows, p.Type.Prefix(), p.Limit)
	return &IncomeStatementResult{
		Symbol:      symbol,
		Type:        string(p.Type),
		PeriodStart: start,
		PeriodEnd:   end,
		Count:       len(statements),
		Statements:  statements,
	}, nil
}

// GetBalanceSheetRaw returns the vendor rows untouched.
func (uc *FundamentalsUseCase) GetBalanceSheetRaw(ctx context.Context, symbol string, p StatementParams) (*RawStatementResult, error) {
	return uc.getRaw(ctx, symbol, p, domrepo.ModuleBalanceSheet)
}

// GetIncomeStatementRaw returns the vendor rows untouched.
func (uc *FundamentalsUseCase) GetIncomeStatementRaw(ctx context.Context, symbol string, p StatementParams) (*RawStatementResult, error) {
	return uc.getRaw(ctx, symbol, p, domrepo.ModuleFinancials)
}

func (uc *FundamentalsUseCase) getRaw(ctx context.Context, symbol string, p StatementParams, module string) (*RawStatementResult, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if err := p.normalize(); err != nil {
		return nil, err
	}
	start, end := fin.PeriodRange(p.Type, p.From, p.To, uc.now())

	rows, err := uc.provider.FundamentalsTimeSeries(ctx, symbol, domrepo.FundamentalsQuery{
		Type:        p.Type,
		Module:      module,
		PeriodStart: start,
		PeriodEnd:   end,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", module, err)
	}
	return &RawStatementResult{
		Symbol:      symbol,
		Type:        string(p.Type),
		Module:      module,
		PeriodStart: start,
		PeriodEnd:   end,
		Count:       len(rows),
		Rows:        rows,
	}, nil
}

func normalizeBalanceRows(rows []models.VendorRow, prefix string, limit int) []models.BalanceSheetStatement {
	out := make([]models.BalanceSheetStatement, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		endDate := fin.EndDate(row)
		// Vendor payloads are not uniformly tagged; accept a type tag or a bare date.
		if fin.TypeTag(row) != "BALANCE_SHEET" && endDate == "" {
			continue
		}
		if endDate == "" {
			continue
		}

		r := fin.NewRowReader(row, prefix)
		s := models.BalanceSheetStatement{
			EndDate:                endDate,
			TotalAssets:            r.Number(fin.AliasTotalAssets...),
			TotalLiab:              r.Number(fin.AliasTotalLiab...),
			TotalStockholderEquity: r.Number(fin.AliasStockholderEquity...),
			TotalCurrentAssets:     r.Number(fin.AliasCurrentAssets...),
			TotalCurrentLiab:       r.Number(fin.AliasCurrentLiab...),
			Cash:                   r.Number(fin.AliasCash...),
			NetReceivables:         r.Number(fin.AliasNetReceivables...),
			Inventory:              r.Number(fin.AliasInventory...),
			LongTermDebt:           r.Number(fin.AliasLongTermDebt...),
			ShortTermDebt:          r.Number(fin.AliasShortTermDebt...),
			AccountsPayable:        r.Number(fin.AliasAccountsPayable...),
			PropertyPlantEquipment: r.Number(fin.AliasPropertyPlantEquipment...),
			GoodWill:               r.Number(fin.AliasGoodwill...),
			IntangibleAssets:       r.Number(fin.AliasIntangibles...),
			OtherAssets:            r.Number(fin.AliasOtherAssets...),
			OtherCurrentAssets:     r.Number(fin.AliasOtherCurrentAssets...),
			OtherLiab:              r.Number(fin.AliasOtherLiab...),
			OtherCurrentLiab:       r.Number(fin.AliasOtherCurrentLiab...),
			MinorityInterest:       r.Number(fin.AliasMinorityInterest...),
		}

		s.NetWorkingCapital = sub(s.TotalCurrentAssets, s.TotalCurrentLiab)
		s.CurrentRatio = div(s.TotalCurrentAssets, s.TotalCurrentLiab)
		s.QuickRatio = quickRatio(s.Cash, s.NetReceivables, s.TotalCurrentLiab)
		s.DebtToEquity = div(s.TotalLiab, s.TotalStockholderEquity)

		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].EndDate > out[j].EndDate })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// quickRatio sums only the known numerator operands. This is a deliberate
// best-effort departure from strict unknown propagation: a missing cash or
// receivables figure contributes zero instead of poisoning the ratio.
func quickRatio(cash, receivables, currentLiab *float64) *float64 {
	quick := 0.0
	for _, v := range []*float64{cash, receivables} {
		if v != nil {
			quick += *v
		}
	}
	if quick == 0 {
		return nil
	}
	return div(ptr(quick), currentLiab)
}

func normalizeIncomeRows(rows []models.VendorRow, prefix string, limit int) []models.IncomeStatement {
	out := make([]models.IncomeStatement, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		if fin.TypeTag(row) != "FINANCIALS" && !fin.HasPeriodType(row) {
			continue
		}
		endDate := fin.EndDate(row)
		if endDate == "" {
			continue
		}

		r := fin.NewRowReader(row, prefix)
		s := models.IncomeStatement{
			EndDate:          endDate,
			TotalRevenue:     r.Number(fin.AliasTotalRevenue...),
			CostOfRevenue:    r.Number(fin.AliasCostOfRevenue...),
			GrossProfit:      r.Number(fin.AliasGrossProfit...),
			OperatingExpense: r.Number(fin.AliasOperatingExpense...),
			SGA:              r.Number(fin.AliasSGA...),
			RnD:              r.Number(fin.AliasRnD...),
			OperatingIncome:  r.Number(fin.AliasOperatingIncome...),
			EBIT:             r.Number(fin.AliasEBIT...),
			EBITDA:           r.Number(fin.AliasEBITDA...),
			InterestExpense:  r.Number(fin.AliasInterestExpense...),
			IncomeTaxExpense: r.Number(fin.AliasIncomeTaxExpense...),
			NetIncome:        r.Number(fin.AliasNetIncome...),
			EPSDiluted:       r.Number(fin.AliasEPSDiluted...),
			SharesDiluted:    r.Number(fin.AliasSharesDiluted...),
		}

		s.GrossMargin = div(s.GrossProfit, s.TotalRevenue)
		s.OperatingMargin = div(s.OperatingIncome, s.TotalRevenue)
		s.NetMargin = div(s.NetIncome, s.TotalRevenue)
		s.InterestCoverage = interestCoverage(s.EBIT, s.InterestExpense)

		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].EndDate > out[j].EndDate })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// interestCoverage divides EBIT by the magnitude of interest expense, which
// vendors report with inconsistent sign.
func interestCoverage(ebit, interestExpense *float64) *float64 {
	if ebit == nil || interestExpense == nil || *interestExpense == 0 {
		return nil
	}
	abs := *interestExpense
	if abs < 0 {
		abs = -abs
	}
	return ptr(*ebit / abs)
}
