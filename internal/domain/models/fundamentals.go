package models

// VendorRow is one raw record from the provider: vendor-labeled fields mapping
// to numbers, strings or dates. Field names vary by report type and vendor
// revision; rows are read-only input and never mutated.
type VendorRow map[string]any

// QuoteSummary maps a provider module name to its raw payload.
type QuoteSummary map[string]VendorRow

// BalanceSheetStatement is one reporting period of normalized balance-sheet
// data. Nil means the concept could not be resolved in the vendor row; zero
// means the vendor reported zero.
type BalanceSheetStatement struct {
	EndDate string `json:"endDate"`

	TotalAssets            *float64 `json:"totalAssets"`
	TotalLiab              *float64 `json:"totalLiab"`
	TotalStockholderEquity *float64 `json:"totalStockholderEquity"`
	TotalCurrentAssets     *float64 `json:"totalCurrentAssets"`
	TotalCurrentLiab       *float64 `json:"totalCurrentLiabilities"`
	Cash                   *float64 `json:"cash"`
	NetReceivables         *float64 `json:"netReceivables"`
	Inventory              *float64 `json:"inventory"`
	LongTermDebt           *float64 `json:"longTermDebt"`
	ShortTermDebt          *float64 `json:"shortTermDebt"`
	AccountsPayable        *float64 `json:"accountsPayable"`
	PropertyPlantEquipment *float64 `json:"propertyPlantEquipment"`
	GoodWill               *float64 `json:"goodWill"`
	IntangibleAssets       *float64 `json:"intangibleAssets"`
	OtherAssets            *float64 `json:"otherAssets"`
	OtherCurrentAssets     *float64 `json:"otherCurrentAssets"`
	OtherLiab              *float64 `json:"otherLiab"`
	OtherCurrentLiab       *float64 `json:"otherCurrentLiab"`
	MinorityInterest       *float64 `json:"minorityInterest"`

	NetWorkingCapital *float64 `json:"netWorkingCapital"`
	CurrentRatio      *float64 `json:"currentRatio"`
	QuickRatio        *float64 `json:"quickRatio"`
	DebtToEquity      *float64 `json:"debtToEquity"`
}

// IncomeStatement is one reporting period of normalized income-statement data.
type IncomeStatement struct {
	EndDate string `json:"endDate"`

	TotalRevenue     *float64 `json:"totalRevenue"`
	CostOfRevenue    *float64 `json:"costOfRevenue"`
	GrossProfit      *float64 `json:"grossProfit"`
	OperatingExpense *float64 `json:"operatingExpense"`
	SGA              *float64 `json:"sga"`
	RnD              *float64 `json:"rnd"`
	OperatingIncome  *float64 `json:"operatingIncome"`
	EBIT             *float64 `json:"ebit"`
	EBITDA           *float64 `json:"ebitda"`
	InterestExpense  *float64 `json:"interestExpense"`
	IncomeTaxExpense *float64 `json:"incomeTaxExpense"`
	NetIncome        *float64 `json:"netIncome"`
	EPSDiluted       *float64 `json:"epsDiluted"`
	SharesDiluted    *float64 `json:"sharesDiluted"`

	GrossMargin      *float64 `json:"grossMargin"`
	OperatingMargin  *float64 `json:"operatingMargin"`
	NetMargin        *float64 `json:"netMargin"`
	InterestCoverage *float64 `json:"interestCoverage"`
}
