package fundamentals

// Concept alias sets. Each set is the ordered list of vendor names observed
// for one semantic quantity; first match wins. Vendors rename fields between
// revisions, so new synonyms get appended, never reordered.

// Balance sheet concepts.
var (
	AliasTotalAssets            = []string{"TotalAssets", "Assets"}
	AliasTotalLiab              = []string{"TotalLiabilitiesNetMinorityInterest", "TotalLiabilities"}
	AliasStockholderEquity      = []string{"StockholdersEquity", "CommonStockEquity", "TotalShareholdersEquity"}
	AliasCurrentAssets          = []string{"TotalCurrentAssets", "CurrentAssets"}
	AliasCurrentLiab            = []string{"TotalCurrentLiabilities", "CurrentLiabilities"}
	AliasLongTermDebt           = []string{"LongTermDebt"}
	AliasShortTermDebt          = []string{"ShortTermDebt", "ShortLongTermDebt", "CurrentDebt"}
	AliasCash                   = []string{"CashAndCashEquivalents", "CashCashEquivalentsAndShortTermInvestments", "CashAndDueFromBanks"}
	AliasNetReceivables         = []string{"NetReceivables", "AccountsReceivable", "GrossAccountsReceivable"}
	AliasInventory              = []string{"Inventory", "Inventories"}
	AliasAccountsPayable        = []string{"AccountsPayable"}
	AliasOtherCurrentAssets     = []string{"OtherCurrentAssets"}
	AliasOtherCurrentLiab       = []string{"OtherCurrentLiabilities"}
	AliasOtherAssets            = []string{"OtherAssets"}
	AliasOtherLiab              = []string{"OtherLiabilities"}
	AliasPropertyPlantEquipment = []string{"PropertyPlantEquipmentNet", "NetPPE"}
	AliasGoodwill               = []string{"Goodwill", "GoodWill"}
	AliasIntangibles            = []string{"OtherIntangibleAssets", "GoodwillAndOtherIntangibleAssets"}
	AliasMinorityInterest       = []string{"MinorityInterest", "NoncontrollingInterests"}
	AliasSharesIssued           = []string{"OrdinarySharesNumber", "ShareIssued", "CommonSharesOutstanding"}
)

// Income statement concepts.
var (
	AliasTotalRevenue     = []string{"TotalRevenue", "Revenues", "OperatingRevenue"}
	AliasCostOfRevenue    = []string{"CostOfRevenue"}
	AliasGrossProfit      = []string{"GrossProfit"}
	AliasOperatingExpense = []string{"OperatingExpense"}
	AliasSGA              = []string{"SellingGeneralAndAdministration"}
	AliasRnD              = []string{"ResearchAndDevelopment"}
	AliasOperatingIncome  = []string{"OperatingIncome"}
	AliasEBIT             = []string{"EBIT"}
	AliasEBITDA           = []string{"EBITDA", "NormalizedEBITDA"}
	AliasInterestExpense  = []string{"InterestExpense", "InterestExpenseNonOperating"}
	AliasIncomeTaxExpense = []string{"IncomeTaxExpense", "TaxProvision"}
	AliasNetIncome        = []string{"NetIncome", "NetIncomeCommonStockholders", "NetIncomeFromContinuingAndDiscontinuedOperation"}
	AliasEPSDiluted       = []string{"DilutedEPS", "BasicEPS"}
	AliasSharesDiluted    = []string{"DilutedAverageShares", "AverageDilutionEarnings", "BasicAverageShares"}
)
