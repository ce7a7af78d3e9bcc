package fundamentals

var balanceAliasSets = [][]string{
	AliasTotalAssets,
	AliasTotalLiab,
	AliasStockholderEquity,
	AliasCurrentAssets,
	AliasCurrentLiab,
	AliasLongTermDebt,
	AliasShortTermDebt,
	AliasCash,
	AliasNetReceivables,
	AliasInventory,
	AliasAccountsPayable,
	AliasOtherCurrentAssets,
	AliasOtherCurrentLiab,
	AliasOtherAssets,
	AliasOtherLiab,
	AliasPropertyPlantEquipment,
	AliasGoodwill,
	AliasIntangibles,
	AliasMinorityInterest,
	AliasSharesIssued,
}

var incomeAliasSets = [][]string{
	AliasTotalRevenue,
	AliasCostOfRevenue,
	AliasGrossProfit,
	AliasOperatingExpense,
	AliasSGA,
	AliasRnD,
	AliasOperatingIncome,
	AliasEBIT,
	AliasEBITDA,
	AliasInterestExpense,
	AliasIncomeTaxExpense,
	AliasNetIncome,
	AliasEPSDiluted,
	AliasSharesDiluted,
}

// BalanceSheetConcepts lists every balance-sheet vendor name the resolver
// understands, deduped, in declaration order. Provider clients use it to
// build series queries.
func BalanceSheetConcepts() []string { return flattenConcepts(balanceAliasSets) }

// IncomeStatementConcepts lists every income-statement vendor name the
// resolver understands.
func IncomeStatementConcepts() []string { return flattenConcepts(incomeAliasSets) }

func flattenConcepts(sets [][]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(sets)*2)
	for _, set := range sets {
		for _, name := range set {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
