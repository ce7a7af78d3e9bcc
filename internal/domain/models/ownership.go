package models

// OwnershipTotals is the reconciled percentage partition. Nil means the
// component could not be determined; zero means it was computed as zero.
// Institutions is kept for reference even when the DII/FII split is present.
type OwnershipTotals struct {
	Promoters    *float64 `json:"promoters"`
	DII          *float64 `json:"dii"`
	FII          *float64 `json:"fii"`
	Public       *float64 `json:"public"`
	Others       *float64 `json:"others"`
	Institutions *float64 `json:"institutions"`
}

// OwnershipPattern is the shareholding breakdown for one symbol.
type OwnershipPattern struct {
	Symbol  string          `json:"symbol"`
	Country string          `json:"country"`
	Units   string          `json:"units"`
	AsOf    string          `json:"asOf"`
	Totals  OwnershipTotals `json:"totals"`
	Notes   []string        `json:"notes"`
}
