package models

// ValuationPoint is one P/E & P/B observation: a reporting-period boundary or
// the synthetic "as of now" snapshot appended at reconciliation time.
type ValuationPoint struct {
	EndDate    string   `json:"endDate"`
	PriceClose *float64 `json:"priceClose"`
	EPS        *float64 `json:"eps"`
	PE         *float64 `json:"pe"`
	BVPS       *float64 `json:"bvps"`
	PB         *float64 `json:"pb"`
}

// ValuationHistory is the reconciled series, newest first.
type ValuationHistory struct {
	Symbol      string           `json:"symbol"`
	Type        string           `json:"type"`
	TTM         bool             `json:"ttm"`
	PeriodStart string           `json:"period1"`
	PeriodEnd   string           `json:"period2"`
	Count       int              `json:"count"`
	Series      []ValuationPoint `json:"series"`
}
