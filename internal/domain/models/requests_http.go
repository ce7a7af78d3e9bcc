package models

// Requests for stock HTTP endpoints. Defined in domain for consistency and reuse.

type StatementRequest struct {
	Type  string `query:"type" json:"type" default:"annual" validate:"oneof=annual quarterly trailing"`
	From  string `query:"from" json:"from" validate:"omitempty,datetime=2006-01-02"`
	To    string `query:"to" json:"to" validate:"omitempty,datetime=2006-01-02"`
	Limit int    `query:"limit" json:"limit" default:"6" validate:"gte=1,lte=40"`
}

type ValuationRequest struct {
	Type    string `query:"type" json:"type" default:"annual" validate:"oneof=annual quarterly trailing"`
	From    string `query:"from" json:"from" validate:"omitempty,datetime=2006-01-02"`
	To      string `query:"to" json:"to" validate:"omitempty,datetime=2006-01-02"`
	Limit   int    `query:"limit" json:"limit" default:"8" validate:"gte=1,lte=40"`
	TTM     bool   `query:"ttm" json:"ttm"`
	Current *bool  `query:"current" json:"current" default:"true"`
}
