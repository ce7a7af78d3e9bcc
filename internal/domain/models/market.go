package models

import "time"

// PriceBar is one daily bar from the provider chart endpoint.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Quote is the latest market quote for a symbol.
type Quote struct {
	Symbol             string   `json:"symbol"`
	ShortName          string   `json:"shortName,omitempty"`
	RegularMarketPrice *float64 `json:"regularMarketPrice"`
	Currency           string   `json:"currency,omitempty"`
	MarketState        string   `json:"marketState,omitempty"`
	Timestamp          int64    `json:"timestamp,omitempty"`
}
