package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DecisionsResponse represents the response from a decision run
type DecisionsResponse struct {
	ID        string           `json:"id"`
	Status    string           `json:"status"`
	Seed      uint32           `json:"seed"`
	CreatedAt time.Time        `json:"created_at"`
	Summary   DecisionsSummary `json:"summary"`
	DataURL   string           `json:"data_url"`
}

// DecisionsSummary contains submit/cancel counts
type DecisionsSummary struct {
	Count     int     `json:"count"`
	Submits   int     `json:"submits"`
	Cancels   int     `json:"cancels"`
	SubmitPct float64 `json:"submit_pct"`
	CancelPct float64 `json:"cancel_pct"`
}

// MarketResponse represents the response from a market run
type MarketResponse struct {
	ID        string            `json:"id"`
	Status    string            `json:"status"`
	Seed      uint32            `json:"seed"`
	CreatedAt time.Time         `json:"created_at"`
	Summary   MarketSummary     `json:"summary"`
	DataURL   string            `json:"data_url"`
	ChartURLs map[string]string `json:"chart_urls"`
}

// MarketSummary contains aggregated statistics of a market run.
// Prices are fixed-point with two decimals, matching the fixture file.
type MarketSummary struct {
	Count          int             `json:"count"`
	Buys           int             `json:"buys"`
	Sells          int             `json:"sells"`
	BuyPct         float64         `json:"buy_pct"`
	SellPct        float64         `json:"sell_pct"`
	InitialPrice   decimal.Decimal `json:"initial_price"`
	FinalPrice     decimal.Decimal `json:"final_price"`
	MeanPrice      decimal.Decimal `json:"mean_price"`
	MinPrice       decimal.Decimal `json:"min_price"`
	MaxPrice       decimal.Decimal `json:"max_price"`
	PriceStdDev    decimal.Decimal `json:"price_std_dev"`
	TotalReturnPct float64         `json:"total_return_pct"`
	MeanSize       float64         `json:"mean_size"`
	MedianSize     float64         `json:"median_size"`
	MaxSize        int             `json:"max_size"`
}

// GeneratorInfo represents information about a generator
type GeneratorInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a generator parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
