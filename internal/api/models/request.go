package models

// DecisionsRequest represents the request body for generating a decision stream
type DecisionsRequest struct {
	Count             int      `json:"count,omitempty"`              // default: 100000
	SubmitProbability *float64 `json:"submit_probability,omitempty"` // default: 0.6
	Seed              *int64   `json:"seed,omitempty"`               // default: 42
}

// MarketRequest represents the request body for generating a market feed.
// Omitted fields fall back to the reference configuration.
type MarketRequest struct {
	Count int         `json:"count,omitempty"`
	Seed  *int64      `json:"seed,omitempty"`
	Price PriceConfig `json:"price,omitempty"`
	Flow  FlowConfig  `json:"flow,omitempty"`
	Size  SizeConfig  `json:"size,omitempty"`
}

// PriceConfig defines price path parameters
type PriceConfig struct {
	InitialPrice float64 `json:"initial_price,omitempty"`
	Mu           float64 `json:"mu,omitempty"`
	Sigma        float64 `json:"sigma,omitempty"`
	Dt           float64 `json:"dt,omitempty"`
	Floor        float64 `json:"floor,omitempty"`
}

// FlowConfig defines order-flow parameters. Pointer fields accept an
// explicit 0 (e.g. regime_on_steps: 0 turns the trend regime off).
type FlowConfig struct {
	MoveThreshold  *float64 `json:"move_threshold,omitempty"`
	DropBuyProb    float64  `json:"drop_buy_prob,omitempty"`
	RiseBuyProb    float64  `json:"rise_buy_prob,omitempty"`
	NeutralBuyProb float64  `json:"neutral_buy_prob,omitempty"`
	RegimePeriod   int      `json:"regime_period,omitempty"`
	RegimeOnSteps  *int     `json:"regime_on_steps,omitempty"`
	TrendLookback  int      `json:"trend_lookback,omitempty"`
	TrendNudge     *float64 `json:"trend_nudge,omitempty"`
	MinProb        *float64 `json:"min_prob,omitempty"`
	MaxProb        float64  `json:"max_prob,omitempty"`
}

// SizeConfig defines order size parameters
type SizeConfig struct {
	Mean    *float64 `json:"mean,omitempty"`
	Sigma   float64  `json:"sigma,omitempty"`
	MinSize int      `json:"min_size,omitempty"`
}
