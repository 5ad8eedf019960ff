package synth

import (
	"errors"
	"fmt"
	"math"

	"market-fixtures/internal/model"
)

// MaxSize is the largest order size a draw may produce. It fits int on every
// platform.
const MaxSize = math.MaxInt32

// maxLogSizeSpread is how many log-space standard deviations above the mean
// must still fit under MaxSize.
const maxLogSizeSpread = 10

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// DecisionParams configures the submit/cancel stream.
type DecisionParams struct {
	Count             int
	SubmitProbability float64
}

// PriceParams configures the discretized geometric Brownian motion.
// Mu and Sigma are per unit of Dt.
type PriceParams struct {
	InitialPrice float64
	Mu           float64
	Sigma        float64
	Dt           float64
	Floor        float64
}

// FlowParams configures how order direction reacts to price movement.
//
// The base buy probability depends on the one-step price change; inside the
// "on" part of every regime period it is nudged toward the trend measured
// over TrendLookback steps, then clamped to [MinProb, MaxProb].
type FlowParams struct {
	MoveThreshold  float64
	DropBuyProb    float64
	RiseBuyProb    float64
	NeutralBuyProb float64
	RegimePeriod   int
	RegimeOnSteps  int
	TrendLookback  int
	TrendNudge     float64
	MinProb        float64
	MaxProb        float64
}

// SizeParams configures the log-normal order size draw (log-space parameters).
type SizeParams struct {
	Mean    float64
	Sigma   float64
	MinSize int
}

type MarketParams struct {
	Count int
	Price PriceParams
	Flow  FlowParams
	Size  SizeParams
}

func DefaultDecisionParams() DecisionParams {
	return DecisionParams{Count: 100000, SubmitProbability: 0.6}
}

func DefaultPriceParams() PriceParams {
	return PriceParams{
		InitialPrice: 100.0,
		Mu:           0.0,
		Sigma:        0.00005,
		Dt:           1.0,
		Floor:        0.01,
	}
}

func DefaultFlowParams() FlowParams {
	return FlowParams{
		MoveThreshold:  0.05,
		DropBuyProb:    0.7,
		RiseBuyProb:    0.3,
		NeutralBuyProb: 0.5,
		RegimePeriod:   1000,
		RegimeOnSteps:  500,
		TrendLookback:  100,
		TrendNudge:     0.1,
		MinProb:        0.1,
		MaxProb:        0.9,
	}
}

func DefaultSizeParams() SizeParams {
	return SizeParams{Mean: 4, Sigma: 1, MinSize: 1}
}

func DefaultMarketParams() MarketParams {
	return MarketParams{
		Count: 100000,
		Price: DefaultPriceParams(),
		Flow:  DefaultFlowParams(),
		Size:  DefaultSizeParams(),
	}
}

func (p DecisionParams) Validate() error {
	if !finite(p.SubmitProbability) {
		return errors.New("submit probability must be finite")
	}
	if p.Count <= 0 {
		return errors.New("decision count must be > 0")
	}
	if p.SubmitProbability < 0 || p.SubmitProbability > 1 {
		return errors.New("submit probability must be in [0, 1]")
	}
	return nil
}

func (p PriceParams) Validate() error {
	if !finite(p.InitialPrice, p.Mu, p.Sigma, p.Dt, p.Floor) {
		return errors.New("price parameters must be finite")
	}
	if p.Floor < model.MinPrice {
		return fmt.Errorf("price floor %v is below the minimum price %v", p.Floor, model.MinPrice)
	}
	if p.InitialPrice < p.Floor {
		return fmt.Errorf("initial price %v is below the floor %v", p.InitialPrice, p.Floor)
	}
	if p.Sigma < 0 {
		return errors.New("sigma must be >= 0")
	}
	if p.Dt <= 0 {
		return errors.New("dt must be > 0")
	}
	return nil
}

func (p FlowParams) Validate() error {
	if !finite(p.MoveThreshold, p.DropBuyProb, p.RiseBuyProb, p.NeutralBuyProb, p.TrendNudge, p.MinProb, p.MaxProb) {
		return errors.New("flow parameters must be finite")
	}
	if p.MinProb < 0 || p.MaxProb > 1 || p.MinProb > p.MaxProb {
		return errors.New("flow probability bounds must satisfy 0 <= min <= max <= 1")
	}
	if p.RegimePeriod <= 0 {
		return errors.New("regime period must be > 0")
	}
	if p.RegimeOnSteps < 0 || p.RegimeOnSteps > p.RegimePeriod {
		return errors.New("regime on-steps must be in [0, period]")
	}
	if p.TrendLookback <= 0 {
		return errors.New("trend lookback must be > 0")
	}
	if p.MoveThreshold < 0 {
		return errors.New("move threshold must be >= 0")
	}
	return nil
}

func (p SizeParams) Validate() error {
	if !finite(p.Mean, p.Sigma) {
		return errors.New("size parameters must be finite")
	}
	if p.Sigma < 0 {
		return errors.New("size sigma must be >= 0")
	}
	if p.MinSize < 1 || p.MinSize > MaxSize {
		return fmt.Errorf("min size must be in [1, %d]", MaxSize)
	}
	if p.Mean+maxLogSizeSpread*p.Sigma > math.Log(MaxSize) {
		return fmt.Errorf("size mean %v with sigma %v can exceed %d", p.Mean, p.Sigma, MaxSize)
	}
	return nil
}

func (p MarketParams) Validate() error {
	if p.Count <= 0 {
		return errors.New("market count must be > 0")
	}
	if err := p.Price.Validate(); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	if err := p.Flow.Validate(); err != nil {
		return fmt.Errorf("flow: %w", err)
	}
	if err := p.Size.Validate(); err != nil {
		return fmt.Errorf("size: %w", err)
	}
	return nil
}
