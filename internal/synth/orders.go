package synth

import (
	"errors"
	"math"

	"market-fixtures/internal/model"
)

var errNonPositiveCount = errors.New("count must be > 0")

// RawBuyProbability returns the buy probability at step t (t >= 1) before
// clamping. The trend nudge only applies during the first RegimeOnSteps of each
// RegimePeriod, and only once more than TrendLookback steps have elapsed.
func RawBuyProbability(prices []float64, t int, p FlowParams) float64 {
	change := prices[t] - prices[t-1]
	var prob float64
	switch {
	case change < -p.MoveThreshold:
		prob = p.DropBuyProb
	case change > p.MoveThreshold:
		prob = p.RiseBuyProb
	default:
		prob = p.NeutralBuyProb
	}

	if t%p.RegimePeriod < p.RegimeOnSteps && t > p.TrendLookback {
		if prices[t]-prices[t-p.TrendLookback] > 0 {
			prob += p.TrendNudge
		} else {
			prob -= p.TrendNudge
		}
	}
	return prob
}

// BuyProbability is RawBuyProbability clamped to [MinProb, MaxProb].
func BuyProbability(prices []float64, t int, p FlowParams) float64 {
	return math.Max(p.MinProb, math.Min(p.MaxProb, RawBuyProbability(prices, t, p)))
}

// GenerateOrderFlow derives one order side per price. The first side is a
// uniform pick; every later side is a Bernoulli draw on BuyProbability.
func GenerateOrderFlow(src Coin, prices []float64, p FlowParams) ([]model.Side, error) {
	if len(prices) == 0 {
		return nil, errNonPositiveCount
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	sides := make([]model.Side, len(prices))
	sides[0] = model.Side(src.IntN(2))
	for t := 1; t < len(prices); t++ {
		sides[t] = model.SideFromBuy(src.Float64() < BuyProbability(prices, t, p))
	}
	return sides, nil
}
