package analysis

import (
	"math"
	"sort"

	"market-fixtures/internal/model"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DecisionSummary counts submits and cancels in a decision stream.
type DecisionSummary struct {
	Count     int
	Submits   int
	Cancels   int
	SubmitPct float64
	CancelPct float64
}

// MarketSummary is the statistics block printed after a market run.
// PriceStdDev is the population standard deviation of the price path.
type MarketSummary struct {
	Count   int
	Buys    int
	Sells   int
	BuyPct  float64
	SellPct float64

	InitialPrice   float64
	FinalPrice     float64
	MeanPrice      float64
	MinPrice       float64
	MaxPrice       float64
	PriceStdDev    float64
	TotalReturnPct float64

	MeanSize   float64
	MedianSize float64
	MaxSize    int
}

func SummarizeDecisions(ds []model.Decision) DecisionSummary {
	sum := DecisionSummary{Count: len(ds)}
	if len(ds) == 0 {
		return sum
	}
	sum.Submits = model.CountSubmits(ds)
	sum.Cancels = sum.Count - sum.Submits
	sum.SubmitPct = 100 * float64(sum.Submits) / float64(sum.Count)
	sum.CancelPct = 100 * float64(sum.Cancels) / float64(sum.Count)
	return sum
}

func SummarizeMarket(s *model.MarketSeries) MarketSummary {
	sum := MarketSummary{Count: s.Len()}
	if sum.Count == 0 {
		return sum
	}
	sum.Buys = s.BuyCount()
	sum.Sells = sum.Count - sum.Buys
	sum.BuyPct = 100 * float64(sum.Buys) / float64(sum.Count)
	sum.SellPct = 100 * float64(sum.Sells) / float64(sum.Count)

	prices := s.Prices
	sum.InitialPrice = prices[0]
	sum.FinalPrice = prices[len(prices)-1]
	mean, variance := stat.PopMeanVariance(prices, nil)
	sum.MeanPrice = mean
	sum.PriceStdDev = math.Sqrt(variance)
	sum.MinPrice = floats.Min(prices)
	sum.MaxPrice = floats.Max(prices)
	sum.TotalReturnPct = 100 * (sum.FinalPrice - sum.InitialPrice) / sum.InitialPrice

	sizes := make([]float64, len(s.Sizes))
	for i, sz := range s.Sizes {
		sizes[i] = float64(sz)
		if sz > sum.MaxSize {
			sum.MaxSize = sz
		}
	}
	sum.MeanSize = stat.Mean(sizes, nil)
	sort.Float64s(sizes)
	sum.MedianSize = percentileSorted(sizes, 0.5)
	return sum
}
