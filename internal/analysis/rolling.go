package analysis

import (
	"math"
	"sort"

	"market-fixtures/internal/model"
)

// RollingMean returns the mean of every full window of w consecutive values,
// len(x)-w+1 results in total. It returns nil when the window does not fit.
func RollingMean(x []float64, w int) []float64 {
	if w <= 0 || w > len(x) {
		return nil
	}
	out := make([]float64, len(x)-w+1)
	sum := 0.0
	for i, v := range x {
		sum += v
		if i >= w {
			sum -= x[i-w]
		}
		if i >= w-1 {
			out[i-w+1] = sum / float64(w)
		}
	}
	return out
}

// RollingStd is the population standard deviation over the same windows as
// RollingMean. Values are centered on the first element of the series to keep
// the running sums well conditioned.
func RollingStd(x []float64, w int) []float64 {
	if w <= 0 || w > len(x) {
		return nil
	}
	ref := x[0]
	out := make([]float64, len(x)-w+1)
	var sum, sumSq float64
	for i, v := range x {
		d := v - ref
		sum += d
		sumSq += d * d
		if i >= w {
			old := x[i-w] - ref
			sum -= old
			sumSq -= old * old
		}
		if i >= w-1 {
			m := sum / float64(w)
			out[i-w+1] = math.Sqrt(math.Max(sumSq/float64(w)-m*m, 0))
		}
	}
	return out
}

// RollingBuyRatio is the fraction of buys in every full window of w orders.
func RollingBuyRatio(sides []model.Side, w int) []float64 {
	x := make([]float64, len(sides))
	for i, s := range sides {
		if s.IsBuy() {
			x[i] = 1
		}
	}
	return RollingMean(x, w)
}

// Returns gives step-over-step percentage returns, len(prices)-1 values.
func Returns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		out[i-1] = (prices[i] - prices[i-1]) / prices[i-1] * 100
	}
	return out
}

// CumulativeReturns gives the percentage change of every price from initial.
func CumulativeReturns(prices []float64, initial float64) []float64 {
	out := make([]float64, len(prices))
	for i, p := range prices {
		out[i] = (p/initial - 1) * 100
	}
	return out
}

// Percentile returns the q-quantile (q in [0,1]) of x with linear
// interpolation between order statistics. x is not modified.
func Percentile(x []float64, q float64) float64 {
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	return percentileSorted(sorted, q)
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
