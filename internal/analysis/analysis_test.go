package analysis

import (
	"bytes"
	"math"
	"testing"

	"market-fixtures/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeDecisions(t *testing.T) {
	s := SummarizeDecisions([]model.Decision{1, 1, 0, 1, 0})
	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 3, s.Submits)
	assert.Equal(t, 2, s.Cancels)
	assert.InDelta(t, 60.0, s.SubmitPct, 1e-9)

	assert.Equal(t, DecisionSummary{}, SummarizeDecisions(nil))
}

func TestSummarizeMarket(t *testing.T) {
	series := &model.MarketSeries{
		Prices: []float64{100, 102, 98, 104},
		Sides:  []model.Side{1, 0, 1, 1},
		Sizes:  []int{10, 40, 20, 30},
	}
	s := SummarizeMarket(series)
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 3, s.Buys)
	assert.Equal(t, 1, s.Sells)
	assert.InDelta(t, 75.0, s.BuyPct, 1e-9)
	assert.Equal(t, 100.0, s.InitialPrice)
	assert.Equal(t, 104.0, s.FinalPrice)
	assert.InDelta(t, 101.0, s.MeanPrice, 1e-9)
	assert.Equal(t, 98.0, s.MinPrice)
	assert.Equal(t, 104.0, s.MaxPrice)
	assert.InDelta(t, math.Sqrt(5), s.PriceStdDev, 1e-9)
	assert.InDelta(t, 4.0, s.TotalReturnPct, 1e-9)
	assert.InDelta(t, 25.0, s.MeanSize, 1e-9)
	assert.InDelta(t, 25.0, s.MedianSize, 1e-9)
	assert.Equal(t, 40, s.MaxSize)
}

func TestRollingMeanAndStd(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, []float64{2, 3, 4}, RollingMean(x, 3))
	std := RollingStd(x, 3)
	require.Len(t, std, 3)
	for _, v := range std {
		assert.InDelta(t, math.Sqrt(2.0/3.0), v, 1e-12)
	}
	assert.Nil(t, RollingMean(x, 6))
	assert.Nil(t, RollingStd(x, 0))
}

func TestRollingBuyRatio(t *testing.T) {
	sides := []model.Side{1, 0, 1, 1}
	assert.Equal(t, []float64{0.5, 0.5, 1}, RollingBuyRatio(sides, 2))
}

func TestReturns(t *testing.T) {
	r := Returns([]float64{100, 110, 99})
	require.Len(t, r, 2)
	assert.InDelta(t, 10.0, r[0], 1e-9)
	assert.InDelta(t, -10.0, r[1], 1e-9)
	assert.Nil(t, Returns([]float64{1}))

	c := CumulativeReturns([]float64{100, 150, 50}, 100)
	assert.InDeltaSlice(t, []float64{0, 50, -50}, c, 1e-9)
}

func TestPercentile(t *testing.T) {
	x := []float64{4, 1, 3, 2}
	assert.InDelta(t, 2.5, Percentile(x, 0.5), 1e-12)
	assert.Equal(t, 1.0, Percentile(x, 0))
	assert.Equal(t, 4.0, Percentile(x, 1))
	assert.Equal(t, []float64{4, 1, 3, 2}, x)
	assert.Equal(t, 0.0, Percentile(nil, 0.5))
}

func TestWriteReports(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDecisionReport(&buf, DecisionSummary{Count: 100000, Submits: 59870, Cancels: 40130, SubmitPct: 59.87, CancelPct: 40.13}))
	assert.Contains(t, buf.String(), "Generated 100,000 decisions:")
	assert.Contains(t, buf.String(), "1s (submits): 59,870 (59.87%)")

	buf.Reset()
	require.NoError(t, WriteMarketReport(&buf, MarketSummary{Count: 100000, Buys: 50000, BuyPct: 50, InitialPrice: 100}))
	assert.Contains(t, buf.String(), "Total orders: 100,000")
	assert.Contains(t, buf.String(), "Initial price:  $100.00")
}
