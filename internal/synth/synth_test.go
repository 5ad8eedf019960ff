package synth

import (
	"math"
	"testing"

	"market-fixtures/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedGaussian returns the same shock every call.
type fixedGaussian struct {
	shock float64
	calls int
}

func (g *fixedGaussian) Normal(loc, scale float64) float64 {
	g.calls++
	return loc + scale*g.shock
}

func (g *fixedGaussian) LogNormal(mean, sigma float64) float64 {
	g.calls++
	return math.Exp(mean + sigma*g.shock)
}

func TestGenerateDecisions_Seed42Reference(t *testing.T) {
	p := DecisionParams{Count: 10, SubmitProbability: 0.6}
	got, err := GenerateDecisions(SeededDecisionSource(42), p)
	require.NoError(t, err)
	want := []model.Decision{0, 1, 1, 1, 0, 0, 0, 1, 1, 1}
	assert.Equal(t, want, got)
}

func TestGenerateDecisions_FullRunFraction(t *testing.T) {
	got, err := GenerateDecisions(SeededDecisionSource(42), DefaultDecisionParams())
	require.NoError(t, err)
	require.Len(t, got, 100000)
	submits := model.CountSubmits(got)
	assert.Equal(t, 59870, submits)
	assert.InDelta(t, 0.6, float64(submits)/float64(len(got)), 0.01)
}

func TestGenerateDecisions_Deterministic(t *testing.T) {
	p := DecisionParams{Count: 5000, SubmitProbability: 0.6}
	a, err := GenerateDecisions(SeededDecisionSource(9), p)
	require.NoError(t, err)
	b, err := GenerateDecisions(SeededDecisionSource(9), p)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateDecisions_InvalidParams(t *testing.T) {
	_, err := GenerateDecisions(SeededDecisionSource(1), DecisionParams{Count: 0, SubmitProbability: 0.5})
	assert.Error(t, err)
	_, err = GenerateDecisions(SeededDecisionSource(1), DecisionParams{Count: 5, SubmitProbability: 1.5})
	assert.Error(t, err)
}

func TestGeneratePrices_Recurrence(t *testing.T) {
	p := DefaultPriceParams()
	p.Sigma = 0.01
	g := &fixedGaussian{shock: 1}
	prices, err := GeneratePrices(g, 4, p)
	require.NoError(t, err)
	assert.Equal(t, 3, g.calls)
	assert.Equal(t, 100.0, prices[0])
	assert.InDelta(t, 101.0, prices[1], 1e-9)
	assert.InDelta(t, 102.01, prices[2], 1e-9)
	assert.InDelta(t, 103.0301, prices[3], 1e-9)
}

func TestGeneratePrices_Floor(t *testing.T) {
	p := DefaultPriceParams()
	p.Sigma = 0.5
	prices, err := GeneratePrices(&fixedGaussian{shock: -10}, 5, p)
	require.NoError(t, err)
	for _, px := range prices[1:] {
		assert.Equal(t, p.Floor, px)
	}
}

func TestGeneratePrices_SeededProperties(t *testing.T) {
	p := DefaultPriceParams()
	prices, err := GeneratePrices(SeededSources(42).Gauss, 100000, p)
	require.NoError(t, err)
	assert.Equal(t, 100.0, prices[0])
	for i := 1; i < len(prices); i++ {
		require.GreaterOrEqual(t, prices[i], model.MinPrice)
		// 8 sigma is effectively unreachable for 1e5 normal draws.
		require.Less(t, math.Abs(prices[i]-prices[i-1]), 8*p.Sigma*prices[i-1])
	}
	assert.InDelta(t, 100.00248357076505, prices[1], 1e-12)
}

func TestRawBuyProbability_Thresholds(t *testing.T) {
	p := DefaultFlowParams()
	cases := []struct {
		name   string
		prices []float64
		want   float64
	}{
		{"drop", []float64{100, 99.9}, 0.7},
		{"rise", []float64{100, 100.1}, 0.3},
		{"flat", []float64{100, 100.01}, 0.5},
		{"exact threshold is neutral", []float64{100, 100.05}, 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, RawBuyProbability(tc.prices, 1, p), 1e-12)
		})
	}
}

func rampPrices(n int, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + float64(i)*step
	}
	return out
}

func TestRawBuyProbability_TrendRegime(t *testing.T) {
	p := DefaultFlowParams()
	up := rampPrices(2000, 0.001)
	down := rampPrices(2000, -0.001)

	// Lookback not yet exceeded.
	assert.InDelta(t, 0.5, RawBuyProbability(up, 100, p), 1e-12)
	// Inside the on-window with more than 100 steps elapsed.
	assert.InDelta(t, 0.6, RawBuyProbability(up, 101, p), 1e-12)
	assert.InDelta(t, 0.4, RawBuyProbability(down, 101, p), 1e-12)
	assert.InDelta(t, 0.6, RawBuyProbability(up, 499, p), 1e-12)
	// Off-window.
	assert.InDelta(t, 0.5, RawBuyProbability(up, 500, p), 1e-12)
	assert.InDelta(t, 0.5, RawBuyProbability(up, 999, p), 1e-12)
	// Next period switches back on.
	assert.InDelta(t, 0.6, RawBuyProbability(up, 1000, p), 1e-12)

	flat := make([]float64, 300)
	for i := range flat {
		flat[i] = 100
	}
	// Zero trend counts as a downtrend.
	assert.InDelta(t, 0.4, RawBuyProbability(flat, 200, p), 1e-12)
}

func TestBuyProbability_Clamped(t *testing.T) {
	p := DefaultFlowParams()
	p.DropBuyProb = 0.95
	p.RiseBuyProb = 0.02
	drop := []float64{100, 99}
	rise := []float64{100, 101}
	assert.Equal(t, p.MaxProb, BuyProbability(drop, 1, p))
	assert.Equal(t, p.MinProb, BuyProbability(rise, 1, p))

	prices, err := GeneratePrices(SeededSources(3).Gauss, 5000, DefaultPriceParams())
	require.NoError(t, err)
	for i := 1; i < len(prices); i++ {
		bp := BuyProbability(prices, i, DefaultFlowParams())
		require.True(t, bp >= 0.1 && bp <= 0.9, "step %d prob %v", i, bp)
	}
}

func TestGenerateSizes(t *testing.T) {
	sizes, err := GenerateSizes(SeededSources(42).Gauss, 10000, DefaultSizeParams())
	require.NoError(t, err)
	for _, s := range sizes {
		require.GreaterOrEqual(t, s, 1)
	}

	tiny, err := GenerateSizes(&fixedGaussian{shock: -20}, 3, DefaultSizeParams())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1}, tiny)

	// exp(4) = 54.598...
	mid, err := GenerateSizes(&fixedGaussian{shock: 0}, 1, DefaultSizeParams())
	require.NoError(t, err)
	assert.Equal(t, []int{55}, mid)
}

func TestEngine_RunSeededReference(t *testing.T) {
	p := DefaultMarketParams()
	p.Count = 100
	s, err := New().RunSeeded(p, 42)
	require.NoError(t, err)
	require.NoError(t, s.Validate())

	assert.Equal(t, []model.Side{0, 1, 1, 1, 0, 0, 0, 1, 1, 1}, s.Sides[:10])
	assert.Equal(t, []int{43, 13, 36, 39, 24, 46, 82, 360, 65, 71}, s.Sizes[:10])
	assert.Equal(t, 50, s.BuyCount())
}

func TestEngine_RunDeterministicAndAligned(t *testing.T) {
	p := DefaultMarketParams()
	p.Count = 20000
	a, err := New().RunSeeded(p, 7)
	require.NoError(t, err)
	b, err := New().RunSeeded(p, 7)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a.Sides, p.Count)
	assert.Len(t, a.Sizes, p.Count)
}

func TestEngine_RunRejectsBadInput(t *testing.T) {
	_, err := New().Run(DefaultMarketParams(), Sources{})
	assert.Error(t, err)

	p := DefaultMarketParams()
	p.Flow.MinProb = 0.9
	p.Flow.MaxProb = 0.1
	_, err = New().RunSeeded(p, 1)
	assert.Error(t, err)
}

func TestPriceParams_FloorBelowMinPriceRejected(t *testing.T) {
	p := DefaultMarketParams()
	p.Count = 10
	p.Price.InitialPrice = 0.005
	p.Price.Floor = 0.001
	require.Error(t, p.Validate())

	p.Price.InitialPrice = 100
	assert.ErrorContains(t, p.Validate(), "below the minimum price")

	p.Price.Floor = model.MinPrice
	require.NoError(t, p.Validate())
	s, err := New().RunSeeded(p, 42)
	require.NoError(t, err)
	require.NoError(t, s.Validate())
}

func TestParams_RejectNonFinite(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	price := DefaultPriceParams()
	price.Sigma = nan
	assert.Error(t, price.Validate())
	price = DefaultPriceParams()
	price.Mu = inf
	assert.Error(t, price.Validate())

	flow := DefaultFlowParams()
	flow.TrendNudge = nan
	assert.Error(t, flow.Validate())

	size := DefaultSizeParams()
	size.Sigma = nan
	assert.Error(t, size.Validate())

	d := DefaultDecisionParams()
	d.SubmitProbability = nan
	assert.Error(t, d.Validate())
}

func TestSizeParams_RejectsOverflowingMean(t *testing.T) {
	size := DefaultSizeParams()
	size.Mean = 800
	assert.ErrorContains(t, size.Validate(), "can exceed")

	size = DefaultSizeParams()
	size.Sigma = 3
	assert.Error(t, size.Validate(), "4 + 10*3 is past log(MaxSize)")

	size = DefaultSizeParams()
	size.Mean = 10
	size.Sigma = 1
	assert.NoError(t, size.Validate())
}

func TestGenerateSizes_OversizedDrawIsAnError(t *testing.T) {
	_, err := GenerateSizes(&fixedGaussian{shock: 40}, 1, DefaultSizeParams())
	assert.ErrorContains(t, err, "exceeds")
}
