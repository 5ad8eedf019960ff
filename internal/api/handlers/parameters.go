package handlers

import (
	"net/http"

	"market-fixtures/internal/api/models"
	"market-fixtures/internal/config"
	"market-fixtures/internal/synth"

	"github.com/gin-gonic/gin"
)

// ListGenerators handles GET /api/v1/generators
func ListGenerators(c *gin.Context) {
	d := synth.DefaultDecisionParams()
	m := synth.DefaultMarketParams()

	generators := []models.GeneratorInfo{
		{
			Name:        "decisions",
			Description: "Independent submit/cancel decisions, each submit with a fixed probability.",
			Parameters: []models.ParameterInfo{
				{Name: "count", Type: "int", Description: "Number of decisions", Default: d.Count},
				{Name: "submit_probability", Type: "float", Description: "Probability that a decision is a submit", Default: d.SubmitProbability},
				{Name: "seed", Type: "int", Description: "Seed for the uniform stream (0 to 2^32-1)", Default: config.DefaultSeed},
			},
		},
		{
			Name:        "market",
			Description: "Geometric Brownian motion price path with momentum-driven order flow and log-normal order sizes.",
			Parameters: []models.ParameterInfo{
				{Name: "count", Type: "int", Description: "Number of orders", Default: m.Count},
				{Name: "seed", Type: "int", Description: "Seed for both random streams (0 to 2^32-1)", Default: config.DefaultSeed},
				{Name: "price.initial_price", Type: "float", Description: "First price of the path", Default: m.Price.InitialPrice},
				{Name: "price.mu", Type: "float", Description: "Drift per unit time", Default: m.Price.Mu},
				{Name: "price.sigma", Type: "float", Description: "Volatility per unit time", Default: m.Price.Sigma},
				{Name: "price.dt", Type: "float", Description: "Time step", Default: m.Price.Dt},
				{Name: "price.floor", Type: "float", Description: "Lowest allowed price", Default: m.Price.Floor},
				{Name: "flow.move_threshold", Type: "float", Description: "Absolute one-step price change beyond which a move counts as a drop or rise", Default: m.Flow.MoveThreshold},
				{Name: "flow.drop_buy_prob", Type: "float", Description: "Buy probability after a drop", Default: m.Flow.DropBuyProb},
				{Name: "flow.rise_buy_prob", Type: "float", Description: "Buy probability after a rise", Default: m.Flow.RiseBuyProb},
				{Name: "flow.neutral_buy_prob", Type: "float", Description: "Buy probability after a small move", Default: m.Flow.NeutralBuyProb},
				{Name: "flow.regime_period", Type: "int", Description: "Length of the trend regime cycle in steps", Default: m.Flow.RegimePeriod},
				{Name: "flow.regime_on_steps", Type: "int", Description: "Steps at the start of each cycle where the trend nudge applies", Default: m.Flow.RegimeOnSteps},
				{Name: "flow.trend_lookback", Type: "int", Description: "Steps looked back to measure the trend", Default: m.Flow.TrendLookback},
				{Name: "flow.trend_nudge", Type: "float", Description: "Buy probability shift in trend direction", Default: m.Flow.TrendNudge},
				{Name: "flow.min_prob", Type: "float", Description: "Lower clamp on buy probability", Default: m.Flow.MinProb},
				{Name: "flow.max_prob", Type: "float", Description: "Upper clamp on buy probability", Default: m.Flow.MaxProb},
				{Name: "size.mean", Type: "float", Description: "Mean of log size", Default: m.Size.Mean},
				{Name: "size.sigma", Type: "float", Description: "Standard deviation of log size", Default: m.Size.Sigma},
				{Name: "size.min_size", Type: "int", Description: "Smallest order size", Default: m.Size.MinSize},
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{"generators": generators})
}
