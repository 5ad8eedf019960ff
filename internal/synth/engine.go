package synth

import (
	"fmt"

	"market-fixtures/internal/model"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run executes the market pipeline: prices, then order flow over those
// prices, then sizes. Each stage sees only the previous stage's output and
// its own draw stream, so the draw order within each stream is fixed.
func (e *Engine) Run(p MarketParams, src Sources) (*model.MarketSeries, error) {
	if src.Flow == nil || src.Gauss == nil {
		return nil, fmt.Errorf("sources are nil")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	prices, err := GeneratePrices(src.Gauss, p.Count, p.Price)
	if err != nil {
		return nil, fmt.Errorf("prices: %w", err)
	}
	sides, err := GenerateOrderFlow(src.Flow, prices, p.Flow)
	if err != nil {
		return nil, fmt.Errorf("order flow: %w", err)
	}
	sizes, err := GenerateSizes(src.Gauss, p.Count, p.Size)
	if err != nil {
		return nil, fmt.Errorf("sizes: %w", err)
	}

	series := &model.MarketSeries{Prices: prices, Sides: sides, Sizes: sizes}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	return series, nil
}

// RunSeeded is Run with SeededSources(seed).
func (e *Engine) RunSeeded(p MarketParams, seed uint32) (*model.MarketSeries, error) {
	return e.Run(p, SeededSources(seed))
}

// RunDecisions generates the decision stream from its own seeded source.
func (e *Engine) RunDecisions(p DecisionParams, seed uint32) ([]model.Decision, error) {
	return GenerateDecisions(SeededDecisionSource(seed), p)
}
