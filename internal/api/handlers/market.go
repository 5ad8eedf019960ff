package handlers

import (
	"bytes"
	"net/http"

	"market-fixtures/internal/analysis"
	"market-fixtures/internal/api/models"
	"market-fixtures/internal/chart"
	"market-fixtures/internal/config"
	"market-fixtures/internal/data"
	"market-fixtures/internal/fixture"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GenerateMarket handles POST /api/v1/market
func (h *GeneratorHandler) GenerateMarket(c *gin.Context) {
	var req models.MarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	cfg := config.MergeMarket(config.Default().Market, marketOverride(req))
	params := cfg.ToSynthParams()
	seed, err := config.SeedValue(cfg.Seed)
	if err == nil {
		err = params.Validate()
	}
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_CONFIG", err.Error(), nil)
		return
	}
	if !h.checkCount(c, params.Count) {
		return
	}

	key := data.GenerateCacheKey(data.RunMarket, seed, params)
	run, ok := h.cache.Lookup(key)
	if !ok {
		series, err := h.engine.RunSeeded(params, seed)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "GENERATION_ERROR", err.Error(), nil)
			return
		}
		run = &data.Run{Kind: data.RunMarket, Key: key, Seed: seed, Market: series}
		h.cache.Put(run)
		h.logger.Info().Str("id", run.ID).Int("count", params.Count).Uint32("seed", seed).Msg("generated market data")
	}

	c.JSON(http.StatusOK, buildMarketResponse(run))
}

// GetMarketData handles GET /api/v1/market/:id/data
func (h *GeneratorHandler) GetMarketData(c *gin.Context) {
	run, ok := h.lookupRun(c, data.RunMarket)
	if !ok {
		return
	}
	setAttachment(c, "text/plain; charset=utf-8", fixture.MarketDataFile)
	c.Status(http.StatusOK)
	if err := fixture.EncodeMarketData(c.Writer, run.Market); err != nil {
		h.logger.Error().Err(err).Str("id", run.ID).Msg("streaming market data failed")
		_ = c.Error(err)
	}
}

// GetMarketChart handles GET /api/v1/market/:id/charts/:kind
func (h *GeneratorHandler) GetMarketChart(c *gin.Context) {
	kind, err := chart.ParseKind(c.Param("kind"))
	if err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
		return
	}
	run, ok := h.lookupRun(c, data.RunMarket)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(kind, run.Market, &buf); err != nil {
		respondError(c, http.StatusInternalServerError, "RENDER_ERROR", err.Error(), nil)
		return
	}
	if buf.Len() == 0 {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "chart rendering is disabled", nil)
		return
	}
	setAttachment(c, "image/png", kind.FileName())
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func marketOverride(req models.MarketRequest) config.MarketConfig {
	return config.MarketConfig{
		Count: req.Count,
		Seed:  req.Seed,
		Price: config.PriceConfig(req.Price),
		Flow:  config.FlowConfig(req.Flow),
		Size:  config.SizeConfig(req.Size),
	}
}

func buildMarketResponse(run *data.Run) models.MarketResponse {
	s := analysis.SummarizeMarket(run.Market)
	charts := make(map[string]string, len(chart.Kinds))
	for _, k := range chart.Kinds {
		charts[string(k)] = "/api/v1/market/" + run.ID + "/charts/" + string(k)
	}
	return models.MarketResponse{
		ID:        run.ID,
		Status:    "completed",
		Seed:      run.Seed,
		CreatedAt: run.CreatedAt,
		Summary: models.MarketSummary{
			Count:          s.Count,
			Buys:           s.Buys,
			Sells:          s.Sells,
			BuyPct:         s.BuyPct,
			SellPct:        s.SellPct,
			InitialPrice:   money(s.InitialPrice),
			FinalPrice:     money(s.FinalPrice),
			MeanPrice:      money(s.MeanPrice),
			MinPrice:       money(s.MinPrice),
			MaxPrice:       money(s.MaxPrice),
			PriceStdDev:    money(s.PriceStdDev),
			TotalReturnPct: s.TotalReturnPct,
			MeanSize:       s.MeanSize,
			MedianSize:     s.MedianSize,
			MaxSize:        s.MaxSize,
		},
		DataURL:   "/api/v1/market/" + run.ID + "/data",
		ChartURLs: charts,
	}
}

func money(x float64) decimal.Decimal {
	return decimal.NewFromFloat(x).Round(2)
}
