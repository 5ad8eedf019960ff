package handlers

import (
	"net/http"

	"market-fixtures/internal/analysis"
	"market-fixtures/internal/api/models"
	"market-fixtures/internal/config"
	"market-fixtures/internal/data"
	"market-fixtures/internal/fixture"

	"github.com/gin-gonic/gin"
)

// GenerateDecisions handles POST /api/v1/decisions
func (h *GeneratorHandler) GenerateDecisions(c *gin.Context) {
	var req models.DecisionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	cfg := config.MergeDecisions(config.Default().Decisions, config.DecisionsConfig{
		Count: req.Count,
		Seed:  req.Seed,
	})
	if req.SubmitProbability != nil {
		cfg.SubmitProbability = *req.SubmitProbability
	}
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

	key := data.GenerateCacheKey(data.RunDecisions, seed, params)
	run, ok := h.cache.Lookup(key)
	if !ok {
		ds, err := h.engine.RunDecisions(params, seed)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "GENERATION_ERROR", err.Error(), nil)
			return
		}
		run = &data.Run{Kind: data.RunDecisions, Key: key, Seed: seed, Decisions: ds}
		h.cache.Put(run)
		h.logger.Info().Str("id", run.ID).Int("count", params.Count).Uint32("seed", seed).Msg("generated decisions")
	}

	c.JSON(http.StatusOK, buildDecisionsResponse(run))
}

// GetDecisionsData handles GET /api/v1/decisions/:id/data
func (h *GeneratorHandler) GetDecisionsData(c *gin.Context) {
	run, ok := h.lookupRun(c, data.RunDecisions)
	if !ok {
		return
	}
	setAttachment(c, "text/plain; charset=utf-8", fixture.DecisionsFile)
	c.Status(http.StatusOK)
	if err := fixture.EncodeDecisions(c.Writer, run.Decisions); err != nil {
		h.logger.Error().Err(err).Str("id", run.ID).Msg("streaming decisions failed")
		_ = c.Error(err)
	}
}

func buildDecisionsResponse(run *data.Run) models.DecisionsResponse {
	s := analysis.SummarizeDecisions(run.Decisions)
	return models.DecisionsResponse{
		ID:        run.ID,
		Status:    "completed",
		Seed:      run.Seed,
		CreatedAt: run.CreatedAt,
		Summary: models.DecisionsSummary{
			Count:     s.Count,
			Submits:   s.Submits,
			Cancels:   s.Cancels,
			SubmitPct: s.SubmitPct,
			CancelPct: s.CancelPct,
		},
		DataURL: "/api/v1/decisions/" + run.ID + "/data",
	}
}
