package handlers

import (
	"net/http"

	"market-fixtures/internal/api/models"
	"market-fixtures/internal/chart"
	"market-fixtures/internal/data"
	"market-fixtures/internal/synth"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// DefaultMaxCount bounds the length of a single generated run.
const DefaultMaxCount = 1000000

// GeneratorHandler handles fixture generation and download requests
type GeneratorHandler struct {
	cache    *data.RunCache
	renderer chart.Renderer
	engine   *synth.Engine
	maxCount int
	logger   zerolog.Logger
}

// NewGeneratorHandler creates a new generator handler
func NewGeneratorHandler(cache *data.RunCache, renderer chart.Renderer, maxCount int, logger zerolog.Logger) *GeneratorHandler {
	if maxCount <= 0 {
		maxCount = DefaultMaxCount
	}
	if renderer == nil {
		renderer = chart.Nop{}
	}
	return &GeneratorHandler{
		cache:    cache,
		renderer: renderer,
		engine:   synth.New(),
		maxCount: maxCount,
		logger:   logger,
	}
}

// Register mounts the generator routes on g. Generation and chart rendering
// go through limit; plain downloads do not.
func (h *GeneratorHandler) Register(g *gin.RouterGroup, limit gin.HandlerFunc) {
	g.GET("/generators", ListGenerators)

	g.POST("/decisions", limit, h.GenerateDecisions)
	g.GET("/decisions/:id/data", h.GetDecisionsData)

	g.POST("/market", limit, h.GenerateMarket)
	g.GET("/market/:id/data", h.GetMarketData)
	g.GET("/market/:id/charts/:kind", limit, h.GetMarketChart)
}

func (h *GeneratorHandler) lookupRun(c *gin.Context, kind data.RunKind) (*data.Run, bool) {
	id := c.Param("id")
	run, ok := h.cache.Get(id)
	if !ok || run.Kind != kind {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "run "+id+" not found or expired", nil)
		return nil, false
	}
	return run, true
}

func (h *GeneratorHandler) checkCount(c *gin.Context, count int) bool {
	if count > h.maxCount {
		respondError(c, http.StatusBadRequest, "INVALID_CONFIG", "count exceeds the server limit", map[string]interface{}{
			"count":     count,
			"max_count": h.maxCount,
		})
		return false
	}
	return true
}

func respondError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func setAttachment(c *gin.Context, contentType, filename string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
}
