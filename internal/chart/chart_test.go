package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"market-fixtures/internal/model"
	"market-fixtures/internal/synth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func testSeries(t *testing.T, n int) *model.MarketSeries {
	t.Helper()
	p := synth.DefaultMarketParams()
	p.Count = n
	s, err := synth.New().RunSeeded(p, 42)
	require.NoError(t, err)
	return s
}

func smallRenderer() *PlotRenderer {
	r := NewPlotRenderer(20)
	r.SampleSteps = 500
	r.DetailSteps = 1000
	r.Window = 100
	r.Bins = 20
	return r
}

func TestPlotRenderer_RendersPNG(t *testing.T) {
	s := testSeries(t, 3000)
	r := smallRenderer()
	for _, k := range Kinds {
		t.Run(string(k), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.Render(k, s, &buf))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
		})
	}
}

func TestPlotRenderer_ShortSeries(t *testing.T) {
	// Shorter than every window; panels that cannot be computed stay empty.
	s := testSeries(t, 50)
	var buf bytes.Buffer
	require.NoError(t, smallRenderer().Render(MarketVisualization, s, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestPlotRenderer_RejectsUnknownKind(t *testing.T) {
	var buf bytes.Buffer
	err := smallRenderer().Render(Kind("pie"), testSeries(t, 10), &buf)
	assert.Error(t, err)
	assert.Error(t, smallRenderer().Render(MarketVisualization, &model.MarketSeries{}, &buf))
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	paths, err := WriteAll(smallRenderer(), testSeries(t, 2000), dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "market_visualization.png"), paths[0])
	assert.Equal(t, filepath.Join(dir, "price_analysis.png"), paths[1])
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(raw, pngMagic))
	}
}

func TestWriteAll_NopWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "none")
	paths, err := WriteAll(Nop{}, testSeries(t, 10), dir)
	require.NoError(t, err)
	assert.Empty(t, paths)
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("price_analysis")
	require.NoError(t, err)
	assert.Equal(t, PriceAnalysis, k)
	_, err = ParseKind("nope")
	assert.Error(t, err)
}
