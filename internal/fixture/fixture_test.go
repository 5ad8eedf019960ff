package fixture

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"market-fixtures/internal/model"
	"market-fixtures/internal/synth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	referenceDecisions = "../../testdata/decisions_seed42_n100.txt"
	referenceMarket    = "../../testdata/market_seed42_n100.txt"
)

func TestWriteDecisions_MatchesReference(t *testing.T) {
	ds, err := synth.New().RunDecisions(synth.DecisionParams{Count: 100, SubmitProbability: 0.6}, 42)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), DecisionsFile)
	require.NoError(t, WriteDecisions(path, ds))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want, err := os.ReadFile(referenceDecisions)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
	assert.Equal(t, 100, strings.Count(string(got), "\n"))
}

func TestWriteMarketData_MatchesReference(t *testing.T) {
	p := synth.DefaultMarketParams()
	p.Count = 100
	s, err := synth.New().RunSeeded(p, 42)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeMarketData(&buf, s))

	want, err := os.ReadFile(referenceMarket)
	require.NoError(t, err)
	assert.Equal(t, string(want), buf.String())
	assert.Equal(t, 102, strings.Count(buf.String(), "\n"))
}

func TestMarketData_RoundTrip(t *testing.T) {
	s := &model.MarketSeries{
		Prices: []float64{100, 99.994, 100.006},
		Sides:  []model.Side{model.SideBuy, model.SideSell, model.SideBuy},
		Sizes:  []int{54, 1, 1200},
	}
	path := filepath.Join(t.TempDir(), "nested", MarketDataFile)
	require.NoError(t, WriteMarketData(path, s))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, MarketDataHeader[0], lines[0])
	assert.Equal(t, MarketDataHeader[1], lines[1])
	assert.Equal(t, "1 100.00 54", lines[2])
	assert.Equal(t, "0 99.99 1", lines[3])

	back, err := ReadMarketData(path)
	require.NoError(t, err)
	assert.Equal(t, s.Sides, back.Sides)
	assert.Equal(t, s.Sizes, back.Sizes)
	assert.Equal(t, []float64{100, 99.99, 100.01}, back.Prices)
}

func TestDecisions_RoundTrip(t *testing.T) {
	ds := []model.Decision{1, 0, 0, 1}
	var buf bytes.Buffer
	require.NoError(t, EncodeDecisions(&buf, ds))
	assert.Equal(t, "1\n0\n0\n1\n", buf.String())

	back, err := DecodeDecisions(&buf)
	require.NoError(t, err)
	assert.Equal(t, ds, back)
}

func TestDecode_RejectsMalformedRows(t *testing.T) {
	_, err := DecodeDecisions(strings.NewReader("1\n2\n"))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)

	_, err = DecodeMarketData(strings.NewReader("# h\n1 abc 5\n"))
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)

	_, err = DecodeMarketData(strings.NewReader("1 100.00\n"))
	assert.Error(t, err)

	_, err = DecodeMarketData(strings.NewReader("# only a header\n"))
	assert.ErrorIs(t, err, model.ErrEmptySeries)
}

func TestWrite_ReportsPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := WriteDecisions(filepath.Join(blocker, DecisionsFile), []model.Decision{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), blocker)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "100.00", FormatPrice(100))
	assert.Equal(t, "0.01", FormatPrice(0.01))
	assert.Equal(t, "99.94", FormatPrice(99.93877883705774))
}
