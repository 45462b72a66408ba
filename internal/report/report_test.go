package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PairScope/internal/analyzer"
	"PairScope/internal/model"
)

func sampleResult() *analyzer.Result {
	return &analyzer.Result{
		Exchange:  "kraken",
		Reference: "BTC/USD",
		Table: &model.AlignedTable{
			Pairs: []string{"BTC/USD", "ETH/USD"},
			Closes: map[string][]float64{
				"BTC/USD": {100, 101, 102},
				"ETH/USD": {10, 9, 11},
			},
		},
		Curves: map[string][]model.LagPoint{
			"ETH/USD": {
				{Lag: 0, AbsCorrelation: 0.5},
				{Lag: 1, AbsCorrelation: 0.75},
			},
		},
		Matrix: [][]float64{{1, 0.5}, {0.5, 1}},
		Summaries: []model.PairSummary{
			{Pair: "BTC/USD", Rows: 3, FirstClose: 100, LastClose: 102},
			{Pair: "ETH/USD", Rows: 3, FirstClose: 10, LastClose: 11, MaxDrawdown: 1},
		},
	}
}

func TestFormatResult(t *testing.T) {
	out := FormatResult(sampleResult())

	assert.Contains(t, out, "exchange=kraken")
	assert.Contains(t, out, "reference=BTC/USD")
	assert.Contains(t, out, "BTC/USD vs ETH/USD by lag")
	assert.Contains(t, out, "lag    0: 0.5000")
	assert.Contains(t, out, "lag    1: 0.7500")
	assert.Contains(t, out, "peak: 0.7500 at lag 1")
	assert.Contains(t, out, "Lag-0 correlation matrix")
}

func TestConsoleReporter(t *testing.T) {
	var buf bytes.Buffer
	rep := NewConsoleReporter(&buf)
	require.NoError(t, rep.Publish(sampleResult()))
	assert.Equal(t, FormatResult(sampleResult()), buf.String())
}

func TestCSVReporter_WritesCurveAndMatrix(t *testing.T) {
	dir := t.TempDir()
	rep := NewCSVReporter(dir)
	require.NoError(t, rep.Publish(sampleResult()))

	curvePath := filepath.Join(dir, "kraken", "lagcorr-BTC-USD-vs-ETH-USD.csv")
	f, err := os.Open(curvePath)
	require.NoError(t, err)
	defer f.Close()

	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"lag", "abs_correlation"}, recs[0])
	assert.Equal(t, []string{"0", "0.5"}, recs[1])
	assert.Equal(t, []string{"1", "0.75"}, recs[2])

	matrixPath := filepath.Join(dir, "kraken", "matrix.csv")
	mf, err := os.Open(matrixPath)
	require.NoError(t, err)
	defer mf.Close()

	mrecs, err := csv.NewReader(mf).ReadAll()
	require.NoError(t, err)
	require.Len(t, mrecs, 3)
	assert.Equal(t, []string{"pair", "BTC/USD", "ETH/USD"}, mrecs[0])
	assert.Equal(t, []string{"BTC/USD", "1", "0.5"}, mrecs[1])
}
