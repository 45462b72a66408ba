package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC)

func testCSVRequest(dir string, numTicks int) Request {
	return Request{
		DataDir:  dir,
		Exchange: "kraken",
		Pair:     "ETH/BTC",
		TickSize: "1m",
		Start:    testStart,
		NumTicks: numTicks,
	}
}

// writeCache writes a cache file in the populator layout with count
// one-minute bars starting at testStart.
func writeCache(t *testing.T, req Request, count int) string {
	t.Helper()
	path := SeriesPath(req)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	fmt.Fprintln(f, "timestamp,open,high,low,close,volume")
	for i := 0; i < count; i++ {
		ts := testStart.Add(time.Duration(i) * time.Minute).UnixMilli()
		c := 100.0 + float64(i)
		fmt.Fprintf(f, "%d,%.2f,%.2f,%.2f,%.2f,%.2f\n", ts, c-0.5, c+1, c-1, c, 42.0)
	}
	return path
}

func TestSeriesPath_MatchesPopulatorLayout(t *testing.T) {
	req := testCSVRequest("/cache", 10000)
	want := filepath.Join("/cache", "kraken", "ETH-BTC-1m-2019-05-01T00:00:00Z-10000.csv")
	assert.Equal(t, want, SeriesPath(req))
}

func TestCSVLoader_RoundTrip(t *testing.T) {
	req := testCSVRequest(t.TempDir(), 5)
	writeCache(t, req, 5)

	bars, err := NewCSVLoader().Load(req)
	require.NoError(t, err)
	require.Len(t, bars, 5)

	assert.True(t, bars[0].Time.Equal(testStart))
	assert.InDelta(t, 100.0, bars[0].Close, 1e-9)
	assert.InDelta(t, 104.0, bars[4].Close, 1e-9)
	for i := 1; i < len(bars); i++ {
		assert.True(t, bars[i].Time.After(bars[i-1].Time))
	}
}

func TestCSVLoader_TrimsExtraRows(t *testing.T) {
	req := testCSVRequest(t.TempDir(), 3)
	writeCache(t, req, 8)

	bars, err := NewCSVLoader().Load(req)
	require.NoError(t, err)
	assert.Len(t, bars, 3)
}

func TestCSVLoader_MissingFileIsLoadError(t *testing.T) {
	req := testCSVRequest(t.TempDir(), 5)

	_, err := NewCSVLoader().Load(req)
	require.Error(t, err)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "kraken", le.Exchange)
	assert.Equal(t, "ETH/BTC", le.Pair)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCSVLoader_ShortFileIsLoadError(t *testing.T) {
	req := testCSVRequest(t.TempDir(), 10)
	writeCache(t, req, 4)

	_, err := NewCSVLoader().Load(req)
	var le *LoadError
	require.ErrorAs(t, err, &le)
}

func TestCSVLoader_RejectsMalformedRows(t *testing.T) {
	req := testCSVRequest(t.TempDir(), 2)
	path := SeriesPath(req)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	content := "timestamp,open,high,low,close,volume\n" +
		"1556668800000,1,2,0.5,1.5,10\n" +
		"oops,1,2,0.5,1.5,10\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := NewCSVLoader().Load(req)
	var le *LoadError
	require.ErrorAs(t, err, &le)
}

func TestCSVLoader_RejectsNonAscendingTimestamps(t *testing.T) {
	req := testCSVRequest(t.TempDir(), 2)
	path := SeriesPath(req)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	content := "timestamp,open,high,low,close,volume\n" +
		"1556668860000,1,2,0.5,1.5,10\n" +
		"1556668800000,1,2,0.5,1.5,10\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := NewCSVLoader().Load(req)
	var le *LoadError
	require.ErrorAs(t, err, &le)
}
