package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"PairScope/internal/model"
)

// CSVLoader reads candle series from the populator's on-disk cache:
// one CSV file per (pair, tick size, start, tick count) under a
// per-exchange directory, rows ascending, timestamps in epoch ms.
type CSVLoader struct{}

// NewCSVLoader creates a new CSV cache loader.
func NewCSVLoader() *CSVLoader { return &CSVLoader{} }

func (l *CSVLoader) Name() string { return "csv" }

// SeriesPath returns the cache file path for the given request.
func SeriesPath(req Request) string {
	name := fmt.Sprintf("%s-%s-%s-%d.csv",
		strings.ReplaceAll(req.Pair, "/", "-"),
		req.TickSize,
		req.Start.UTC().Format(time.RFC3339),
		req.NumTicks,
	)
	return filepath.Join(req.DataDir, req.Exchange, name)
}

// Load reads the cached series for the request. A missing file,
// malformed row, or fewer rows than requested yields a LoadError.
// Extra rows beyond NumTicks are trimmed.
func (l *CSVLoader) Load(req Request) ([]model.OHLCV, error) {
	path := SeriesPath(req)

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Exchange: req.Exchange, Pair: req.Pair, Err: err}
	}
	defer f.Close()

	bars, err := readBars(f)
	if err != nil {
		return nil, &LoadError{
			Exchange: req.Exchange,
			Pair:     req.Pair,
			Err:      fmt.Errorf("parse %s: %w", path, err),
		}
	}
	if len(bars) < req.NumTicks {
		return nil, &LoadError{
			Exchange: req.Exchange,
			Pair:     req.Pair,
			Err:      fmt.Errorf("%s holds %d of %d requested ticks", path, len(bars), req.NumTicks),
		}
	}
	return bars[:req.NumTicks], nil
}

func readBars(r io.Reader) ([]model.OHLCV, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 6

	// Header row: timestamp,open,high,low,close,volume
	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var bars []model.OHLCV
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		bar, err := parseBar(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(bars) > 0 && !bar.Time.After(bars[len(bars)-1].Time) {
			return nil, fmt.Errorf("line %d: timestamps not strictly ascending", line)
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func parseBar(rec []string) (model.OHLCV, error) {
	ts, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
	if err != nil {
		return model.OHLCV{}, fmt.Errorf("timestamp %q: %w", rec[0], err)
	}
	vals := make([]float64, 5)
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[i+1]), 64)
		if err != nil {
			return model.OHLCV{}, fmt.Errorf("field %q: %w", rec[i+1], err)
		}
		vals[i] = v
	}
	return model.OHLCV{
		Time:   time.UnixMilli(ts).UTC(),
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}, nil
}
