package analyzer

import (
	"errors"
	"time"

	"PairScope/internal/loader"
	"PairScope/internal/model"
)

// BuildAlignedTable loads each pair's series with identical request
// parameters and inner-joins them on timestamp, in the given pair
// order. Loader failures propagate unchanged. Fully disjoint series
// produce a zero-row table, not an error. The join is associative, so
// the resulting row set does not depend on the pair order.
func BuildAlignedTable(l loader.Loader, req loader.Request, pairs []string) (*model.AlignedTable, error) {
	if len(pairs) == 0 {
		return nil, errors.New("at least one pair is required")
	}

	times := make([]time.Time, 0)
	columns := make(map[string]map[int64]float64, len(pairs))

	for i, pair := range pairs {
		r := req
		r.Pair = pair
		bars, err := l.Load(r)
		if err != nil {
			return nil, err
		}

		closes := make(map[int64]float64, len(bars))
		for _, b := range bars {
			closes[b.Time.UnixMilli()] = b.Close
		}
		columns[pair] = closes

		if i == 0 {
			for _, b := range bars {
				times = append(times, b.Time)
			}
			continue
		}
		// Keep only timestamps the new series also covers.
		kept := times[:0]
		for _, ts := range times {
			if _, ok := closes[ts.UnixMilli()]; ok {
				kept = append(kept, ts)
			}
		}
		times = kept
	}

	table := &model.AlignedTable{
		Pairs:  append([]string(nil), pairs...),
		Times:  times,
		Closes: make(map[string][]float64, len(pairs)),
	}
	for _, pair := range pairs {
		col := make([]float64, len(times))
		for i, ts := range times {
			col[i] = columns[pair][ts.UnixMilli()]
		}
		table.Closes[pair] = col
	}
	return table, nil
}
