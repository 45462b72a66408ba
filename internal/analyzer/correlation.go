package analyzer

import (
	"errors"
	"fmt"
	"math"

	"PairScope/internal/calculator"
	"PairScope/internal/model"
)

// LagCorrelation computes, for each lag in [0, maxLagOffset), the
// absolute Pearson correlation between the reference column and the
// comparison column shifted backward by that many rows. Only rows
// where both series remain defined enter the computation. Degenerate
// lags (zero variance, fewer than two overlapping rows, or a lag at
// or past the row count) yield NaN, not an error.
func LagCorrelation(t *model.AlignedTable, reference, comparison string, maxLagOffset int) ([]model.LagPoint, error) {
	if maxLagOffset <= 0 {
		return nil, errors.New("max lag offset must be positive")
	}
	ref, ok := t.Column(reference)
	if !ok {
		return nil, fmt.Errorf("reference pair %q not in table", reference)
	}
	cmp, ok := t.Column(comparison)
	if !ok {
		return nil, fmt.Errorf("comparison pair %q not in table", comparison)
	}

	n := t.Len()
	curve := make([]model.LagPoint, 0, maxLagOffset)
	for lag := 0; lag < maxLagOffset; lag++ {
		r := math.NaN()
		if lag < n {
			r = calculator.Pearson(ref[:n-lag], cmp[lag:])
		}
		curve = append(curve, model.LagPoint{Lag: lag, AbsCorrelation: math.Abs(r)})
	}
	return curve, nil
}

// CorrelationMatrix computes the lag-0 Pearson matrix across all
// columns of the table, indexed like t.Pairs. Entries are NaN where
// the coefficient is undefined.
func CorrelationMatrix(t *model.AlignedTable) [][]float64 {
	m := make([][]float64, len(t.Pairs))
	for i, pi := range t.Pairs {
		m[i] = make([]float64, len(t.Pairs))
		for j, pj := range t.Pairs {
			if j < i {
				m[i][j] = m[j][i]
				continue
			}
			m[i][j] = calculator.Pearson(t.Closes[pi], t.Closes[pj])
		}
	}
	return m
}
