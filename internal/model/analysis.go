package model

// LagPoint is one entry of a lag correlation curve: the absolute
// Pearson correlation between a reference series and a comparison
// series shifted backward by Lag rows. AbsCorrelation is NaN when the
// coefficient is undefined (zero variance or too few overlapping rows).
type LagPoint struct {
	Lag            int
	AbsCorrelation float64
}

// PairSummary holds per-pair descriptive statistics for the report.
type PairSummary struct {
	Pair        string
	Rows        int
	FirstClose  float64
	LastClose   float64
	MaxDrawdown float64
}
