package report

import (
	"fmt"
	"sort"
	"strings"

	"PairScope/internal/analyzer"
)

// FormatResult renders an analysis result as a plain-text report.
func FormatResult(res *analyzer.Result) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Lag correlation report | exchange=%s reference=%s rows=%d\n\n",
		res.Exchange, res.Reference, res.Table.Len()))

	b.WriteString("Pair summaries:\n")
	for _, s := range res.Summaries {
		b.WriteString(fmt.Sprintf("  %-12s rows=%d first=%.6g last=%.6g maxDrawdown=%.6g\n",
			s.Pair, s.Rows, s.FirstClose, s.LastClose, s.MaxDrawdown))
	}
	b.WriteString("\n")

	pairs := make([]string, 0, len(res.Curves))
	for pair := range res.Curves {
		pairs = append(pairs, pair)
	}
	sort.Strings(pairs)

	for _, pair := range pairs {
		curve := res.Curves[pair]
		b.WriteString(fmt.Sprintf("|corr| %s vs %s by lag:\n", res.Reference, pair))
		peakLag, peak := 0, -1.0
		for _, pt := range curve {
			b.WriteString(fmt.Sprintf("  lag %4d: %.4f\n", pt.Lag, pt.AbsCorrelation))
			if pt.AbsCorrelation > peak {
				peak = pt.AbsCorrelation
				peakLag = pt.Lag
			}
		}
		if peak >= 0 {
			b.WriteString(fmt.Sprintf("  peak: %.4f at lag %d\n", peak, peakLag))
		}
		b.WriteString("\n")
	}

	b.WriteString("Lag-0 correlation matrix:\n")
	b.WriteString(formatMatrix(res.Table.Pairs, res.Matrix))
	return b.String()
}

func formatMatrix(pairs []string, m [][]float64) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %-12s", ""))
	for _, p := range pairs {
		b.WriteString(fmt.Sprintf(" %12s", p))
	}
	b.WriteString("\n")
	for i, p := range pairs {
		b.WriteString(fmt.Sprintf("  %-12s", p))
		for j := range pairs {
			b.WriteString(fmt.Sprintf(" %12.4f", m[i][j]))
		}
		b.WriteString("\n")
	}
	return b.String()
}
