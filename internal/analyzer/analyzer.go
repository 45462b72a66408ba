package analyzer

import (
	"fmt"
	"log"
	"time"

	"PairScope/internal/calculator"
	"PairScope/internal/loader"
	"PairScope/internal/model"
)

// Params configures one analysis run. All state lives here; there are
// no package-level defaults.
type Params struct {
	DataDir  string
	Exchange string
	Pairs    []string
	TickSize string
	Start    time.Time
	NumTicks int

	Reference    string
	MaxLagOffset int

	// SmoothHalfLife, when positive, EMA-smooths every close column
	// before correlating. Zero disables smoothing.
	SmoothHalfLife float64
}

func (p Params) validate() error {
	if len(p.Pairs) == 0 {
		return fmt.Errorf("no pairs configured")
	}
	if p.MaxLagOffset <= 0 {
		return fmt.Errorf("max lag offset must be positive, got %d", p.MaxLagOffset)
	}
	found := false
	for _, pair := range p.Pairs {
		if pair == p.Reference {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("reference pair %q not in pair list", p.Reference)
	}
	return nil
}

// Result holds everything one analysis run produced.
type Result struct {
	Exchange  string
	Reference string
	Table     *model.AlignedTable
	// Curves maps each comparison pair to its lag correlation curve.
	Curves    map[string][]model.LagPoint
	Matrix    [][]float64
	Summaries []model.PairSummary
}

// Run loads all configured pairs, aligns them, and computes the lag
// correlation curve of the reference pair against every other pair,
// plus the lag-0 matrix and per-pair summaries.
func Run(l loader.Loader, p Params) (*Result, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	req := loader.Request{
		DataDir:  p.DataDir,
		Exchange: p.Exchange,
		TickSize: p.TickSize,
		Start:    p.Start,
		NumTicks: p.NumTicks,
	}
	table, err := BuildAlignedTable(l, req, p.Pairs)
	if err != nil {
		return nil, err
	}
	if table.Len() == 0 {
		log.Printf("[WARN] %s: no overlapping timestamps across %d pairs", p.Exchange, len(p.Pairs))
	}

	if p.SmoothHalfLife > 0 {
		if err := smoothTable(table, p.SmoothHalfLife); err != nil {
			return nil, err
		}
	}

	curves := make(map[string][]model.LagPoint, len(p.Pairs)-1)
	for _, pair := range p.Pairs {
		if pair == p.Reference {
			continue
		}
		curve, err := LagCorrelation(table, p.Reference, pair, p.MaxLagOffset)
		if err != nil {
			return nil, err
		}
		curves[pair] = curve
	}

	return &Result{
		Exchange:  p.Exchange,
		Reference: p.Reference,
		Table:     table,
		Curves:    curves,
		Matrix:    CorrelationMatrix(table),
		Summaries: summarize(table),
	}, nil
}

func smoothTable(t *model.AlignedTable, halfLife float64) error {
	for _, pair := range t.Pairs {
		smoothed, err := calculator.SmoothSeries(t.Closes[pair], halfLife)
		if err != nil {
			return fmt.Errorf("smooth %s: %w", pair, err)
		}
		t.Closes[pair] = smoothed
	}
	return nil
}

func summarize(t *model.AlignedTable) []model.PairSummary {
	summaries := make([]model.PairSummary, 0, len(t.Pairs))
	for _, pair := range t.Pairs {
		closes := t.Closes[pair]
		s := model.PairSummary{Pair: pair, Rows: len(closes)}
		if len(closes) > 0 {
			s.FirstClose = closes[0]
			s.LastClose = closes[len(closes)-1]
			s.MaxDrawdown = calculator.MaxAbsDrawdown(closes)
		}
		summaries = append(summaries, s)
	}
	return summaries
}
