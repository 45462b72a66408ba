package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"PairScope/internal/analyzer"
	"PairScope/internal/model"
)

// Reporter publishes an analysis result. Rendering is swappable; the
// core only ever hands over (lag, value) sequences and summaries.
type Reporter interface {
	Publish(res *analyzer.Result) error
}

// ConsoleReporter writes the plain-text report to an io.Writer.
type ConsoleReporter struct {
	Out io.Writer
}

func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{Out: out}
}

func (r *ConsoleReporter) Publish(res *analyzer.Result) error {
	_, err := io.WriteString(r.Out, FormatResult(res))
	return err
}

// CSVReporter writes one lag curve file per comparison pair plus the
// lag-0 matrix into a per-exchange directory.
type CSVReporter struct {
	Dir string
}

func NewCSVReporter(dir string) *CSVReporter {
	return &CSVReporter{Dir: dir}
}

func (r *CSVReporter) Publish(res *analyzer.Result) error {
	dir := filepath.Join(r.Dir, res.Exchange)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	pairs := make([]string, 0, len(res.Curves))
	for pair := range res.Curves {
		pairs = append(pairs, pair)
	}
	sort.Strings(pairs)

	for _, pair := range pairs {
		path := filepath.Join(dir, curveFilename(res.Reference, pair))
		if err := writeCurve(path, res.Curves[pair]); err != nil {
			return err
		}
	}
	return writeMatrix(filepath.Join(dir, "matrix.csv"), res.Table.Pairs, res.Matrix)
}

func curveFilename(reference, comparison string) string {
	clean := func(p string) string { return strings.ReplaceAll(p, "/", "-") }
	return fmt.Sprintf("lagcorr-%s-vs-%s.csv", clean(reference), clean(comparison))
}

func writeCurve(path string, curve []model.LagPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"lag", "abs_correlation"}); err != nil {
		return err
	}
	for _, pt := range curve {
		rec := []string{
			strconv.Itoa(pt.Lag),
			strconv.FormatFloat(pt.AbsCorrelation, 'g', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeMatrix(path string, pairs []string, m [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"pair"}, pairs...)); err != nil {
		return err
	}
	for i, pair := range pairs {
		rec := make([]string, 0, len(pairs)+1)
		rec = append(rec, pair)
		for j := range pairs {
			rec = append(rec, strconv.FormatFloat(m[i][j], 'g', -1, 64))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
