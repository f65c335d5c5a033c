// Package stats holds the descriptive statistics behind the dashboards.
// Everything here is a thin layer over gonum; functions never modify their
// inputs.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/jask/wineboard/internal/dataset"
)

// Summary is one column of a describe table.
type Summary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Q50    float64
	Q75    float64
	Max    float64
}

// SummaryRows lists the describe row labels in display order.
var SummaryRows = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Value returns the statistic named by one of SummaryRows.
func (s Summary) Value(row string) float64 {
	switch row {
	case "count":
		return float64(s.Count)
	case "mean":
		return s.Mean
	case "std":
		return s.Std
	case "min":
		return s.Min
	case "25%":
		return s.Q25
	case "50%":
		return s.Q50
	case "75%":
		return s.Q75
	case "max":
		return s.Max
	}
	return math.NaN()
}

// Describe summarizes every numeric column of t. NaN and infinite cells are
// excluded from every statistic, including count.
func Describe(t *dataset.Table) []Summary {
	cols := t.NumericColumns()
	out := make([]Summary, 0, len(cols))
	for _, c := range cols {
		out = append(out, Summarize(c.Name, c.Nums))
	}
	return out
}

// Summarize computes a describe column for values.
func Summarize(name string, values []float64) Summary {
	x := sortedFinite(values)
	s := Summary{Column: name, Count: len(x)}
	if len(x) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}
	s.Mean, s.Std = stat.MeanStdDev(x, nil)
	if len(x) < 2 {
		s.Std = math.NaN()
	}
	s.Min, s.Max = x[0], x[len(x)-1]
	s.Q25 = Percentile(x, 0.25)
	s.Q50 = Percentile(x, 0.50)
	s.Q75 = Percentile(x, 0.75)
	return s
}

// Percentile interpolates linearly between the closest ranks of sorted x.
// gonum's stat.Quantile offers empirical and Hyndman-Fan type 4 estimates
// only; describe tables conventionally use type 7, implemented here.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i >= n-1 {
		return sorted[n-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

func sortedFinite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !finite(v) {
			continue
		}
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}
