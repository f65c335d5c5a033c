package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/jask/wineboard/internal/dataset"
)

// Matrix is a labelled square matrix.
type Matrix struct {
	Labels []string
	Values [][]float64
}

// Size returns the matrix dimension.
func (m Matrix) Size() int { return len(m.Labels) }

// At returns the cell at row i, column j.
func (m Matrix) At(i, j int) float64 { return m.Values[i][j] }

// Correlate returns the Pearson correlation matrix of every numeric column.
// Each pair uses the rows where both columns hold a finite value, so a sparse
// column only blanks its own row and column. Pairs with fewer than two such
// rows, or without spread, are NaN. The diagonal is fixed at 1.
func Correlate(t *dataset.Table) Matrix {
	cols := t.NumericColumns()
	k := len(cols)
	m := Matrix{Labels: make([]string, k), Values: make([][]float64, k)}
	for i, c := range cols {
		m.Labels[i] = c.Name
		m.Values[i] = make([]float64, k)
		m.Values[i][i] = 1
	}

	xs := make([]float64, 0, t.Len())
	ys := make([]float64, 0, t.Len())
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			xs, ys = completePairs(cols[i].Nums, cols[j].Nums, xs[:0], ys[:0])
			v := math.NaN()
			if len(xs) >= 2 {
				v = stat.Correlation(xs, ys, nil)
			}
			m.Values[i][j] = v
			m.Values[j][i] = v
		}
	}
	return m
}

// completePairs appends to xs and ys the pairs where both x and y are finite.
func completePairs(x, y, xs, ys []float64) ([]float64, []float64) {
	n := min(len(x), len(y))
	for i := 0; i < n; i++ {
		if !finite(x[i]) || !finite(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
