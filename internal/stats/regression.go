package stats

import "gonum.org/v1/gonum/stat"

// Trend is an ordinary least squares fit y = Intercept + Slope*x.
type Trend struct {
	Intercept float64
	Slope     float64
	RSquared  float64
	N         int
	OK        bool
}

// At evaluates the fitted line.
func (t Trend) At(x float64) float64 { return t.Intercept + t.Slope*x }

// FitOLS fits y against x over the pairs where both are finite. OK is false
// when fewer than two pairs remain or x has no spread.
func FitOLS(x, y []float64) Trend {
	xs, ys := completePairs(x, y, nil, nil)
	tr := Trend{N: len(xs)}
	if tr.N < 2 || stat.Variance(xs, nil) == 0 {
		return tr
	}
	tr.Intercept, tr.Slope = stat.LinearRegression(xs, ys, nil, false)
	tr.RSquared = stat.RSquared(xs, ys, nil, tr.Intercept, tr.Slope)
	tr.OK = true
	return tr
}
