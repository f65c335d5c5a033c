package stats

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bin is one histogram bucket covering [Lo, Hi).
type Bin struct {
	Lo    float64
	Hi    float64
	Count int
}

// Histogram splits the finite values into equal-width bins spanning their
// range. The maximum lands in the last bin. A constant input yields one bin.
func Histogram(values []float64, bins int) []Bin {
	x := sortedFinite(values)
	if len(x) == 0 {
		return nil
	}
	if bins < 1 {
		bins = 1
	}
	lo, hi := x[0], x[len(x)-1]
	if lo == hi {
		return []Bin{{Lo: lo - 0.5, Hi: hi + 0.5, Count: len(x)}}
	}

	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	// stat.Histogram wants every value strictly below the last divider.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, x, nil)

	out := make([]Bin, bins)
	for i := range out {
		out[i] = Bin{Lo: dividers[i], Hi: dividers[i+1], Count: int(counts[i])}
	}
	out[bins-1].Hi = hi
	return out
}

// BoxStats summarizes a distribution the way a box plot draws it: whiskers
// reach the most extreme values within 1.5 IQR of the box.
type BoxStats struct {
	N            int
	Min          float64
	Q1           float64
	Median       float64
	Q3           float64
	Max          float64
	Mean         float64
	LowerWhisker float64
	UpperWhisker float64
	Outliers     []float64
}

// Box computes BoxStats over the finite values.
func Box(values []float64) BoxStats {
	x := sortedFinite(values)
	b := BoxStats{N: len(x)}
	if len(x) == 0 {
		return b
	}
	b.Min, b.Max = x[0], x[len(x)-1]
	b.Q1 = Percentile(x, 0.25)
	b.Median = Percentile(x, 0.5)
	b.Q3 = Percentile(x, 0.75)
	b.Mean = stat.Mean(x, nil)

	iqr := b.Q3 - b.Q1
	lowFence, highFence := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.LowerWhisker, b.UpperWhisker = b.Q1, b.Q3
	for _, v := range x {
		if v < lowFence || v > highFence {
			b.Outliers = append(b.Outliers, v)
			continue
		}
		if v < b.LowerWhisker {
			b.LowerWhisker = v
		}
		if v > b.UpperWhisker {
			b.UpperWhisker = v
		}
	}
	return b
}

// GroupBox is the box of one category. Values holds the category's finite
// values in ascending order.
type GroupBox struct {
	Key    string
	Box    BoxStats
	Values []float64
}

// GroupBoxes computes one box per distinct key. Groups appear in first
// appearance order unless less is given.
func GroupBoxes(keys []string, values []float64, less func(a, b string) bool) []GroupBox {
	order, members := group(keys, values)
	if less != nil {
		sort.SliceStable(order, func(i, j int) bool { return less(order[i], order[j]) })
	}
	out := make([]GroupBox, 0, len(order))
	for _, k := range order {
		vals := sortedFinite(members[k])
		out = append(out, GroupBox{Key: k, Box: Box(vals), Values: vals})
	}
	return out
}

// NumericLess orders keys by their numeric value, falling back to string order.
func NumericLess(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return fa < fb
	}
	if errA == nil {
		return true
	}
	if errB == nil {
		return false
	}
	return a < b
}

func group(keys []string, values []float64) ([]string, map[string][]float64) {
	n := len(keys)
	if len(values) < n {
		n = len(values)
	}
	var order []string
	members := make(map[string][]float64)
	for i := 0; i < n; i++ {
		k := keys[i]
		if _, ok := members[k]; !ok {
			order = append(order, k)
			members[k] = nil
		}
		members[k] = append(members[k], values[i])
	}
	return order, members
}
