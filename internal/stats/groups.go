package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GroupValue is the mean of a measure within one category.
type GroupValue struct {
	Key   string
	Mean  float64
	Count int
}

// GroupMeans averages values per key, skipping NaN, in first appearance order.
// A group whose values are all NaN has a NaN mean and a zero count.
func GroupMeans(keys []string, values []float64) []GroupValue {
	order, members := group(keys, values)
	out := make([]GroupValue, 0, len(order))
	for _, k := range order {
		x := sortedFinite(members[k])
		gv := GroupValue{Key: k, Count: len(x), Mean: math.NaN()}
		if len(x) > 0 {
			gv.Mean = stat.Mean(x, nil)
		}
		out = append(out, gv)
	}
	return out
}

// SortDesc orders groups by mean, highest first. Ties are broken by key and
// NaN means sort last.
func SortDesc(groups []GroupValue) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		an, bn := math.IsNaN(a.Mean), math.IsNaN(b.Mean)
		if an != bn {
			return bn
		}
		if !an && a.Mean != b.Mean {
			return a.Mean > b.Mean
		}
		return a.Key < b.Key
	})
}

// Top returns at most n leading groups. n <= 0 keeps everything.
func Top(groups []GroupValue, n int) []GroupValue {
	if n <= 0 || len(groups) <= n {
		return groups
	}
	return groups[:n]
}
