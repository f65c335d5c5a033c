// Package pairing answers the two food-pairing queries: mean pairing quality
// per cuisine, and the wine type x cuisine filter with its random sample.
package pairing

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/jask/wineboard/internal/dataset"
	"github.com/jask/wineboard/internal/stats"
)

// Filter selects rows whose wine type and cuisine both match exactly.
type Filter struct {
	WineType string
	Cuisine  string
}

func (f Filter) String() string { return fmt.Sprintf("%s x %s", f.WineType, f.Cuisine) }

// CuisineScore is the mean pairing quality of one cuisine.
type CuisineScore struct {
	Cuisine string
	Mean    float64
	Count   int
}

// Querier runs pairing queries against one loaded table.
type Querier interface {
	// CuisineMeans returns cuisines ordered by mean pairing quality, highest
	// first, truncated to limit when limit > 0.
	CuisineMeans(ctx context.Context, limit int) ([]CuisineScore, error)
	// Match returns the indices of matching rows in table order.
	Match(ctx context.Context, f Filter) ([]int, error)
}

// Result is a filtered view: how many rows matched and a random sample of them.
type Result struct {
	Filter Filter
	Count  int
	Rows   []int
	Sample *dataset.Table
}

// Sample draws min(n, len(rows)) distinct rows in random order.
func Sample(rows []int, n int, rng *rand.Rand) []int {
	if n > len(rows) {
		n = len(rows)
	}
	if n <= 0 {
		return []int{}
	}
	perm := rng.Perm(len(rows))
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = rows[perm[i]]
	}
	return out
}

// Apply runs f through q and samples up to n matching rows of t.
func Apply(ctx context.Context, q Querier, t *dataset.Table, f Filter, n int, rng *rand.Rand) (Result, error) {
	rows, err := q.Match(ctx, f)
	if err != nil {
		return Result{}, fmt.Errorf("match %s: %w", f, err)
	}
	picked := Sample(rows, n, rng)
	return Result{
		Filter: f,
		Count:  len(rows),
		Rows:   rows,
		Sample: t.Subset(picked),
	}, nil
}

// Memory evaluates queries directly over the table columns.
type Memory struct {
	wineTypes []string
	cuisines  []string
	quality   []float64
}

// NewMemory builds a Querier over t.
func NewMemory(t *dataset.Table) (*Memory, error) {
	if err := t.Require(dataset.ColWineType, dataset.ColCuisine, dataset.ColPairingQuality); err != nil {
		return nil, err
	}
	wt, _ := t.Column(dataset.ColWineType)
	cu, _ := t.Column(dataset.ColCuisine)
	pq, _ := t.Column(dataset.ColPairingQuality)
	if pq.Kind != dataset.Numeric {
		return nil, fmt.Errorf("%s is not numeric", dataset.ColPairingQuality)
	}
	m := &Memory{quality: pq.Nums}
	for i := 0; i < t.Len(); i++ {
		m.wineTypes = append(m.wineTypes, wt.Text(i))
		m.cuisines = append(m.cuisines, cu.Text(i))
	}
	return m, nil
}

func (m *Memory) CuisineMeans(ctx context.Context, limit int) ([]CuisineScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Cuisines without a single quality value keep a NaN mean and sort last.
	kept := stats.GroupMeans(m.cuisines, m.quality)
	stats.SortDesc(kept)
	kept = stats.Top(kept, limit)

	out := make([]CuisineScore, len(kept))
	for i, g := range kept {
		out[i] = CuisineScore{Cuisine: g.Key, Mean: g.Mean, Count: g.Count}
	}
	return out, nil
}

func (m *Memory) Match(ctx context.Context, f Filter) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []int{}
	for i := range m.wineTypes {
		if m.wineTypes[i] == f.WineType && m.cuisines[i] == f.Cuisine {
			out = append(out, i)
		}
	}
	return out, nil
}
