package pairing

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/wineboard/internal/dataset"
	"github.com/jask/wineboard/internal/fixtures"
)

func parse(t *testing.T, rows []fixtures.PairingRow) *dataset.Table {
	t.Helper()
	tbl, err := dataset.Parse(strings.NewReader(fixtures.PairingCSV(rows)), dataset.ParseOptions{Name: "pairings"})
	require.NoError(t, err)
	return tbl
}

func TestApplyExampleFilter(t *testing.T) {
	t.Parallel()

	tbl := parse(t, []fixtures.PairingRow{
		{WineType: "Red", Food: "Lasagna", Cuisine: "Italian", Quality: 8},
		{WineType: "Red", Food: "Pizza", Cuisine: "Italian", Quality: 6},
		{WineType: "White", Food: "Sole", Cuisine: "French", Quality: 9},
	})
	q, err := NewMemory(tbl)
	require.NoError(t, err)

	res, err := Apply(context.Background(), q, tbl, Filter{WineType: "Red", Cuisine: "Italian"}, 10, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Equal(t, 2, res.Count)
	require.Equal(t, []int{0, 1}, res.Rows)
	require.Equal(t, 2, res.Sample.Len())
	require.Equal(t, "2", fmt.Sprint(res.Count))
}

func TestApplyEmptyMatch(t *testing.T) {
	t.Parallel()

	tbl := parse(t, []fixtures.PairingRow{
		{WineType: "Red", Food: "Lasagna", Cuisine: "Italian", Quality: 8},
		{WineType: "White", Food: "Sole", Cuisine: "French", Quality: 9},
	})
	q, err := NewMemory(tbl)
	require.NoError(t, err)

	for _, f := range []Filter{
		{WineType: "Red", Cuisine: "French"},
		{WineType: "White", Cuisine: "Italian"},
		{WineType: "Sparkling", Cuisine: "Thai"},
	} {
		res, err := Apply(context.Background(), q, tbl, f, 10, rand.New(rand.NewSource(2)))
		require.NoError(t, err)
		require.Equal(t, 0, res.Count)
		require.Empty(t, res.Rows)
		require.Equal(t, 0, res.Sample.Len())
		require.Equal(t, tbl.ColumnNames(), res.Sample.ColumnNames())
	}
}

func TestSampleBounds(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(3))
	rows := make([]int, 40)
	for i := range rows {
		rows[i] = i * 2
	}
	got := Sample(rows, 10, rng)
	require.Len(t, got, 10)
	seen := map[int]bool{}
	for _, r := range got {
		require.False(t, seen[r], "duplicate row %d", r)
		require.Equal(t, 0, r%2)
		seen[r] = true
	}

	require.Len(t, Sample(rows[:3], 10, rng), 3)
	require.Empty(t, Sample(nil, 10, rng))
}

func TestCuisineMeansTop15(t *testing.T) {
	t.Parallel()

	var rows []fixtures.PairingRow
	for i := 0; i < 20; i++ {
		c := fmt.Sprintf("Cuisine%02d", i)
		rows = append(rows,
			fixtures.PairingRow{WineType: "Red", Food: "x", Cuisine: c, Quality: float64(i % 10)},
			fixtures.PairingRow{WineType: "White", Food: "y", Cuisine: c, Quality: float64(i%10 + 1)},
		)
	}
	q, err := NewMemory(parse(t, rows))
	require.NoError(t, err)

	top, err := q.CuisineMeans(context.Background(), 15)
	require.NoError(t, err)
	require.Len(t, top, 15)
	for i := 1; i < len(top); i++ {
		require.GreaterOrEqual(t, top[i-1].Mean, top[i].Mean)
	}
	require.Equal(t, "Cuisine09", top[0].Cuisine)
	require.Equal(t, "Cuisine19", top[1].Cuisine)

	few, err := NewMemory(parse(t, rows[:6]))
	require.NoError(t, err)
	all, err := few.CuisineMeans(context.Background(), 15)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestCuisineMeansKeepsUnscoredCuisineLast(t *testing.T) {
	t.Parallel()

	q, err := NewMemory(parse(t, []fixtures.PairingRow{
		{WineType: "Red", Food: "Mole", Cuisine: "Mexican", Quality: math.NaN()},
		{WineType: "Red", Food: "Pasta", Cuisine: "Italian", Quality: 7},
		{WineType: "White", Food: "Tacos", Cuisine: "Mexican", Quality: math.NaN()},
		{WineType: "White", Food: "Sole", Cuisine: "French", Quality: 9},
	}))
	require.NoError(t, err)

	all, err := q.CuisineMeans(context.Background(), 15)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "French", all[0].Cuisine)
	require.Equal(t, "Italian", all[1].Cuisine)
	require.Equal(t, "Mexican", all[2].Cuisine)
	require.True(t, math.IsNaN(all[2].Mean))
	require.Zero(t, all[2].Count)

	top, err := q.CuisineMeans(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, "Italian", top[1].Cuisine)
}

func TestNewMemoryRequiresColumns(t *testing.T) {
	t.Parallel()

	tbl, err := dataset.Parse(strings.NewReader("wine_type,region\nRed,Rioja\n"), dataset.ParseOptions{Name: "bad"})
	require.NoError(t, err)
	_, err = NewMemory(tbl)
	require.ErrorIs(t, err, dataset.ErrMissingColumn)
}
