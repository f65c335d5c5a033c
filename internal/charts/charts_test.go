package charts

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/wineboard/internal/stats"
)

func requireFits(t *testing.T, out string, width int) {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		require.LessOrEqual(t, ansi.StringWidth(line), width, "line %q", ansi.Strip(line))
	}
}

func TestBars(t *testing.T) {
	out := Bars("Cuisine", []Bar{
		{Label: "French", Value: 9},
		{Label: "Italian", Value: 7},
		{Label: "A very long cuisine name indeed", Value: 3},
	}, 50)
	plain := ansi.Strip(out)
	require.Contains(t, plain, "French")
	require.Contains(t, plain, "…")
	requireFits(t, out, 50)

	lines := strings.Split(plain, "\n")
	require.Len(t, lines, 4)
	require.Greater(t, strings.Count(lines[1], "█"), strings.Count(lines[2], "█"))

	require.Contains(t, ansi.Strip(Bars("Empty", nil, 40)), "(no data)")
}

func TestHistogramLabels(t *testing.T) {
	bins := stats.Histogram([]float64{3, 4, 5, 5, 6, 8}, 5)
	out := ansi.Strip(Histogram("Quality", bins, 60))
	require.Contains(t, out, "3–4")
	require.Len(t, strings.Split(out, "\n"), 6)
}

func TestBoxPlot(t *testing.T) {
	groups := stats.GroupBoxes(
		[]string{"5", "5", "5", "6", "6", "6", "5"},
		[]float64{9, 9.5, 10, 10.5, 11, 11.5, 14},
		stats.NumericLess,
	)
	out := BoxPlot("Alcohol by quality", groups, 60)
	requireFits(t, out, 60)
	plain := ansi.Strip(out)
	lines := strings.Split(plain, "\n")
	require.Len(t, lines, len(groups)+3)
	require.True(t, strings.HasPrefix(lines[1], "5"))
	require.Contains(t, lines[1], "┃")
	require.Contains(t, plain, "14")

	require.Contains(t, ansi.Strip(BoxPlot("none", nil, 40)), "(no data)")
}

func TestCoolwarm(t *testing.T) {
	require.Equal(t, lipgloss.Color("#b40426"), Coolwarm(1))
	require.Equal(t, lipgloss.Color("#3b4cc0"), Coolwarm(-1))
	require.Equal(t, lipgloss.Color("#dddddd"), Coolwarm(0))
	require.Equal(t, Coolwarm(1), Coolwarm(3))
	require.Equal(t, colorSurface1, Coolwarm(math.NaN()))
}

func TestHeatmap(t *testing.T) {
	m := stats.Matrix{
		Labels: []string{"alcohol", "total sulfur dioxide", "quality"},
		Values: [][]float64{
			{1, -0.2, 0.48},
			{-0.2, 1, -0.19},
			{0.48, -0.19, 1},
		},
	}
	out := Heatmap("Correlation", m, 80)
	requireFits(t, out, 80)
	plain := ansi.Strip(out)
	require.Contains(t, plain, "1.00")
	require.Contains(t, plain, "0.48")
	require.Contains(t, plain, "3 quality")
}

func TestScatter(t *testing.T) {
	x := []float64{9, 10, 11, 12, 13}
	y := []float64{5, 5, 6, 6, 7}
	trend := stats.FitOLS(x, y)
	out := Scatter("alcohol vs quality", x, y, trend, 50, 12)
	require.NotEmpty(t, out)
	require.Contains(t, ansi.Strip(out), "R²")

	require.Contains(t, ansi.Strip(Scatter("none", nil, nil, stats.Trend{}, 50, 12)), "(no data)")
	require.Contains(t, ansi.Strip(TrendLegend(stats.Trend{N: 1})), "no trend")
}

func TestDescribeTable(t *testing.T) {
	summaries := []stats.Summary{
		stats.Summarize("alcohol", []float64{9, 10, 11}),
		stats.Summarize("pH", []float64{3.1, 3.3, math.NaN()}),
	}
	out := Describe(summaries, 100)
	requireFits(t, out, 100)
	plain := ansi.Strip(out)
	for _, want := range []string{"count", "mean", "75%", "alcohol", "pH", "10"} {
		require.Contains(t, plain, want)
	}
}

func TestTableShrinksToWidth(t *testing.T) {
	headers := []string{"fixed acidity", "volatile acidity", "citric acid", "residual sugar"}
	rows := [][]string{{"7.4", "0.7", "0", "1.9"}, {"7.8", "0.88", "0", "2.6"}}
	out := Table(headers, rows, 40)
	requireFits(t, out, 40)
	require.Len(t, strings.Split(ansi.Strip(out), "\n"), 3)
}
