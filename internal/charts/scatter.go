package charts

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"gonum.org/v1/gonum/floats"

	"github.com/jask/wineboard/internal/stats"
)

// Scatter plots y against x on an ntcharts canvas and overlays the fitted
// trend as a braille line.
func Scatter(title string, x, y []float64, trend stats.Trend, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := header(title)
	n := min(len(x), len(y))
	if n == 0 {
		return strings.Join(append(lines, labelStyle.Render("(no data)")), "\n")
	}
	x, y = x[:n], y[:n]

	minX, maxX := floats.Min(x), floats.Max(x)
	minY, maxY := floats.Min(y), floats.Max(y)
	if minX == maxX {
		minX, maxX = minX-0.5, maxX+0.5
	}
	if trend.OK {
		// keep the whole trend segment on the canvas
		for _, v := range []float64{trend.At(minX), trend.At(maxX)} {
			minY, maxY = min(minY, v), max(maxY, v)
		}
	}
	if minY == maxY {
		minY, maxY = minY-0.5, maxY+0.5
	}

	lc := linechart.New(width, height, minX, maxX, minY, maxY)
	lc.AxisStyle = axisStyle
	lc.LabelStyle = labelStyle
	lc.DrawXYAxisAndLabel()
	for i := range x {
		lc.DrawRuneWithStyle(canvas.Float64Point{X: x[i], Y: y[i]}, '•', pointStyle)
	}
	if trend.OK {
		lc.DrawBrailleLineWithStyle(
			canvas.Float64Point{X: minX, Y: trend.At(minX)},
			canvas.Float64Point{X: maxX, Y: trend.At(maxX)},
			trendStyle,
		)
	}
	lines = append(lines, lc.View(), TrendLegend(trend))
	return strings.Join(lines, "\n")
}

// TrendLegend describes the fitted line.
func TrendLegend(t stats.Trend) string {
	if !t.OK {
		return labelStyle.Render(fmt.Sprintf("no trend (n=%d)", t.N))
	}
	return trendStyle.Render("──") + labelStyle.Render(fmt.Sprintf(
		" OLS  y = %s %+.4f·x   R² = %.3f   n = %d", short(t.Intercept), t.Slope, t.RSquared, t.N))
}
