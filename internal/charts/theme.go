package charts

import (
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha
const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface1 lipgloss.Color = "#45475a"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	labelStyle   = lipgloss.NewStyle().Foreground(colorOverlay1)
	axisStyle    = lipgloss.NewStyle().Foreground(colorSurface2)
	barStyle     = lipgloss.NewStyle().Foreground(colorBlue)
	boxStyle     = lipgloss.NewStyle().Foreground(colorMauve)
	medianStyle  = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)
	outlierStyle = lipgloss.NewStyle().Foreground(colorRed)
	pointStyle   = lipgloss.NewStyle().Foreground(colorTeal)
	trendStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorSurface1)
)

// coolwarm anchors (Moreland diverging map)
var (
	coolRGB = [3]float64{59, 76, 192}
	midRGB  = [3]float64{221, 221, 221}
	warmRGB = [3]float64{180, 4, 38}
)

// Coolwarm maps a correlation in [-1, 1] onto the blue-white-red diverging
// scale. NaN maps to a neutral surface colour.
func Coolwarm(v float64) lipgloss.Color {
	if math.IsNaN(v) {
		return colorSurface1
	}
	v = math.Max(-1, math.Min(1, v))
	from, to, t := midRGB, warmRGB, v
	if v < 0 {
		from, to, t = midRGB, coolRGB, -v
	}
	var c [3]int
	for i := range c {
		c[i] = int(math.Round(from[i] + (to[i]-from[i])*t))
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}

// Num formats a statistic for display.
func Num(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case v == math.Trunc(v) && math.Abs(v) < 1e9:
		return strconv.FormatFloat(v, 'f', 0, 64)
	default:
		return strconv.FormatFloat(v, 'f', 3, 64)
	}
}

func short(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func header(title string) []string {
	if title == "" {
		return nil
	}
	return []string{titleStyle.Render(title)}
}
