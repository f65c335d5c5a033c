package charts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/jask/wineboard/internal/stats"
)

// Bar is one labelled value. Text, when set, replaces the printed value.
type Bar struct {
	Label string
	Value float64
	Text  string
}

// Bars renders a horizontal bar chart scaled to the largest value.
func Bars(title string, bars []Bar, width int) string {
	if width <= 0 {
		return ""
	}
	lines := header(title)
	if len(bars) == 0 {
		return strings.Join(append(lines, labelStyle.Render("(no data)")), "\n")
	}

	labelW, valueW := 0, 0
	maxV := 0.0
	for _, b := range bars {
		labelW = max(labelW, ansi.StringWidth(b.Label))
		valueW = max(valueW, ansi.StringWidth(barText(b)))
		if b.Value > maxV {
			maxV = b.Value
		}
	}
	labelW = min(labelW, max(6, width/3))
	if maxV <= 0 {
		maxV = 1
	}
	avail := max(1, width-labelW-valueW-3)

	for _, b := range bars {
		n := 0
		if b.Value > 0 {
			n = max(1, int(b.Value/maxV*float64(avail)+0.5))
		}
		label := ansi.Truncate(b.Label, labelW, "…")
		pad := strings.Repeat(" ", labelW-ansi.StringWidth(label))
		lines = append(lines, fmt.Sprintf("%s%s %s %s",
			labelStyle.Render(label), pad,
			barStyle.Render(strings.Repeat("█", n)),
			barText(b)))
	}
	return strings.Join(lines, "\n")
}

func barText(b Bar) string {
	if b.Text != "" {
		return b.Text
	}
	return Num(b.Value)
}

// Histogram renders bins as bars labelled with their value range.
func Histogram(title string, bins []stats.Bin, width int) string {
	bars := make([]Bar, len(bins))
	for i, b := range bins {
		bars[i] = Bar{
			Label: fmt.Sprintf("%s–%s", short(b.Lo), short(b.Hi)),
			Value: float64(b.Count),
			Text:  fmt.Sprint(b.Count),
		}
	}
	return Bars(title, bars, width)
}
