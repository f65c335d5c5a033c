package charts

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/jask/wineboard/internal/stats"
)

// BoxPlot renders one horizontal box per group on a shared value axis:
// whiskers as ─, the interquartile box as █, the median as ┃ and outliers as •.
func BoxPlot(title string, groups []stats.GroupBox, width int) string {
	if width <= 0 {
		return ""
	}
	lines := header(title)

	lo, hi := math.Inf(1), math.Inf(-1)
	labelW := 0
	for _, g := range groups {
		labelW = max(labelW, ansi.StringWidth(g.Key))
		if g.Box.N == 0 {
			continue
		}
		lo = math.Min(lo, g.Box.Min)
		hi = math.Max(hi, g.Box.Max)
	}
	if math.IsInf(lo, 1) {
		return strings.Join(append(lines, labelStyle.Render("(no data)")), "\n")
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	labelW = min(labelW, max(4, width/4))
	plotW := max(10, width-labelW-1)
	col := func(v float64) int {
		c := int(math.Round((v - lo) / (hi - lo) * float64(plotW-1)))
		return max(0, min(plotW-1, c))
	}

	for _, g := range groups {
		label := ansi.Truncate(g.Key, labelW, "…")
		label += strings.Repeat(" ", labelW-ansi.StringWidth(label))
		if g.Box.N == 0 {
			lines = append(lines, labelStyle.Render(label)+" "+mutedStyle.Render("(no data)"))
			continue
		}
		lines = append(lines, labelStyle.Render(label)+" "+boxRow(g.Box, plotW, col))
	}

	axis := strings.Repeat("─", plotW)
	lines = append(lines, strings.Repeat(" ", labelW+1)+axisStyle.Render(axis))
	loText, hiText := short(lo), short(hi)
	gap := max(1, plotW-ansi.StringWidth(loText)-ansi.StringWidth(hiText))
	lines = append(lines, strings.Repeat(" ", labelW+1)+labelStyle.Render(loText+strings.Repeat(" ", gap)+hiText))
	return strings.Join(lines, "\n")
}

func boxRow(b stats.BoxStats, width int, col func(float64) int) string {
	cells := make([]rune, width)
	kinds := make([]byte, width)
	for i := range cells {
		cells[i] = ' '
	}
	set := func(c int, r rune, k byte) {
		cells[c] = r
		kinds[c] = k
	}
	for c := col(b.LowerWhisker); c <= col(b.UpperWhisker); c++ {
		set(c, '─', 'w')
	}
	set(col(b.LowerWhisker), '├', 'w')
	set(col(b.UpperWhisker), '┤', 'w')
	for c := col(b.Q1); c <= col(b.Q3); c++ {
		set(c, '█', 'b')
	}
	set(col(b.Median), '┃', 'm')
	for _, o := range b.Outliers {
		set(col(o), '•', 'o')
	}

	var sb strings.Builder
	for i, r := range cells {
		s := string(r)
		switch kinds[i] {
		case 'w':
			sb.WriteString(axisStyle.Render(s))
		case 'b':
			sb.WriteString(boxStyle.Render(s))
		case 'm':
			sb.WriteString(medianStyle.Render(s))
		case 'o':
			sb.WriteString(outlierStyle.Render(s))
		default:
			sb.WriteString(s)
		}
	}
	return sb.String()
}
