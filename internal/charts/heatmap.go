package charts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/wineboard/internal/stats"
)

// Heatmap renders a correlation matrix as coloured cells. Rows carry their
// numbered labels; columns are headed by the same numbers. Cells wide enough
// to hold a value print it.
func Heatmap(title string, m stats.Matrix, width int) string {
	if width <= 0 {
		return ""
	}
	lines := header(title)
	n := m.Size()
	if n == 0 {
		return strings.Join(append(lines, labelStyle.Render("(no numeric columns)")), "\n")
	}

	numW := len(strconv.Itoa(n))
	labelW := 0
	for _, l := range m.Labels {
		labelW = max(labelW, ansi.StringWidth(l))
	}
	labelW = min(labelW, 22)
	prefixW := numW + 1 + labelW + 1
	cellW := max(2, min(6, (width-prefixW)/n))

	var head strings.Builder
	head.WriteString(strings.Repeat(" ", prefixW))
	for j := 0; j < n; j++ {
		head.WriteString(center(strconv.Itoa(j+1), cellW))
	}
	lines = append(lines, labelStyle.Render(head.String()))

	for i := 0; i < n; i++ {
		label := ansi.Truncate(m.Labels[i], labelW, "…")
		var row strings.Builder
		row.WriteString(labelStyle.Render(fmt.Sprintf("%*d %s", numW, i+1, label)))
		row.WriteString(strings.Repeat(" ", labelW-ansi.StringWidth(label)+1))
		for j := 0; j < n; j++ {
			v := m.At(i, j)
			text := ""
			if cellW >= 5 {
				text = fmt.Sprintf("%.2f", v)
			}
			cell := lipgloss.NewStyle().
				Background(Coolwarm(v)).
				Foreground(lipgloss.Color("#11111b")).
				Render(center(text, cellW))
			row.WriteString(cell)
		}
		lines = append(lines, row.String())
	}
	lines = append(lines, "", legend())
	return strings.Join(lines, "\n")
}

func legend() string {
	var sb strings.Builder
	sb.WriteString(labelStyle.Render("-1 "))
	for i := 0; i <= 20; i++ {
		v := -1 + float64(i)/10
		sb.WriteString(lipgloss.NewStyle().Background(Coolwarm(v)).Render(" "))
	}
	sb.WriteString(labelStyle.Render(" +1"))
	return sb.String()
}

func center(s string, w int) string {
	sw := ansi.StringWidth(s)
	if sw >= w {
		return ansi.Truncate(s, w, "")
	}
	left := (w - sw) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-sw-left)
}
