package charts

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/wineboard/internal/stats"
)

// cell padding added by the table styles
const cellPad = 2

// Table renders rows as a static bubbles table no wider than width.
// Columns shrink evenly when the content does not fit; cells are truncated.
func Table(headers []string, rows [][]string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(headers) == 0 {
		return labelStyle.Render("No data")
	}

	widths := make([]int, len(headers))
	for j, h := range headers {
		widths[j] = ansi.StringWidth(h)
	}
	for _, r := range rows {
		for j := range headers {
			if j < len(r) {
				widths[j] = max(widths[j], ansi.StringWidth(r[j]))
			}
		}
	}
	fit(widths, width-cellPad*len(widths))

	cols := make([]table.Column, len(headers))
	for j, h := range headers {
		cols[j] = table.Column{Title: h, Width: widths[j]}
	}
	total := 0
	for _, w := range widths {
		total += w + cellPad
	}
	trows := make([]table.Row, len(rows))
	for i, r := range rows {
		trows[i] = table.Row(r)
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(trows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(colorLavender)
	styles.Selected = lipgloss.NewStyle()
	t.SetStyles(styles)
	t.SetWidth(total)
	return t.View()
}

// fit shrinks the widest columns until the sum fits budget, keeping each at
// least 4 wide.
func fit(widths []int, budget int) {
	total := 0
	for _, w := range widths {
		total += w
	}
	for total > budget {
		widest := 0
		for j := range widths {
			if widths[j] > widths[widest] {
				widest = j
			}
		}
		if widths[widest] <= 4 {
			return
		}
		widths[widest]--
		total--
	}
}

// Describe renders summaries with one row per column and one column per
// statistic.
func Describe(summaries []stats.Summary, width int) string {
	headers := append([]string{""}, stats.SummaryRows...)
	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		row := []string{s.Column}
		for _, name := range stats.SummaryRows {
			row = append(row, Num(s.Value(name)))
		}
		rows[i] = row
	}
	return Table(headers, rows, width)
}
