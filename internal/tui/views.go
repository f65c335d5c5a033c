package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/wineboard/internal/charts"
	"github.com/jask/wineboard/internal/dataset"
)

// side-by-side charts need at least this much width
const twoColumnWidth = 110

func (a *App) renderWine(width int) string {
	st := a.wine
	out := []string{titleStyle.Render("Red wine quality analysis")}
	if st.err != nil {
		return strings.Join(append(out, "", errorPanel("wine quality", st.err, width)), "\n")
	}
	if st.overview == nil {
		return strings.Join(append(out, mutedStyle.Render("loading…")), "\n")
	}
	ov := st.overview

	out = append(out,
		sectionStyle.Render("Data preview"),
		preview(ov.Table, ov.Preview, width),
		columns(width,
			func(w int) string { return charts.Histogram("Quality distribution", ov.QualityHist, w) },
			func(w int) string { return charts.BoxPlot("Alcohol vs quality", ov.AlcoholByQuality, w) },
		),
		sectionStyle.Render("Correlation of chemical features"),
		charts.Heatmap("", ov.Correlation, width),
		sectionStyle.Render("Feature vs quality"),
		control("f", "Feature", st.feature),
	)
	if sc := st.scatter; sc != nil && sc.Feature != "" {
		w := width
		if a.opts.ChartWidth > 0 {
			w = min(w, a.opts.ChartWidth)
		}
		out = append(out, charts.Scatter(sc.Feature+" vs quality", sc.X, sc.Y, sc.Trend, w, a.opts.ChartHeight))
	}
	out = append(out,
		sectionStyle.Render("Summary statistics"),
		charts.Describe(ov.Summary, width),
	)
	return strings.Join(out, "\n")
}

func (a *App) renderPairing(width int) string {
	st := a.pairing
	out := []string{titleStyle.Render("Wine & food pairing analysis")}
	if st.err != nil {
		return strings.Join(append(out, "", errorPanel("food pairing", st.err, width)), "\n")
	}
	if st.overview == nil {
		return strings.Join(append(out, mutedStyle.Render("loading…")), "\n")
	}
	ov := st.overview

	cuisineBars := make([]charts.Bar, len(ov.TopCuisines))
	for i, c := range ov.TopCuisines {
		cuisineBars[i] = charts.Bar{Label: c.Cuisine, Value: c.Mean, Text: fmt.Sprintf("%.2f", c.Mean)}
	}

	out = append(out,
		sectionStyle.Render("Data preview"),
		preview(ov.Table, ov.Preview, width),
		columns(width,
			func(w int) string { return charts.Histogram("Pairing quality distribution", ov.QualityHist, w) },
			func(w int) string { return charts.BoxPlot("Wine type vs quality", ov.TypeBoxes, w) },
		),
		sectionStyle.Render("Cuisine vs mean pairing quality"),
		charts.Bars("", cuisineBars, width),
		sectionStyle.Render("Interactive filter"),
		control("w", "Wine type", st.filter.WineType)+"    "+
			control("c", "Cuisine", st.filter.Cuisine)+"    "+
			keyStyle.Render("[r]")+mutedStyle.Render(" resample"),
	)
	if res := st.result; res != nil {
		out = append(out,
			fmt.Sprintf("Records: %s", valueStyle.Render(fmt.Sprint(res.Count))),
		)
		if res.Sample != nil && res.Sample.Len() > 0 {
			out = append(out, preview(res.Sample, res.Sample.Head(res.Sample.Len()), width))
		} else {
			out = append(out, mutedStyle.Render("no matching rows"))
		}
	}
	return strings.Join(out, "\n")
}

func preview(t *dataset.Table, rows [][]string, width int) string {
	if t == nil {
		return ""
	}
	return charts.Table(t.ColumnNames(), rows, width)
}

func control(k, label, value string) string {
	if value == "" {
		value = "—"
	}
	return keyStyle.Render("["+k+"]") + mutedStyle.Render(" "+label+": ") + valueStyle.Render(value)
}

// columns lays left and right out side by side when width allows and stacks
// them otherwise.
func columns(width int, left, right func(int) string) string {
	if width < twoColumnWidth {
		return left(width) + "\n\n" + right(width)
	}
	half := (width - 2) / 2
	l := lipgloss.NewStyle().Width(half).MarginRight(2).Render(left(half))
	return lipgloss.JoinHorizontal(lipgloss.Top, l, right(half))
}
