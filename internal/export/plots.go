package export

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/jask/wineboard/internal/service"
	"github.com/jask/wineboard/internal/stats"
)

var (
	blue  = color.RGBA{R: 66, G: 114, B: 196, A: 255}
	red   = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	mauve = color.RGBA{R: 140, G: 90, B: 200, A: 255}
)

// px converts pixels to plot units at the 96 dpi images are rendered with.
func px(n int) vg.Length { return vg.Length(n) * vg.Inch / 96 }

func save(p *plot.Plot, path string, w, h int) error {
	return p.Save(px(w), px(h), path)
}

func histogramPNG(path, title, xLabel string, bins []stats.Bin, w, h int) error {
	if len(bins) == 0 {
		return fmt.Errorf("no values to plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "count"

	hist := &plotter.Histogram{
		Bins:      make([]plotter.HistogramBin, len(bins)),
		Width:     bins[0].Hi - bins[0].Lo,
		FillColor: blue,
		LineStyle: plotter.DefaultLineStyle,
	}
	for i, b := range bins {
		hist.Bins[i] = plotter.HistogramBin{Min: b.Lo, Max: b.Hi, Weight: float64(b.Count)}
	}
	p.Add(hist)
	return save(p, path, w, h)
}

func boxPNG(path, title, xLabel, yLabel string, groups []stats.GroupBox, w, h int) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	names := make([]string, len(groups))
	width := px(w) / vg.Length(2*max(1, len(groups))+2)
	for i, g := range groups {
		names[i] = g.Key
		if len(g.Values) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(width, float64(i), plotter.Values(g.Values))
		if err != nil {
			return fmt.Errorf("box %q: %w", g.Key, err)
		}
		box.FillColor = mauve
		p.Add(box)
	}
	p.NominalX(names...)
	return save(p, path, w, h)
}

// corrGrid adapts a correlation matrix to plotter.GridXYZ with the first
// label on the top row.
type corrGrid struct{ m stats.Matrix }

func (g corrGrid) Dims() (int, int) { return g.m.Size(), g.m.Size() }
func (g corrGrid) X(c int) float64  { return float64(c) }
func (g corrGrid) Y(r int) float64  { return float64(g.m.Size() - 1 - r) }

func (g corrGrid) Z(c, r int) float64 {
	v := g.m.At(r, c)
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func heatmapPNG(path, title string, m stats.Matrix, w, h int) error {
	n := m.Size()
	if n == 0 {
		return fmt.Errorf("no numeric columns")
	}
	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(-1)
	cmap.SetMax(1)

	hm := plotter.NewHeatMap(corrGrid{m}, cmap.Palette(255))
	hm.Min, hm.Max = -1, 1

	p := plot.New()
	p.Title.Text = title
	p.Add(hm)

	rowNames := make([]string, n)
	for i, l := range m.Labels {
		rowNames[n-1-i] = l
	}
	p.NominalX(m.Labels...)
	p.NominalY(rowNames...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return save(p, path, w, h)
}

func scatterPNG(path string, sc service.Scatter, w, h int) error {
	if len(sc.X) == 0 {
		return fmt.Errorf("no values to plot")
	}
	p := plot.New()
	p.Title.Text = sc.Feature + " vs quality"
	p.X.Label.Text = sc.Feature
	p.Y.Label.Text = "quality"

	pts := make(plotter.XYs, len(sc.X))
	for i := range sc.X {
		pts[i].X = sc.X[i]
		pts[i].Y = sc.Y[i]
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.Color = color.NRGBA{R: blue.R, G: blue.G, B: blue.B, A: 153}
	s.Radius = vg.Points(2)
	p.Add(s)

	if sc.Trend.OK {
		lo, hi := floats.Min(sc.X), floats.Max(sc.X)
		l, err := plotter.NewLine(plotter.XYs{
			{X: lo, Y: sc.Trend.At(lo)},
			{X: hi, Y: sc.Trend.At(hi)},
		})
		if err != nil {
			return err
		}
		l.Color = red
		l.LineStyle.Width = vg.Points(2)
		p.Add(l)
		p.Legend.Add(fmt.Sprintf("OLS (R² = %.3f)", sc.Trend.RSquared), l)
		p.Legend.Top = true
	}
	return save(p, path, w, h)
}
