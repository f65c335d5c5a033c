package export

import (
	"fmt"
	"math"
	"os"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/jask/wineboard/internal/pairing"
	"github.com/jask/wineboard/internal/stats"
)

func barsPNG(path, title string, values []chart.Value, w, h int) error {
	if len(values) == 0 {
		return fmt.Errorf("no values to plot")
	}
	top := 0.0
	for _, v := range values {
		if v.Value > top {
			top = v.Value
		}
	}
	if top <= 0 {
		top = 1
	}
	barW := max(8, (w-120)/len(values)*2/3)

	ch := chart.BarChart{
		Title:      title,
		Width:      w,
		Height:     h,
		BarWidth:   barW,
		BarSpacing: max(4, barW/2),
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 24}},
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1}},
		Bars:       values,
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ch.Render(chart.PNG, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func binBarsPNG(path, title string, bins []stats.Bin, w, h int) error {
	values := make([]chart.Value, len(bins))
	for i, b := range bins {
		values[i] = chart.Value{
			Label: strconv.FormatFloat(b.Lo, 'g', 3, 64) + "-" + strconv.FormatFloat(b.Hi, 'g', 3, 64),
			Value: float64(b.Count),
		}
	}
	return barsPNG(path, title, values, w, h)
}

func cuisineBarsPNG(path, title string, scores []pairing.CuisineScore, w, h int) error {
	values := make([]chart.Value, len(scores))
	for i, s := range scores {
		v := s.Mean
		if math.IsNaN(v) {
			v = 0
		}
		values[i] = chart.Value{Label: s.Cuisine, Value: v}
	}
	return barsPNG(path, title, values, w, h)
}
