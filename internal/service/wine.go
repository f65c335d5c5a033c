package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/jask/wineboard/internal/dataset"
	"github.com/jask/wineboard/internal/stats"
)

var ErrUnknownFeature = errors.New("unknown feature")

// WineOverview is everything the wine-quality view draws except the scatter.
type WineOverview struct {
	Table            *dataset.Table
	Preview          [][]string
	QualityHist      []stats.Bin
	AlcoholByQuality []stats.GroupBox
	Correlation      stats.Matrix
	Summary          []stats.Summary
	// Features lists the scatter candidates; the first is the default.
	Features []string
}

// Scatter is one feature plotted against quality, complete pairs only.
type Scatter struct {
	Feature string
	X       []float64
	Y       []float64
	Trend   stats.Trend
}

// WineQualityService serves the wine-quality dashboard.
type WineQualityService struct {
	Loader *dataset.Loader
	Path   string
	Opts   Options
}

func (s *WineQualityService) table(ctx context.Context) (*dataset.Table, error) {
	t, err := s.Loader.Load(ctx, s.Path)
	if err != nil {
		return nil, fmt.Errorf("wine quality: %w", err)
	}
	if err := t.Require(dataset.ColQuality, dataset.ColAlcohol); err != nil {
		return nil, fmt.Errorf("wine quality: %w", err)
	}
	for _, name := range []string{dataset.ColQuality, dataset.ColAlcohol} {
		if c, _ := t.Column(name); c.Kind != dataset.Numeric {
			return nil, fmt.Errorf("wine quality: column %q is not numeric", name)
		}
	}
	return t, nil
}

func (s *WineQualityService) Overview(ctx context.Context) (WineOverview, error) {
	t, err := s.table(ctx)
	if err != nil {
		return WineOverview{}, err
	}
	quality, _ := t.Column(dataset.ColQuality)
	alcohol, _ := t.Column(dataset.ColAlcohol)

	// Rows without a finite quality score belong to no box.
	var keys []string
	var values []float64
	for i, q := range quality.Nums {
		if math.IsNaN(q) || math.IsInf(q, 0) {
			continue
		}
		keys = append(keys, quality.Text(i))
		values = append(values, alcohol.Nums[i])
	}

	return WineOverview{
		Table:            t,
		Preview:          t.Head(s.Opts.PreviewRows),
		QualityHist:      stats.Histogram(quality.Nums, s.Opts.QualityBins),
		AlcoholByQuality: stats.GroupBoxes(keys, values, stats.NumericLess),
		Correlation:      stats.Correlate(t),
		Summary:          stats.Describe(t),
		Features:         features(t),
	}, nil
}

// Scatter pairs feature with quality and fits the trend line.
func (s *WineQualityService) Scatter(ctx context.Context, feature string) (Scatter, error) {
	t, err := s.table(ctx)
	if err != nil {
		return Scatter{}, err
	}
	if !slices.Contains(features(t), feature) {
		return Scatter{}, fmt.Errorf("%w: %q", ErrUnknownFeature, feature)
	}
	xc, _ := t.Column(feature)
	yc, _ := t.Column(dataset.ColQuality)

	sc := Scatter{Feature: feature}
	for i := range xc.Nums {
		x, y := xc.Nums[i], yc.Nums[i]
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			continue
		}
		sc.X = append(sc.X, x)
		sc.Y = append(sc.Y, y)
	}
	sc.Trend = stats.FitOLS(sc.X, sc.Y)
	return sc, nil
}

// features returns the numeric columns other than quality, in file order.
func features(t *dataset.Table) []string {
	var out []string
	for _, c := range t.NumericColumns() {
		if c.Name != dataset.ColQuality {
			out = append(out, c.Name)
		}
	}
	return out
}
