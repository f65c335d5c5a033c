// Package export writes the dashboard charts as PNG files.
package export

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/jask/wineboard/internal/service"
)

// Chart file names.
const (
	FileQualityHist     = "wine_quality_hist.png"
	FileAlcoholBox      = "wine_alcohol_by_quality.png"
	FileCorrelation     = "wine_correlation.png"
	FilePairingHist     = "pairing_quality_hist.png"
	FilePairingTypeBox  = "pairing_quality_by_wine_type.png"
	FilePairingCuisines = "pairing_cuisine_means.png"
	scatterFilePrefix   = "wine_scatter_"
)

const defaultWidth, defaultHeight = 800, 500

// Exporter renders charts into Dir. Width and Height are in pixels.
type Exporter struct {
	Dir    string
	Width  int
	Height int
}

// ScatterFile names the scatter chart for feature.
func ScatterFile(feature string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return '_'
	}, feature)
	return scatterFilePrefix + name + ".png"
}

type job struct {
	file   string
	render func(path string) error
}

// WineQuality writes the wine-quality charts and returns the paths written.
func (e Exporter) WineQuality(ctx context.Context, ov service.WineOverview, sc service.Scatter) ([]string, error) {
	w, h := e.size()
	return e.run(ctx, []job{
		{FileQualityHist, func(p string) error {
			return histogramPNG(p, "Quality distribution", "quality", ov.QualityHist, w, h)
		}},
		{FileAlcoholBox, func(p string) error {
			return boxPNG(p, "Alcohol by quality", "quality", "alcohol", ov.AlcoholByQuality, w, h)
		}},
		{FileCorrelation, func(p string) error {
			return heatmapPNG(p, "Correlation of chemical features", ov.Correlation, w, h)
		}},
		{ScatterFile(sc.Feature), func(p string) error {
			return scatterPNG(p, sc, w, h)
		}},
	})
}

// Pairing writes the food-pairing charts and returns the paths written.
func (e Exporter) Pairing(ctx context.Context, ov service.PairingOverview) ([]string, error) {
	w, h := e.size()
	return e.run(ctx, []job{
		{FilePairingHist, func(p string) error {
			return binBarsPNG(p, "Pairing quality distribution", ov.QualityHist, w, h)
		}},
		{FilePairingTypeBox, func(p string) error {
			return boxPNG(p, "Wine type vs pairing quality", "wine_type", "pairing_quality", ov.TypeBoxes, w, h)
		}},
		{FilePairingCuisines, func(p string) error {
			return cuisineBarsPNG(p, "Mean pairing quality by cuisine", ov.TopCuisines, w, h)
		}},
	})
}

func (e Exporter) run(ctx context.Context, jobs []job) ([]string, error) {
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export dir: %w", err)
	}
	var written []string
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		path := filepath.Join(dir, j.file)
		if err := j.render(path); err != nil {
			return written, fmt.Errorf("export %s: %w", j.file, err)
		}
		log.Printf("export: wrote %s", path)
		written = append(written, path)
	}
	return written, nil
}

func (e Exporter) size() (int, int) {
	w, h := e.Width, e.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}
