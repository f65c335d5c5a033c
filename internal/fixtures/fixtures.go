package fixtures

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// WineColumns is the header of the red wine quality file.
var WineColumns = []string{
	"fixed acidity", "volatile acidity", "citric acid", "residual sugar", "chlorides",
	"free sulfur dioxide", "total sulfur dioxide", "density", "pH", "sulphates",
	"alcohol", "quality",
}

// PairingRow is one line of the food pairing file.
type PairingRow struct {
	WineType string
	Food     string
	Cuisine  string
	Quality  float64
}

// WineCSV returns n synthetic wine rows where quality tracks alcohol.
func WineCSV(n int, seed int64) string {
	rng := rand.New(rand.NewSource(seed))
	var b strings.Builder
	b.WriteString(strings.Join(WineColumns, ",") + "\n")
	for i := 0; i < n; i++ {
		alcohol := 8.5 + rng.Float64()*6
		quality := int(3 + (alcohol-8.5)/6*5 + rng.NormFloat64()*0.6)
		if quality < 3 {
			quality = 3
		}
		if quality > 8 {
			quality = 8
		}
		fmt.Fprintf(&b, "%.1f,%.2f,%.2f,%.1f,%.3f,%d,%d,%.4f,%.2f,%.2f,%.1f,%d\n",
			6+rng.Float64()*6,
			0.2+rng.Float64()*1.0,
			rng.Float64()*0.7,
			1.5+rng.Float64()*3,
			0.05+rng.Float64()*0.1,
			5+rng.Intn(30),
			20+rng.Intn(100),
			0.990+rng.Float64()*0.01,
			3.0+rng.Float64()*0.6,
			0.4+rng.Float64()*0.6,
			alcohol,
			quality,
		)
	}
	return b.String()
}

// PairingCSV renders rows with the pairing file header.
func PairingCSV(rows []PairingRow) string {
	var b strings.Builder
	b.WriteString("wine_type,food_item,cuisine,pairing_quality\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s,%s,%s,%g\n", r.WineType, r.Food, r.Cuisine, r.Quality)
	}
	return b.String()
}

// RandomPairings returns n rows spread over the given wine types and cuisines.
func RandomPairings(n int, seed int64, wineTypes, cuisines []string) []PairingRow {
	rng := rand.New(rand.NewSource(seed))
	foods := []string{"Steak", "Salmon", "Risotto", "Curry", "Cheese", "Tacos", "Sushi", "Tagine"}
	out := make([]PairingRow, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, PairingRow{
			WineType: wineTypes[rng.Intn(len(wineTypes))],
			Food:     foods[rng.Intn(len(foods))],
			Cuisine:  cuisines[rng.Intn(len(cuisines))],
			Quality:  float64(1 + rng.Intn(10)),
		})
	}
	return out
}

// Write stores content as dir/name and returns the full path.
func Write(dir, name, content string) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
