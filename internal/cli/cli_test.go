package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/wineboard/internal/export"
	"github.com/jask/wineboard/internal/fixtures"
	"github.com/jask/wineboard/internal/service"
)

// writeConfig lays out both CSV files and a config file pointing at them.
func writeConfig(t *testing.T, withWine bool) (cfgFile, dir string) {
	t.Helper()
	dir = t.TempDir()
	wine := filepath.Join(dir, "winequality-red.csv")
	if withWine {
		_, err := fixtures.Write(dir, "winequality-red.csv", fixtures.WineCSV(40, 3))
		require.NoError(t, err)
	}
	pairings, err := fixtures.Write(dir, "wine_food_pairings.csv", fixtures.PairingCSV([]fixtures.PairingRow{
		{WineType: "Red", Food: "Lasagna", Cuisine: "Italian", Quality: 8},
		{WineType: "Red", Food: "Pizza", Cuisine: "Italian", Quality: 6},
		{WineType: "White", Food: "Sole", Cuisine: "French", Quality: 9},
	}))
	require.NoError(t, err)

	cfgFile = filepath.Join(dir, "wineboard.toml")
	body := fmt.Sprintf(`[data]
wine_quality_path = %q
pairings_path = %q

[log]
path = ""

[export]
dir = %q
width = 400
height = 300
`, wine, pairings, filepath.Join(dir, "charts"))
	require.NoError(t, os.WriteFile(cfgFile, []byte(body), 0o644))
	return cfgFile, dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, describeWidth, exportOut, exportFeature = "", 100, "", ""
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetErr(&buf)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetArgs(nil)
	})
	err := RootCmd.Execute()
	return buf.String(), err
}

func TestRootCommandWiring(t *testing.T) {
	require.Equal(t, "wineboard", RootCmd.Use)
	require.NotNil(t, RootCmd.PersistentFlags().Lookup("config"))

	found := map[string]bool{}
	for _, c := range RootCmd.Commands() {
		found[c.Name()] = true
	}
	require.True(t, found["describe"])
	require.True(t, found["export"])
}

func TestDescribePairings(t *testing.T) {
	cfgFile, _ := writeConfig(t, true)
	out, err := execute(t, "--config", cfgFile, "describe", "pairings")
	require.NoError(t, err)

	require.Contains(t, out, "Wine & food pairing")
	require.Contains(t, out, "pairing_quality")
	require.Contains(t, out, "count")
	require.NotContains(t, out, "Red wine quality")
	require.NotContains(t, out, "\x1b[", "NO_COLOR output must be plain")
}

func TestDescribeBoth(t *testing.T) {
	cfgFile, _ := writeConfig(t, true)
	out, err := execute(t, "--config", cfgFile, "describe", "--width", "140")
	require.NoError(t, err)
	require.Contains(t, out, "Red wine quality")
	require.Contains(t, out, "alcohol")
	require.Contains(t, out, "Wine & food pairing")
}

func TestDescribeRejectsUnknownDataset(t *testing.T) {
	cfgFile, _ := writeConfig(t, true)
	_, err := execute(t, "--config", cfgFile, "describe", "beer")
	require.Error(t, err)
}

func TestDescribeMissingFileStillPrintsOther(t *testing.T) {
	cfgFile, _ := writeConfig(t, false)
	out, err := execute(t, "--config", cfgFile, "describe")
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Contains(t, out, "Wine & food pairing")
	require.NotContains(t, out, "Red wine quality")
}

func TestExportWritesCharts(t *testing.T) {
	cfgFile, dir := writeConfig(t, true)
	out := filepath.Join(dir, "png")
	stdout, err := execute(t, "--config", cfgFile, "export", "--out", out, "--feature", "alcohol")
	require.NoError(t, err)

	for _, name := range []string{
		export.FileQualityHist, export.FileAlcoholBox, export.FileCorrelation,
		export.ScatterFile("alcohol"),
		export.FilePairingHist, export.FilePairingTypeBox, export.FilePairingCuisines,
	} {
		_, err := os.Stat(filepath.Join(out, name))
		require.NoError(t, err, name)
	}
	require.True(t, strings.HasSuffix(strings.TrimSpace(stdout), "7 charts written to "+out))
}

func TestExportDefaultsToConfigDir(t *testing.T) {
	cfgFile, dir := writeConfig(t, true)
	_, err := execute(t, "--config", cfgFile, "export")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "charts", export.ScatterFile("fixed acidity")))
	require.NoError(t, err)
}

func TestExportUnknownFeature(t *testing.T) {
	cfgFile, dir := writeConfig(t, true)
	_, err := execute(t, "--config", cfgFile, "export", "--feature", "colour")
	require.ErrorIs(t, err, service.ErrUnknownFeature)

	// pairing charts are still written
	_, statErr := os.Stat(filepath.Join(dir, "charts", export.FilePairingHist))
	require.NoError(t, statErr)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.toml"), "describe")
	require.Error(t, err)
}

func TestSetupLoggingWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "wineboard.log")
	closer, err := setupLogging(path)
	require.NoError(t, err)
	closer()

	_, err = os.Stat(path)
	require.NoError(t, err)
}
