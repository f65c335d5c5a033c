package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/wineboard/internal/dataset"
	"github.com/jask/wineboard/internal/fixtures"
	"github.com/jask/wineboard/internal/pairing"
	"github.com/jask/wineboard/internal/prefs"
	"github.com/jask/wineboard/internal/service"
)

type testEnv struct {
	app      *App
	loader   *dataset.Loader
	winePath string
}

func newTestApp(t *testing.T, winePath, pairingPath string) testEnv {
	t.Helper()
	loader := dataset.NewLoader(0)
	opts := service.DefaultOptions()
	opts.SampleSeed = 1
	svc := Services{
		Wine:    &service.WineQualityService{Loader: loader, Path: winePath, Opts: opts},
		Pairing: &service.PairingService{Loader: loader, Path: pairingPath, Opts: opts},
	}
	t.Cleanup(func() { _ = svc.Pairing.Close() })
	a := New(context.Background(), svc, Options{})
	a.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	return testEnv{app: a, loader: loader, winePath: winePath}
}

func writeFixtures(t *testing.T, wineRows int) (string, string) {
	t.Helper()
	dir := t.TempDir()
	wine, err := fixtures.Write(dir, "winequality-red.csv", fixtures.WineCSV(wineRows, 4))
	require.NoError(t, err)
	pairings, err := fixtures.Write(dir, "wine_food_pairings.csv", fixtures.PairingCSV([]fixtures.PairingRow{
		{WineType: "Red", Food: "Lasagna", Cuisine: "Italian", Quality: 8},
		{WineType: "Red", Food: "Pizza", Cuisine: "Italian", Quality: 6},
		{WineType: "White", Food: "Sole", Cuisine: "French", Quality: 9},
	}))
	require.NoError(t, err)
	return wine, pairings
}

// run executes cmd and feeds every resulting message back into the app.
func run(a *App, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := a.Update(msg)
			queue = append(queue, next)
		}
	}
}

func press(a *App, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd := a.Update(msg)
		run(a, cmd)
	}
}

func TestWineViewRendersEverySection(t *testing.T) {
	wine, pairings := writeFixtures(t, 60)
	env := newTestApp(t, wine, pairings)
	run(env.app, env.app.Init())

	require.NoError(t, env.app.wine.err)
	require.Equal(t, "fixed acidity", env.app.wine.feature)
	out := ansi.Strip(env.app.renderWine(140))
	for _, want := range []string{
		"Data preview", "Quality distribution", "Alcohol vs quality",
		"Correlation of chemical features", "Feature vs quality", "Summary statistics",
		"fixed acidity vs quality", "R²",
	} {
		require.Contains(t, out, want)
	}
	require.Contains(t, ansi.Strip(env.app.View()), "(•) Red wine quality")
}

func TestFeaturePickerRerendersScatterOnly(t *testing.T) {
	wine, pairings := writeFixtures(t, 60)
	env := newTestApp(t, wine, pairings)
	a := env.app
	run(a, a.Init())
	overview := a.wine.overview

	press(a, "f")
	require.NotNil(t, a.picker)
	require.Contains(t, ansi.Strip(a.View()), "Feature vs quality")

	press(a, "a", "l", "c", "enter")
	require.Nil(t, a.picker)
	require.Equal(t, "alcohol", a.wine.feature)
	require.Equal(t, "alcohol", a.wine.scatter.Feature)
	require.Same(t, overview, a.wine.overview)
	require.Equal(t, 1, env.loader.Stats().Parses)

	press(a, "f", "esc")
	require.Nil(t, a.picker)
	require.Equal(t, "alcohol", a.wine.feature)
}

func TestPairingViewFilterAndResample(t *testing.T) {
	wine, pairings := writeFixtures(t, 30)
	env := newTestApp(t, wine, pairings)
	a := env.app
	run(a, a.Init())

	press(a, "2")
	require.Equal(t, ViewPairing, a.view)
	require.NoError(t, a.pairing.err)
	require.Equal(t, pairing.Filter{WineType: "Red", Cuisine: "Italian"}, a.pairing.filter)
	require.Equal(t, 2, a.pairing.result.Count)

	out := ansi.Strip(a.renderPairing(140))
	for _, want := range []string{
		"Pairing quality distribution", "Wine type vs quality",
		"Cuisine vs mean pairing quality", "Interactive filter", "Records: 2",
	} {
		require.Contains(t, out, want)
	}

	press(a, "c", "f", "r", "e", "enter")
	require.Equal(t, pairing.Filter{WineType: "Red", Cuisine: "French"}, a.pairing.filter)
	require.Equal(t, 0, a.pairing.result.Count)
	require.Contains(t, ansi.Strip(a.renderPairing(140)), "no matching rows")

	press(a, "w", "w", "h", "enter")
	require.Equal(t, "White", a.pairing.filter.WineType)
	require.Equal(t, 1, a.pairing.result.Count)

	press(a, "r")
	require.Equal(t, 1, a.pairing.result.Count)
	require.Equal(t, 1, a.pairing.result.Sample.Len())

	press(a, "tab")
	require.Equal(t, ViewWine, a.view)
}

func TestLoadFailureStaysInItsView(t *testing.T) {
	_, pairings := writeFixtures(t, 10)
	env := newTestApp(t, filepath.Join(t.TempDir(), "missing.csv"), pairings)
	a := env.app
	run(a, a.Init())

	require.ErrorIs(t, a.wine.err, os.ErrNotExist)
	out := ansi.Strip(a.renderWine(120))
	require.Contains(t, out, "Could not load wine quality data")
	require.Contains(t, out, "missing.csv")

	// f does nothing without data
	press(a, "f")
	require.Nil(t, a.picker)

	press(a, "2")
	require.NoError(t, a.pairing.err)
	require.Equal(t, 2, a.pairing.result.Count)
}

func TestFileChangeReloadsActiveView(t *testing.T) {
	wine, pairings := writeFixtures(t, 20)
	env := newTestApp(t, wine, pairings)
	a := env.app
	run(a, a.Init())
	require.Equal(t, 20, a.wine.overview.Table.Len())

	require.NoError(t, os.WriteFile(wine, []byte(fixtures.WineCSV(35, 8)), 0o644))
	env.loader.Invalidate(wine)
	_, cmd := a.Update(fileChangedMsg(wine))
	run(a, cmd)

	require.Equal(t, 35, a.wine.overview.Table.Len())
	require.True(t, strings.Contains(a.status, "winequality-red.csv changed"))
}

func TestQuit(t *testing.T) {
	wine, pairings := writeFixtures(t, 5)
	env := newTestApp(t, wine, pairings)
	_, cmd := env.app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
}

func TestSessionRestoresSelections(t *testing.T) {
	wine, pairings := writeFixtures(t, 30)
	loader := dataset.NewLoader(0)
	opts := service.DefaultOptions()
	svc := Services{
		Wine:    &service.WineQualityService{Loader: loader, Path: wine, Opts: opts},
		Pairing: &service.PairingService{Loader: loader, Path: pairings, Opts: opts},
	}
	t.Cleanup(func() { _ = svc.Pairing.Close() })

	a := New(context.Background(), svc, Options{Session: prefs.Session{
		View: "pairing", Feature: "alcohol", WineType: "White", Cuisine: "Klingon",
	}})
	run(a, a.Init())

	require.Equal(t, ViewPairing, a.view)
	// unknown cuisine falls back to the first one in the file
	require.Equal(t, pairing.Filter{WineType: "White", Cuisine: "Italian"}, a.pairing.filter)

	press(a, "1")
	require.Equal(t, "alcohol", a.wine.feature)
	require.Equal(t, prefs.Session{View: "wine", Feature: "alcohol", WineType: "White", Cuisine: "Italian"}, a.Session())
}
