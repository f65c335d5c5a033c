package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/wineboard/internal/pairing"
	"github.com/jask/wineboard/internal/prefs"
	"github.com/jask/wineboard/internal/service"
)

// View selects which dashboard renders.
type View int

const (
	ViewWine View = iota
	ViewPairing
)

// ID is the stable name stored in the session file.
func (v View) ID() string {
	if v == ViewPairing {
		return "pairing"
	}
	return "wine"
}

func (v View) String() string {
	if v == ViewPairing {
		return "Wine & food pairing"
	}
	return "Red wine quality"
}

type Services struct {
	Wine    *service.WineQualityService
	Pairing *service.PairingService
}

type Options struct {
	Title string
	// ChartWidth caps the scatter width; zero uses the full body width.
	ChartWidth  int
	ChartHeight int
	// Changes, when set, delivers paths of data files that changed on disk.
	Changes <-chan string
	// Session restores the previous view and selections. Stale values fall
	// back to the defaults once the data loads.
	Session prefs.Session
}

type pickerKind int

const (
	pickFeature pickerKind = iota
	pickWineType
	pickCuisine
)

// App is the dashboard model. Each view keeps its own data and error so a
// failing file only blanks its own dashboard.
type App struct {
	ctx      context.Context
	services Services
	opts     Options
	view     View
	keys     keyMap
	help     help.Model
	body     viewport.Model
	width    int
	height   int
	status   string
	statusOK bool

	picker     *Picker
	pickerKind pickerKind

	wine    wineState
	pairing pairingState
}

type wineState struct {
	overview *service.WineOverview
	scatter  *service.Scatter
	feature  string
	err      error
	loading  bool
}

type pairingState struct {
	overview *service.PairingOverview
	filter   pairing.Filter
	result   *pairing.Result
	err      error
	loading  bool
}

const (
	sidebarWidth = 26
	minBodyWidth = 40
)

func New(ctx context.Context, services Services, opts Options) *App {
	if opts.Title == "" {
		opts.Title = "Wine Analytics"
	}
	if opts.ChartHeight <= 0 {
		opts.ChartHeight = 12
	}
	km := viewport.DefaultKeyMap()
	km.PageDown = key.NewBinding(key.WithKeys("pgdown"))
	km.PageUp = key.NewBinding(key.WithKeys("pgup"))
	km.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"))
	km.HalfPageUp = key.NewBinding(key.WithKeys("ctrl+u"))
	km.Down = key.NewBinding(key.WithKeys("down", "j"))
	km.Up = key.NewBinding(key.WithKeys("up", "k"))

	body := viewport.New(100, 30)
	body.KeyMap = km

	a := &App{
		ctx:      ctx,
		services: services,
		opts:     opts,
		keys:     defaultKeys(),
		help:     help.New(),
		body:     body,
		width:    sidebarWidth + 100,
		height:   32,
	}
	if opts.Session.View == ViewPairing.ID() {
		a.view = ViewPairing
	}
	a.wine.feature = opts.Session.Feature
	a.pairing.filter = pairing.Filter{WineType: opts.Session.WineType, Cuisine: opts.Session.Cuisine}
	a.keys.forView(a.view)
	return a
}

// Session captures the current selections for the next launch.
func (a *App) Session() prefs.Session {
	return prefs.Session{
		View:     a.view.ID(),
		Feature:  a.wine.feature,
		WineType: a.pairing.filter.WineType,
		Cuisine:  a.pairing.filter.Cuisine,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadView(a.view), a.waitForChange())
}

// messages
type wineLoadedMsg struct {
	overview service.WineOverview
	scatter  service.Scatter
}

type scatterMsg service.Scatter

type pairingLoadedMsg struct {
	overview service.PairingOverview
	result   pairing.Result
}

type filterMsg pairing.Result

type viewErrMsg struct {
	view View
	err  error
}

type fileChangedMsg string

type statusMsg string

type errMsg struct{ error }

func (a *App) loadView(v View) tea.Cmd {
	if v == ViewPairing {
		return a.loadPairing()
	}
	return a.loadWine()
}

func (a *App) loadWine() tea.Cmd {
	a.wine.loading = true
	feature := a.wine.feature
	return func() tea.Msg {
		ov, err := a.services.Wine.Overview(a.ctx)
		if err != nil {
			return viewErrMsg{ViewWine, err}
		}
		if !slices.Contains(ov.Features, feature) {
			feature = ""
			if len(ov.Features) > 0 {
				feature = ov.Features[0]
			}
		}
		var sc service.Scatter
		if feature != "" {
			if sc, err = a.services.Wine.Scatter(a.ctx, feature); err != nil {
				return viewErrMsg{ViewWine, err}
			}
		}
		return wineLoadedMsg{overview: ov, scatter: sc}
	}
}

func (a *App) scatterCmd(feature string) tea.Cmd {
	return func() tea.Msg {
		sc, err := a.services.Wine.Scatter(a.ctx, feature)
		if err != nil {
			return errMsg{err}
		}
		return scatterMsg(sc)
	}
}

func (a *App) loadPairing() tea.Cmd {
	a.pairing.loading = true
	filter := a.pairing.filter
	return func() tea.Msg {
		ov, err := a.services.Pairing.Overview(a.ctx)
		if err != nil {
			return viewErrMsg{ViewPairing, err}
		}
		def := ov.DefaultFilter()
		if !slices.Contains(ov.WineTypes, filter.WineType) {
			filter.WineType = def.WineType
		}
		if !slices.Contains(ov.Cuisines, filter.Cuisine) {
			filter.Cuisine = def.Cuisine
		}
		res, err := a.services.Pairing.Filter(a.ctx, filter)
		if err != nil {
			return viewErrMsg{ViewPairing, err}
		}
		return pairingLoadedMsg{overview: ov, result: res}
	}
}

func (a *App) filterCmd(f pairing.Filter) tea.Cmd {
	return func() tea.Msg {
		res, err := a.services.Pairing.Filter(a.ctx, f)
		if err != nil {
			return errMsg{err}
		}
		return filterMsg(res)
	}
}

func (a *App) waitForChange() tea.Cmd {
	if a.opts.Changes == nil {
		return nil
	}
	ch := a.opts.Changes
	return func() tea.Msg {
		path, ok := <-ch
		if !ok {
			return nil
		}
		return fileChangedMsg(path)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		a.refresh()
		return a, nil
	case tea.KeyMsg:
		if a.picker != nil {
			return a.handlePickerKey(m)
		}
		return a.handleKey(m)
	case wineLoadedMsg:
		ov, sc := m.overview, m.scatter
		a.wine.overview, a.wine.scatter = &ov, &sc
		a.wine.feature = sc.Feature
		a.wine.err, a.wine.loading = nil, false
	case scatterMsg:
		sc := service.Scatter(m)
		a.wine.scatter = &sc
		a.wine.feature = sc.Feature
	case pairingLoadedMsg:
		ov, res := m.overview, m.result
		a.pairing.overview, a.pairing.result = &ov, &res
		a.pairing.filter = res.Filter
		a.pairing.err, a.pairing.loading = nil, false
	case filterMsg:
		res := pairing.Result(m)
		a.pairing.result = &res
		a.pairing.filter = res.Filter
	case viewErrMsg:
		log.Printf("tui: %s failed: %v", m.view, m.err)
		if m.view == ViewPairing {
			a.pairing.err, a.pairing.loading = m.err, false
		} else {
			a.wine.err, a.wine.loading = m.err, false
		}
	case fileChangedMsg:
		a.setStatus(fmt.Sprintf("%s changed, reloading", filepath.Base(string(m))), true)
		cmds := []tea.Cmd{a.waitForChange(), a.loadView(a.view)}
		a.refresh()
		return a, tea.Batch(cmds...)
	case statusMsg:
		a.setStatus(string(m), true)
	case errMsg:
		a.setStatus("error: "+m.Error(), false)
	default:
		return a, nil
	}
	a.refresh()
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.NextView):
		return a, a.switchView(1 - a.view)
	case key.Matches(m, a.keys.Wine):
		return a, a.switchView(ViewWine)
	case key.Matches(m, a.keys.Pairing):
		return a, a.switchView(ViewPairing)
	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		a.refresh()
		return a, nil
	case key.Matches(m, a.keys.Feature):
		if ov := a.wine.overview; ov != nil && a.wine.err == nil {
			a.openPicker(pickFeature, "Feature vs quality", ov.Features, a.wine.feature)
		}
		return a, nil
	case key.Matches(m, a.keys.WineType):
		if ov := a.pairing.overview; ov != nil && a.pairing.err == nil {
			a.openPicker(pickWineType, "Wine type", ov.WineTypes, a.pairing.filter.WineType)
		}
		return a, nil
	case key.Matches(m, a.keys.Cuisine):
		if ov := a.pairing.overview; ov != nil && a.pairing.err == nil {
			a.openPicker(pickCuisine, "Cuisine", ov.Cuisines, a.pairing.filter.Cuisine)
		}
		return a, nil
	case key.Matches(m, a.keys.Resample):
		if a.pairing.overview != nil && a.pairing.err == nil {
			return a, a.filterCmd(a.pairing.filter)
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.body, cmd = a.body.Update(m)
	return a, cmd
}

// switchView selects v and reruns its dashboard against the shared loader.
func (a *App) switchView(v View) tea.Cmd {
	if v != a.view {
		a.view = v
		a.body.GotoTop()
	}
	a.keys.forView(v)
	cmd := a.loadView(v)
	a.refresh()
	return cmd
}

func (a *App) openPicker(kind pickerKind, title string, items []string, current string) {
	a.picker = NewPicker(title, items)
	a.picker.Focus(current)
	a.pickerKind = kind
}

func (a *App) handlePickerKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}
	res := a.picker.HandleKey(m.String())
	switch res.Action {
	case PickerActionCancelled:
		a.picker = nil
	case PickerActionSelected:
		a.picker = nil
		switch a.pickerKind {
		case pickFeature:
			a.wine.feature = res.Item
			a.refresh()
			return a, a.scatterCmd(res.Item)
		case pickWineType:
			f := a.pairing.filter
			f.WineType = res.Item
			a.pairing.filter = f
			a.refresh()
			return a, a.filterCmd(f)
		case pickCuisine:
			f := a.pairing.filter
			f.Cuisine = res.Item
			a.pairing.filter = f
			a.refresh()
			return a, a.filterCmd(f)
		}
	}
	a.refresh()
	return a, nil
}

func (a *App) setStatus(s string, ok bool) {
	a.status, a.statusOK = s, ok
}

func (a *App) bodySize() (int, int) {
	w := max(minBodyWidth, a.width-sidebarWidth-1)
	h := max(3, a.height-2-lipgloss.Height(a.help.View(a.keys)))
	return w, h
}

// refresh re-renders the active dashboard into the viewport.
func (a *App) refresh() {
	w, h := a.bodySize()
	a.body.Width, a.body.Height = w, h
	var content string
	if a.view == ViewPairing {
		content = a.renderPairing(w - 1)
	} else {
		content = a.renderWine(w - 1)
	}
	a.body.SetContent(content)
}

func (a *App) View() string {
	w, h := a.bodySize()
	main := a.body.View()
	if a.picker != nil {
		main = lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, a.picker.View(min(w, 48)))
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, a.renderSidebar(h), main)
	return lipgloss.JoinVertical(lipgloss.Left, top, a.renderStatus(), a.help.View(a.keys))
}

func (a *App) renderSidebar(height int) string {
	lines := []string{titleStyle.Render(a.opts.Title), "", mutedStyle.Render("Choose analysis:")}
	for _, v := range []View{ViewWine, ViewPairing} {
		mark, style := "( )", radioOffStyle
		if v == a.view {
			mark, style = "(•)", radioOnStyle
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s %s", mark, v)))
	}
	return sidebarStyle.
		Width(sidebarWidth - 1).
		Height(max(1, height-2)).
		Render(strings.Join(lines, "\n"))
}

func (a *App) renderStatus() string {
	msg := strings.TrimSpace(a.status)
	if msg == "" {
		msg = "Ready"
	}
	style := statusBarStyle
	if !a.statusOK && a.status != "" {
		style = statusErrBarStyle
	}
	width := max(1, a.width)
	line := ansi.Truncate(" "+msg, width, "…")
	if pad := width - ansi.StringWidth(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return style.Render(line)
}

// errorPanel explains why a dashboard could not render.
func errorPanel(what string, err error, width int) string {
	var hint string
	if errors.Is(err, os.ErrNotExist) {
		hint = "\nCheck the data paths in wineboard.toml or the WINEBOARD_DATA_* variables."
	}
	text := fmt.Sprintf("Could not load %s data:\n%s%s", what, err, hint)
	return errorBoxStyle.Width(max(10, width-4)).Render(text)
}
