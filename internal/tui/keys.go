package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextView key.Binding
	Wine     key.Binding
	Pairing  key.Binding
	Feature  key.Binding
	WineType key.Binding
	Cuisine  key.Binding
	Resample key.Binding
	Scroll   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		NextView: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch view")),
		Wine:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "wine quality")),
		Pairing:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "food pairing")),
		Feature:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "feature")),
		WineType: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "wine type")),
		Cuisine:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cuisine")),
		Resample: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resample")),
		Scroll:   key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑/↓", "scroll")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// forView enables the bindings that act on v.
func (k *keyMap) forView(v View) {
	k.Feature.SetEnabled(v == ViewWine)
	k.WineType.SetEnabled(v == ViewPairing)
	k.Cuisine.SetEnabled(v == ViewPairing)
	k.Resample.SetEnabled(v == ViewPairing)
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextView, k.Feature, k.WineType, k.Cuisine, k.Resample, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextView, k.Wine, k.Pairing},
		{k.Feature, k.WineType, k.Cuisine, k.Resample},
		{k.Scroll, k.Help, k.Quit},
	}
}
