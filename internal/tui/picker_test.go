package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

var features = []string{
	"fixed acidity", "volatile acidity", "citric acid", "residual sugar", "chlorides",
	"free sulfur dioxide", "total sulfur dioxide", "density", "pH", "sulphates", "alcohol",
}

func typeQuery(p *Picker, q string) {
	for _, r := range q {
		_ = p.HandleKey(string(r))
	}
}

func TestPickerSubsequenceFilter(t *testing.T) {
	p := NewPicker("Feature", features)
	typeQuery(p, "tsd")
	got := p.Items()
	if len(got) != 1 || got[0] != "total sulfur dioxide" {
		t.Fatalf("items = %v, want [total sulfur dioxide]", got)
	}

	_ = p.HandleKey("backspace")
	_ = p.HandleKey("backspace")
	_ = p.HandleKey("backspace")
	if len(p.Items()) != len(features) {
		t.Fatalf("expected all items after clearing query, got %d", len(p.Items()))
	}
}

func TestPickerRanksPrefixFirst(t *testing.T) {
	p := NewPicker("Feature", features)
	typeQuery(p, "ac")
	got := p.Items()
	if len(got) == 0 {
		t.Fatal("expected matches for ac")
	}
	if got[0] != "alcohol" && got[0] != "volatile acidity" && got[0] != "fixed acidity" && got[0] != "citric acid" {
		t.Fatalf("unexpected top match %q", got[0])
	}
}

func TestPickerTypoTolerance(t *testing.T) {
	p := NewPicker("Feature", features)
	typeQuery(p, "alcihol")
	got := p.Items()
	if len(got) != 1 || got[0] != "alcohol" {
		t.Fatalf("items = %v, want [alcohol]", got)
	}

	p.SetQuery("xz")
	if len(p.Items()) != 0 {
		t.Fatalf("short unmatched query should not fall back to typo matching: %v", p.Items())
	}
	if _, ok := p.CurrentItem(); ok {
		t.Fatal("expected no current item")
	}
	if res := p.HandleKey("enter"); res.Action != PickerActionNone {
		t.Fatalf("enter on empty list = %v", res.Action)
	}
}

func TestPickerNavigationAndSelection(t *testing.T) {
	p := NewPicker("Cuisine", []string{"Italian", "French", "Thai"})
	if res := p.HandleKey("up"); res.Action != PickerActionNone {
		t.Fatalf("up at top = %v", res.Action)
	}
	if res := p.HandleKey("down"); res.Action != PickerActionMoved {
		t.Fatalf("down = %v", res.Action)
	}
	res := p.HandleKey("enter")
	if res.Action != PickerActionSelected || res.Item != "French" {
		t.Fatalf("enter = %+v, want French", res)
	}

	p.Focus("Thai")
	if p.Cursor() != 2 {
		t.Fatalf("cursor = %d after Focus(Thai)", p.Cursor())
	}
	if res := p.HandleKey("esc"); res.Action != PickerActionCancelled {
		t.Fatalf("esc = %v", res.Action)
	}
}

func TestPickerViewFits(t *testing.T) {
	p := NewPicker("Feature", features)
	out := p.View(30)
	for _, line := range strings.Split(out, "\n") {
		if w := ansi.StringWidth(line); w > 30 {
			t.Fatalf("line %q is %d wide", ansi.Strip(line), w)
		}
	}
	if !strings.Contains(ansi.Strip(out), "› fixed acidity") {
		t.Fatalf("cursor row missing:\n%s", ansi.Strip(out))
	}
	if !strings.Contains(ansi.Strip(out), "1/11") {
		t.Fatalf("expected position indicator:\n%s", ansi.Strip(out))
	}
}
