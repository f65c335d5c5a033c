package tui

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type PickerAction int

const (
	PickerActionNone PickerAction = iota
	PickerActionMoved
	PickerActionSelected
	PickerActionCancelled
)

type PickerResult struct {
	Action PickerAction
	Item   string
}

// Picker is a fuzzy-filterable single-choice list. Options keep their given
// order until a query ranks them.
type Picker struct {
	title    string
	items    []string
	filtered []string
	query    string
	cursor   int
}

const pickerVisibleRows = 10

func NewPicker(title string, items []string) *Picker {
	p := &Picker{title: strings.TrimSpace(title)}
	p.SetItems(items)
	return p
}

func (p *Picker) Title() string { return p.title }
func (p *Picker) Query() string { return p.query }
func (p *Picker) Cursor() int   { return p.cursor }

func (p *Picker) Items() []string {
	return append([]string(nil), p.filtered...)
}

func (p *Picker) SetItems(items []string) {
	p.items = append([]string(nil), items...)
	p.rebuildFiltered()
}

func (p *Picker) SetQuery(q string) {
	p.query = q
	p.rebuildFiltered()
}

// Focus moves the cursor onto label when it is visible.
func (p *Picker) Focus(label string) {
	for i, it := range p.filtered {
		if it == label {
			p.cursor = i
			return
		}
	}
}

func (p *Picker) CursorUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *Picker) CursorDown() {
	if p.cursor < len(p.filtered)-1 {
		p.cursor++
	}
}

func (p *Picker) CurrentItem() (string, bool) {
	if len(p.filtered) == 0 {
		return "", false
	}
	idx := min(max(p.cursor, 0), len(p.filtered)-1)
	return p.filtered[idx], true
}

func (p *Picker) HandleKey(keyName string) PickerResult {
	switch keyName {
	case "up", "ctrl+p":
		before := p.cursor
		p.CursorUp()
		if p.cursor != before {
			return PickerResult{Action: PickerActionMoved}
		}
		return PickerResult{Action: PickerActionNone}
	case "down", "ctrl+n":
		before := p.cursor
		p.CursorDown()
		if p.cursor != before {
			return PickerResult{Action: PickerActionMoved}
		}
		return PickerResult{Action: PickerActionNone}
	case "enter":
		item, ok := p.CurrentItem()
		if !ok {
			return PickerResult{Action: PickerActionNone}
		}
		return PickerResult{Action: PickerActionSelected, Item: item}
	case "esc":
		return PickerResult{Action: PickerActionCancelled}
	case "backspace":
		if p.query != "" {
			_, size := utf8.DecodeLastRuneInString(p.query)
			p.SetQuery(p.query[:len(p.query)-size])
		}
		return PickerResult{Action: PickerActionNone}
	case "space":
		p.SetQuery(p.query + " ")
		return PickerResult{Action: PickerActionNone}
	default:
		if isPrintableKey(keyName) {
			p.SetQuery(p.query + keyName)
		}
		return PickerResult{Action: PickerActionNone}
	}
}

type scoredItem struct {
	item  string
	score int
	index int
}

func (p *Picker) rebuildFiltered() {
	q := strings.TrimSpace(p.query)
	scored := make([]scoredItem, 0, len(p.items))
	for idx, item := range p.items {
		matched, score := fuzzyMatchScore(item, q)
		if !matched {
			continue
		}
		scored = append(scored, scoredItem{item: item, score: score, index: idx})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].index < scored[j].index
	})
	p.filtered = make([]string, len(scored))
	for i, s := range scored {
		p.filtered[i] = s.item
	}

	maxIdx := len(p.filtered) - 1
	if maxIdx < 0 {
		p.cursor = 0
	} else if p.cursor > maxIdx {
		p.cursor = maxIdx
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// fuzzyMatchScore matches query as a case-insensitive subsequence of label.
// Queries of three or more characters also match a label whose prefix is one
// edit away, ranked below every subsequence match.
func fuzzyMatchScore(label, query string) (bool, int) {
	if query == "" {
		return true, 0
	}
	labelLower := strings.ToLower(label)
	queryLower := strings.ToLower(query)

	matchIdx := make([]int, 0, len(queryLower))
	searchFrom := 0
	matched := true
	for _, ch := range queryLower {
		j := strings.IndexRune(labelLower[searchFrom:], ch)
		if j < 0 {
			matched = false
			break
		}
		matchIdx = append(matchIdx, searchFrom+j)
		searchFrom += j + utf8.RuneLen(ch)
	}
	if !matched {
		return typoMatch(labelLower, queryLower)
	}

	score := len(queryLower)
	if len(matchIdx) > 0 && matchIdx[0] == 0 {
		score += 10
	}
	for i := 1; i < len(matchIdx); i++ {
		if matchIdx[i] == matchIdx[i-1]+1 {
			score += 3
		}
	}
	if strings.EqualFold(strings.TrimSpace(label), strings.TrimSpace(query)) {
		score += 20
	}
	return true, score
}

func typoMatch(label, query string) (bool, int) {
	n := utf8.RuneCountInString(query)
	if n < 3 {
		return false, 0
	}
	prefix := []rune(label)
	if len(prefix) > n {
		prefix = prefix[:n]
	}
	if levenshtein.ComputeDistance(string(prefix), query) <= 1 {
		return true, -1
	}
	return false, 0
}

func isPrintableKey(keyName string) bool {
	r, size := utf8.DecodeRuneInString(keyName)
	return size == len(keyName) && r >= 32 && r != 127 && r != utf8.RuneError
}

// View renders the picker as a bordered box no wider than width.
func (p *Picker) View(width int) string {
	inner := max(10, width-4)
	lines := []string{
		pickerTitleStyle.Render(p.title),
		pickerQueryStyle.Render("> "+p.query) + pickerCursorStyle.Render("▏"),
	}
	if len(p.filtered) == 0 {
		lines = append(lines, mutedStyle.Render("no matches"))
	}
	start := 0
	if p.cursor >= pickerVisibleRows {
		start = p.cursor - pickerVisibleRows + 1
	}
	end := min(len(p.filtered), start+pickerVisibleRows)
	for i := start; i < end; i++ {
		label := ansi.Truncate(p.filtered[i], inner-2, "…")
		if i == p.cursor {
			lines = append(lines, pickerSelectedStyle.Render("› "+label))
		} else {
			lines = append(lines, "  "+label)
		}
	}
	if len(p.filtered) > pickerVisibleRows {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("%d/%d", p.cursor+1, len(p.filtered))))
	}
	lines = append(lines, mutedStyle.Render("enter select · esc cancel"))
	return pickerBoxStyle.Width(inner).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
