package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Load-bearing column names. Charts address these literally.
const (
	ColQuality        = "quality"
	ColAlcohol        = "alcohol"
	ColWineType       = "wine_type"
	ColCuisine        = "cuisine"
	ColPairingQuality = "pairing_quality"
)

var (
	ErrEmpty         = errors.New("dataset: no header row")
	ErrMissingColumn = errors.New("dataset: missing column")
)

// Kind classifies a column after parsing.
type Kind int

const (
	Categorical Kind = iota
	Numeric
)

func (k Kind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "categorical"
}

// Column holds one parsed column. Exactly one of Nums/Strs is populated,
// depending on Kind. Missing numeric cells are NaN.
type Column struct {
	Name string
	Kind Kind
	Nums []float64
	Strs []string
}

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	if c.Kind == Numeric {
		return len(c.Nums)
	}
	return len(c.Strs)
}

// Text renders cell i the way the preview tables show it.
func (c *Column) Text(i int) string {
	if c.Kind == Categorical {
		return c.Strs[i]
	}
	v := c.Nums[i]
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Table is an immutable, column-oriented copy of a CSV file.
type Table struct {
	ID      string
	Name    string
	Path    string
	Columns []*Column

	index map[string]int
	rows  int
}

func newTable(name, path string, cols []*Column, rows int) *Table {
	t := &Table{Name: name, Path: path, Columns: cols, rows: rows}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		if _, dup := t.index[c.Name]; !dup {
			t.index[c.Name] = i
		}
	}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.rows
}

// Column looks a column up by exact name.
func (t *Table) Column(name string) (*Column, bool) {
	if t == nil {
		return nil, false
	}
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.Columns[i], true
}

// ColumnNames returns all column names in file order.
func (t *Table) ColumnNames() []string {
	out := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		out = append(out, c.Name)
	}
	return out
}

// NumericColumns returns the numeric columns in file order.
func (t *Table) NumericColumns() []*Column {
	var out []*Column
	for _, c := range t.Columns {
		if c.Kind == Numeric {
			out = append(out, c)
		}
	}
	return out
}

// Require checks that every named column exists.
func (t *Table) Require(names ...string) error {
	for _, n := range names {
		if _, ok := t.Column(n); !ok {
			return fmt.Errorf("%w %q in %s", ErrMissingColumn, n, t.Name)
		}
	}
	return nil
}

// Row renders row i as strings in column order.
func (t *Table) Row(i int) []string {
	out := make([]string, len(t.Columns))
	for j, c := range t.Columns {
		out[j] = c.Text(i)
	}
	return out
}

// Head returns up to n leading rows.
func (t *Table) Head(n int) [][]string {
	if n > t.rows {
		n = t.rows
	}
	out := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, t.Row(i))
	}
	return out
}

// Unique returns the distinct values of a categorical column in order of
// first appearance. Numeric columns are rendered through Text.
func (t *Table) Unique(name string) []string {
	c, ok := t.Column(name)
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < c.Len(); i++ {
		v := c.Text(i)
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Subset returns a new table holding the given rows, in the given order.
func (t *Table) Subset(rows []int) *Table {
	cols := make([]*Column, len(t.Columns))
	for j, c := range t.Columns {
		nc := &Column{Name: c.Name, Kind: c.Kind}
		if c.Kind == Numeric {
			nc.Nums = make([]float64, len(rows))
			for k, r := range rows {
				nc.Nums[k] = c.Nums[r]
			}
		} else {
			nc.Strs = make([]string, len(rows))
			for k, r := range rows {
				nc.Strs[k] = c.Strs[r]
			}
		}
		cols[j] = nc
	}
	sub := newTable(t.Name, t.Path, cols, len(rows))
	sub.ID = t.ID
	return sub
}
