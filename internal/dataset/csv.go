package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ParseOptions controls Parse. A zero Delimiter means auto-detect.
type ParseOptions struct {
	Name      string
	Path      string
	Delimiter rune
}

var missingTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
}

// Parse reads a headed CSV document into a Table. Ragged rows are an error.
func Parse(r io.Reader, opts ParseOptions) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmpty
	}

	delim := opts.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(data)
	}
	csvr := csv.NewReader(bytes.NewReader(data))
	csvr.Comma = delim
	csvr.TrimLeadingSpace = true
	csvr.ReuseRecord = false

	headers, err := csvr.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	raw := make([][]string, len(headers))
	rows := 0
	for {
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.ParseError already carries the line number.
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		for i, v := range rec {
			raw[i] = append(raw[i], strings.TrimSpace(v))
		}
		rows++
	}

	cols := make([]*Column, len(headers))
	for i, h := range headers {
		cols[i] = classify(h, raw[i])
	}

	name := opts.Name
	if name == "" && opts.Path != "" {
		name = strings.TrimSuffix(filepath.Base(opts.Path), filepath.Ext(opts.Path))
	}
	t := newTable(name, opts.Path, cols, rows)
	if opts.Path != "" {
		t.ID = TableID(opts.Path)
	}
	return t, nil
}

// TableID derives a stable identifier for the file at path.
func TableID(path string) string {
	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(key))).String()
}

func classify(name string, cells []string) *Column {
	nums := make([]float64, len(cells))
	for i, v := range cells {
		if missingTokens[strings.ToLower(v)] {
			nums[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			strs := make([]string, len(cells))
			copy(strs, cells)
			return &Column{Name: name, Kind: Categorical, Strs: strs}
		}
		nums[i] = f
	}
	return &Column{Name: name, Kind: Numeric, Nums: nums}
}

// sniffDelimiter picks the most frequent candidate separator on the header line.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestN := ',', 0
	for _, c := range []rune{',', ';', '\t', '|'} {
		if n := bytes.Count(line, []byte(string(c))); n > bestN {
			best, bestN = c, n
		}
	}
	return best
}
