package clusterviz

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Cell holds one table value, parsed as a number when possible.
// Non-numeric cells keep their raw text so they can be remapped later.
type Cell struct {
	Raw     string
	Value   float64
	Numeric bool
}

// Table is a rectangular grid of cells loaded from a delimited file.
// Every row holds the same number of columns.
type Table struct {
	Cells [][]Cell
}

// Rows returns the number of data points in the table.
func (t *Table) Rows() int {
	return len(t.Cells)
}

// Cols returns the number of columns in the table.
func (t *Table) Cols() int {
	if len(t.Cells) == 0 {
		return 0
	}
	return len(t.Cells[0])
}

// FeatureCols returns the number of feature columns, excluding the
// trailing class column when hasClass is set.
func (t *Table) FeatureCols(hasClass bool) int {
	cols := t.Cols()
	if hasClass {
		cols--
	}
	return cols
}

// LoadTable reads a comma-delimited .txt or .csv file into a Table.
// Cells that do not parse as plain decimal numbers are retained as raw
// text rather than failing the load.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	width := len(rows[0])
	for _, row := range rows {
		if len(row) != width {
			return nil, ErrMalformedRow
		}
	}
	if len(rows) < 2 {
		return nil, ErrInsufficientRows
	}
	if width < 2 {
		return nil, ErrInsufficientColumns
	}

	cells := make([][]Cell, len(rows))
	blank := true
	for i, row := range rows {
		cells[i] = make([]Cell, width)
		for j, field := range row {
			raw := NormalizeCell(field)
			cell := Cell{Raw: raw}
			if IsNumericText(raw) {
				if v, err := strconv.ParseFloat(raw, 64); err == nil {
					cell.Value = v
					cell.Numeric = true
				}
			}
			if raw != "" {
				blank = false
			}
			cells[i][j] = cell
		}
	}
	if blank {
		return nil, ErrEmptyFile
	}
	return &Table{Cells: cells}, nil
}

// Split separates the trailing class column from the feature columns.
// Without a class column the table is returned unchanged with nil
// labels. Class labels are canonicalized so a numeric class column
// prints the same way in exports regardless of how it was written.
func (t *Table) Split(hasClass bool) (*Table, []string, error) {
	if !hasClass {
		return t, nil, nil
	}
	if t.Cols() < 3 {
		return nil, nil, ErrMissingClassColumnFeatures
	}
	features := make([][]Cell, t.Rows())
	labels := make([]string, t.Rows())
	last := t.Cols() - 1
	for i, row := range t.Cells {
		features[i] = row[:last]
		if row[last].Numeric {
			labels[i] = FormatFloat(row[last].Value)
		} else {
			labels[i] = row[last].Raw
		}
	}
	return &Table{Cells: features}, labels, nil
}

// ClassCount returns the number of distinct labels.
func ClassCount(labels []string) int {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		seen[l] = struct{}{}
	}
	return len(seen)
}

// IsNumericText reports whether s is a plain decimal numeral. One
// leading sign character is allowed; the remainder must be a non-empty
// unsigned numeral, so bare signs such as "-", "+" or "+." are not
// numeric.
func IsNumericText(s string) bool {
	if s == "" {
		return false
	}
	body := s
	if body[0] == '-' || body[0] == '+' {
		body = body[1:]
	}
	digits, dots := 0, 0
	for _, r := range body {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
