package clusterviz

import "sort"

// emptyToken is the reserved raw value under which blank or undefined
// cells are cataloged, so missing values can be remapped like any other
// non-numeric value.
const emptyToken = ""

// Entry records one distinct non-numeric raw value within a feature
// column, the rows that hold it, and the numeric substitute the user
// assigned to it. Mapped is empty until a valid assignment is made.
type Entry struct {
	Column int
	Rows   []int
	Raw    string
	Mapped string
}

// Assigned reports whether the entry has a numeric substitute.
func (e *Entry) Assigned() bool {
	return e.Mapped != ""
}

// Catalog groups the distinct non-numeric values of a table's feature
// columns. It is rebuilt whenever the table or the class flag changes
// and mutated in place as the user assigns substitutes.
type Catalog struct {
	columns []int
	entries map[int][]*Entry
}

// BuildCatalog scans the feature columns of the table (excluding the
// class column when hasClass is set) and collects every distinct
// non-numeric value. Rows sharing identical raw text in the same column
// merge into one entry.
func BuildCatalog(t *Table, hasClass bool) *Catalog {
	c := &Catalog{entries: make(map[int][]*Entry)}
	cols := t.FeatureCols(hasClass)
	for col := 0; col < cols; col++ {
		for row := 0; row < t.Rows(); row++ {
			cell := t.Cells[row][col]
			if cell.Numeric {
				continue
			}
			raw := cell.Raw
			if raw == "" {
				raw = emptyToken
			}
			c.add(col, row, raw)
		}
	}
	sort.Ints(c.columns)
	return c
}

func (c *Catalog) add(col, row int, raw string) {
	for _, e := range c.entries[col] {
		if e.Raw == raw {
			e.Rows = append(e.Rows, row)
			return
		}
	}
	if len(c.entries[col]) == 0 {
		c.columns = append(c.columns, col)
	}
	c.entries[col] = append(c.entries[col], &Entry{Column: col, Rows: []int{row}, Raw: raw})
}

// Empty reports whether the table held no non-numeric values.
func (c *Catalog) Empty() bool {
	return len(c.columns) == 0
}

// Columns returns the feature columns holding at least one entry, in
// ascending order.
func (c *Catalog) Columns() []int {
	return c.columns
}

// Entries returns the entries of one column in first-seen order.
func (c *Catalog) Entries(col int) []*Entry {
	return c.entries[col]
}

// Entry looks up the entry for a raw value within a column.
func (c *Catalog) Entry(col int, raw string) *Entry {
	for _, e := range c.entries[col] {
		if e.Raw == raw {
			return e
		}
	}
	return nil
}

// Assign attaches a numeric substitute to the entry for raw in col.
// Empty or sign-only text is rejected with ErrInvalidNumeric and leaves
// the entry unset.
func (c *Catalog) Assign(col int, raw, numericText string) error {
	e := c.Entry(col, raw)
	if e == nil {
		return nil
	}
	if !IsNumericText(numericText) {
		e.Mapped = ""
		return ErrInvalidNumeric
	}
	e.Mapped = numericText
	return nil
}

// Clear reverts the entry for raw in col to unset.
func (c *Catalog) Clear(col int, raw string) {
	if e := c.Entry(col, raw); e != nil {
		e.Mapped = ""
	}
}

// AllAssigned reports whether every entry across every column has a
// numeric substitute.
func (c *Catalog) AllAssigned() bool {
	for _, col := range c.columns {
		for _, e := range c.entries[col] {
			if !e.Assigned() {
				return false
			}
		}
	}
	return true
}

// RowsWithEntries returns the sorted set of rows holding at least one
// non-numeric value in any feature column.
func (c *Catalog) RowsWithEntries() []int {
	seen := make(map[int]struct{})
	for _, col := range c.columns {
		for _, e := range c.entries[col] {
			for _, row := range e.Rows {
				seen[row] = struct{}{}
			}
		}
	}
	rows := make([]int, 0, len(seen))
	for row := range seen {
		rows = append(rows, row)
	}
	sort.Ints(rows)
	return rows
}
