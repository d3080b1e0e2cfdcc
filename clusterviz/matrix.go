package clusterviz

import (
	"fmt"
	"math"
	"strconv"
)

// Policy selects how non-numeric values are converted into numeric form
// before clustering.
type Policy int

const (
	// PolicyNone means no handling option has been selected yet.
	PolicyNone Policy = iota
	// PolicyZeroFill assigns every non-numeric value to zero.
	PolicyZeroFill
	// PolicyManualMap copies user-assigned substitutes from the catalog,
	// leaving unassigned values unset until the catalog is complete.
	PolicyManualMap
	// PolicyExcludeRows drops every data point holding a non-numeric value.
	PolicyExcludeRows
	// PolicyExcludeColumns drops every feature column holding a non-numeric value.
	PolicyExcludeColumns
)

// String returns the option text shown for the policy.
func (p Policy) String() string {
	switch p {
	case PolicyZeroFill:
		return "Assign all non-numeric values to 0"
	case PolicyManualMap:
		return "Assign each non-numeric value to a number"
	case PolicyExcludeRows:
		return "Exclude data points with non-numeric values"
	case PolicyExcludeColumns:
		return "Exclude features with non-numeric values"
	default:
		return ""
	}
}

// FeatureMatrix is the numeric matrix handed to the clustering backend.
// Under PolicyManualMap cells without an assigned substitute hold NaN
// and Complete stays false until every catalog entry is assigned.
type FeatureMatrix struct {
	Data     [][]float64
	Complete bool
}

// Rows returns the number of data points in the matrix.
func (m *FeatureMatrix) Rows() int {
	return len(m.Data)
}

// Cols returns the number of feature columns in the matrix.
func (m *FeatureMatrix) Cols() int {
	if len(m.Data) == 0 {
		return 0
	}
	return len(m.Data[0])
}

// SetCell writes a value into the matrix and re-derives Complete.
// Used for live propagation of catalog assignments under PolicyManualMap.
func (m *FeatureMatrix) SetCell(row, col int, v float64) {
	m.Data[row][col] = v
	m.recheck()
}

// ClearCell reverts a cell to unset.
func (m *FeatureMatrix) ClearCell(row, col int) {
	m.Data[row][col] = math.NaN()
	m.Complete = false
}

func (m *FeatureMatrix) recheck() {
	for _, row := range m.Data {
		for _, v := range row {
			if math.IsNaN(v) {
				m.Complete = false
				return
			}
		}
	}
	m.Complete = true
}

// BuildMatrix derives the feature matrix from the table under the given
// handling policy. The catalog is read but never mutated, so rebuilding
// under the same catalog state always reproduces the same matrix.
func BuildMatrix(t *Table, hasClass bool, catalog *Catalog, policy Policy) (*FeatureMatrix, error) {
	cols := t.FeatureCols(hasClass)
	switch policy {
	case PolicyZeroFill:
		return buildFilled(t, cols, catalog, func(*Entry) float64 { return 0 }), nil
	case PolicyManualMap:
		return buildFilled(t, cols, catalog, func(e *Entry) float64 {
			if e != nil && e.Assigned() {
				v, err := strconv.ParseFloat(e.Mapped, 64)
				if err == nil {
					return v
				}
			}
			return math.NaN()
		}), nil
	case PolicyExcludeRows:
		return buildExcludingRows(t, cols, catalog), nil
	case PolicyExcludeColumns:
		return buildExcludingColumns(t, cols, catalog), nil
	default:
		return nil, fmt.Errorf("clusterviz: no handling policy selected")
	}
}

// buildFilled substitutes each non-numeric cell with the value the fill
// function yields for its catalog entry.
func buildFilled(t *Table, cols int, catalog *Catalog, fill func(*Entry) float64) *FeatureMatrix {
	m := &FeatureMatrix{Data: make([][]float64, t.Rows())}
	for row := range t.Cells {
		m.Data[row] = make([]float64, cols)
		for col := 0; col < cols; col++ {
			cell := t.Cells[row][col]
			if cell.Numeric {
				m.Data[row][col] = cell.Value
				continue
			}
			m.Data[row][col] = fill(catalog.Entry(col, cell.Raw))
		}
	}
	m.recheck()
	return m
}

func buildExcludingRows(t *Table, cols int, catalog *Catalog) *FeatureMatrix {
	dropped := make(map[int]struct{})
	for _, row := range catalog.RowsWithEntries() {
		dropped[row] = struct{}{}
	}
	m := &FeatureMatrix{Complete: true}
	for row := range t.Cells {
		if _, drop := dropped[row]; drop {
			continue
		}
		out := make([]float64, cols)
		for col := 0; col < cols; col++ {
			out[col] = t.Cells[row][col].Value
		}
		m.Data = append(m.Data, out)
	}
	return m
}

func buildExcludingColumns(t *Table, cols int, catalog *Catalog) *FeatureMatrix {
	dropped := make(map[int]struct{})
	for _, col := range catalog.Columns() {
		dropped[col] = struct{}{}
	}
	m := &FeatureMatrix{Data: make([][]float64, t.Rows()), Complete: true}
	for row := range t.Cells {
		out := make([]float64, 0, cols-len(dropped))
		for col := 0; col < cols; col++ {
			if _, drop := dropped[col]; drop {
				continue
			}
			out = append(out, t.Cells[row][col].Value)
		}
		m.Data[row] = out
	}
	return m
}
