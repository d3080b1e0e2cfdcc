package clusterviz

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"sync"
)

// DisplaySlots is the number of side-by-side result displays.
const DisplaySlots = 2

// Session owns one interactive clustering workflow: the loaded table,
// the non-numeric catalog, the derived feature matrix, the current
// selections and the display snapshots. Every shell event maps 1:1 to a
// Session method, and each method re-derives the readiness state.
// Catalog mutation and the matching matrix update happen as one step
// under the session lock so a run always sees a consistent pair.
type Session struct {
	mu     sync.Mutex
	logger *log.Logger

	path    string
	table   *Table
	loadErr error

	hasClass    bool
	classLabels []string
	classCount  int

	policy  Policy
	catalog *Catalog
	matrix  *FeatureMatrix

	algorithm   Algorithm
	clusterText string
	dimension   int

	slots [DisplaySlots]*DisplayResult
}

// NewSession constructs an empty session. The logger may be nil.
func NewSession(logger *log.Logger) *Session {
	return &Session{logger: logger}
}

// LoadFile replaces the current table with the contents of path and
// resets every data-dependent selection, mirroring a fresh start for
// the new file. The load error, if any, is retained for readiness.
func (s *Session) LoadFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.path = path
	s.policy = PolicyNone
	s.algorithm = ""
	s.clusterText = ""
	s.dimension = 0

	s.table, s.loadErr = LoadTable(path)
	if s.loadErr != nil {
		s.table = nil
		s.catalog = nil
		s.matrix = nil
		s.classLabels = nil
		s.classCount = 0
		s.logf("load %s: %v", path, s.loadErr)
		return s.loadErr
	}
	s.logf("loaded %s: %d data points, %d columns", path, s.table.Rows(), s.table.Cols())
	return s.process()
}

// SetClassFlag records whether the last column holds class assignments
// and reprocesses the table, rebuilding the catalog and matrix.
func (s *Session) SetClassFlag(hasClass bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasClass = hasClass
	if s.table == nil {
		return nil
	}
	return s.process()
}

// process re-derives the class split, the catalog and the matrix from
// the current table and class flag. The handling-policy selection is
// kept; only the derived state is rebuilt.
func (s *Session) process() error {
	s.classLabels = nil
	s.classCount = 0
	s.loadErr = nil

	_, labels, err := s.table.Split(s.hasClass)
	if err != nil {
		s.loadErr = err
		s.catalog = nil
		s.matrix = nil
		s.logf("process: %v", err)
		return err
	}
	if s.hasClass {
		s.classLabels = labels
		s.classCount = ClassCount(labels)
	}

	s.catalog = BuildCatalog(s.table, s.hasClass)
	s.rebuildMatrix()

	// A prior 3D selection can become infeasible after a reload.
	if s.dimension == 3 && s.table.FeatureCols(s.hasClass) < 3 {
		s.dimension = 0
	}
	return nil
}

// rebuildMatrix derives the matrix for the current policy. A table with
// no non-numeric values is immediately usable without a policy.
func (s *Session) rebuildMatrix() {
	if s.catalog.Empty() {
		s.matrix, _ = BuildMatrix(s.table, s.hasClass, s.catalog, PolicyZeroFill)
		return
	}
	if s.policy == PolicyNone {
		s.matrix = nil
		return
	}
	s.matrix, _ = BuildMatrix(s.table, s.hasClass, s.catalog, s.policy)
}

// SetPolicy selects the non-numeric handling policy and re-derives the
// matrix. The catalog is untouched, so switching back reproduces the
// earlier matrix exactly.
func (s *Session) SetPolicy(p Policy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policy = p
	if s.table == nil || s.loadErr != nil {
		return
	}
	s.rebuildMatrix()
}

// Policy returns the selected handling policy.
func (s *Session) Policy() Policy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy
}

// AssignValue attaches a numeric substitute to a catalog entry and,
// under the manual-mapping policy, propagates it immediately into the
// live matrix for every row holding that value. Invalid text clears the
// entry instead. A raw value the catalog never saw is an error, so a
// mistyped value cannot pass silently.
func (s *Session) AssignValue(col int, raw, numericText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalog == nil {
		return nil
	}
	entry := s.catalog.Entry(col, raw)
	if entry == nil {
		return fmt.Errorf("clusterviz: column %d has no value %q to assign", col+1, raw)
	}
	err := s.catalog.Assign(col, raw, numericText)
	if s.policy == PolicyManualMap && s.matrix != nil {
		if err == nil {
			v, _ := strconv.ParseFloat(numericText, 64)
			for _, row := range entry.Rows {
				s.matrix.Data[row][col] = v
			}
		} else {
			for _, row := range entry.Rows {
				s.matrix.Data[row][col] = math.NaN()
			}
		}
		s.matrix.recheck()
	}
	return err
}

// ClearValue reverts a catalog entry to unset and clears the matching
// matrix cells under the manual-mapping policy.
func (s *Session) ClearValue(col int, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalog == nil {
		return
	}
	s.catalog.Clear(col, raw)
	entry := s.catalog.Entry(col, raw)
	if entry != nil && s.policy == PolicyManualMap && s.matrix != nil {
		for _, row := range entry.Rows {
			s.matrix.Data[row][col] = math.NaN()
		}
		s.matrix.Complete = false
	}
}

// SetAlgorithm selects the clustering algorithm; an empty name clears
// the selection.
func (s *Session) SetAlgorithm(algo Algorithm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.algorithm = algo
}

// SetClusterCount records the raw cluster-count text as typed.
func (s *Session) SetClusterCount(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clusterText = text
}

// SetDimension selects the display dimensionality. A 3D selection is
// refused while the table has fewer than three feature columns.
func (s *Session) SetDimension(dim int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dim != 2 && dim != 3 {
		return false
	}
	if dim == 3 && !s.threeDFeasible() {
		return false
	}
	s.dimension = dim
	return true
}

func (s *Session) threeDFeasible() bool {
	return s.table != nil && s.loadErr == nil && s.table.FeatureCols(s.hasClass) >= 3
}

// ThreeDFeasible reports whether a 3D display may currently be offered.
func (s *Session) ThreeDFeasible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.threeDFeasible()
}

// Readiness recomputes the readiness state from the current inputs.
func (s *Session) Readiness() ReadinessState {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := ReadinessState{
		FileLoaded:            s.table != nil,
		LoadFailed:            s.loadErr != nil,
		AlgorithmSelected:     s.algorithm != "",
		DimensionSelected:     s.dimension == 2 || s.dimension == 3,
		PolicyMootsNonNumeric: s.policy == PolicyZeroFill || s.policy == PolicyExcludeRows || s.policy == PolicyExcludeColumns,
	}
	if s.catalog != nil {
		r.HasNonNumeric = !s.catalog.Empty()
		r.MappingComplete = s.policy == PolicyManualMap && s.catalog.AllAssigned()
	}
	if s.table != nil {
		r.ClusterCountEntered = ValidClusterCount(s.clusterText, s.table.Rows())
	}
	if s.algorithm != "" && !s.algorithm.NeedsClusterCount() {
		r.ClusterCountNotNeeded = true
	}
	return r
}

// RunDisplay executes the selected clustering and stores the snapshot in
// the given display slot. The snapshot is independent of later edits.
func (s *Session) RunDisplay(slot int) (*DisplayResult, error) {
	if !s.Readiness().Ready() {
		return nil, fmt.Errorf("clusterviz: clustering conditions are not met")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot < 0 || slot >= DisplaySlots {
		return nil, fmt.Errorf("clusterviz: display slot %d out of range", slot)
	}
	k := 0
	if s.algorithm.NeedsClusterCount() {
		k, _ = strconv.Atoi(s.clusterText)
	}
	classLabels := s.classLabels
	if s.policy == PolicyExcludeRows && classLabels != nil && s.catalog != nil {
		// Excluded rows have no matrix row, so their class labels must
		// not take part in the metric or the export.
		classLabels = survivingLabels(classLabels, s.catalog.RowsWithEntries())
	}
	res, err := RunClustering(s.matrix, s.algorithm, k, s.dimension, classLabels)
	if err != nil {
		s.logf("run %s: %v", s.algorithm, err)
		return nil, err
	}
	s.slots[slot] = res
	s.logf("display %d: %s on %d points", slot+1, s.algorithm, len(res.Labels))
	return res, nil
}

// Slot returns the snapshot stored in a display slot, or nil.
func (s *Session) Slot(slot int) *DisplayResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot < 0 || slot >= DisplaySlots {
		return nil
	}
	return s.slots[slot]
}

// CloseSlot discards the snapshot in a display slot.
func (s *Session) CloseSlot(slot int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot >= 0 && slot < DisplaySlots {
		s.slots[slot] = nil
	}
}

// HasDisplay reports whether any display slot holds a snapshot.
func (s *Session) HasDisplay() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.slots {
		if r != nil {
			return true
		}
	}
	return false
}

// Table returns the loaded table, or nil.
func (s *Session) Table() *Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table
}

// Catalog returns the current non-numeric catalog, or nil.
func (s *Session) Catalog() *Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog
}

// Matrix returns the current feature matrix, or nil.
func (s *Session) Matrix() *FeatureMatrix {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matrix
}

// LoadError returns the load or class-split error blocking clustering.
func (s *Session) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// ClassCount returns the number of distinct classes in the class column.
func (s *Session) ClassCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.classCount
}

// HasClassFlag reports whether the class-column option is set.
func (s *Session) HasClassFlag() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasClass
}

// survivingLabels returns the labels of the rows that are not in the
// dropped set, preserving row order.
func survivingLabels(labels []string, dropped []int) []string {
	drop := make(map[int]struct{}, len(dropped))
	for _, row := range dropped {
		drop[row] = struct{}{}
	}
	out := make([]string, 0, len(labels)-len(dropped))
	for row, label := range labels {
		if _, ok := drop[row]; !ok {
			out = append(out, label)
		}
	}
	return out
}

func (s *Session) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
