package clusterviz

import "strconv"

// ReadinessState captures every condition gating a clustering run. It is
// a value recomputed from the current table, catalog and selections on
// each relevant event; it carries no memory of its own.
type ReadinessState struct {
	FileLoaded            bool
	LoadFailed            bool
	HasNonNumeric         bool
	MappingComplete       bool
	PolicyMootsNonNumeric bool
	AlgorithmSelected     bool
	ClusterCountEntered   bool
	ClusterCountNotNeeded bool
	DimensionSelected     bool
}

// Ready reports whether clustering may be triggered. Identical states
// always yield the same answer regardless of call order or history.
func (r ReadinessState) Ready() bool {
	return r.FileLoaded &&
		!r.LoadFailed &&
		(!r.HasNonNumeric || r.MappingComplete || r.PolicyMootsNonNumeric) &&
		r.AlgorithmSelected &&
		(r.ClusterCountEntered || r.ClusterCountNotNeeded) &&
		r.DimensionSelected
}

// ValidClusterCount reports whether text is a positive integer no larger
// than the row count of the original, pre-exclusion table.
func ValidClusterCount(text string, rows int) bool {
	if text == "" {
		return false
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return false
	}
	return n > 0 && n <= rows
}
