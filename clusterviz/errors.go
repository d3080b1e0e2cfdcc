package clusterviz

import "errors"

var (
	// ErrMalformedRow indicates rows with differing numbers of entries.
	ErrMalformedRow = errors.New("clusterviz: data points must contain the same number of entries")
	// ErrEmptyFile indicates the file contains no data at all.
	ErrEmptyFile = errors.New("clusterviz: file does not contain any data")
	// ErrInsufficientRows indicates fewer than two data points.
	ErrInsufficientRows = errors.New("clusterviz: file must contain at least two data points")
	// ErrInsufficientColumns indicates a single-column table with no feature signal.
	ErrInsufficientColumns = errors.New("clusterviz: file must contain at least two data points and two features")
	// ErrMissingClassColumnFeatures indicates a class split would leave fewer than two feature columns.
	ErrMissingClassColumnFeatures = errors.New("clusterviz: data points need an assigned class and at least two features")
	// ErrInvalidNumeric indicates an empty or sign-only substitute value.
	ErrInvalidNumeric = errors.New("clusterviz: substitute value must be numeric")
	// ErrMissingClusterCount indicates a cluster-count algorithm was invoked without one.
	// The readiness gate makes this unreachable through the shells.
	ErrMissingClusterCount = errors.New("clusterviz: algorithm requires a cluster count")
	// ErrMatrixIncomplete indicates a clustering run on a matrix that still has unset cells.
	ErrMatrixIncomplete = errors.New("clusterviz: feature matrix has unassigned values")
)
