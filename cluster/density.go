package cluster

import (
	"fmt"

	"github.com/mpraski/clusters"
)

const (
	dbscanEps       = 0.5
	dbscanMinPoints = 5
	// opticsXi is the steepness threshold for cluster extraction.
	opticsXi = 0.05
	// densityWorkers keeps neighbour computation on one goroutine; the
	// session model is strictly synchronous.
	densityWorkers = 1
)

// DBSCAN groups density-reachable points and marks sparse points as
// noise with the label -1.
type DBSCAN struct{}

// NewDBSCAN returns a DBSCAN fitter with default radius and density.
func NewDBSCAN() *DBSCAN {
	return &DBSCAN{}
}

// Fit learns the density clustering and returns one label per point.
func (d *DBSCAN) Fit(data [][]float64) ([]int, error) {
	c, err := clusters.DBSCAN(dbscanMinPoints, dbscanEps, densityWorkers, clusters.EuclideanDistance)
	if err != nil {
		return nil, fmt.Errorf("cluster: dbscan: %w", err)
	}
	if err := c.Learn(data); err != nil {
		return nil, fmt.Errorf("cluster: dbscan learn: %w", err)
	}
	return relabel(c.Guesses()), nil
}

// OPTICS orders points by reachability and extracts clusters from the
// steep regions of the ordering. The minimum-samples parameter comes
// from the caller and is not user-configurable.
type OPTICS struct {
	minSamples int
}

// NewOPTICS returns an OPTICS fitter with the given minimum samples.
func NewOPTICS(minSamples int) *OPTICS {
	return &OPTICS{minSamples: minSamples}
}

// Fit learns the reachability clustering and returns one label per
// point. The neighbourhood radius is unbounded, approximated by the
// largest pairwise distance in the data set.
func (o *OPTICS) Fit(data [][]float64) ([]int, error) {
	eps := pairwiseMax(data)
	if eps == 0 {
		// All points coincide; one cluster.
		return make([]int, len(data)), nil
	}
	c, err := clusters.OPTICS(o.minSamples, eps, opticsXi, densityWorkers, clusters.EuclideanDistance)
	if err != nil {
		return nil, fmt.Errorf("cluster: optics: %w", err)
	}
	if err := c.Learn(data); err != nil {
		return nil, fmt.Errorf("cluster: optics learn: %w", err)
	}
	return relabel(c.Guesses()), nil
}
