package cluster

import (
	"fmt"

	"github.com/mpraski/clusters"
)

// kmeansIterations bounds the refinement loop of the library clusterer.
const kmeansIterations = 1000

// KMeans partitions the data into a fixed number of clusters by
// iteratively reassigning points to the nearest centroid.
type KMeans struct {
	clusters int
}

// NewKMeans returns a k-means fitter for k clusters.
func NewKMeans(k int) *KMeans {
	return &KMeans{clusters: k}
}

// Fit learns the partition and returns one label per data point.
func (km *KMeans) Fit(data [][]float64) ([]int, error) {
	if km.clusters <= 0 {
		return nil, fmt.Errorf("cluster: k-means needs a positive cluster count, got %d", km.clusters)
	}
	if km.clusters == 1 {
		return make([]int, len(data)), nil
	}
	c, err := clusters.KMeans(kmeansIterations, km.clusters, clusters.EuclideanDistance)
	if err != nil {
		return nil, fmt.Errorf("cluster: k-means: %w", err)
	}
	if err := c.Learn(data); err != nil {
		return nil, fmt.Errorf("cluster: k-means learn: %w", err)
	}
	return relabel(c.Guesses()), nil
}
