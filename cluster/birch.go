package cluster

import "fmt"

const (
	birchThreshold      = 0.5
	birchGlobalClusters = 3
)

// Birch makes one pass over the data, absorbing each point into the
// nearest subcluster whose running mean stays within the threshold and
// opening a new subcluster otherwise. The subcluster centroids are then
// merged down to the global cluster count.
type Birch struct{}

// NewBirch returns a BIRCH fitter with the default threshold and global
// cluster count.
func NewBirch() *Birch {
	return &Birch{}
}

type subcluster struct {
	sum   []float64
	count int
}

func (s *subcluster) centroid() []float64 {
	c := make([]float64, len(s.sum))
	for j, v := range s.sum {
		c[j] = v / float64(s.count)
	}
	return c
}

func (s *subcluster) absorb(point []float64) {
	for j, v := range point {
		s.sum[j] += v
	}
	s.count++
}

// Fit returns one label per point.
func (b *Birch) Fit(data [][]float64) ([]int, error) {
	n := len(data)
	if n == 0 {
		return nil, fmt.Errorf("cluster: birch needs data")
	}

	var subs []*subcluster
	assigned := make([]int, n)
	for i, point := range data {
		best, bestDist := -1, birchThreshold
		for si, s := range subs {
			if d := euclidean(point, s.centroid()); d <= bestDist {
				best, bestDist = si, d
			}
		}
		if best == -1 {
			subs = append(subs, &subcluster{sum: append([]float64(nil), point...), count: 1})
			assigned[i] = len(subs) - 1
			continue
		}
		subs[best].absorb(point)
		assigned[i] = best
	}

	k := birchGlobalClusters
	if k > len(subs) {
		k = len(subs)
	}
	if k == len(subs) {
		return relabel(assigned), nil
	}

	centroids := make([][]float64, len(subs))
	for si, s := range subs {
		centroids[si] = s.centroid()
	}
	merged, err := NewAgglomerative(k).Fit(centroids)
	if err != nil {
		return nil, fmt.Errorf("cluster: birch global step: %w", err)
	}

	labels := make([]int, n)
	for i, si := range assigned {
		labels[i] = merged[si]
	}
	return relabel(labels), nil
}
