package cluster

import (
	"fmt"
	"math"
)

// Agglomerative merges the closest pair of clusters (average linkage)
// until the requested number of clusters remains.
type Agglomerative struct {
	clusters int
}

// NewAgglomerative returns an agglomerative fitter for k clusters.
func NewAgglomerative(k int) *Agglomerative {
	return &Agglomerative{clusters: k}
}

// Fit returns one label per point after merging down to k clusters.
func (a *Agglomerative) Fit(data [][]float64) ([]int, error) {
	n := len(data)
	if a.clusters <= 0 {
		return nil, fmt.Errorf("cluster: agglomerative needs a positive cluster count, got %d", a.clusters)
	}
	if n == 0 {
		return nil, fmt.Errorf("cluster: agglomerative needs data")
	}
	k := a.clusters
	if k > n {
		k = n
	}

	members := make([][]int, n)
	for i := range members {
		members[i] = []int{i}
	}
	dist := distanceMatrix(data)

	active := make([]bool, n)
	for i := range active {
		active[i] = true
	}
	remaining := n

	// linkage holds the average pairwise distance between clusters and
	// is updated with the Lance-Williams recurrence on each merge.
	linkage := make([][]float64, n)
	for i := range linkage {
		linkage[i] = append([]float64(nil), dist[i]...)
	}

	for remaining > k {
		bi, bj, best := -1, -1, math.Inf(1)
		for i := 0; i < n; i++ {
			if !active[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if !active[j] {
					continue
				}
				if linkage[i][j] < best {
					bi, bj, best = i, j, linkage[i][j]
				}
			}
		}
		if bi == -1 {
			break
		}
		ni := float64(len(members[bi]))
		nj := float64(len(members[bj]))
		for m := 0; m < n; m++ {
			if !active[m] || m == bi || m == bj {
				continue
			}
			merged := (ni*linkage[bi][m] + nj*linkage[bj][m]) / (ni + nj)
			linkage[bi][m] = merged
			linkage[m][bi] = merged
		}
		members[bi] = append(members[bi], members[bj]...)
		members[bj] = nil
		active[bj] = false
		remaining--
	}

	labels := make([]int, n)
	next := 0
	for i := 0; i < n; i++ {
		if !active[i] {
			continue
		}
		for _, p := range members[i] {
			labels[p] = next
		}
		next++
	}
	return labels, nil
}
