package cluster

import (
	"fmt"
	"math"
	"sort"
)

const (
	// bandwidthQuantile is the neighbour quantile the bandwidth
	// estimate averages over.
	bandwidthQuantile = 0.3
	meanShiftMaxIter  = 300
)

// MeanShift shifts every point to the mean of its bandwidth
// neighbourhood until convergence and merges the resulting modes; the
// cluster count emerges from the data.
type MeanShift struct{}

// NewMeanShift returns a flat-kernel mean-shift fitter with an
// estimated bandwidth.
func NewMeanShift() *MeanShift {
	return &MeanShift{}
}

// Fit returns one label per point, grouped by the mode each point
// converges to.
func (ms *MeanShift) Fit(data [][]float64) ([]int, error) {
	n := len(data)
	if n == 0 {
		return nil, fmt.Errorf("cluster: mean shift needs data")
	}
	bandwidth := estimateBandwidth(data)
	if bandwidth == 0 {
		return make([]int, n), nil
	}
	tol := bandwidth * 1e-3

	modes := make([][]float64, n)
	for i, p := range data {
		modes[i] = shiftToMode(p, data, bandwidth, tol)
	}

	// Merge modes that lie within one bandwidth of an earlier mode.
	var centers [][]float64
	labels := make([]int, n)
	for i, m := range modes {
		assigned := -1
		for c, center := range centers {
			if euclidean(m, center) <= bandwidth {
				assigned = c
				break
			}
		}
		if assigned == -1 {
			centers = append(centers, m)
			assigned = len(centers) - 1
		}
		labels[i] = assigned
	}
	return relabel(labels), nil
}

func shiftToMode(p []float64, data [][]float64, bandwidth, tol float64) []float64 {
	cur := append([]float64(nil), p...)
	next := make([]float64, len(p))
	for iter := 0; iter < meanShiftMaxIter; iter++ {
		for j := range next {
			next[j] = 0
		}
		count := 0
		for _, q := range data {
			if euclidean(cur, q) <= bandwidth {
				for j, v := range q {
					next[j] += v
				}
				count++
			}
		}
		if count == 0 {
			break
		}
		for j := range next {
			next[j] /= float64(count)
		}
		moved := euclidean(cur, next)
		copy(cur, next)
		if moved < tol {
			break
		}
	}
	return cur
}

// estimateBandwidth averages each point's distance to its neighbour at
// the bandwidth quantile.
func estimateBandwidth(data [][]float64) float64 {
	n := len(data)
	if n < 2 {
		return 0
	}
	k := int(bandwidthQuantile * float64(n))
	if k < 1 {
		k = 1
	}
	var total float64
	dists := make([]float64, 0, n-1)
	for i := range data {
		dists = dists[:0]
		for j := range data {
			if i != j {
				dists = append(dists, euclidean(data[i], data[j]))
			}
		}
		sort.Float64s(dists)
		idx := k - 1
		if idx >= len(dists) {
			idx = len(dists) - 1
		}
		total += dists[idx]
	}
	b := total / float64(n)
	if math.IsNaN(b) {
		return 0
	}
	return b
}
