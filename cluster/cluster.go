// Package cluster provides the clustering backends behind the
// visualizer. Every algorithm satisfies Fitter and returns one label
// per input row, numbered from zero in first-seen order, with -1
// reserved for noise points.
package cluster

import "math"

// Fitter assigns cluster labels to a numeric data set.
type Fitter interface {
	Fit(data [][]float64) ([]int, error)
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func squaredEuclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// relabel renumbers labels to contiguous ids starting at zero in
// first-seen order. Noise labels (-1) are preserved.
func relabel(labels []int) []int {
	out := make([]int, len(labels))
	next := 0
	seen := make(map[int]int)
	for i, l := range labels {
		if l == -1 {
			out[i] = -1
			continue
		}
		id, ok := seen[l]
		if !ok {
			id = next
			seen[l] = id
			next++
		}
		out[i] = id
	}
	return out
}

// pairwiseMax returns the largest pairwise distance in the data set,
// used as a finite stand-in for an unbounded neighbourhood radius.
func pairwiseMax(data [][]float64) float64 {
	var max float64
	for i := range data {
		for j := i + 1; j < len(data); j++ {
			if d := euclidean(data[i], data[j]); d > max {
				max = d
			}
		}
	}
	return max
}

// distanceMatrix precomputes all pairwise distances.
func distanceMatrix(data [][]float64) [][]float64 {
	n := len(data)
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := euclidean(data[i], data[j])
			d[i][j] = v
			d[j][i] = v
		}
	}
	return d
}
