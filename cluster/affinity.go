package cluster

import (
	"fmt"
	"sort"
)

const (
	affinityDamping    = 0.5
	affinityIterations = 200
)

// AffinityPropagation exchanges responsibility and availability
// messages between points until a set of exemplars emerges; the cluster
// count is determined by the data.
type AffinityPropagation struct{}

// NewAffinityPropagation returns an affinity-propagation fitter with
// median preference and default damping.
func NewAffinityPropagation() *AffinityPropagation {
	return &AffinityPropagation{}
}

// Fit returns one label per point, grouping points by their exemplar.
func (ap *AffinityPropagation) Fit(data [][]float64) ([]int, error) {
	n := len(data)
	if n == 0 {
		return nil, fmt.Errorf("cluster: affinity propagation needs data")
	}
	if n == 1 {
		return []int{0}, nil
	}

	// Similarity is negative squared distance; the self-similarity
	// (preference) is the median of the off-diagonal similarities.
	s := make([][]float64, n)
	var offDiag []float64
	for i := range s {
		s[i] = make([]float64, n)
		for j := range s[i] {
			if i == j {
				continue
			}
			s[i][j] = -squaredEuclidean(data[i], data[j])
			offDiag = append(offDiag, s[i][j])
		}
	}
	sort.Float64s(offDiag)
	pref := offDiag[len(offDiag)/2]
	for i := range s {
		s[i][i] = pref
	}

	r := newMatrix(n)
	a := newMatrix(n)
	for iter := 0; iter < affinityIterations; iter++ {
		// Responsibilities.
		for i := 0; i < n; i++ {
			max1, max2 := negInf, negInf
			argmax := -1
			for kk := 0; kk < n; kk++ {
				v := a[i][kk] + s[i][kk]
				if v > max1 {
					max2 = max1
					max1 = v
					argmax = kk
				} else if v > max2 {
					max2 = v
				}
			}
			for kk := 0; kk < n; kk++ {
				competitor := max1
				if kk == argmax {
					competitor = max2
				}
				r[i][kk] = affinityDamping*r[i][kk] + (1-affinityDamping)*(s[i][kk]-competitor)
			}
		}
		// Availabilities.
		for kk := 0; kk < n; kk++ {
			var total float64
			for i := 0; i < n; i++ {
				if i != kk && r[i][kk] > 0 {
					total += r[i][kk]
				}
			}
			for i := 0; i < n; i++ {
				var v float64
				if i == kk {
					v = total
				} else {
					v = r[kk][kk] + total
					if r[i][kk] > 0 {
						v -= r[i][kk]
					}
					if v > 0 {
						v = 0
					}
				}
				a[i][kk] = affinityDamping*a[i][kk] + (1-affinityDamping)*v
			}
		}
	}

	// Exemplars are points whose combined self message is positive.
	var exemplars []int
	for kk := 0; kk < n; kk++ {
		if r[kk][kk]+a[kk][kk] > 0 {
			exemplars = append(exemplars, kk)
		}
	}
	if len(exemplars) == 0 {
		return make([]int, n), nil
	}

	labels := make([]int, n)
	for i := 0; i < n; i++ {
		best, bestSim := 0, negInf
		for c, e := range exemplars {
			if i == e {
				best = c
				break
			}
			if s[i][e] > bestSim {
				best, bestSim = c, s[i][e]
			}
		}
		labels[i] = best
	}
	return relabel(labels), nil
}

const negInf = -1e308

func newMatrix(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}
