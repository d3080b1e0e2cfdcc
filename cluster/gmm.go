package cluster

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	gmmMaxIter  = 100
	gmmTol      = 1e-3
	gmmVarFloor = 1e-6
)

// GaussianMixture fits a mixture of diagonal-covariance Gaussians with
// expectation-maximization and labels each point by its most probable
// component.
type GaussianMixture struct {
	components int
}

// NewGaussianMixture returns a mixture fitter with k components.
func NewGaussianMixture(k int) *GaussianMixture {
	return &GaussianMixture{components: k}
}

// Fit runs EM and returns the most probable component per point.
func (g *GaussianMixture) Fit(data [][]float64) ([]int, error) {
	n := len(data)
	if g.components <= 0 {
		return nil, fmt.Errorf("cluster: gaussian mixture needs a positive component count, got %d", g.components)
	}
	if n == 0 {
		return nil, fmt.Errorf("cluster: gaussian mixture needs data")
	}
	k := g.components
	if k > n {
		k = n
	}
	if k == 1 {
		return make([]int, n), nil
	}
	dims := len(data[0])

	// Deterministic init: evenly spaced points as means, pooled column
	// variance, uniform weights.
	means := make([][]float64, k)
	for c := 0; c < k; c++ {
		means[c] = append([]float64(nil), data[c*n/k]...)
	}
	vars := make([][]float64, k)
	pooled := columnVariances(data)
	for c := range vars {
		vars[c] = append([]float64(nil), pooled...)
	}
	weights := make([]float64, k)
	for c := range weights {
		weights[c] = 1 / float64(k)
	}

	resp := make([][]float64, n)
	for i := range resp {
		resp[i] = make([]float64, k)
	}
	logProb := make([]float64, k)
	prevLL := math.Inf(-1)

	for iter := 0; iter < gmmMaxIter; iter++ {
		// E step in log space.
		var ll float64
		for i, x := range data {
			for c := 0; c < k; c++ {
				logProb[c] = math.Log(weights[c]) + logGaussian(x, means[c], vars[c])
			}
			norm := floats.LogSumExp(logProb)
			ll += norm
			for c := 0; c < k; c++ {
				resp[i][c] = math.Exp(logProb[c] - norm)
			}
		}

		// M step.
		for c := 0; c < k; c++ {
			var total float64
			for i := 0; i < n; i++ {
				total += resp[i][c]
			}
			if total == 0 {
				continue
			}
			weights[c] = total / float64(n)
			for j := 0; j < dims; j++ {
				var mu float64
				for i := 0; i < n; i++ {
					mu += resp[i][c] * data[i][j]
				}
				mu /= total
				var v float64
				for i := 0; i < n; i++ {
					d := data[i][j] - mu
					v += resp[i][c] * d * d
				}
				v /= total
				if v < gmmVarFloor {
					v = gmmVarFloor
				}
				means[c][j] = mu
				vars[c][j] = v
			}
		}

		if math.Abs(ll-prevLL) < gmmTol {
			break
		}
		prevLL = ll
	}

	labels := make([]int, n)
	for i := range data {
		best, bestVal := 0, resp[i][0]
		for c := 1; c < k; c++ {
			if resp[i][c] > bestVal {
				best, bestVal = c, resp[i][c]
			}
		}
		labels[i] = best
	}
	return relabel(labels), nil
}

func logGaussian(x, mean, variance []float64) float64 {
	var sum float64
	for j := range x {
		d := x[j] - mean[j]
		sum += -0.5*math.Log(2*math.Pi*variance[j]) - d*d/(2*variance[j])
	}
	return sum
}

func columnVariances(data [][]float64) []float64 {
	n := len(data)
	dims := len(data[0])
	means := make([]float64, dims)
	for _, row := range data {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= float64(n)
	}
	vars := make([]float64, dims)
	for _, row := range data {
		for j, v := range row {
			d := v - means[j]
			vars[j] += d * d
		}
	}
	for j := range vars {
		vars[j] /= float64(n)
		if vars[j] < gmmVarFloor {
			vars[j] = gmmVarFloor
		}
	}
	return vars
}
