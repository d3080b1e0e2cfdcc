package cluster

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// spectralGamma scales the RBF affinity kernel.
const spectralGamma = 1.0

// Spectral embeds the points with the bottom eigenvectors of the
// normalized graph Laplacian and k-means clusters the embedding.
type Spectral struct {
	clusters int
}

// NewSpectral returns a spectral fitter for k clusters. The caller is
// responsible for clamping k to the row count.
func NewSpectral(k int) *Spectral {
	return &Spectral{clusters: k}
}

// Fit returns one label per point.
func (sp *Spectral) Fit(data [][]float64) ([]int, error) {
	n := len(data)
	if sp.clusters <= 0 {
		return nil, fmt.Errorf("cluster: spectral needs a positive cluster count, got %d", sp.clusters)
	}
	if sp.clusters == 1 || n < 2 {
		return make([]int, n), nil
	}
	k := sp.clusters
	if k > n {
		k = n
	}

	// RBF affinity and degree.
	w := make([]float64, n*n)
	degree := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var aff float64
			if i != j {
				aff = math.Exp(-spectralGamma * squaredEuclidean(data[i], data[j]))
			}
			w[i*n+j] = aff
			degree[i] += aff
		}
	}

	// Symmetric normalized Laplacian: I - D^-1/2 W D^-1/2.
	lap := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			var v float64
			if i == j {
				v = 1
			}
			if degree[i] > 0 && degree[j] > 0 {
				v -= w[i*n+j] / math.Sqrt(degree[i]*degree[j])
			}
			lap.SetSym(i, j, v)
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(lap, true); !ok {
		return nil, fmt.Errorf("cluster: spectral eigendecomposition failed")
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// Eigenvalues come back ascending, so the first k columns span the
	// low-frequency embedding. Rows are normalized before k-means.
	embedding := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, k)
		var norm float64
		for j := 0; j < k; j++ {
			row[j] = vecs.At(i, j)
			norm += row[j] * row[j]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range row {
				row[j] /= norm
			}
		}
		embedding[i] = row
	}

	return NewKMeans(k).Fit(embedding)
}
