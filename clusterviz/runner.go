package clusterviz

import (
	"fmt"

	"yashubustudio/clusterviz/cluster"
)

// Algorithm identifies one of the supported clustering algorithms by
// its menu name.
type Algorithm string

const (
	AlgorithmKMeans          Algorithm = "K-Means"
	AlgorithmMeanShift       Algorithm = "Mean Shift"
	AlgorithmDBSCAN          Algorithm = "DBSCAN"
	AlgorithmHDBSCAN         Algorithm = "HDBSCAN"
	AlgorithmGaussianMixture Algorithm = "Gaussian Mixture Models"
	AlgorithmAgglomerative   Algorithm = "Agglomerative"
	AlgorithmAffinity        Algorithm = "Affinity Propagation"
	AlgorithmSpectral        Algorithm = "Spectral"
	AlgorithmBIRCH           Algorithm = "BIRCH"
	AlgorithmOPTICS          Algorithm = "OPTICS"
)

const (
	// densityMinSamples is the fixed minimum-samples parameter applied
	// to HDBSCAN and OPTICS. It is an internal default, not user input.
	densityMinSamples = 2
	// spectralDefaultClusters is the spectral backend's internal default
	// cluster count. Runs on fewer rows clamp the count to the row
	// count; no other algorithm does this.
	spectralDefaultClusters = 8
)

// Algorithms lists every supported algorithm in menu order.
func Algorithms() []Algorithm {
	return []Algorithm{
		AlgorithmKMeans,
		AlgorithmMeanShift,
		AlgorithmDBSCAN,
		AlgorithmHDBSCAN,
		AlgorithmGaussianMixture,
		AlgorithmAgglomerative,
		AlgorithmAffinity,
		AlgorithmSpectral,
		AlgorithmBIRCH,
		AlgorithmOPTICS,
	}
}

// NeedsClusterCount reports whether the algorithm takes a user-supplied
// cluster count. The remaining algorithms determine their own count and
// ignore any supplied value.
func (a Algorithm) NeedsClusterCount() bool {
	switch a {
	case AlgorithmKMeans, AlgorithmGaussianMixture, AlgorithmAgglomerative:
		return true
	}
	return false
}

// DisplayResult is an immutable snapshot of one clustering run, captured
// at the moment the run finished and independent of later edits.
type DisplayResult struct {
	Matrix       [][]float64
	Projection   [][]float64
	Labels       []int
	Algorithm    Algorithm
	ClusterCount int
	Dimension    int
	ClassLabels  []string
	Metric       float64
	HasMetric    bool
}

// RunClustering fits the selected algorithm on the full-dimensional
// matrix, projects the matrix to the selected display dimensionality,
// and computes the Rand index when class labels are supplied. The
// returned snapshot copies the matrix so later catalog edits cannot
// reach it.
func RunClustering(m *FeatureMatrix, algo Algorithm, k, dim int, classLabels []string) (*DisplayResult, error) {
	if m == nil || !m.Complete {
		return nil, ErrMatrixIncomplete
	}
	if m.Rows() < 2 {
		return nil, ErrInsufficientRows
	}
	fitter, err := newFitter(algo, k, m.Rows())
	if err != nil {
		return nil, err
	}

	data := copyMatrix(m.Data)
	labels, err := fitter.Fit(data)
	if err != nil {
		return nil, fmt.Errorf("fit %s: %w", algo, err)
	}
	projection, err := Project(data, dim)
	if err != nil {
		return nil, err
	}

	res := &DisplayResult{
		Matrix:     data,
		Projection: projection,
		Labels:     labels,
		Algorithm:  algo,
		Dimension:  dim,
	}
	if algo.NeedsClusterCount() {
		res.ClusterCount = k
	}
	if classLabels != nil {
		res.ClassLabels = append([]string(nil), classLabels...)
		res.Metric = RandIndex(labelIDs(classLabels), labels)
		res.HasMetric = true
	}
	return res, nil
}

func newFitter(algo Algorithm, k, rows int) (cluster.Fitter, error) {
	if algo.NeedsClusterCount() && k <= 0 {
		return nil, ErrMissingClusterCount
	}
	switch algo {
	case AlgorithmKMeans:
		return cluster.NewKMeans(k), nil
	case AlgorithmMeanShift:
		return cluster.NewMeanShift(), nil
	case AlgorithmDBSCAN:
		return cluster.NewDBSCAN(), nil
	case AlgorithmHDBSCAN:
		return cluster.NewHDBSCAN(densityMinSamples), nil
	case AlgorithmGaussianMixture:
		return cluster.NewGaussianMixture(k), nil
	case AlgorithmAgglomerative:
		return cluster.NewAgglomerative(k), nil
	case AlgorithmAffinity:
		return cluster.NewAffinityPropagation(), nil
	case AlgorithmSpectral:
		n := spectralDefaultClusters
		if rows < spectralDefaultClusters {
			n = rows
		}
		return cluster.NewSpectral(n), nil
	case AlgorithmBIRCH:
		return cluster.NewBirch(), nil
	case AlgorithmOPTICS:
		return cluster.NewOPTICS(densityMinSamples), nil
	default:
		return nil, fmt.Errorf("clusterviz: unknown algorithm %q", algo)
	}
}

func copyMatrix(data [][]float64) [][]float64 {
	out := make([][]float64, len(data))
	for i, row := range data {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
