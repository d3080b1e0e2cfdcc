package clusterviz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.2, "1.2"},
		{2, "2"},
		{-3.5, "-3.5"},
		{0, "0"},
		{0.000000001, "0.000000001"},
		{1.0000000004, "1"},
		{1.5000000006, "1.500000001"},
		{-0.25, "-0.25"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFloat(tt.in), "FormatFloat(%v)", tt.in)
	}
}

func TestFormatResult(t *testing.T) {
	res := &DisplayResult{
		Matrix:       [][]float64{{1.2, 2}, {3.5, 4}},
		Labels:       []int{0, 1},
		Algorithm:    AlgorithmKMeans,
		ClusterCount: 2,
		Dimension:    2,
	}
	want := "1.2,2,0\n" +
		"3.5,4,1\n" +
		"Data clustering algorithm: K-Means\n" +
		"Number of clusters: 2\n"
	assert.Equal(t, want, FormatResult(res))
}

func TestFormatResultWithClasses(t *testing.T) {
	res := &DisplayResult{
		Matrix:      [][]float64{{1, 2}, {3, 4}},
		Labels:      []int{0, 0},
		Algorithm:   AlgorithmDBSCAN,
		Dimension:   2,
		ClassLabels: []string{"a", "b"},
		Metric:      0.5,
		HasMetric:   true,
	}
	want := "1,2,a,0\n" +
		"3,4,b,0\n" +
		"Data clustering algorithm: DBSCAN\n" +
		"Rand index: 0.50\n"
	assert.Equal(t, want, FormatResult(res))
}

// The cluster-count line appears only for algorithms that took one, even
// if a stale count is still stored.
func TestFormatResultOmitsUnusedClusterCount(t *testing.T) {
	res := &DisplayResult{
		Matrix:    [][]float64{{1, 2}, {3, 4}},
		Labels:    []int{0, 1},
		Algorithm: AlgorithmMeanShift,
		Dimension: 2,
	}
	assert.NotContains(t, FormatResult(res), "Number of clusters")
}

func TestFormatResultByteStable(t *testing.T) {
	res := &DisplayResult{
		Matrix:       [][]float64{{1.25, -2}, {3, 4.5}},
		Labels:       []int{1, 0},
		Algorithm:    AlgorithmAgglomerative,
		ClusterCount: 2,
		Dimension:    2,
		ClassLabels:  []string{"x", "y"},
		Metric:       1,
		HasMetric:    true,
	}
	first := FormatResult(res)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, FormatResult(res))
	}
}

func TestWriteResult(t *testing.T) {
	res := &DisplayResult{
		Matrix:    [][]float64{{1, 2}, {3, 4}},
		Labels:    []int{0, 1},
		Algorithm: AlgorithmBIRCH,
		Dimension: 2,
	}
	path := filepath.Join(t.TempDir(), "result.txt")
	require.NoError(t, WriteResult(path, res))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, FormatResult(res), string(data))
}
