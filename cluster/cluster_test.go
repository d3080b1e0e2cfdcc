package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoGroups returns six points forming two tight, well-separated
// clusters: rows 0-2 and rows 3-5.
func twoGroups() [][]float64 {
	return [][]float64{
		{0, 0}, {0.1, 0}, {0, 0.1},
		{10, 10}, {10.1, 10}, {10, 10.1},
	}
}

// assertTwoGroups checks that the first three points share one label,
// the last three another, and the two differ.
func assertTwoGroups(t *testing.T, labels []int) {
	t.Helper()
	require.Len(t, labels, 6)
	assert.Equal(t, labels[0], labels[1])
	assert.Equal(t, labels[0], labels[2])
	assert.Equal(t, labels[3], labels[4])
	assert.Equal(t, labels[3], labels[5])
	assert.NotEqual(t, labels[0], labels[3])
}

func TestRelabel(t *testing.T) {
	assert.Equal(t, []int{0, 0, 1, 2, 1}, relabel([]int{7, 7, 3, 9, 3}))
	assert.Equal(t, []int{0, -1, 1}, relabel([]int{5, -1, 2}), "noise labels survive renumbering")
	assert.Empty(t, relabel(nil))
}

func TestEuclidean(t *testing.T) {
	assert.Equal(t, 5.0, euclidean([]float64{0, 0}, []float64{3, 4}))
	assert.Equal(t, 25.0, squaredEuclidean([]float64{0, 0}, []float64{3, 4}))
}

func TestPairwiseMax(t *testing.T) {
	assert.Equal(t, 5.0, pairwiseMax([][]float64{{0, 0}, {3, 4}, {1, 1}}))
	assert.Equal(t, 0.0, pairwiseMax([][]float64{{2, 2}, {2, 2}}))
}

func TestKMeansSingleCluster(t *testing.T) {
	labels, err := NewKMeans(1).Fit(twoGroups())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0}, labels)
}

func TestKMeansRejectsZeroClusters(t *testing.T) {
	_, err := NewKMeans(0).Fit(twoGroups())
	assert.Error(t, err)
}

func TestKMeansLabelsAreContiguous(t *testing.T) {
	labels, err := NewKMeans(2).Fit(twoGroups())
	require.NoError(t, err)
	require.Len(t, labels, 6)
	for _, l := range labels {
		assert.Contains(t, []int{0, 1}, l)
	}
}

func TestMeanShift(t *testing.T) {
	labels, err := NewMeanShift().Fit(twoGroups())
	require.NoError(t, err)
	assertTwoGroups(t, labels)
}

func TestMeanShiftCoincidentPoints(t *testing.T) {
	labels, err := NewMeanShift().Fit([][]float64{{1, 1}, {1, 1}, {1, 1}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, labels)
}

func TestHDBSCAN(t *testing.T) {
	labels, err := NewHDBSCAN(2).Fit(twoGroups())
	require.NoError(t, err)
	assertTwoGroups(t, labels)
}

func TestHDBSCANTinyInput(t *testing.T) {
	labels, err := NewHDBSCAN(2).Fit([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, labels)
}

func TestGaussianMixture(t *testing.T) {
	labels, err := NewGaussianMixture(2).Fit(twoGroups())
	require.NoError(t, err)
	assertTwoGroups(t, labels)
}

func TestGaussianMixtureSingleComponent(t *testing.T) {
	labels, err := NewGaussianMixture(1).Fit(twoGroups())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0}, labels)
}

func TestAgglomerative(t *testing.T) {
	labels, err := NewAgglomerative(2).Fit(twoGroups())
	require.NoError(t, err)
	assertTwoGroups(t, labels)
}

func TestAgglomerativeOneClusterPerPoint(t *testing.T) {
	data := [][]float64{{0, 0}, {1, 1}, {2, 2}}
	labels, err := NewAgglomerative(3).Fit(data)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, labels)
}

func TestAgglomerativeClampsToRows(t *testing.T) {
	labels, err := NewAgglomerative(10).Fit([][]float64{{0, 0}, {1, 1}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, labels)
}

func TestAffinityPropagation(t *testing.T) {
	labels, err := NewAffinityPropagation().Fit(twoGroups())
	require.NoError(t, err)
	require.Len(t, labels, 6)
	assert.Equal(t, labels[0], labels[1])
	assert.Equal(t, labels[0], labels[2])
	assert.Equal(t, labels[3], labels[4])
	assert.Equal(t, labels[3], labels[5])
}

func TestAffinityPropagationSinglePoint(t *testing.T) {
	labels, err := NewAffinityPropagation().Fit([][]float64{{1, 2}})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, labels)
}

func TestSpectral(t *testing.T) {
	labels, err := NewSpectral(2).Fit(twoGroups())
	require.NoError(t, err)
	require.Len(t, labels, 6)
	for _, l := range labels {
		assert.Contains(t, []int{0, 1}, l)
	}
}

func TestSpectralClampsToRows(t *testing.T) {
	labels, err := NewSpectral(10).Fit(twoGroups())
	require.NoError(t, err)
	require.Len(t, labels, 6)
	for _, l := range labels {
		assert.GreaterOrEqual(t, l, 0)
		assert.Less(t, l, 6, "no label may exceed the row count")
	}
}

func TestSpectralSingleCluster(t *testing.T) {
	labels, err := NewSpectral(1).Fit(twoGroups())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0}, labels)
}

func TestBirch(t *testing.T) {
	labels, err := NewBirch().Fit(twoGroups())
	require.NoError(t, err)
	assertTwoGroups(t, labels)
}

func TestBirchFewPoints(t *testing.T) {
	labels, err := NewBirch().Fit([][]float64{{0, 0}, {10, 10}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, labels)
}

func TestOPTICSCoincidentPoints(t *testing.T) {
	labels, err := NewOPTICS(2).Fit([][]float64{{1, 1}, {1, 1}, {1, 1}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, labels)
}

func TestDBSCANLabelCount(t *testing.T) {
	data := make([][]float64, 0, 12)
	for i := 0; i < 6; i++ {
		data = append(data, []float64{float64(i) * 0.01, 0})
	}
	for i := 0; i < 6; i++ {
		data = append(data, []float64{100 + float64(i)*0.01, 0})
	}
	labels, err := NewDBSCAN().Fit(data)
	require.NoError(t, err)
	assert.Len(t, labels, 12)
}
