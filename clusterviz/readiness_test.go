package clusterviz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func readyState() ReadinessState {
	return ReadinessState{
		FileLoaded:          true,
		AlgorithmSelected:   true,
		ClusterCountEntered: true,
		DimensionSelected:   true,
	}
}

func TestReady(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ReadinessState)
		want   bool
	}{
		{"all conditions met", func(*ReadinessState) {}, true},
		{"no file", func(r *ReadinessState) { r.FileLoaded = false }, false},
		{"load failed", func(r *ReadinessState) { r.LoadFailed = true }, false},
		{"no algorithm", func(r *ReadinessState) { r.AlgorithmSelected = false }, false},
		{"no dimension", func(r *ReadinessState) { r.DimensionSelected = false }, false},
		{"no cluster count", func(r *ReadinessState) { r.ClusterCountEntered = false }, false},
		{"cluster count not needed", func(r *ReadinessState) {
			r.ClusterCountEntered = false
			r.ClusterCountNotNeeded = true
		}, true},
		{"unmapped non-numeric", func(r *ReadinessState) { r.HasNonNumeric = true }, false},
		{"mapped non-numeric", func(r *ReadinessState) {
			r.HasNonNumeric = true
			r.MappingComplete = true
		}, true},
		{"policy moots non-numeric", func(r *ReadinessState) {
			r.HasNonNumeric = true
			r.PolicyMootsNonNumeric = true
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := readyState()
			tt.mutate(&r)
			assert.Equal(t, tt.want, r.Ready())
		})
	}
}

// Ready is a pure predicate: the same state answers the same way no
// matter how many times or in what order it is asked.
func TestReadyIsPure(t *testing.T) {
	r := readyState()
	first := r.Ready()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, r.Ready())
	}
}

func TestValidClusterCount(t *testing.T) {
	assert.True(t, ValidClusterCount("1", 10))
	assert.True(t, ValidClusterCount("10", 10))
	assert.False(t, ValidClusterCount("11", 10), "count may not exceed the original row count")
	assert.False(t, ValidClusterCount("0", 10))
	assert.False(t, ValidClusterCount("-2", 10))
	assert.False(t, ValidClusterCount("", 10))
	assert.False(t, ValidClusterCount("2.5", 10))
	assert.False(t, ValidClusterCount("three", 10))
}
