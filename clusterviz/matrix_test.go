package clusterviz

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMatrixZeroFill(t *testing.T) {
	table := loadTestTable(t, "1,red,3\n4,5,6\n")
	catalog := BuildCatalog(table, false)

	m, err := BuildMatrix(table, false, catalog, PolicyZeroFill)
	require.NoError(t, err)
	assert.True(t, m.Complete)
	assert.Equal(t, [][]float64{{1, 0, 3}, {4, 5, 6}}, m.Data)
}

func TestBuildMatrixManualMap(t *testing.T) {
	table := loadTestTable(t, "1,red,3\n4,5,6\n7,red,9\n")
	catalog := BuildCatalog(table, false)

	m, err := BuildMatrix(table, false, catalog, PolicyManualMap)
	require.NoError(t, err)
	assert.False(t, m.Complete)
	assert.True(t, math.IsNaN(m.Data[0][1]))
	assert.True(t, math.IsNaN(m.Data[2][1]))

	require.NoError(t, catalog.Assign(1, "red", "2.5"))
	m, err = BuildMatrix(table, false, catalog, PolicyManualMap)
	require.NoError(t, err)
	assert.True(t, m.Complete)
	assert.Equal(t, 2.5, m.Data[0][1])
	assert.Equal(t, 2.5, m.Data[2][1])
}

func TestBuildMatrixExcludeRows(t *testing.T) {
	table := loadTestTable(t, "1,red,3\n4,5,6\n7,8,x\n")
	catalog := BuildCatalog(table, false)

	m, err := BuildMatrix(table, false, catalog, PolicyExcludeRows)
	require.NoError(t, err)
	assert.True(t, m.Complete)
	assert.Equal(t, [][]float64{{4, 5, 6}}, m.Data)
}

func TestBuildMatrixExcludeColumns(t *testing.T) {
	table := loadTestTable(t, "1,red,3\n4,5,x\n")
	catalog := BuildCatalog(table, false)

	m, err := BuildMatrix(table, false, catalog, PolicyExcludeColumns)
	require.NoError(t, err)
	assert.True(t, m.Complete)
	assert.Equal(t, [][]float64{{1}, {4}}, m.Data)
}

func TestBuildMatrixExcludesClassColumn(t *testing.T) {
	table := loadTestTable(t, "1,2,a\n3,4,b\n")
	catalog := BuildCatalog(table, true)

	m, err := BuildMatrix(table, true, catalog, PolicyZeroFill)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, m.Data)
}

func TestBuildMatrixNoPolicy(t *testing.T) {
	table := loadTestTable(t, "1,red\n2,3\n")
	catalog := BuildCatalog(table, false)

	_, err := BuildMatrix(table, false, catalog, PolicyNone)
	assert.Error(t, err)
}

// Switching policies must not leak state: rebuilding under an earlier
// policy reproduces the earlier matrix bit for bit.
func TestBuildMatrixPolicySwitchIsPure(t *testing.T) {
	table := loadTestTable(t, "1,red,3\n4,5,6\n7,red,9\n")
	catalog := BuildCatalog(table, false)
	require.NoError(t, catalog.Assign(1, "red", "42"))

	first, err := BuildMatrix(table, false, catalog, PolicyManualMap)
	require.NoError(t, err)

	_, err = BuildMatrix(table, false, catalog, PolicyExcludeRows)
	require.NoError(t, err)
	_, err = BuildMatrix(table, false, catalog, PolicyZeroFill)
	require.NoError(t, err)

	again, err := BuildMatrix(table, false, catalog, PolicyManualMap)
	require.NoError(t, err)
	assert.Equal(t, first.Data, again.Data)
	assert.Equal(t, first.Complete, again.Complete)
}

func TestFeatureMatrixCellUpdates(t *testing.T) {
	m := &FeatureMatrix{Data: [][]float64{{1, math.NaN()}, {3, 4}}}
	m.recheck()
	require.False(t, m.Complete)

	m.SetCell(0, 1, 9)
	assert.True(t, m.Complete)

	m.ClearCell(0, 1)
	assert.False(t, m.Complete)
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "Assign all non-numeric values to 0", PolicyZeroFill.String())
	assert.Equal(t, "Assign each non-numeric value to a number", PolicyManualMap.String())
	assert.Equal(t, "Exclude data points with non-numeric values", PolicyExcludeRows.String())
	assert.Equal(t, "Exclude features with non-numeric values", PolicyExcludeColumns.String())
	assert.Equal(t, "", PolicyNone.String())
}
