package clusterviz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func loadTestTable(t *testing.T, content string) *Table {
	t.Helper()
	table, err := LoadTable(writeTempTable(t, content))
	require.NoError(t, err)
	return table
}

func TestLoadTable(t *testing.T) {
	table := loadTestTable(t, "1,2.5,red\n-3,+4,blue\n")

	require.Equal(t, 2, table.Rows())
	require.Equal(t, 3, table.Cols())

	assert.True(t, table.Cells[0][0].Numeric)
	assert.Equal(t, 1.0, table.Cells[0][0].Value)
	assert.True(t, table.Cells[0][1].Numeric)
	assert.Equal(t, 2.5, table.Cells[0][1].Value)
	assert.False(t, table.Cells[0][2].Numeric)
	assert.Equal(t, "red", table.Cells[0][2].Raw)

	assert.Equal(t, -3.0, table.Cells[1][0].Value)
	assert.Equal(t, 4.0, table.Cells[1][1].Value)
}

func TestLoadTableNormalizesCells(t *testing.T) {
	table := loadTestTable(t, "\ufeff１,  2 \n3,4\n")

	assert.True(t, table.Cells[0][0].Numeric, "full-width digit should normalize to a numeral")
	assert.Equal(t, 1.0, table.Cells[0][0].Value)
	assert.Equal(t, 2.0, table.Cells[0][1].Value)
}

func TestLoadTableErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"empty file", "", ErrEmptyFile},
		{"blank cells only", ",\n,\n", ErrEmptyFile},
		{"single row", "1,2\n", ErrInsufficientRows},
		{"single column", "1\n2\n", ErrInsufficientColumns},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTable(writeTempTable(t, tt.content))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadTableRaggedRows(t *testing.T) {
	_, err := LoadTable(writeTempTable(t, "1,2,3\n\"4\",\"5\"\n"))
	assert.ErrorIs(t, err, ErrMalformedRow)
}

func TestSplit(t *testing.T) {
	table := loadTestTable(t, "1,2,a\n3,4,b\n5,6,a\n")

	features, labels, err := table.Split(true)
	require.NoError(t, err)
	assert.Equal(t, 2, features.Cols())
	assert.Equal(t, []string{"a", "b", "a"}, labels)
	assert.Equal(t, 2, ClassCount(labels))
}

func TestSplitWithoutClass(t *testing.T) {
	table := loadTestTable(t, "1,2\n3,4\n")

	features, labels, err := table.Split(false)
	require.NoError(t, err)
	assert.Same(t, table, features)
	assert.Nil(t, labels)
}

func TestSplitTooNarrow(t *testing.T) {
	table := loadTestTable(t, "1,a\n2,b\n")

	_, _, err := table.Split(true)
	assert.ErrorIs(t, err, ErrMissingClassColumnFeatures)
}

func TestSplitCanonicalizesNumericLabels(t *testing.T) {
	table := loadTestTable(t, "1,2,1.50\n3,4,1.5\n5,6,2.0\n")

	_, labels, err := table.Split(true)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.5", "1.5", "2"}, labels)
	assert.Equal(t, 2, ClassCount(labels))
}

func TestIsNumericText(t *testing.T) {
	numeric := []string{"0", "42", "-3", "+7", "3.14", "-0.5", ".5", "5.", "+.5"}
	for _, s := range numeric {
		assert.True(t, IsNumericText(s), "%q should be numeric", s)
	}
	nonNumeric := []string{"", "-", "+", "+.", ".", "1.2.3", "1e5", "abc", "1 2", "--1"}
	for _, s := range nonNumeric {
		assert.False(t, IsNumericText(s), "%q should not be numeric", s)
	}
}
