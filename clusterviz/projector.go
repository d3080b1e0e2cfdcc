package clusterviz

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Project reduces the data to dim columns with a principal component
// analysis. The projection exists purely for display: cluster labels
// are always computed on the full-dimensional matrix.
func Project(data [][]float64, dim int) ([][]float64, error) {
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("clusterviz: display dimensionality must be 2 or 3, got %d", dim)
	}
	rows := len(data)
	if rows == 0 {
		return nil, fmt.Errorf("clusterviz: no data to project")
	}
	cols := len(data[0])
	if cols < dim {
		return nil, fmt.Errorf("clusterviz: %d features cannot be displayed in %d dimensions", cols, dim)
	}

	x := mat.NewDense(rows, cols, nil)
	means := make([]float64, cols)
	for _, row := range data {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= float64(rows)
	}
	for i, row := range data {
		for j, v := range row {
			x.Set(i, j, v-means[j])
		}
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(x, nil); !ok {
		return nil, fmt.Errorf("clusterviz: principal component analysis failed")
	}
	var vec mat.Dense
	pc.VectorsTo(&vec)
	_, comps := vec.Dims()
	if comps < dim {
		return nil, fmt.Errorf("clusterviz: only %d principal components available", comps)
	}

	var proj mat.Dense
	proj.Mul(x, vec.Slice(0, cols, 0, dim))
	out := make([][]float64, rows)
	for i := range out {
		out[i] = mat.Row(nil, i, &proj)
	}
	return out, nil
}
