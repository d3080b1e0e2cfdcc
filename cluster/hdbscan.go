package cluster

import (
	"fmt"
	"math"
	"sort"
)

// HDBSCAN clusters by density hierarchy: it computes core distances,
// builds the minimum spanning tree of the mutual-reachability graph and
// cuts the tree at the largest gap in edge weights. Fragments smaller
// than the minimum cluster size become noise.
type HDBSCAN struct {
	minSamples int
}

// NewHDBSCAN returns an HDBSCAN fitter with the given minimum samples,
// also used as the minimum cluster size.
func NewHDBSCAN(minSamples int) *HDBSCAN {
	return &HDBSCAN{minSamples: minSamples}
}

type mstEdge struct {
	a, b   int
	weight float64
}

// Fit returns one label per point, with -1 for noise.
func (h *HDBSCAN) Fit(data [][]float64) ([]int, error) {
	n := len(data)
	if n == 0 {
		return nil, fmt.Errorf("cluster: hdbscan needs data")
	}
	if n <= h.minSamples {
		return make([]int, n), nil
	}
	dist := distanceMatrix(data)
	core := coreDistances(dist, h.minSamples)

	edges := minimumSpanningTree(dist, core)
	keep := cutLargestGap(edges)

	labels := components(n, keep)
	return dropSmallClusters(labels, h.minSamples), nil
}

// coreDistances returns each point's distance to its k-th nearest
// neighbour (the point itself excluded).
func coreDistances(dist [][]float64, k int) []float64 {
	n := len(dist)
	core := make([]float64, n)
	row := make([]float64, 0, n-1)
	for i := 0; i < n; i++ {
		row = row[:0]
		for j := 0; j < n; j++ {
			if i != j {
				row = append(row, dist[i][j])
			}
		}
		sort.Float64s(row)
		idx := k - 1
		if idx >= len(row) {
			idx = len(row) - 1
		}
		core[i] = row[idx]
	}
	return core
}

// minimumSpanningTree runs Prim's algorithm over mutual-reachability
// distances: max(core[a], core[b], dist[a][b]).
func minimumSpanningTree(dist [][]float64, core []float64) []mstEdge {
	n := len(dist)
	inTree := make([]bool, n)
	best := make([]float64, n)
	from := make([]int, n)
	for i := range best {
		best[i] = math.Inf(1)
	}
	inTree[0] = true
	for j := 1; j < n; j++ {
		best[j] = mutualReach(dist, core, 0, j)
		from[j] = 0
	}
	edges := make([]mstEdge, 0, n-1)
	for len(edges) < n-1 {
		next, min := -1, math.Inf(1)
		for j := 0; j < n; j++ {
			if !inTree[j] && best[j] < min {
				next, min = j, best[j]
			}
		}
		if next == -1 {
			break
		}
		inTree[next] = true
		edges = append(edges, mstEdge{a: from[next], b: next, weight: min})
		for j := 0; j < n; j++ {
			if !inTree[j] {
				if w := mutualReach(dist, core, next, j); w < best[j] {
					best[j] = w
					from[j] = next
				}
			}
		}
	}
	return edges
}

func mutualReach(dist [][]float64, core []float64, a, b int) float64 {
	w := dist[a][b]
	if core[a] > w {
		w = core[a]
	}
	if core[b] > w {
		w = core[b]
	}
	return w
}

// cutLargestGap removes the edges above the largest gap in the sorted
// weight sequence, splitting the tree into density clusters. A tree
// with no meaningful gap stays whole.
func cutLargestGap(edges []mstEdge) []mstEdge {
	if len(edges) < 2 {
		return edges
	}
	sorted := append([]mstEdge(nil), edges...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].weight < sorted[j].weight })

	cutAt := -1
	var largest float64
	for i := 0; i < len(sorted)-1; i++ {
		gap := sorted[i+1].weight - sorted[i].weight
		if gap > largest {
			largest = gap
			cutAt = i
		}
	}
	if cutAt == -1 || largest == 0 {
		return edges
	}
	threshold := sorted[cutAt].weight
	keep := make([]mstEdge, 0, len(edges))
	for _, e := range edges {
		if e.weight <= threshold {
			keep = append(keep, e)
		}
	}
	return keep
}

// components labels the connected components induced by the kept edges.
func components(n int, edges []mstEdge) []int {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	for _, e := range edges {
		parent[find(e.a)] = find(e.b)
	}
	labels := make([]int, n)
	for i := range labels {
		labels[i] = find(i)
	}
	return relabel(labels)
}

func dropSmallClusters(labels []int, minSize int) []int {
	sizes := make(map[int]int)
	for _, l := range labels {
		sizes[l]++
	}
	out := make([]int, len(labels))
	for i, l := range labels {
		if sizes[l] < minSize {
			out[i] = -1
		} else {
			out[i] = l
		}
	}
	return relabel(out)
}
