// Package render draws clustering results as scatter plots, either as
// static images or as interactive HTML pages.
package render

import (
	"bytes"
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// noiseLabel marks points no cluster claimed.
const noiseLabel = -1

// Scatter describes one projected clustering result to draw. Points
// holds 2 or 3 coordinates per row and Labels one cluster id per row.
type Scatter struct {
	Title  string
	Points [][]float64
	Labels []int
	Width  int
	Height int
}

// Image renders the scatter to an in-memory PNG for embedding in the
// UI. Three-dimensional points are flattened with an oblique projection
// so the static image still separates the depth axis.
func (s *Scatter) Image() ([]byte, error) {
	p, err := s.build()
	if err != nil {
		return nil, err
	}
	w, err := p.WriterTo(vg.Points(float64(s.Width)), vg.Points(float64(s.Height)), "png")
	if err != nil {
		return nil, fmt.Errorf("render: encode plot: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render: encode plot: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the scatter to path. The image format follows the file
// extension; gonum/plot supports .png and .jpg among others.
func (s *Scatter) Save(path string) error {
	p, err := s.build()
	if err != nil {
		return err
	}
	if err := p.Save(vg.Points(float64(s.Width)), vg.Points(float64(s.Height)), path); err != nil {
		return fmt.Errorf("render: save plot: %w", err)
	}
	return nil
}

func (s *Scatter) build() (*plot.Plot, error) {
	if len(s.Points) == 0 {
		return nil, fmt.Errorf("render: no points to draw")
	}
	if len(s.Points) != len(s.Labels) {
		return nil, fmt.Errorf("render: %d points but %d labels", len(s.Points), len(s.Labels))
	}
	dim := len(s.Points[0])
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("render: points must be 2- or 3-dimensional, got %d", dim)
	}

	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = "component 1"
	p.Y.Label.Text = "component 2"

	for i, id := range clusterIDs(s.Labels) {
		xys := make(plotter.XYs, 0, len(s.Points))
		for row, label := range s.Labels {
			if label != id {
				continue
			}
			pt := s.Points[row]
			x, y := pt[0], pt[1]
			if dim == 3 {
				// Oblique projection keeps the depth axis visible in a
				// flat image.
				x += 0.5 * pt[2]
				y += 0.5 * pt[2]
			}
			xys = append(xys, plotter.XY{X: x, Y: y})
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("render: build series: %w", err)
		}
		sc.GlyphStyle.Color = plotutil.Color(i)
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
		p.Legend.Add(seriesName(id), sc)
	}
	p.Legend.Top = true
	return p, nil
}

// clusterIDs returns the distinct labels in ascending order, noise
// last.
func clusterIDs(labels []int) []int {
	seen := make(map[int]bool)
	var ids []int
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			ids = append(ids, l)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i] == noiseLabel {
			return false
		}
		if ids[j] == noiseLabel {
			return true
		}
		return ids[i] < ids[j]
	})
	return ids
}

func seriesName(id int) string {
	if id == noiseLabel {
		return "Noise"
	}
	return fmt.Sprintf("Cluster %d", id)
}
