package render

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// SaveHTML writes the scatter as a standalone interactive HTML page.
// Two-dimensional results render as a plain scatter chart and
// three-dimensional results as a rotatable 3D scatter.
func (s *Scatter) SaveHTML(path string) error {
	if len(s.Points) == 0 {
		return fmt.Errorf("render: no points to draw")
	}
	if len(s.Points) != len(s.Labels) {
		return fmt.Errorf("render: %d points but %d labels", len(s.Points), len(s.Labels))
	}
	dim := len(s.Points[0])

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	defer file.Close()

	switch dim {
	case 2:
		err = s.renderHTML2D(file)
	case 3:
		err = s.renderHTML3D(file)
	default:
		return fmt.Errorf("render: points must be 2- or 3-dimensional, got %d", dim)
	}
	if err != nil {
		return fmt.Errorf("render: write %s: %w", path, err)
	}
	return nil
}

func (s *Scatter) renderHTML2D(file *os.File) error {
	chart := charts.NewScatter()
	chart.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: s.Title}))

	for _, id := range clusterIDs(s.Labels) {
		var series []opts.ScatterData
		for row, label := range s.Labels {
			if label != id {
				continue
			}
			pt := s.Points[row]
			series = append(series, opts.ScatterData{Value: []interface{}{pt[0], pt[1]}})
		}
		chart.AddSeries(seriesName(id), series)
	}
	return chart.Render(file)
}

func (s *Scatter) renderHTML3D(file *os.File) error {
	chart := charts.NewScatter3D()
	chart.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: s.Title}))

	for _, id := range clusterIDs(s.Labels) {
		var series []opts.Chart3DData
		for row, label := range s.Labels {
			if label != id {
				continue
			}
			pt := s.Points[row]
			series = append(series, opts.Chart3DData{Value: []interface{}{pt[0], pt[1], pt[2]}})
		}
		chart.AddSeries(seriesName(id), series)
	}
	return chart.Render(file)
}
