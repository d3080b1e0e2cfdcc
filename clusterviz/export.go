package clusterviz

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// FormatFloat renders v at nine decimal places with trailing fractional
// zeros removed and a bare trailing point removed, so 3.500000000
// becomes 3.5 and 4.000000000 becomes 4.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 9, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// FormatResult serializes a clustering snapshot to canonical delimited
// text: one comma-separated line per data point with the true class
// label (when present) and the cluster label appended, followed by the
// algorithm name, the cluster count (only when the algorithm took one)
// and the Rand index (only when class labels were present). The output
// is byte-stable for identical input.
func FormatResult(res *DisplayResult) string {
	var b strings.Builder
	for i, row := range res.Matrix {
		for j, v := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(FormatFloat(v))
		}
		if res.ClassLabels != nil {
			b.WriteByte(',')
			b.WriteString(res.ClassLabels[i])
		}
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(res.Labels[i]))
		b.WriteByte('\n')
	}
	b.WriteString("Data clustering algorithm: ")
	b.WriteString(string(res.Algorithm))
	b.WriteByte('\n')
	if res.Algorithm.NeedsClusterCount() && res.ClusterCount > 0 {
		fmt.Fprintf(&b, "Number of clusters: %d\n", res.ClusterCount)
	}
	if res.HasMetric {
		fmt.Fprintf(&b, "Rand index: %.2f\n", res.Metric)
	}
	return b.String()
}

// WriteResult writes the canonical text form of a snapshot to a .txt or
// .csv file.
func WriteResult(path string, res *DisplayResult) error {
	if err := os.WriteFile(path, []byte(FormatResult(res)), 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
