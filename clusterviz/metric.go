package clusterviz

// RandIndex measures the agreement between two label assignments as the
// fraction of point pairs on which the assignments agree (both place
// the pair together or both apart). The score lies in [0, 1].
func RandIndex(a, b []int) float64 {
	n := len(a)
	if n < 2 {
		return 1
	}
	agree, total := 0, 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sameA := a[i] == a[j]
			sameB := b[i] == b[j]
			if sameA == sameB {
				agree++
			}
			total++
		}
	}
	return float64(agree) / float64(total)
}

// labelIDs converts arbitrary string labels into integer ids in
// first-seen order so they can be compared with cluster labels.
func labelIDs(labels []string) []int {
	ids := make([]int, len(labels))
	seen := make(map[string]int)
	for i, l := range labels {
		id, ok := seen[l]
		if !ok {
			id = len(seen)
			seen[l] = id
		}
		ids[i] = id
	}
	return ids
}
