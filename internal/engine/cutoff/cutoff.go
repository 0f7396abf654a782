// Package cutoff picks the read-count threshold for the top N taxa.
package cutoff

import "slices"

// Find returns the minimum read count among the topN largest counts, or 0
// when every count fits. Ties at the boundary are kept, so more than topN
// counts may meet the threshold. A topN below 1 is treated as 1.
func Find(counts []int64, topN int) int64 {
	topN = max(topN, 1)
	if topN >= len(counts) {
		return 0
	}
	sorted := slices.Sorted(slices.Values(counts))
	return sorted[len(sorted)-topN]
}
