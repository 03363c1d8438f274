package census

import (
	"sort"
	"time"
)

// ProgressFunc receives counting-pass progress after each directory.
// done is 1-based and strictly increasing; the final call has done == total.
type ProgressFunc func(done, total int)

// Result holds the totals for one scan. Created fresh per Scan call and
// not mutated after it returns.
type Result struct {
	// Files is the total number of non-directory entries seen.
	Files int64 `json:"files"`
	// Folders is the total number of directory entries seen.
	Folders int64 `json:"folders"`
	// Categories maps category labels to file counts. The sum of all
	// values equals Files.
	Categories map[string]int64 `json:"categories"`
	// Dirs is the number of directories the counting pass visited,
	// including the root.
	Dirs int64 `json:"dirs_scanned"`
	// SkippedDirs is the number of directories whose listing failed and
	// whose contents are therefore undercounted.
	SkippedDirs int64 `json:"dirs_skipped"`
	// Elapsed is the total time taken for the scan.
	Elapsed time.Duration `json:"elapsed"`
}

// CategoriesByCount returns the category labels present in the result,
// ordered by descending count with ties broken alphabetically.
func (r *Result) CategoriesByCount() []string {
	labels := make([]string, 0, len(r.Categories))
	for label := range r.Categories {
		labels = append(labels, label)
	}

	sort.Slice(labels, func(i, j int) bool {
		if r.Categories[labels[i]] != r.Categories[labels[j]] {
			return r.Categories[labels[i]] > r.Categories[labels[j]]
		}

		return labels[i] < labels[j]
	})

	return labels
}
