package memory

import (
	"cmp"
	"slices"

	"github.com/soartravel/soar/internal/sliceutils"
)

// TopN returns the n highest scored records. Records without a score rank as 0 and ties keep their input order.
// The input slice is not modified.
func TopN(records []Record, n int) []Record {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b Record) int {
		return cmp.Compare(b.ScoreOrZero(), a.ScoreOrZero())
	})
	return sliceutils.Head(sorted, n)
}
