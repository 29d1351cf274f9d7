package stats

import (
	"sort"

	"github.com/firstlight-app/firstlight/internal/model"
)

// Filter returns the display subset of entries for the game log:
// situation and period must match exactly unless the filter value is
// model.FilterAll. The result is ordered by date descending; entries
// sharing a date keep their stored order (the sort is stable and dates
// are the only key). The source slice is never mutated.
func Filter(entries []model.GameEntry, situation, period string) []model.GameEntry {
	out := make([]model.GameEntry, 0, len(entries))
	for _, e := range entries {
		if situation != model.FilterAll && e.Situation != situation {
			continue
		}
		if period != model.FilterAll && e.Period != period {
			continue
		}
		out = append(out, e)
	}
	// ISO-8601 dates order lexicographically.
	sort.SliceStable(out, func(i, j int) bool {
		return model.DateOnly(out[i].Date) > model.DateOnly(out[j].Date)
	})
	return out
}
