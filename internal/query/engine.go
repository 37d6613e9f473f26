package query

import (
	"slices"
	"strings"

	"AviatorStats/internal/model"
)

// Filter keeps the records whose round number or multiplier text contains
// term. An empty term keeps everything. The result never aliases records.
func Filter(records []model.RoundRecord, term string) []model.RoundRecord {
	out := make([]model.RoundRecord, 0, len(records))
	for _, r := range records {
		if term == "" ||
			strings.Contains(r.RoundNumberText(), term) ||
			strings.Contains(r.MultiplierText(), term) {
			out = append(out, r)
		}
	}
	return out
}

// Sort returns a stably sorted copy of records.
func Sort(records []model.RoundRecord, state model.SortState) []model.RoundRecord {
	out := slices.Clone(records)
	if out == nil {
		out = []model.RoundRecord{}
	}
	slices.SortStableFunc(out, comparatorFor(state))
	return out
}

// Run filters then sorts. It is what the history view calls on every change
// of search term or sort state.
func Run(records []model.RoundRecord, term string, state model.SortState) []model.RoundRecord {
	filtered := Filter(records, term)
	slices.SortStableFunc(filtered, comparatorFor(state))
	return filtered
}
