package query

import (
	"cmp"

	"AviatorStats/internal/model"
)

// comparator orders two rounds ascending by a single field.
type comparator func(a, b model.RoundRecord) int

// comparators is keyed by field identity so each field gets the rule for its type.
var comparators = map[model.SortField]comparator{
	model.SortByRoundNumber: func(a, b model.RoundRecord) int {
		return cmp.Compare(a.RoundNumber, b.RoundNumber)
	},
	model.SortByMultiplier: func(a, b model.RoundRecord) int {
		return cmp.Compare(a.Multiplier, b.Multiplier)
	},
	model.SortByOccurredAt: func(a, b model.RoundRecord) int {
		return a.OccurredAt.Compare(b.OccurredAt)
	},
}

// comparatorFor applies the direction. Unknown fields compare equal, which
// leaves a stable sort in input order.
func comparatorFor(state model.SortState) comparator {
	c, ok := comparators[state.Field]
	if !ok {
		return func(model.RoundRecord, model.RoundRecord) int { return 0 }
	}
	if state.Direction == model.Descending {
		return func(a, b model.RoundRecord) int { return c(b, a) }
	}
	return c
}
