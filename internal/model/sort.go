package model

import "fmt"

// SortField names a sortable RoundRecord column.
type SortField string

const (
	SortByRoundNumber SortField = "roundNumber"
	SortByMultiplier  SortField = "multiplier"
	SortByOccurredAt  SortField = "occurredAt"
)

// SortDirection is the polarity of a sort.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// SortState is the field and direction currently applied to the history view.
type SortState struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort matches the order the history generator emits.
var DefaultSort = SortState{Field: SortByRoundNumber, Direction: Descending}

// Toggle returns the state after a sort request on field: the same field flips
// direction, a different field switches to it in descending order.
func (s SortState) Toggle(field SortField) SortState {
	if s.Field == field {
		return SortState{Field: field, Direction: s.Direction.Reverse()}
	}
	return SortState{Field: field, Direction: Descending}
}

func (s SortState) String() string {
	return fmt.Sprintf("%s %s", s.Field, s.Direction)
}

// Reverse returns the opposite direction.
func (d SortDirection) Reverse() SortDirection {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// ParseSortField accepts the field names used by the console, plus a few aliases.
func ParseSortField(s string) (SortField, error) {
	switch s {
	case "roundNumber", "round", "round_number":
		return SortByRoundNumber, nil
	case "multiplier", "mult":
		return SortByMultiplier, nil
	case "occurredAt", "time", "date", "occurred_at":
		return SortByOccurredAt, nil
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

// ParseSortDirection accepts "asc" or "desc".
func ParseSortDirection(s string) (SortDirection, error) {
	switch s {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}
