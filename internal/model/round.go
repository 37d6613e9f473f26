package model

import (
	"fmt"
	"strconv"
	"time"
)

// RoundStatus is the terminal outcome of a round.
type RoundStatus string

const (
	StatusCompleted RoundStatus = "completed"
	StatusCrashed   RoundStatus = "crashed"
)

// RoundRecord is a single past round in the history ledger.
type RoundRecord struct {
	ID          string      `json:"id"`
	RoundNumber int64       `json:"round_number"`
	Multiplier  float64     `json:"multiplier"`
	OccurredAt  time.Time   `json:"occurred_at"`
	Status      RoundStatus `json:"status"`
}

// RoundID returns the identifier used for the round with the given number.
func RoundID(roundNumber int64) string {
	return fmt.Sprintf("round-%d", roundNumber)
}

// RoundNumberText is the decimal form of the round number, as matched by search.
func (r RoundRecord) RoundNumberText() string {
	return strconv.FormatInt(r.RoundNumber, 10)
}

// MultiplierText is the shortest decimal form of the multiplier (10.10 -> "10.1", 3.00 -> "3").
func (r RoundRecord) MultiplierText() string {
	return FormatMultiplier(r.Multiplier)
}

// FormatMultiplier renders a multiplier without trailing zeros.
func FormatMultiplier(m float64) string {
	return strconv.FormatFloat(m, 'f', -1, 64)
}

// MultiplierTier classifies a round for display.
type MultiplierTier string

const (
	TierCrashed MultiplierTier = "crashed"
	TierHigh    MultiplierTier = "high"
	TierMedium  MultiplierTier = "medium"
	TierLow     MultiplierTier = "low"
)

// Tier maps the round to a display tier. Crashed rounds are always TierCrashed.
func (r RoundRecord) Tier() MultiplierTier {
	switch {
	case r.Status == StatusCrashed:
		return TierCrashed
	case r.Multiplier >= 5:
		return TierHigh
	case r.Multiplier >= 2:
		return TierMedium
	default:
		return TierLow
	}
}
