package model

import "time"

// PredictionRecord is a synthetic forecast for a round that has not happened yet.
type PredictionRecord struct {
	ID                  string    `json:"id"`
	RoundNumber         int64     `json:"round_number"`
	PredictedMultiplier float64   `json:"predicted_multiplier"`
	Confidence          int       `json:"confidence"` // 60 ~ 100
	GeneratedAt         time.Time `json:"generated_at"`
}

// PredictionBatch is the group of predictions produced by a single trigger.
// A batch is always replaced as a whole, never merged.
type PredictionBatch struct {
	ID          string             `json:"id"`
	Records     []PredictionRecord `json:"records"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// Empty reports whether the batch holds no predictions.
func (b PredictionBatch) Empty() bool {
	return len(b.Records) == 0
}

// Next returns the first prediction of the batch, the one flagged as upcoming.
func (b PredictionBatch) Next() (PredictionRecord, bool) {
	if len(b.Records) == 0 {
		return PredictionRecord{}, false
	}
	return b.Records[0], true
}

// Clone returns a copy whose Records slice does not alias b's.
func (b PredictionBatch) Clone() PredictionBatch {
	out := b
	if b.Records != nil {
		out.Records = make([]PredictionRecord, len(b.Records))
		copy(out.Records, b.Records)
	}
	return out
}
