package recorder

import "AviatorStats/internal/model"

// Totals is a count of what the ledger holds.
type Totals struct {
	Rounds      int
	Batches     int
	Predictions int
}

// Recorder keeps a session ledger of generated rounds and published batches.
// It observes the generators and never feeds data back into them.
type Recorder interface {
	RecordHistory(records []model.RoundRecord) error
	RecordBatch(batch model.PredictionBatch) error
	Totals() (Totals, error)
	Close() error
}
