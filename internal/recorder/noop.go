package recorder

import "AviatorStats/internal/model"

// NoopRecorder is used when the ledger is disabled or failed to open.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordHistory(_ []model.RoundRecord) error { return nil }
func (n *NoopRecorder) RecordBatch(_ model.PredictionBatch) error  { return nil }
func (n *NoopRecorder) Totals() (Totals, error)                    { return Totals{}, nil }
func (n *NoopRecorder) Close() error                               { return nil }
