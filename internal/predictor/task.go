package predictor

import (
	"context"
	"time"

	"AviatorStats/internal/model"
)

// Task is a single in-flight batch. It resolves exactly once.
type Task struct {
	startedAt time.Time
	done      chan struct{}
	batch     model.PredictionBatch
}

func newTask(startedAt time.Time) *Task {
	return &Task{startedAt: startedAt, done: make(chan struct{})}
}

func (t *Task) resolve(batch model.PredictionBatch) {
	t.batch = batch
	close(t.done)
}

// Done is closed once the batch has been published.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the batch is published or ctx ends. Cancelling ctx only
// stops the wait; the batch is still generated and published.
func (t *Task) Wait(ctx context.Context) (model.PredictionBatch, error) {
	select {
	case <-t.done:
		return t.batch.Clone(), nil
	case <-ctx.Done():
		return model.PredictionBatch{}, ctx.Err()
	}
}
