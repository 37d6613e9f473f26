package predictor

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"AviatorStats/internal/clock"
	"AviatorStats/internal/logger"
	"AviatorStats/internal/model"
)

var log = logger.WithComponent("predictor")

// State of the generation cycle.
type State int

const (
	Idle State = iota
	Generating
)

func (s State) String() string {
	if s == Generating {
		return "generating"
	}
	return "idle"
}

const (
	DefaultBatchSize     = 5
	DefaultLatency       = time.Second
	DefaultMinMultiplier = 1.0
	DefaultMaxMultiplier = 11.0
	DefaultMinConfidence = 60
	DefaultMaxConfidence = 100
)

// Source is the random source; *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Options configures a Predictor. Zero fields take the defaults. The
// confidence bounds are clamped into [DefaultMinConfidence, DefaultMaxConfidence].
type Options struct {
	Latency       time.Duration
	MinMultiplier float64
	MaxMultiplier float64
	MinConfidence int
	MaxConfidence int
	Clock         clock.Clock
	Rand          Source

	// OnPublish runs after a batch replaces the current one and before the
	// task resolves. elapsed is measured from the trigger.
	OnPublish func(batch model.PredictionBatch, elapsed time.Duration)
}

// Predictor produces prediction batches one at a time. While a batch is being
// generated further triggers are rejected, not queued.
type Predictor struct {
	opts Options

	mu      sync.Mutex
	state   State
	current model.PredictionBatch
}

// New returns an idle Predictor with no batch.
func New(opts Options) *Predictor {
	if opts.Latency == 0 {
		opts.Latency = DefaultLatency
	}
	if opts.MinMultiplier == 0 {
		opts.MinMultiplier = DefaultMinMultiplier
	}
	if opts.MaxMultiplier == 0 {
		opts.MaxMultiplier = DefaultMaxMultiplier
	}
	if opts.MinConfidence == 0 {
		opts.MinConfidence = DefaultMinConfidence
	}
	if opts.MaxConfidence == 0 {
		opts.MaxConfidence = DefaultMaxConfidence
	}
	// Confidence is bounded to [60, 100] whatever the options ask for.
	opts.MinConfidence = min(max(opts.MinConfidence, DefaultMinConfidence), DefaultMaxConfidence)
	opts.MaxConfidence = min(max(opts.MaxConfidence, opts.MinConfidence), DefaultMaxConfidence)
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Predictor{opts: opts}
}

// State reports whether a batch is in flight.
func (p *Predictor) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Current returns a copy of the last published batch. Before the first
// publication the batch is empty.
func (p *Predictor) Current() model.PredictionBatch {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current.Clone()
}

// Trigger starts generating a batch of batchSize predictions. It returns
// false, and does nothing, when a batch is already being generated.
// A non-positive batchSize uses DefaultBatchSize.
func (p *Predictor) Trigger(batchSize int) (*Task, bool) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	p.mu.Lock()
	if p.state == Generating {
		p.mu.Unlock()
		log.Debug("trigger rejected: batch already generating")
		return nil, false
	}
	p.state = Generating
	p.mu.Unlock()

	task := newTask(p.opts.Clock.Now())
	log.WithField("size", batchSize).Info("generating prediction batch")
	go p.run(task, batchSize)
	return task, true
}

func (p *Predictor) run(task *Task, batchSize int) {
	<-p.opts.Clock.After(p.opts.Latency)

	batch := p.build(batchSize)

	p.mu.Lock()
	p.current = batch
	p.state = Idle
	p.mu.Unlock()

	elapsed := p.opts.Clock.Now().Sub(task.startedAt)
	if p.opts.OnPublish != nil {
		p.opts.OnPublish(batch.Clone(), elapsed)
	}
	log.WithField("batch", batch.ID).Infof("published %d predictions", len(batch.Records))
	task.resolve(batch.Clone())
}

func (p *Predictor) build(batchSize int) model.PredictionBatch {
	now := p.opts.Clock.Now()
	multSpan := p.opts.MaxMultiplier - p.opts.MinMultiplier
	confSpan := float64(p.opts.MaxConfidence - p.opts.MinConfidence)

	records := make([]model.PredictionRecord, batchSize)
	for i := range records {
		records[i] = model.PredictionRecord{
			ID:                  uuid.NewString(),
			RoundNumber:         now.UnixMilli() + int64(i) + 1,
			PredictedMultiplier: math.Round((p.opts.Rand.Float64()*multSpan+p.opts.MinMultiplier)*100) / 100,
			Confidence:          p.opts.MinConfidence + int(math.Floor(p.opts.Rand.Float64()*confSpan)),
			GeneratedAt:         now,
		}
	}
	return model.PredictionBatch{
		ID:          uuid.NewString(),
		Records:     records,
		GeneratedAt: now,
	}
}
