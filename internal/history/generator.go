package history

import (
	"math"
	"math/rand"
	"time"

	"AviatorStats/internal/clock"
	"AviatorStats/internal/logger"
	"AviatorStats/internal/model"
)

var log = logger.WithComponent("history")

// Clock supplies the generation instant. clock.Clock satisfies it.
type Clock interface {
	Now() time.Time
}

// Source is the random source; *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Options controls the shape of the generated ledger. Zero fields take the
// defaults, except CrashProbability where only nil does.
type Options struct {
	BaseRoundNumber  int64
	Interval         time.Duration
	CrashProbability *float64
	MinMultiplier    float64
	MaxMultiplier    float64
	Clock            Clock
	Rand             Source
}

const (
	DefaultBaseRoundNumber  = 1000
	DefaultInterval         = 2 * time.Minute
	DefaultCrashProbability = 0.3
	DefaultMinMultiplier    = 1.0
	DefaultMaxMultiplier    = 16.0
)

// Generator manufactures past rounds as if they had come from a live feed.
type Generator struct {
	opts             Options
	crashProbability float64
}

// NewGenerator fills in defaults. Without an explicit Rand the source is seeded
// from the clock, so two generators never agree.
func NewGenerator(opts Options) *Generator {
	if opts.BaseRoundNumber == 0 {
		opts.BaseRoundNumber = DefaultBaseRoundNumber
	}
	if opts.Interval == 0 {
		opts.Interval = DefaultInterval
	}
	crashProbability := DefaultCrashProbability
	if opts.CrashProbability != nil {
		crashProbability = *opts.CrashProbability
	}
	if opts.MinMultiplier == 0 {
		opts.MinMultiplier = DefaultMinMultiplier
	}
	if opts.MaxMultiplier == 0 {
		opts.MaxMultiplier = DefaultMaxMultiplier
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{opts: opts, crashProbability: crashProbability}
}

// Generate returns count rounds, newest first. Round numbers count down from
// BaseRoundNumber+count and timestamps step back by Interval per record.
func (g *Generator) Generate(count int) []model.RoundRecord {
	if count <= 0 {
		return []model.RoundRecord{}
	}

	now := g.opts.Clock.Now()
	span := g.opts.MaxMultiplier - g.opts.MinMultiplier
	records := make([]model.RoundRecord, count)
	for i := 0; i < count; i++ {
		n := g.opts.BaseRoundNumber + int64(count-i)
		status := model.StatusCompleted
		if g.opts.Rand.Float64() < g.crashProbability {
			status = model.StatusCrashed
		}
		records[i] = model.RoundRecord{
			ID:          model.RoundID(n),
			RoundNumber: n,
			Multiplier:  Round2(g.opts.Rand.Float64()*span + g.opts.MinMultiplier),
			OccurredAt:  now.Add(-time.Duration(i) * g.opts.Interval),
			Status:      status,
		}
	}

	log.WithField("count", count).Debugf("generated rounds %d..%d", records[count-1].RoundNumber, records[0].RoundNumber)
	return records
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
