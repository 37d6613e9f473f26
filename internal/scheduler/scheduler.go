package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	"AviatorStats/internal/logger"
	"AviatorStats/internal/metrics"
	"AviatorStats/internal/model"
	"AviatorStats/internal/predictor"
	"AviatorStats/internal/query"
	"AviatorStats/internal/recorder"
	"AviatorStats/internal/stats"
	"AviatorStats/internal/view"
)

var log = logger.WithComponent("scheduler")

// Notifier delivers messages that are not direct replies to a command.
type Notifier interface {
	Send(text string) error
}

// Scheduler owns the session: the generated history, the history view state,
// the predictor and the optional cron refresh.
type Scheduler struct {
	Cron      *cron.Cron
	Predictor *predictor.Predictor
	Recorder  recorder.Recorder
	Metrics   *metrics.Metrics
	Notifier  Notifier
	BatchSize int
	Ctx       context.Context

	history []model.RoundRecord

	mu     sync.Mutex
	search string
	sort   model.SortState
}

// NewScheduler creates a Scheduler over a generated history. The history is
// never modified.
func NewScheduler(ctx context.Context, history []model.RoundRecord, p *predictor.Predictor, rec recorder.Recorder, m *metrics.Metrics, n Notifier, batchSize int) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Predictor: p,
		Recorder:  rec,
		Metrics:   m,
		Notifier:  n,
		BatchSize: batchSize,
		Ctx:       ctx,
		history:   history,
		sort:      model.DefaultSort,
	}
}

// RegisterRefresh schedules automatic prediction refreshes. An empty spec
// leaves refreshes to explicit commands.
func (s *Scheduler) RegisterRefresh(spec string) error {
	if spec == "" {
		return nil
	}
	if _, err := s.Cron.AddFunc(spec, func() { s.RefreshPredictions("cron") }); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	log.WithField("spec", spec).Info("prediction refresh scheduled")
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to return.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info("scheduler stopped")
}

// RefreshPredictions triggers a batch and, once it resolves, sends the cards
// to the notifier. It reports false when a batch was already generating.
func (s *Scheduler) RefreshPredictions(source string) (*predictor.Task, bool) {
	task, ok := s.Predictor.Trigger(s.BatchSize)
	if !ok {
		s.Metrics.TriggersRejected.Inc()
		log.WithField("source", source).Debug("refresh ignored, batch already generating")
		return nil, false
	}

	go func() {
		batch, err := task.Wait(s.Ctx)
		if err != nil {
			log.WithError(err).Warn("stopped waiting for prediction batch")
			return
		}
		s.trySend(view.FormatPredictions(batch, false))
	}()
	return task, true
}

// Query runs the history query with the current view state.
func (s *Scheduler) Query() ([]model.RoundRecord, string, model.SortState) {
	s.mu.Lock()
	search, st := s.search, s.sort
	s.mu.Unlock()

	s.Metrics.HistoryQueries.Inc()
	return query.Run(s.history, search, st), search, st
}

// SetSearch replaces the search term. An empty term clears the filter.
func (s *Scheduler) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = term
}

// ToggleSort applies a sort request on field and returns the new state.
func (s *Scheduler) ToggleSort(field model.SortField) model.SortState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = s.sort.Toggle(field)
	return s.sort
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	name, arg, _ := strings.Cut(strings.TrimSpace(command), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/history":
		return s.historyView()
	case "/search":
		s.SetSearch(arg)
		return s.historyView()
	case "/sort":
		field, err := model.ParseSortField(arg)
		if err != nil {
			return fmt.Sprintf("❌ %v\n\n%s", err, view.Help())
		}
		s.ToggleSort(field)
		return s.historyView()
	case "/predict":
		if _, ok := s.RefreshPredictions("command"); !ok {
			return "⏳ Predictions are already being generated, please wait."
		}
		return view.FormatPredictions(model.PredictionBatch{}, true)
	case "/predictions":
		return view.FormatPredictions(s.Predictor.Current(), s.Predictor.State() == predictor.Generating)
	case "/stats":
		records, _, _ := s.Query()
		return view.FormatSummary(stats.Summarize(records))
	case "/ledger":
		totals, err := s.Recorder.Totals()
		if err != nil {
			log.WithError(err).Error("read ledger totals")
			return "❌ ledger unavailable"
		}
		return view.FormatLedger(totals)
	case "/faq":
		return view.FormatFAQ()
	default:
		return view.Help()
	}
}

func (s *Scheduler) historyView() string {
	records, search, st := s.Query()
	return view.FormatHistory(records, search, st)
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.Send(text); err != nil {
		log.WithError(err).Error("send notification")
	}
}
