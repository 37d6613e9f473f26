package scheduler

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"AviatorStats/internal/metrics"
	"AviatorStats/internal/model"
	"AviatorStats/internal/predictor"
	"AviatorStats/internal/recorder"
)

type chanNotifier struct{ msgs chan string }

func (n chanNotifier) Send(text string) error {
	n.msgs <- text
	return nil
}

func sampleHistory() []model.RoundRecord {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mults := []float64{2.5, 10.1, 1.2}
	statuses := []model.RoundStatus{model.StatusCompleted, model.StatusCrashed, model.StatusCompleted}
	out := make([]model.RoundRecord, 3)
	for i := range out {
		n := int64(2003 - i)
		out[i] = model.RoundRecord{
			ID:          model.RoundID(n),
			RoundNumber: n,
			Multiplier:  mults[i],
			OccurredAt:  now.Add(-time.Duration(i) * 2 * time.Minute),
			Status:      statuses[i],
		}
	}
	return out
}

func newTestScheduler(t *testing.T, latency time.Duration) (*Scheduler, chanNotifier, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	n := chanNotifier{msgs: make(chan string, 8)}
	p := predictor.New(predictor.Options{
		Latency:   latency,
		OnPublish: func(_ model.PredictionBatch, d time.Duration) { m.ObserveBatch(d) },
	})
	s := NewScheduler(context.Background(), sampleHistory(), p, recorder.NewNoopRecorder(), m, n, 5)
	return s, n, m
}

func TestHandleCommand_HistorySearchSort(t *testing.T) {
	s, _, m := newTestScheduler(t, time.Millisecond)

	out := s.HandleCommand("/history")
	if !strings.Contains(out, "3 results") {
		t.Errorf("expected 3 results:\n%s", out)
	}
	if strings.Index(out, "#2003") > strings.Index(out, "#2001") {
		t.Errorf("default order should be round number descending:\n%s", out)
	}

	out = s.HandleCommand("/search 10")
	if !strings.Contains(out, "1 results") || !strings.Contains(out, "10.1x") {
		t.Errorf("search 10 should keep only the 10.1 round:\n%s", out)
	}

	out = s.HandleCommand("/search nothing")
	if !strings.Contains(out, "0 results") || !strings.Contains(out, "No rounds match") {
		t.Errorf("expected empty state:\n%s", out)
	}

	s.HandleCommand("/search")
	out = s.HandleCommand("/sort multiplier")
	if !strings.Contains(out, "multiplier desc") {
		t.Errorf("new field should sort descending:\n%s", out)
	}
	if strings.Index(out, "10.1x") > strings.Index(out, "2.5x") {
		t.Errorf("10.1 should come first when sorting by multiplier desc:\n%s", out)
	}
	out = s.HandleCommand("/sort multiplier")
	if !strings.Contains(out, "multiplier asc") {
		t.Errorf("same field should flip direction:\n%s", out)
	}

	if out := s.HandleCommand("/sort status"); !strings.Contains(out, "unknown sort field") {
		t.Errorf("expected error for unknown field:\n%s", out)
	}

	if got := testutil.ToFloat64(m.HistoryQueries); got != 6 {
		t.Errorf("history queries = %v, want 6", got)
	}
}

func TestHandleCommand_Stats(t *testing.T) {
	s, _, _ := newTestScheduler(t, time.Millisecond)

	out := s.HandleCommand("/stats")
	if !strings.Contains(out, "Rounds: 3") || !strings.Contains(out, "Crashed: 1") {
		t.Errorf("unexpected stats:\n%s", out)
	}
}

func TestHandleCommand_PredictRejectsOverlap(t *testing.T) {
	s, n, m := newTestScheduler(t, 200*time.Millisecond)

	if out := s.HandleCommand("/predictions"); !strings.Contains(out, "/predict") {
		t.Errorf("expected empty prediction state:\n%s", out)
	}

	if out := s.HandleCommand("/predict"); !strings.Contains(out, "Generating") {
		t.Errorf("expected loading state:\n%s", out)
	}
	if out := s.HandleCommand("/predict"); !strings.Contains(out, "already being generated") {
		t.Errorf("second trigger should be rejected:\n%s", out)
	}
	if out := s.HandleCommand("/predictions"); !strings.Contains(out, "Generating") {
		t.Errorf("expected loading state while pending:\n%s", out)
	}

	select {
	case msg := <-n.msgs:
		if strings.Count(msg, "[Next]") != 1 || strings.Count(msg, "Round #") != 5 {
			t.Errorf("unexpected cards:\n%s", msg)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("batch never delivered")
	}

	select {
	case msg := <-n.msgs:
		t.Fatalf("only one batch should be delivered, got another:\n%s", msg)
	case <-time.After(400 * time.Millisecond):
	}

	if got := testutil.ToFloat64(m.TriggersRejected); got != 1 {
		t.Errorf("rejected = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.BatchesGenerated); got != 1 {
		t.Errorf("batches = %v, want 1", got)
	}
	if out := s.HandleCommand("/predictions"); strings.Count(out, "Round #") != 5 {
		t.Errorf("expected current batch:\n%s", out)
	}
}

func TestHandleCommand_Ledger(t *testing.T) {
	s, _, _ := newTestScheduler(t, time.Millisecond)
	if out := s.HandleCommand("/ledger"); !strings.Contains(out, "Rounds: 0") {
		t.Errorf("noop ledger should report zero:\n%s", out)
	}
}

func TestHandleCommand_FAQ(t *testing.T) {
	s, _, _ := newTestScheduler(t, time.Millisecond)
	if out := s.HandleCommand("/faq"); !strings.Contains(out, "Is this a gambling tool?") {
		t.Errorf("expected FAQ list:\n%s", out)
	}
}

func TestHandleCommand_Help(t *testing.T) {
	s, _, _ := newTestScheduler(t, time.Millisecond)
	if out := s.HandleCommand("/unknown"); !strings.Contains(out, "Available commands") {
		t.Errorf("expected help:\n%s", out)
	}
}

func TestRegisterRefresh(t *testing.T) {
	s, n, _ := newTestScheduler(t, time.Millisecond)

	if err := s.RegisterRefresh(""); err != nil {
		t.Fatalf("empty spec should be a no-op: %v", err)
	}
	if len(s.Cron.Entries()) != 0 {
		t.Fatal("empty spec should not register a job")
	}
	if err := s.RegisterRefresh("not a cron"); err == nil {
		t.Fatal("expected error for invalid spec")
	}
	if err := s.RegisterRefresh("* * * * * *"); err != nil {
		t.Fatalf("RegisterRefresh() error: %v", err)
	}

	s.Start()
	defer s.Stop()

	select {
	case msg := <-n.msgs:
		if !strings.Contains(msg, "[Next]") {
			t.Errorf("unexpected message:\n%s", msg)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("cron refresh never delivered a batch")
	}
}
