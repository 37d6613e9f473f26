package view

import (
	"strings"
	"testing"
	"time"

	"AviatorStats/internal/model"
	"AviatorStats/internal/recorder"
	"AviatorStats/internal/stats"
)

func TestFormatHistory(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	records := []model.RoundRecord{
		{RoundNumber: 1002, Multiplier: 10.1, OccurredAt: now, Status: model.StatusCompleted},
		{RoundNumber: 1001, Multiplier: 3, OccurredAt: now.Add(-2 * time.Minute), Status: model.StatusCrashed},
	}
	out := FormatHistory(records, "", model.DefaultSort)

	for _, want := range []string{"2 results", "#1002", "10.1x", "3x", "✅ Won", "💥 Crashed", "12:00:00", "roundNumber desc"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatHistory_EmptyState(t *testing.T) {
	out := FormatHistory(nil, "999", model.DefaultSort)
	if !strings.Contains(out, "0 results") {
		t.Errorf("expected result count, got:\n%s", out)
	}
	if !strings.Contains(out, `No rounds match "999"`) {
		t.Errorf("expected explanatory empty state, got:\n%s", out)
	}
	if strings.Contains(out, "Round #") {
		t.Error("empty state should not render a table header")
	}
}

func TestConfidenceBar(t *testing.T) {
	tests := []struct {
		confidence int
		filled     int
	}{
		{60, 12},
		{75, 15},
		{100, 20},
		{0, 0},
		{150, 20},
	}
	for _, tt := range tests {
		bar := ConfidenceBar(tt.confidence)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("ConfidenceBar(%d): %d filled, want %d", tt.confidence, got, tt.filled)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != barWidth {
			t.Errorf("ConfidenceBar(%d): width %d", tt.confidence, got)
		}
	}
}

func TestFormatPredictions(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	batch := model.PredictionBatch{
		ID: "b1",
		Records: []model.PredictionRecord{
			{ID: "p1", RoundNumber: 11, PredictedMultiplier: 2.5, Confidence: 80, GeneratedAt: now},
			{ID: "p2", RoundNumber: 12, PredictedMultiplier: 7.25, Confidence: 61, GeneratedAt: now},
		},
		GeneratedAt: now,
	}
	out := FormatPredictions(batch, false)

	if strings.Count(out, "[Next]") != 1 {
		t.Errorf("exactly one card should be flagged Next:\n%s", out)
	}
	if !strings.Contains(out, "Round #11  [Next]") {
		t.Errorf("first card should be Next:\n%s", out)
	}
	for _, want := range []string{"2.5x", "7.25x", "Confidence: 80%", "Confidence: 61%"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestFormatPredictions_States(t *testing.T) {
	if out := FormatPredictions(model.PredictionBatch{}, true); !strings.Contains(out, "Generating") {
		t.Errorf("expected loading state, got:\n%s", out)
	}
	if out := FormatPredictions(model.PredictionBatch{}, false); !strings.Contains(out, "/predict") {
		t.Errorf("expected empty state, got:\n%s", out)
	}
}

func TestFormatSummaryAndLedger(t *testing.T) {
	out := FormatSummary(stats.Summary{Count: 4, Crashed: 1, CrashRate: 0.25, Mean: 5, Median: 4, Max: 10, StdDev: 3.46})
	for _, want := range []string{"Rounds: 4", "Crashed: 1 (25%)", "Mean: 5.00x", "Max: 10.00x"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if out := FormatSummary(stats.Summary{}); !strings.Contains(out, "No rounds") {
		t.Errorf("expected empty summary state, got:\n%s", out)
	}
	if out := FormatLedger(recorder.Totals{Rounds: 100, Batches: 2, Predictions: 10}); !strings.Contains(out, "Prediction batches: 2") {
		t.Errorf("unexpected ledger output:\n%s", out)
	}
}

func TestFormatFAQ(t *testing.T) {
	out := FormatFAQ()
	if !strings.Contains(out, "Frequently Asked Questions") {
		t.Errorf("missing title:\n%s", out)
	}
	for i, e := range FAQ {
		if !strings.Contains(out, e.Question) || !strings.Contains(out, e.Answer) {
			t.Errorf("entry %d not rendered:\n%s", i, out)
		}
	}
	if !strings.Contains(Help(), "/faq") {
		t.Error("help should list /faq")
	}
}
