package view

import (
	"fmt"
	"strings"

	"AviatorStats/internal/model"
	"AviatorStats/internal/recorder"
	"AviatorStats/internal/stats"
)

const (
	timeLayout = "15:04:05"
	barWidth   = 20
)

// StatusBadge is the label shown in the status column.
func StatusBadge(s model.RoundStatus) string {
	if s == model.StatusCompleted {
		return "✅ Won"
	}
	return "💥 Crashed"
}

func tierMark(t model.MultiplierTier) string {
	switch t {
	case model.TierHigh:
		return "▲"
	case model.TierMedium:
		return "△"
	case model.TierCrashed:
		return "✕"
	}
	return " "
}

// FormatHistory renders the filtered, sorted rounds as a table. An empty
// result gets an explanation instead of a header with no rows.
func FormatHistory(records []model.RoundRecord, search string, sort model.SortState) string {
	var b strings.Builder

	b.WriteString("📜 Round History\n")
	if search != "" {
		b.WriteString(fmt.Sprintf("search: %q | ", search))
	}
	b.WriteString(fmt.Sprintf("sort: %s | %d results\n\n", sort, len(records)))

	if len(records) == 0 {
		if search != "" {
			b.WriteString(fmt.Sprintf("No rounds match %q. Try another round number or multiplier, or clear the search with /search.\n", search))
		} else {
			b.WriteString("No rounds recorded yet.\n")
		}
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%-8s %12s  %-8s  %s\n", "Round #", "Multiplier", "Time", "Status"))
	for _, r := range records {
		b.WriteString(fmt.Sprintf("#%-7d %s %10s  %-8s  %s\n",
			r.RoundNumber, tierMark(r.Tier()), r.MultiplierText()+"x",
			r.OccurredAt.Format(timeLayout), StatusBadge(r.Status)))
	}
	return b.String()
}

// ConfidenceBar draws a bar whose filled share equals the confidence percentage.
func ConfidenceBar(confidence int) string {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}
	filled := confidence * barWidth / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
}

// FormatPredictions renders a batch as cards, the first one flagged "Next".
func FormatPredictions(batch model.PredictionBatch, generating bool) string {
	var b strings.Builder
	b.WriteString("📈 Upcoming Predictions\n\n")

	if generating {
		b.WriteString("⏳ Generating...\n")
		return b.String()
	}
	if batch.Empty() {
		b.WriteString("Run /predict to generate new predictions.\n")
		return b.String()
	}

	for i, p := range batch.Records {
		title := fmt.Sprintf("Round #%d", p.RoundNumber)
		if i == 0 {
			title += "  [Next]"
		}
		b.WriteString(title + "\n")
		b.WriteString(fmt.Sprintf("  Generated: %s\n", p.GeneratedAt.Format(timeLayout)))
		b.WriteString(fmt.Sprintf("  Predicted Multiplier: %sx\n", model.FormatMultiplier(p.PredictedMultiplier)))
		b.WriteString(fmt.Sprintf("  Confidence: %d%% %s\n\n", p.Confidence, ConfidenceBar(p.Confidence)))
	}
	b.WriteString("⚠️ Statistical tracker only. It does not support or promote betting.\n")
	return b.String()
}

// FormatSummary renders the distribution of the current result set.
func FormatSummary(s stats.Summary) string {
	if s.Count == 0 {
		return "📊 Statistics\n\nNo rounds in the current result set.\n"
	}
	var b strings.Builder
	b.WriteString("📊 Statistics\n\n")
	b.WriteString(fmt.Sprintf("Rounds: %d | Crashed: %d (%.0f%%)\n", s.Count, s.Crashed, s.CrashRate*100))
	b.WriteString(fmt.Sprintf("Mean: %.2fx | Median: %.2fx | Max: %.2fx\n", s.Mean, s.Median, s.Max))
	b.WriteString(fmt.Sprintf("Std dev: %.2f\n", s.StdDev))
	return b.String()
}

// FormatLedger renders the session ledger totals.
func FormatLedger(t recorder.Totals) string {
	return fmt.Sprintf("🗄 Session ledger\n\nRounds: %d\nPrediction batches: %d\nPredictions: %d\n",
		t.Rounds, t.Batches, t.Predictions)
}

// FAQEntry is one question with its answer.
type FAQEntry struct {
	Question string
	Answer   string
}

// FAQ is the list shown by /faq.
var FAQ = []FAQEntry{
	{"Is this a gambling tool?",
		"No. It is a statistical tracker only. It does not support, promote or enable betting."},
	{"How accurate are the predictions?",
		"They are synthetic figures for illustration. Each round is a game of chance and past results do not predict future ones."},
	{"Where does the history come from?",
		"It is generated once when the session starts. Nothing is fetched from a live game."},
	{"Is any data kept after I quit?",
		"No. The ledger lives in memory for the session and is discarded on exit."},
	{"How often are predictions refreshed?",
		"Whenever you run /predict, and on the configured schedule if one is set. A refresh requested while a batch is generating is ignored."},
	{"How do I search the history?",
		"Use /search with part of a round number or a multiplier, e.g. /search 10.1. Run /search alone to clear it."},
	{"Is it free to use?",
		"Yes. There are no accounts, fees or tracking."},
}

// FormatFAQ renders the question and answer list.
func FormatFAQ() string {
	var b strings.Builder
	b.WriteString("❓ Frequently Asked Questions\n\n")
	for i, e := range FAQ {
		b.WriteString(fmt.Sprintf("%d. %s\n   %s\n", i+1, e.Question, e.Answer))
	}
	return b.String()
}

// Help lists the console commands.
func Help() string {
	return "Available commands:\n" +
		"• /history: show the round history\n" +
		"• /search <term>: filter by round number or multiplier (/search clears)\n" +
		"• /sort <roundNumber|multiplier|occurredAt>: sort, again to flip direction\n" +
		"• /predict: generate a new prediction batch\n" +
		"• /predictions: show the current batch\n" +
		"• /stats: statistics of the current result set\n" +
		"• /ledger: session ledger totals\n" +
		"• /faq: frequently asked questions\n"
}
