package score

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/evalforge/evalharness/internal/tables"
)

// WriteScores persists the auto-score table as CSV with the canonical header.
func WriteScores(path string, scores []tables.AutoScore) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"run_id", "format_followed", "refusal_present", "refusal_correct",
		"mentions_uncertainty", "contains_policy_risk_flag", "citations_present",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, s := range scores {
		record := []string{
			s.RunID, s.FormatFollowed, s.RefusalPresent, s.RefusalCorrect,
			s.MentionsUncertainty, s.ContainsPolicyRiskFlag, s.CitationsPresent,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Summary aggregates the share of positive cells per metric.
type Summary struct {
	Total    int
	Percents map[string]float64
}

// Summarize computes the positive-rate per metric column, for the console
// summary after scoring.
func Summarize(scores []tables.AutoScore) Summary {
	sum := Summary{Total: len(scores), Percents: make(map[string]float64)}
	if len(scores) == 0 {
		return sum
	}
	counts := make(map[string]int)
	for _, s := range scores {
		for _, cell := range s.MetricCells() {
			if cell.Value == "1" {
				counts[cell.Column]++
			}
		}
	}
	for col, n := range counts {
		sum.Percents[col] = float64(n) / float64(len(scores)) * 100
	}
	return sum
}

func (s Summary) Format(metric string) string {
	return fmt.Sprintf("%.1f%%", s.Percents[metric])
}
