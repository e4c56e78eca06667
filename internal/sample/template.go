package sample

import (
	"encoding/csv"
	"os"

	"github.com/evalforge/evalharness/internal/tables"
)

// WriteTemplate writes the human-rating CSV template: one row per sampled
// run with empty rating columns for reviewers to fill in.
func WriteTemplate(path string, sampled []tables.Run) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"run_id", "helpfulness_1_5", "correctness_1_5", "clarity_1_5",
		"compliance_1_5", "hallucination_flag", "notes",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, run := range sampled {
		if err := w.Write([]string{run.RunID, "", "", "", "", "", ""}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
