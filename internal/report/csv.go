package report

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/evalforge/evalharness/internal/dq"
)

// WriteCSV persists the tabular report artifact: one row per check in
// canonical order, with columns check_name, status, records_affected, notes.
func WriteCSV(path string, r dq.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"check_name", "status", "records_affected", "notes"}); err != nil {
		return err
	}
	for _, c := range r.Checks {
		record := []string{
			c.Name,
			string(c.Status),
			strconv.Itoa(c.RecordsAffected),
			c.Notes,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
