package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/evalforge/evalharness/internal/dq"
)

func WriteJSON(path string, r dq.Report) error {
	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// ReadJSON loads a previously persisted report, for re-rendering.
func ReadJSON(path string) (dq.Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return dq.Report{}, err
	}
	var r dq.Report
	if err := json.Unmarshal(raw, &r); err != nil {
		return dq.Report{}, fmt.Errorf("parse report %s: %w", path, err)
	}
	return r, nil
}
