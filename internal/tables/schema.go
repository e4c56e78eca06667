package tables

import (
	"fmt"
	"strings"
)

// Required column sets per table. A header missing any of these is a fatal
// precondition failure: the validator must not run against a table it cannot
// interpret.
var (
	promptColumns = []string{
		"prompt_id", "category", "difficulty", "should_refuse",
		"expected_format", "prompt_text",
	}
	runColumns = []string{
		"run_id", "prompt_id", "model_name", "system_prompt_version",
		"temperature", "timestamp", "latency_ms", "output_len_chars",
		"output_text",
	}
	autoScoreColumns = []string{
		"run_id", "format_followed", "refusal_present", "refusal_correct",
		"mentions_uncertainty", "contains_policy_risk_flag", "citations_present",
	}
	humanRatingColumns = []string{
		"run_id", "helpfulness_1_5", "correctness_1_5", "clarity_1_5",
		"compliance_1_5", "hallucination_flag", "notes",
	}
)

// SchemaError reports a fatal schema or load problem with one of the four
// input tables. It is distinct from a check failure: downstream automation
// must be able to tell "data is dirty" apart from "the validator could not
// run".
type SchemaError struct {
	Table   string
	Missing []string
	Err     error
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("table %s: missing required columns: %s",
			e.Table, strings.Join(e.Missing, ", "))
	}
	if e.Err != nil {
		return fmt.Sprintf("table %s: %v", e.Table, e.Err)
	}
	return fmt.Sprintf("table %s: schema error", e.Table)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// columnIndex maps a header row to column positions and reports any required
// column that is absent, sorted for stable error text.
func columnIndex(table string, header, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	missing := make([]string, 0)
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Table: table, Missing: missing}
	}
	return idx, nil
}
