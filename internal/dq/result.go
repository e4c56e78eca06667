package dq

// Exit codes for the validate step. Downstream automation keys off these:
// a check failure means the data is dirty, a schema error means the validator
// itself could not run.
const (
	ExitPass        = 0
	ExitCheckFail   = 10
	ExitSchemaError = 20
)

// Status is the outcome of a single check.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// Canonical check names, in execution and report order.
const (
	CheckRunIDUniqueness     = "run_id_uniqueness"
	CheckPromptCoverage      = "prompt_coverage"
	CheckMissingOutputText   = "missing_output_text"
	CheckAutoScoreJoin       = "auto_score_join"
	CheckLatencyOutliers     = "latency_outliers"
	CheckHumanRatingCoverage = "human_rating_coverage"
	CheckForeignKeyIntegrity = "foreign_key_integrity"
	CheckAutoScoreRanges     = "auto_score_ranges"
	CheckHumanRatingRanges   = "human_rating_ranges"
	CheckTimestamps          = "timestamp_consistency"
)

// CheckResult is the outcome of one check: name, pass/fail, how many records
// are affected, and a human-readable note.
type CheckResult struct {
	Name            string `json:"check_name"`
	Status          Status `json:"status"`
	RecordsAffected int    `json:"records_affected"`
	Notes           string `json:"notes"`
}

// Report is the full outcome of a validation run. ReportID and GeneratedAt are
// envelope metadata filled in by the caller; the engine itself is a pure
// function of the dataset and config, so Checks is deterministic.
type Report struct {
	ReportID    string        `json:"report_id,omitempty"`
	GeneratedAt string        `json:"generated_at,omitempty"`
	Passed      bool          `json:"passed"`
	ExitCode    int           `json:"exit_code"`
	RunCount    int           `json:"run_count"`
	Checks      []CheckResult `json:"checks"`
	Failures    []string      `json:"failures,omitempty"`
}

func pass(name, notes string) CheckResult {
	return CheckResult{Name: name, Status: StatusPass, Notes: notes}
}

func passAffected(name string, affected int, notes string) CheckResult {
	return CheckResult{Name: name, Status: StatusPass, RecordsAffected: affected, Notes: notes}
}

func fail(name string, affected int, notes string) CheckResult {
	return CheckResult{Name: name, Status: StatusFail, RecordsAffected: affected, Notes: notes}
}
