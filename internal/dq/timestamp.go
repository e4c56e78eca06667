package dq

import (
	"fmt"
	"time"

	"github.com/evalforge/evalharness/internal/tables"
)

// Accepted timestamp layouts. The runner writes RFC3339 UTC; older datasets
// carry zone-less ISO-8601 with or without fractional seconds, which parse as
// UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// checkTimestamps verifies that every run timestamp parses and falls inside
// the valid window: strictly after the project start boundary and no later
// than the evaluation instant. A timestamp equal to the boundary fails; one
// equal to now passes.
func checkTimestamps(ds *tables.Dataset, cfg Config) CheckResult {
	unparseable, beforeStart, future := 0, 0, 0
	for _, r := range ds.Runs {
		t, ok := parseTimestamp(r.Timestamp)
		if !ok {
			unparseable++
			continue
		}
		if !t.After(cfg.ProjectStart) {
			beforeStart++
			continue
		}
		if t.After(cfg.Now) {
			future++
		}
	}

	affected := unparseable + beforeStart + future
	if affected == 0 {
		return pass(CheckTimestamps,
			fmt.Sprintf("all %d timestamps valid and within window", len(ds.Runs)))
	}
	return fail(CheckTimestamps, affected,
		fmt.Sprintf("%d unparseable, %d at or before project start, %d in the future",
			unparseable, beforeStart, future))
}
