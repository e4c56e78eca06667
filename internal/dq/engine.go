// Package dq implements the data-quality gate for the evaluation harness:
// ten independent checks over the four-table snapshot, evaluated in a fixed
// canonical order with no short-circuiting. The engine is a pure function of
// its inputs, so identical snapshots always yield identical check sequences
// and the gate can serve as a regression barrier.
package dq

import (
	"fmt"
	"sort"
	"strings"

	"github.com/evalforge/evalharness/internal/tables"
)

type checkFunc func(*tables.Dataset, Config) CheckResult

// checks holds the ten checks in canonical order. Consumers rely on this
// ordering, so it never changes between runs.
var checks = []checkFunc{
	checkRunIDUniqueness,
	checkPromptCoverage,
	checkMissingOutputText,
	checkAutoScoreJoin,
	checkLatencyOutliers,
	checkHumanRatingCoverage,
	checkForeignKeyIntegrity,
	checkAutoScoreRanges,
	checkHumanRatingRanges,
	checkTimestamps,
}

// Run evaluates all ten checks against the snapshot. Every check runs
// regardless of earlier failures; a failing check only flips the aggregate
// status and exit code.
func Run(ds *tables.Dataset, cfg Config) Report {
	cfg = cfg.withDefaults()
	report := Report{
		Passed:   true,
		ExitCode: ExitPass,
		RunCount: len(ds.Runs),
		Checks:   make([]CheckResult, 0, len(checks)),
	}
	for _, check := range checks {
		res := check(ds, cfg)
		report.Checks = append(report.Checks, res)
		if res.Status == StatusFail {
			report.Passed = false
			report.ExitCode = ExitCheckFail
			report.Failures = append(report.Failures, fmt.Sprintf("%s: %s", res.Name, res.Notes))
		}
	}
	return report
}

// joinCapped renders a sorted value list for notes, truncating deterministically.
func joinCapped(values []string, max int) string {
	if len(values) <= max {
		return strings.Join(values, ", ")
	}
	return fmt.Sprintf("%s, and %d more", strings.Join(values[:max], ", "), len(values)-max)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
