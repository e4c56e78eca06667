package dq

import (
	"fmt"

	"github.com/evalforge/evalharness/internal/tables"
)

// checkRunIDUniqueness verifies that run_id is a unique key over the run
// table. The affected count is the number of duplicate rows beyond the first
// in each group, i.e. total rows minus distinct run_id values.
func checkRunIDUniqueness(ds *tables.Dataset, _ Config) CheckResult {
	counts := make(map[string]int, len(ds.Runs))
	for _, r := range ds.Runs {
		counts[r.RunID]++
	}
	duplicates := len(ds.Runs) - len(counts)
	if duplicates == 0 {
		return pass(CheckRunIDUniqueness, fmt.Sprintf("%d run_id values, all distinct", len(counts)))
	}
	offenders := make([]string, 0)
	for _, id := range sortedKeys(counts) {
		if counts[id] > 1 {
			offenders = append(offenders, id)
		}
	}
	return fail(CheckRunIDUniqueness, duplicates,
		fmt.Sprintf("duplicate run_id values: %s", joinCapped(offenders, 10)))
}

// checkAutoScoreJoin verifies the exact 1:1 cardinality between runs and
// auto-scores. The affected count is the symmetric difference: runs missing a
// score, scores with no matching run, and duplicate score rows.
func checkAutoScoreJoin(ds *tables.Dataset, _ Config) CheckResult {
	runIDs := make(map[string]struct{}, len(ds.Runs))
	for _, r := range ds.Runs {
		runIDs[r.RunID] = struct{}{}
	}
	scoreCounts := make(map[string]int, len(ds.AutoScores))
	orphanScores := 0
	for _, s := range ds.AutoScores {
		scoreCounts[s.RunID]++
		if _, ok := runIDs[s.RunID]; !ok {
			orphanScores++
		}
	}
	missingScores := 0
	for id := range runIDs {
		if scoreCounts[id] == 0 {
			missingScores++
		}
	}
	duplicateRows := 0
	for _, n := range scoreCounts {
		if n > 1 {
			duplicateRows += n - 1
		}
	}

	affected := missingScores + orphanScores + duplicateRows
	if affected == 0 {
		return pass(CheckAutoScoreJoin,
			fmt.Sprintf("exactly one auto-score row for each of %d runs", len(runIDs)))
	}
	return fail(CheckAutoScoreJoin, affected,
		fmt.Sprintf("%d runs without a score, %d scores without a run, %d duplicate score rows",
			missingScores, orphanScores, duplicateRows))
}

// checkForeignKeyIntegrity verifies the three declared foreign keys:
// Run.prompt_id -> Prompt, AutoScore.run_id -> Run, HumanRating.run_id -> Run.
// The affected count is the total number of orphaned referencing rows.
func checkForeignKeyIntegrity(ds *tables.Dataset, _ Config) CheckResult {
	promptIDs := make(map[string]struct{}, len(ds.Prompts))
	for _, p := range ds.Prompts {
		promptIDs[p.PromptID] = struct{}{}
	}
	runIDs := make(map[string]struct{}, len(ds.Runs))
	for _, r := range ds.Runs {
		runIDs[r.RunID] = struct{}{}
	}

	orphanRuns := 0
	for _, r := range ds.Runs {
		if _, ok := promptIDs[r.PromptID]; !ok {
			orphanRuns++
		}
	}
	orphanScores := 0
	for _, s := range ds.AutoScores {
		if _, ok := runIDs[s.RunID]; !ok {
			orphanScores++
		}
	}
	orphanRatings := 0
	for _, h := range ds.HumanRatings {
		if _, ok := runIDs[h.RunID]; !ok {
			orphanRatings++
		}
	}

	affected := orphanRuns + orphanScores + orphanRatings
	if affected == 0 {
		return pass(CheckForeignKeyIntegrity, "all foreign keys resolve")
	}
	return fail(CheckForeignKeyIntegrity, affected,
		fmt.Sprintf("%d runs with unknown prompt_id, %d auto-scores with unknown run_id, %d human ratings with unknown run_id",
			orphanRuns, orphanScores, orphanRatings))
}
