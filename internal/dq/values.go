package dq

import (
	"fmt"

	"github.com/evalforge/evalharness/internal/tables"
)

// checkMissingOutputText flags runs whose output_text is absent. The check is
// an exact empty-cell test; whitespace-only output is deliberately not
// trimmed away.
func checkMissingOutputText(ds *tables.Dataset, _ Config) CheckResult {
	affected := 0
	for _, r := range ds.Runs {
		if r.OutputText == "" {
			affected++
		}
	}
	if affected == 0 {
		return pass(CheckMissingOutputText, fmt.Sprintf("all %d runs have output text", len(ds.Runs)))
	}
	return fail(CheckMissingOutputText, affected,
		fmt.Sprintf("%d runs with empty output_text", affected))
}

// checkAutoScoreRanges verifies the closed {0,1} domain of the six auto-score
// metric columns. An empty cell is invalid here: auto-scores must never be
// null. The affected count is the number of out-of-range cells.
func checkAutoScoreRanges(ds *tables.Dataset, _ Config) CheckResult {
	affected := 0
	byColumn := make(map[string]int)
	for _, s := range ds.AutoScores {
		for _, cell := range s.MetricCells() {
			if cell.Value != "0" && cell.Value != "1" {
				affected++
				byColumn[cell.Column]++
			}
		}
	}
	if affected == 0 {
		return pass(CheckAutoScoreRanges,
			fmt.Sprintf("all metric cells in {0,1} across %d score rows", len(ds.AutoScores)))
	}
	parts := make([]string, 0, len(byColumn))
	for _, col := range sortedKeys(byColumn) {
		parts = append(parts, fmt.Sprintf("%s=%d", col, byColumn[col]))
	}
	return fail(CheckAutoScoreRanges, affected,
		fmt.Sprintf("cells outside {0,1}: %s", joinCapped(parts, 6)))
}

// checkHumanRatingRanges verifies the ordinal rating domains: the four rating
// columns must be in {1..5} and hallucination_flag in {0,1} when present.
// Empty cells are valid for all five columns, since human ratings cover only a
// sampled subset. The affected count is the number of out-of-range non-empty
// cells.
func checkHumanRatingRanges(ds *tables.Dataset, _ Config) CheckResult {
	ordinalOK := map[string]struct{}{"1": {}, "2": {}, "3": {}, "4": {}, "5": {}}

	affected := 0
	byColumn := make(map[string]int)
	for _, h := range ds.HumanRatings {
		for _, cell := range h.OrdinalCells() {
			if cell.Value == "" {
				continue
			}
			if _, ok := ordinalOK[cell.Value]; !ok {
				affected++
				byColumn[cell.Column]++
			}
		}
		if h.HallucinationFlag != "" && h.HallucinationFlag != "0" && h.HallucinationFlag != "1" {
			affected++
			byColumn["hallucination_flag"]++
		}
	}
	if affected == 0 {
		return pass(CheckHumanRatingRanges,
			fmt.Sprintf("all rating cells in range across %d rating rows", len(ds.HumanRatings)))
	}
	parts := make([]string, 0, len(byColumn))
	for _, col := range sortedKeys(byColumn) {
		parts = append(parts, fmt.Sprintf("%s=%d", col, byColumn[col]))
	}
	return fail(CheckHumanRatingRanges, affected,
		fmt.Sprintf("cells out of range: %s", joinCapped(parts, 5)))
}
