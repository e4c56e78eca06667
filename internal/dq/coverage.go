package dq

import (
	"fmt"
	"sort"

	"github.com/evalforge/evalharness/internal/tables"
)

// configKey identifies a (model_name, system_prompt_version) pair.
type configKey struct {
	Model   string
	Version string
}

// cohortKey identifies a (model_name, system_prompt_version, category) triple.
type cohortKey struct {
	Model    string
	Version  string
	Category string
}

// checkPromptCoverage verifies that every observed (model, system prompt
// version) pair exercised the full prompt catalog. The expected count is
// derived from the prompt table, never hardcoded. The affected count is the
// total number of missing (model, version, prompt_id) combinations.
func checkPromptCoverage(ds *tables.Dataset, _ Config) CheckResult {
	catalog := make(map[string]struct{}, len(ds.Prompts))
	for _, p := range ds.Prompts {
		catalog[p.PromptID] = struct{}{}
	}

	covered := make(map[configKey]map[string]struct{})
	for _, r := range ds.Runs {
		key := configKey{r.ModelName, r.SystemPromptVersion}
		if covered[key] == nil {
			covered[key] = make(map[string]struct{})
		}
		covered[key][r.PromptID] = struct{}{}
	}

	pairs := make([]configKey, 0, len(covered))
	for key := range covered {
		pairs = append(pairs, key)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Model != pairs[j].Model {
			return pairs[i].Model < pairs[j].Model
		}
		return pairs[i].Version < pairs[j].Version
	})

	missing := make([]string, 0)
	for _, key := range pairs {
		for _, id := range sortedKeys(catalog) {
			if _, ok := covered[key][id]; !ok {
				missing = append(missing, fmt.Sprintf("(%s, %s, %s)", key.Model, key.Version, id))
			}
		}
	}

	if len(missing) == 0 {
		return pass(CheckPromptCoverage,
			fmt.Sprintf("%d configurations each cover all %d prompts", len(pairs), len(catalog)))
	}
	return fail(CheckPromptCoverage, len(missing),
		fmt.Sprintf("missing combinations: %s", joinCapped(missing, 10)))
}

// checkHumanRatingCoverage verifies the stratified human-rating sample: every
// (model, system_prompt_version, category) cohort present in the Run x Prompt
// join needs at least the configured minimum number of ratings, and the total
// rating count must stay within the configured band. The affected count is the
// number of under-covered cohorts; a total outside the band is reported in the
// notes.
func checkHumanRatingCoverage(ds *tables.Dataset, cfg Config) CheckResult {
	promptByID := make(map[string]tables.Prompt, len(ds.Prompts))
	for _, p := range ds.Prompts {
		promptByID[p.PromptID] = p
	}
	runByID := make(map[string]tables.Run, len(ds.Runs))
	for _, r := range ds.Runs {
		if _, ok := runByID[r.RunID]; !ok {
			runByID[r.RunID] = r
		}
	}

	ratingsPerCohort := make(map[cohortKey]int)
	for _, r := range ds.Runs {
		p, ok := promptByID[r.PromptID]
		if !ok {
			continue // orphan run; foreign_key_integrity owns this
		}
		key := cohortKey{r.ModelName, r.SystemPromptVersion, p.Category}
		if _, seen := ratingsPerCohort[key]; !seen {
			ratingsPerCohort[key] = 0
		}
	}
	for _, h := range ds.HumanRatings {
		run, ok := runByID[h.RunID]
		if !ok {
			continue
		}
		p, ok := promptByID[run.PromptID]
		if !ok {
			continue
		}
		ratingsPerCohort[cohortKey{run.ModelName, run.SystemPromptVersion, p.Category}]++
	}

	cohorts := make([]cohortKey, 0, len(ratingsPerCohort))
	for key := range ratingsPerCohort {
		cohorts = append(cohorts, key)
	}
	sort.Slice(cohorts, func(i, j int) bool {
		a, b := cohorts[i], cohorts[j]
		if a.Model != b.Model {
			return a.Model < b.Model
		}
		if a.Version != b.Version {
			return a.Version < b.Version
		}
		return a.Category < b.Category
	})

	under := make([]string, 0)
	for _, key := range cohorts {
		if n := ratingsPerCohort[key]; n < cfg.MinRatingsPerCohort {
			under = append(under, fmt.Sprintf("(%s, %s, %s)=%d", key.Model, key.Version, key.Category, n))
		}
	}

	total := len(ds.HumanRatings)
	totalOK := total >= cfg.TotalRatingsMin && total <= cfg.TotalRatingsMax

	notes := fmt.Sprintf("%d ratings over %d cohorts", total, len(cohorts))
	if !totalOK {
		notes = fmt.Sprintf("total rating count %d outside [%d, %d]",
			total, cfg.TotalRatingsMin, cfg.TotalRatingsMax)
	}
	if len(under) > 0 {
		notes += fmt.Sprintf("; under-covered cohorts: %s", joinCapped(under, 10))
	}

	if totalOK && len(under) == 0 {
		return pass(CheckHumanRatingCoverage, notes)
	}
	return fail(CheckHumanRatingCoverage, len(under), notes)
}
