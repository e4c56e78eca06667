// Package sample builds the stratified human-rating sample: a subset of runs
// with guaranteed minimum representation per (model, system_prompt_version,
// category) cohort, sized to the rating budget the DQ gate later enforces.
package sample

import (
	"math/rand"
	"sort"
	"strconv"

	"github.com/evalforge/evalharness/internal/tables"
)

const (
	DefaultTargetSize = 100
	DefaultPerCohort  = 8
	DefaultSeed       = 42
)

// Options tune the sampler. The seed makes sampling reproducible so a
// re-generated template matches review spreadsheets already in flight.
type Options struct {
	TargetSize int
	PerCohort  int
	Seed       int64
}

func (o Options) withDefaults() Options {
	if o.TargetSize == 0 {
		o.TargetSize = DefaultTargetSize
	}
	if o.PerCohort == 0 {
		o.PerCohort = DefaultPerCohort
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	return o
}

// Cohort is the stratification key.
type Cohort struct {
	Model    string
	Version  string
	Category string
}

// Stratified draws up to PerCohort runs from every cohort, tops up from the
// remaining runs if under target, and trims randomly if over. Runs whose
// prompt cannot be resolved are excluded; the DQ gate reports those
// separately. The result is sorted by run_id.
func Stratified(prompts []tables.Prompt, runs []tables.Run, opts Options) []tables.Run {
	opts = opts.withDefaults()
	rng := rand.New(rand.NewSource(opts.Seed))

	promptByID := make(map[string]tables.Prompt, len(prompts))
	for _, p := range prompts {
		promptByID[p.PromptID] = p
	}

	cohorts := make(map[Cohort][]tables.Run)
	for _, run := range runs {
		p, ok := promptByID[run.PromptID]
		if !ok {
			continue
		}
		key := Cohort{run.ModelName, run.SystemPromptVersion, p.Category}
		cohorts[key] = append(cohorts[key], run)
	}

	keys := make([]Cohort, 0, len(cohorts))
	for key := range cohorts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return lessCohort(keys[i], keys[j]) })

	sampled := make([]tables.Run, 0, opts.TargetSize)
	sampledIDs := make(map[string]struct{})
	for _, key := range keys {
		bucket := cohorts[key]
		k := opts.PerCohort
		if k > len(bucket) {
			k = len(bucket)
		}
		for _, i := range rng.Perm(len(bucket))[:k] {
			sampled = append(sampled, bucket[i])
			sampledIDs[bucket[i].RunID] = struct{}{}
		}
	}

	if len(sampled) < opts.TargetSize {
		available := make([]tables.Run, 0)
		for _, run := range runs {
			if _, ok := promptByID[run.PromptID]; !ok {
				continue
			}
			if _, ok := sampledIDs[run.RunID]; !ok {
				available = append(available, run)
			}
		}
		need := opts.TargetSize - len(sampled)
		if need > len(available) {
			need = len(available)
		}
		for _, i := range rng.Perm(len(available))[:need] {
			sampled = append(sampled, available[i])
			sampledIDs[available[i].RunID] = struct{}{}
		}
	}

	if len(sampled) > opts.TargetSize {
		trimmed := make([]tables.Run, 0, opts.TargetSize)
		for _, i := range rng.Perm(len(sampled))[:opts.TargetSize] {
			trimmed = append(trimmed, sampled[i])
		}
		sampled = trimmed
	}

	sort.Slice(sampled, func(i, j int) bool {
		return lessRunID(sampled[i].RunID, sampled[j].RunID)
	})
	return sampled
}

// Breakdown counts sampled runs per cohort, sorted, for the console table.
func Breakdown(prompts []tables.Prompt, sampled []tables.Run) []CohortCount {
	promptByID := make(map[string]tables.Prompt, len(prompts))
	for _, p := range prompts {
		promptByID[p.PromptID] = p
	}
	counts := make(map[Cohort]int)
	for _, run := range sampled {
		p, ok := promptByID[run.PromptID]
		if !ok {
			continue
		}
		counts[Cohort{run.ModelName, run.SystemPromptVersion, p.Category}]++
	}
	out := make([]CohortCount, 0, len(counts))
	for key, n := range counts {
		out = append(out, CohortCount{Cohort: key, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return lessCohort(out[i].Cohort, out[j].Cohort) })
	return out
}

type CohortCount struct {
	Cohort Cohort
	Count  int
}

func lessCohort(a, b Cohort) bool {
	if a.Model != b.Model {
		return a.Model < b.Model
	}
	if a.Version != b.Version {
		return a.Version < b.Version
	}
	return a.Category < b.Category
}

// lessRunID orders numerically when both ids parse as integers, falling back
// to lexicographic order.
func lessRunID(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}
