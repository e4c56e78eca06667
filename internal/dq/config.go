package dq

import "time"

// Defaults for the tunable thresholds. The sample-size band matches the
// stratified sampling target of the harness.
const (
	DefaultOutlierMultiplier   = 3.0
	DefaultOutlierFailFraction = 0.01
	DefaultMinRatingsPerCohort = 3
	DefaultTotalRatingsMin     = 80
	DefaultTotalRatingsMax     = 120
)

// Config carries the validation boundaries. ProjectStart and Now are explicit
// so tests can pin the clock; the CLI sets Now to the current instant.
type Config struct {
	// ProjectStart is the exclusive lower bound for run timestamps: a
	// timestamp at or before it fails the timestamp check.
	ProjectStart time.Time
	// Now is the inclusive upper bound for run timestamps.
	Now time.Time

	// OutlierMultiplier scales P99 latency into the outlier threshold.
	OutlierMultiplier float64
	// OutlierFailFraction is the share of outlier runs above which the
	// latency check stops being informational and fails.
	OutlierFailFraction float64

	// MinRatingsPerCohort is the minimum human-rating count per
	// (model, system_prompt_version, category) cohort.
	MinRatingsPerCohort int
	// TotalRatingsMin and TotalRatingsMax bound the overall human-rating
	// sample size.
	TotalRatingsMin int
	TotalRatingsMax int
}

// DefaultConfig returns a Config with the standard thresholds and a zero
// clock; callers must set ProjectStart and Now.
func DefaultConfig() Config {
	return Config{
		OutlierMultiplier:   DefaultOutlierMultiplier,
		OutlierFailFraction: DefaultOutlierFailFraction,
		MinRatingsPerCohort: DefaultMinRatingsPerCohort,
		TotalRatingsMin:     DefaultTotalRatingsMin,
		TotalRatingsMax:     DefaultTotalRatingsMax,
	}
}

// withDefaults fills unset thresholds and clock fields so a zero-value Config
// still validates sensibly.
func (c Config) withDefaults() Config {
	if c.OutlierMultiplier == 0 {
		c.OutlierMultiplier = DefaultOutlierMultiplier
	}
	if c.OutlierFailFraction == 0 {
		c.OutlierFailFraction = DefaultOutlierFailFraction
	}
	if c.MinRatingsPerCohort == 0 {
		c.MinRatingsPerCohort = DefaultMinRatingsPerCohort
	}
	if c.TotalRatingsMin == 0 {
		c.TotalRatingsMin = DefaultTotalRatingsMin
	}
	if c.TotalRatingsMax == 0 {
		c.TotalRatingsMax = DefaultTotalRatingsMax
	}
	if c.Now.IsZero() {
		c.Now = time.Now().UTC()
	}
	return c
}
