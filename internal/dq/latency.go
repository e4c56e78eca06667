package dq

import (
	"fmt"
	"math"
	"sort"

	"github.com/evalforge/evalharness/internal/tables"
)

// percentile computes the p-th percentile (0-100) of values using linear
// interpolation between closest ranks: rank = p/100 * (n-1), interpolated
// between floor and ceil. This is the method numpy and most spreadsheet tools
// default to; it must stay fixed because the outlier threshold depends on it.
func percentile(values []int64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	for i, v := range values {
		sorted[i] = float64(v)
	}
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// checkLatencyOutliers flags runs whose latency exceeds the configured
// multiple of the P99 latency. The check is informational by default: it
// passes while reporting the outlier count, and only fails when outliers
// exceed the configured fraction of all runs.
func checkLatencyOutliers(ds *tables.Dataset, cfg Config) CheckResult {
	if len(ds.Runs) == 0 {
		return pass(CheckLatencyOutliers, "no runs")
	}

	latencies := make([]int64, len(ds.Runs))
	for i, r := range ds.Runs {
		latencies[i] = r.LatencyMS
	}
	p99 := percentile(latencies, 99)
	threshold := cfg.OutlierMultiplier * p99

	outliers := 0
	for _, r := range ds.Runs {
		if float64(r.LatencyMS) > threshold {
			outliers++
		}
	}

	notes := fmt.Sprintf("p99=%.1fms threshold=%.1fms outliers=%d of %d runs",
		p99, threshold, outliers, len(ds.Runs))
	if float64(outliers) > cfg.OutlierFailFraction*float64(len(ds.Runs)) {
		return fail(CheckLatencyOutliers, outliers,
			fmt.Sprintf("%s; outlier share exceeds %.0f%%", notes, cfg.OutlierFailFraction*100))
	}
	return passAffected(CheckLatencyOutliers, outliers, notes+" (informational)")
}
