package dq

import (
	"fmt"
	"math"
	"testing"

	"github.com/evalforge/evalharness/internal/tables"
)

func TestPercentile(t *testing.T) {
	cases := []struct {
		name   string
		values []int64
		p      float64
		want   float64
	}{
		{"empty", nil, 99, 0},
		{"single", []int64{42}, 99, 42},
		{"median of two", []int64{10, 20}, 50, 15},
		{"p99 of 1..100", seq(1, 100), 99, 99.01},
		{"p50 of 1..100", seq(1, 100), 50, 50.5},
		{"p0 is min", []int64{5, 1, 9}, 0, 1},
		{"p100 is max", []int64{5, 1, 9}, 100, 9},
		{"unsorted input", []int64{30, 10, 20}, 50, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := percentile(tc.values, tc.p)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("percentile(%v, %v) = %v, want %v", tc.values, tc.p, got, tc.want)
			}
		})
	}
}

func seq(lo, hi int64) []int64 {
	out := make([]int64, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		out = append(out, v)
	}
	return out
}

func latencyDataset(latencies []int64) *tables.Dataset {
	ds := &tables.Dataset{}
	for i, l := range latencies {
		ds.Runs = append(ds.Runs, tables.Run{
			RunID:     fmt.Sprintf("%d", i+1),
			LatencyMS: l,
		})
	}
	return ds
}

func TestLatencyOutliersInformational(t *testing.T) {
	// 200 uniform runs, one extreme value: 1 outlier out of 200 is 0.5%,
	// under the 1% fail fraction, so the check passes but reports it.
	latencies := make([]int64, 200)
	for i := range latencies {
		latencies[i] = 100
	}
	latencies[0] = 1_000_000

	res := checkLatencyOutliers(latencyDataset(latencies), DefaultConfig())
	if res.Status != StatusPass {
		t.Fatalf("status = %s, want pass (%s)", res.Status, res.Notes)
	}
	if res.RecordsAffected != 1 {
		t.Errorf("affected = %d, want 1", res.RecordsAffected)
	}
}

func TestLatencyOutliersFailAboveFraction(t *testing.T) {
	// Same single outlier, but with the tolerated fraction tightened to 0.1%
	// it is now over budget.
	latencies := make([]int64, 200)
	for i := range latencies {
		latencies[i] = 100
	}
	latencies[0] = 1_000_000

	cfg := DefaultConfig()
	cfg.OutlierFailFraction = 0.001
	res := checkLatencyOutliers(latencyDataset(latencies), cfg)
	if res.Status != StatusFail {
		t.Fatalf("status = %s, want fail (%s)", res.Status, res.Notes)
	}
	if res.RecordsAffected != 1 {
		t.Errorf("affected = %d, want 1", res.RecordsAffected)
	}
}

func TestLatencyOutliersUniformPasses(t *testing.T) {
	latencies := make([]int64, 50)
	for i := range latencies {
		latencies[i] = int64(100 + i)
	}
	res := checkLatencyOutliers(latencyDataset(latencies), DefaultConfig())
	if res.Status != StatusPass || res.RecordsAffected != 0 {
		t.Errorf("status = %s affected=%d, want pass affected=0 (%s)",
			res.Status, res.RecordsAffected, res.Notes)
	}
}

func TestLatencyOutliersEmptyTable(t *testing.T) {
	res := checkLatencyOutliers(&tables.Dataset{}, DefaultConfig())
	if res.Status != StatusPass || res.RecordsAffected != 0 {
		t.Errorf("status = %s affected=%d, want pass affected=0", res.Status, res.RecordsAffected)
	}
}
