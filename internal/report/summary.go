// Package report aggregates run results into summary statistics and
// renders the per-structure status table and the analysis summary.
package report

import (
	"math"

	"clustercheck/internal/sanity"
)

// IntStats is min/max/mean over a set of per-structure integer counts.
type IntStats struct {
	Min  int
	Max  int
	Mean float64
}

// Distribution describes the flattened neighbor-count population across
// every target atom in every successful structure.
type Distribution struct {
	N    int
	Min  int
	Max  int
	Mean float64
	Std  float64 // population standard deviation
}

// Summary holds the aggregate statistics for one run. Percentages are
// over successful structures only; HasRates is false when there were no
// successes and the percentages are meaningless.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int

	Atoms   IntStats
	Targets IntStats

	Coordination Distribution

	Good         int
	Anomalous    int
	GoodPct      float64
	AnomalousPct float64
	HasRates     bool

	FailedResults    []sanity.Result
	AnomalousResults []sanity.Result
}

// Summarize computes the aggregate statistics for a run. It reads the
// Results but never mutates them.
func Summarize(run *sanity.Run) Summary {
	sum := Summary{Total: len(run.Results)}

	var atomCounts, targetCounts, coordination []int
	for _, res := range run.Results {
		if !res.OK {
			sum.Failed++
			sum.FailedResults = append(sum.FailedResults, res)
			continue
		}
		sum.Succeeded++
		atomCounts = append(atomCounts, res.NumAtoms)
		targetCounts = append(targetCounts, res.NumTarget)
		coordination = append(coordination, res.NeighborCounts...)
		if res.Anomalous {
			sum.Anomalous++
			sum.AnomalousResults = append(sum.AnomalousResults, res)
		} else {
			sum.Good++
		}
	}

	sum.Atoms = intStats(atomCounts)
	sum.Targets = intStats(targetCounts)
	sum.Coordination = distribution(coordination)

	if sum.Succeeded > 0 {
		sum.HasRates = true
		sum.GoodPct = 100 * float64(sum.Good) / float64(sum.Succeeded)
		sum.AnomalousPct = 100 * float64(sum.Anomalous) / float64(sum.Succeeded)
	}
	return sum
}

func intStats(values []int) IntStats {
	if len(values) == 0 {
		return IntStats{}
	}
	s := IntStats{Min: values[0], Max: values[0]}
	total := 0
	for _, v := range values {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		total += v
	}
	s.Mean = float64(total) / float64(len(values))
	return s
}

func distribution(values []int) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	base := intStats(values)
	d := Distribution{N: len(values), Min: base.Min, Max: base.Max, Mean: base.Mean}

	var sqsum float64
	for _, v := range values {
		diff := float64(v) - d.Mean
		sqsum += diff * diff
	}
	d.Std = math.Sqrt(sqsum / float64(len(values)))
	return d
}
