package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clustercheck/internal/sanity"
)

func sampleRun() *sanity.Run {
	return &sanity.Run{
		Rcut:         6.0,
		MinNeighbors: 10,
		Results: []sanity.Result{
			{ID: "cluster_1/c.xyz", OK: true, NumAtoms: 13, NumTarget: 1, NeighborCounts: []int{12}},
			{ID: "cluster_2/c.xyz", OK: true, NumAtoms: 20, NumTarget: 2, NeighborCounts: []int{14, 4}, Anomalous: true},
			{ID: "cluster_3/c.xyz", OK: true, NumAtoms: 15, NumTarget: 1, NeighborCounts: []int{10}},
			{ID: "cluster_4/c.xyz", Err: "no Xenon atoms found", Anomalous: true},
		},
	}
}

func TestSummarize(t *testing.T) {
	sum := Summarize(sampleRun())

	t.Run("counts", func(t *testing.T) {
		assert.Equal(t, 4, sum.Total)
		assert.Equal(t, 3, sum.Succeeded)
		assert.Equal(t, 1, sum.Failed)
		require.Len(t, sum.FailedResults, 1)
		assert.Equal(t, "no Xenon atoms found", sum.FailedResults[0].Err)
	})

	t.Run("composition ranges over successes only", func(t *testing.T) {
		assert.Equal(t, 13, sum.Atoms.Min)
		assert.Equal(t, 20, sum.Atoms.Max)
		assert.InDelta(t, 16.0, sum.Atoms.Mean, 1e-12)

		assert.Equal(t, 1, sum.Targets.Min)
		assert.Equal(t, 2, sum.Targets.Max)
		assert.InDelta(t, 4.0/3.0, sum.Targets.Mean, 1e-12)
	})

	t.Run("coordination distribution is flattened across atoms", func(t *testing.T) {
		// counts: 12, 14, 4, 10
		assert.Equal(t, 4, sum.Coordination.N)
		assert.Equal(t, 4, sum.Coordination.Min)
		assert.Equal(t, 14, sum.Coordination.Max)
		assert.InDelta(t, 10.0, sum.Coordination.Mean, 1e-12)
		// population std dev: sqrt((4+16+36+0)/4)
		assert.InDelta(t, 3.7416573867739413, sum.Coordination.Std, 1e-12)
	})

	t.Run("quality rates sum to 100 percent", func(t *testing.T) {
		assert.True(t, sum.HasRates)
		assert.Equal(t, 2, sum.Good)
		assert.Equal(t, 1, sum.Anomalous)
		assert.InDelta(t, 100.0, sum.GoodPct+sum.AnomalousPct, 1e-9)
	})

	t.Run("anomalous detail lists successful anomalies only", func(t *testing.T) {
		require.Len(t, sum.AnomalousResults, 1)
		assert.Equal(t, []int{14, 4}, sum.AnomalousResults[0].NeighborCounts)
		assert.Equal(t, 4, sum.AnomalousResults[0].MinCount())
	})
}

func TestSummarizeNoSuccesses(t *testing.T) {
	run := &sanity.Run{
		Rcut:         6.0,
		MinNeighbors: 10,
		Results: []sanity.Result{
			{ID: "cluster_1/c.xyz", Err: "boom", Anomalous: true},
		},
	}
	sum := Summarize(run)

	assert.Equal(t, 1, sum.Total)
	assert.Zero(t, sum.Succeeded)
	assert.False(t, sum.HasRates, "percentages are undefined with zero successes")
	assert.Zero(t, sum.Coordination.N)
}

func TestSummarizeEmptyRun(t *testing.T) {
	sum := Summarize(&sanity.Run{Rcut: 6.0, MinNeighbors: 10})
	assert.Zero(t, sum.Total)
	assert.False(t, sum.HasRates)
}
