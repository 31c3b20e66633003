// Package sanity drives cluster sanity-check runs over cluster directories
// and trajectory files, producing one immutable Result per structure.
package sanity

import (
	"path/filepath"
	"strings"

	"clustercheck/internal/neighbor"
	"clustercheck/internal/xyz"
)

// Result holds the analysis outcome for a single structure. It is built
// once and never mutated; failed results are always anomalous.
type Result struct {
	// ID is the coordinate file path in directory mode, or a synthetic
	// snapshot name in trajectory mode.
	ID             string
	OK             bool
	Err            string
	NumAtoms       int
	NumTarget      int
	NeighborCounts []int
	Reports        []neighbor.Report
	Anomalous      bool
}

// Label is the short name used in status lines and reports: the cluster
// folder for file-backed results, the raw ID otherwise.
func (r Result) Label() string {
	if strings.ContainsAny(r.ID, `/\`) {
		return filepath.Base(filepath.Dir(r.ID))
	}
	return r.ID
}

// MinCount returns the smallest per-target neighbor count, or 0 when the
// result carries none.
func (r Result) MinCount() int {
	if len(r.NeighborCounts) == 0 {
		return 0
	}
	min := r.NeighborCounts[0]
	for _, c := range r.NeighborCounts[1:] {
		if c < min {
			min = c
		}
	}
	return min
}

// Run is one full analysis pass: every Result in input order plus the
// parameters it was produced with.
type Run struct {
	Results      []Result
	Rcut         float64
	MinNeighbors int
}

// AnalyzeStructure analyzes one loaded structure. Analysis errors are
// folded into a failed, anomalous Result rather than propagated; the
// caller's loop keeps going either way.
func AnalyzeStructure(id string, s *xyz.Structure, rcut float64, minNeighbors int) Result {
	res := Result{ID: id, NumAtoms: s.Len()}

	reports, err := neighbor.Analyze(s, rcut)
	if err != nil {
		res.Err = err.Error()
		res.Anomalous = true
		return res
	}

	res.OK = true
	res.NumTarget = len(reports)
	res.Reports = reports
	res.NeighborCounts = neighbor.Counts(reports)
	res.Anomalous = neighbor.Anomalous(reports, minNeighbors)
	return res
}

// FailedResult records a structure that could not be loaded at all.
func FailedResult(id string, err error) Result {
	return Result{ID: id, Err: err.Error(), Anomalous: true}
}
