// Package neighbor computes coordination environments around Xenon atoms
// and classifies structures against a minimum-coordination threshold.
package neighbor

import (
	"errors"
	"fmt"
	"math"

	"clustercheck/internal/xyz"
)

// TargetSymbol is the chemical species whose local environment is analyzed.
const TargetSymbol = "Xe"

// ErrNoTargetAtoms is returned when a structure contains no atoms of the
// target species. Callers treat it as an anomalous result.
var ErrNoTargetAtoms = errors.New("no Xenon atoms found")

// Report describes the neighborhood of a single target atom at a given
// cutoff. Distances are zero-valued when the atom has no neighbors.
type Report struct {
	AtomIndex int
	Count     int
	Neighbors []int
	MinDist   float64
	MaxDist   float64
	MeanDist  float64
}

// Analyze produces one Report per target atom in s, counting every other
// atom within rcut as a neighbor. The boundary is inclusive (d == rcut
// counts) and the target atom itself is excluded by index, so a distinct
// atom at the exact same position still counts.
func Analyze(s *xyz.Structure, rcut float64) ([]Report, error) {
	if len(s.Symbols) != len(s.Coords) {
		return nil, fmt.Errorf("structure has %d symbols but %d coordinates", len(s.Symbols), len(s.Coords))
	}

	var targets []int
	for i, sym := range s.Symbols {
		if sym == TargetSymbol {
			targets = append(targets, i)
		}
	}
	if len(targets) == 0 {
		return nil, ErrNoTargetAtoms
	}

	reports := make([]Report, 0, len(targets))
	for _, ti := range targets {
		rep := Report{AtomIndex: ti}
		var sum float64
		for j := range s.Coords {
			if j == ti {
				continue // self pair, never a neighbor
			}
			d := distance(s.Coords[ti], s.Coords[j])
			if d <= rcut {
				if rep.Count == 0 || d < rep.MinDist {
					rep.MinDist = d
				}
				if d > rep.MaxDist {
					rep.MaxDist = d
				}
				rep.Neighbors = append(rep.Neighbors, j)
				rep.Count++
				sum += d
			}
		}
		if rep.Count > 0 {
			rep.MeanDist = sum / float64(rep.Count)
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

// Anomalous reports whether any target atom falls below minNeighbors.
// The comparison is strict: a count exactly equal to the minimum passes.
func Anomalous(reports []Report, minNeighbors int) bool {
	for _, r := range reports {
		if r.Count < minNeighbors {
			return true
		}
	}
	return false
}

// Counts extracts the per-target neighbor counts in report order.
func Counts(reports []Report) []int {
	counts := make([]int, len(reports))
	for i, r := range reports {
		counts[i] = r.Count
	}
	return counts
}

func distance(a, b [3]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
