package sanity

import (
	"fmt"

	"go.uber.org/zap"

	"clustercheck/internal/xyz"
)

// ProgressFunc is invoked after each structure with the number processed
// so far and the total. A nil ProgressFunc disables progress reporting.
type ProgressFunc func(done, total int)

// ScanDir runs directory-mode analysis: discover cluster files under
// baseDir, analyze them strictly in cluster-number order, and collect one
// Result each. Only discovery failure is fatal; per-structure load and
// analysis errors become failed Results.
func ScanDir(baseDir string, rcut float64, minNeighbors int, logger *zap.Logger, progress ProgressFunc) (*Run, error) {
	files, err := FindClusterFiles(baseDir)
	if err != nil {
		return nil, err
	}
	return AnalyzeFiles(files, rcut, minNeighbors, logger, progress), nil
}

// AnalyzeFiles analyzes an already-discovered list of coordinate files in
// the given order, one Result per file.
func AnalyzeFiles(files []string, rcut float64, minNeighbors int, logger *zap.Logger, progress ProgressFunc) *Run {
	run := &Run{Rcut: rcut, MinNeighbors: minNeighbors}
	for i, path := range files {
		s, err := xyz.ReadFile(path)
		if err != nil {
			logger.Debug("cluster load failed", zap.String("file", path), zap.Error(err))
			run.Results = append(run.Results, FailedResult(path, err))
		} else {
			run.Results = append(run.Results, AnalyzeStructure(path, s, rcut, minNeighbors))
		}
		if progress != nil {
			progress(i+1, len(files))
		}
	}
	return run
}

// ScanTrajectory runs trajectory-mode analysis over every frame of a
// multi-frame XYZ file. An unreadable trajectory is fatal; per-frame
// analysis errors become failed Results.
func ScanTrajectory(path string, rcut float64, minNeighbors int, progress ProgressFunc) (*Run, error) {
	frames, err := xyz.ReadTrajectoryFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trajectory: %w", err)
	}

	run := &Run{Rcut: rcut, MinNeighbors: minNeighbors}
	for i, s := range frames {
		id := fmt.Sprintf("snapshot_%d", i)
		run.Results = append(run.Results, AnalyzeStructure(id, s, rcut, minNeighbors))
		if progress != nil {
			progress(i+1, len(frames))
		}
	}
	return run, nil
}
