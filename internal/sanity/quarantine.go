package sanity

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// QuarantineDirName is the default holding directory for anomalous
// clusters, created under the base directory on first move.
const QuarantineDirName = "bad_seeds"

// MoveOutcome records one quarantine move attempt.
type MoveOutcome struct {
	Cluster string
	OK      bool
	Message string
}

// MoveAnomalous relocates the parent folder of every successfully analyzed
// anomalous Result into baseDir/<quarantine>. An empty quarantine name
// falls back to QuarantineDirName. An existing destination of the same
// name is removed first (overwrite, not merge). Moves are destructive and
// run strictly after analysis; one failure does not stop the rest.
func MoveAnomalous(run *Run, baseDir, quarantine string, logger *zap.Logger) []MoveOutcome {
	if quarantine == "" {
		quarantine = QuarantineDirName
	}
	qdir := filepath.Join(baseDir, quarantine)

	var outcomes []MoveOutcome
	for _, res := range run.Results {
		if !res.OK || !res.Anomalous {
			continue
		}
		outcomes = append(outcomes, moveCluster(res.ID, qdir, logger))
	}
	return outcomes
}

func moveCluster(coordFile, quarantine string, logger *zap.Logger) MoveOutcome {
	src := filepath.Dir(coordFile)
	name := filepath.Base(src)
	dst := filepath.Join(quarantine, name)

	if err := os.MkdirAll(quarantine, 0o755); err != nil {
		return moveFailed(name, err, logger)
	}
	if _, err := os.Stat(dst); err == nil {
		if err := os.RemoveAll(dst); err != nil {
			return moveFailed(name, err, logger)
		}
	}
	if err := os.Rename(src, dst); err != nil {
		// Rename cannot cross filesystems; copy the tree and delete
		// the source instead.
		if err := copyDir(src, dst); err != nil {
			return moveFailed(name, err, logger)
		}
		if err := os.RemoveAll(src); err != nil {
			return moveFailed(name, err, logger)
		}
	}
	return MoveOutcome{Cluster: name, OK: true, Message: fmt.Sprintf("Moved %s to %s", name, filepath.Base(quarantine))}
}

func moveFailed(name string, err error, logger *zap.Logger) MoveOutcome {
	logger.Warn("quarantine move failed", zap.String("cluster", name), zap.Error(err))
	return MoveOutcome{Cluster: name, Message: fmt.Sprintf("Failed to move %s: %v", name, err)}
}

// copyDir recursively copies the directory tree at src to dst, preserving
// file permissions.
func copyDir(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, info.Mode().Perm())
		}
		return copyFile(path, target, info.Mode().Perm())
	})
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
