package sanity

import (
	"errors"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ClusterGlob matches one coordinate file inside each cluster folder.
const ClusterGlob = "cluster_*/coord_*ClusterAroundXeNew.xyz"

// ErrNoClusters is the fatal discovery error: nothing under the base
// directory matched ClusterGlob.
var ErrNoClusters = errors.New("no cluster files found")

// FindClusterFiles globs for cluster coordinate files under baseDir and
// returns them sorted by ascending cluster number. Folders whose number
// cannot be parsed sort as 0.
func FindClusterFiles(baseDir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(baseDir, ClusterGlob))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ErrNoClusters
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return clusterNumber(matches[i]) < clusterNumber(matches[j])
	})
	return matches, nil
}

// clusterNumber extracts N from a path ending .../cluster_N/coord_*.xyz.
func clusterNumber(path string) int {
	dir := filepath.Base(filepath.Dir(path))
	_, num, found := strings.Cut(dir, "_")
	if !found {
		return 0
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0
	}
	return n
}
