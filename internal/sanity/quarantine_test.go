package sanity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMoveAnomalous(t *testing.T) {
	t.Run("moves anomalous folders with their contents", func(t *testing.T) {
		base := t.TempDir()
		writeCluster(t, base, 1, 12)
		badFile := writeCluster(t, base, 2, 4)
		extras := filepath.Join(filepath.Dir(badFile), "energies.dat")
		require.NoError(t, os.WriteFile(extras, []byte("-42.0\n"), 0o644))

		run, err := ScanDir(base, 6.0, 10, zap.NewNop(), nil)
		require.NoError(t, err)

		outcomes := MoveAnomalous(run, base, QuarantineDirName, zap.NewNop())
		require.Len(t, outcomes, 1)
		assert.True(t, outcomes[0].OK)
		assert.Equal(t, "cluster_2", outcomes[0].Cluster)

		// Source folder is gone, quarantined copy is intact.
		assert.NoDirExists(t, filepath.Join(base, "cluster_2"))
		moved := filepath.Join(base, QuarantineDirName, "cluster_2")
		assert.DirExists(t, moved)
		assert.FileExists(t, filepath.Join(moved, "coord_2ClusterAroundXeNew.xyz"))
		data, err := os.ReadFile(filepath.Join(moved, "energies.dat"))
		require.NoError(t, err)
		assert.Equal(t, "-42.0\n", string(data))

		// The good cluster stays put.
		assert.DirExists(t, filepath.Join(base, "cluster_1"))
	})

	t.Run("overwrites an existing quarantined folder", func(t *testing.T) {
		base := t.TempDir()
		writeCluster(t, base, 5, 2)

		stale := filepath.Join(base, QuarantineDirName, "cluster_5")
		require.NoError(t, os.MkdirAll(stale, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(stale, "old.txt"), []byte("stale"), 0o644))

		run, err := ScanDir(base, 6.0, 10, zap.NewNop(), nil)
		require.NoError(t, err)

		outcomes := MoveAnomalous(run, base, QuarantineDirName, zap.NewNop())
		require.Len(t, outcomes, 1)
		assert.True(t, outcomes[0].OK)

		assert.NoFileExists(t, filepath.Join(stale, "old.txt"))
		assert.FileExists(t, filepath.Join(stale, "coord_5ClusterAroundXeNew.xyz"))
	})

	t.Run("failed results are not moved", func(t *testing.T) {
		base := t.TempDir()
		dir := filepath.Join(base, "cluster_1")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		bad := filepath.Join(dir, "coord_1ClusterAroundXeNew.xyz")
		require.NoError(t, os.WriteFile(bad, []byte("garbage\n"), 0o644))

		run, err := ScanDir(base, 6.0, 10, zap.NewNop(), nil)
		require.NoError(t, err)

		outcomes := MoveAnomalous(run, base, QuarantineDirName, zap.NewNop())
		assert.Empty(t, outcomes)
		assert.DirExists(t, dir)
	})

	t.Run("good clusters are never moved", func(t *testing.T) {
		base := t.TempDir()
		writeCluster(t, base, 1, 12)

		run, err := ScanDir(base, 6.0, 10, zap.NewNop(), nil)
		require.NoError(t, err)

		outcomes := MoveAnomalous(run, base, QuarantineDirName, zap.NewNop())
		assert.Empty(t, outcomes)
		assert.DirExists(t, filepath.Join(base, "cluster_1"))
	})

	t.Run("configured quarantine name replaces the default", func(t *testing.T) {
		base := t.TempDir()
		writeCluster(t, base, 3, 1)

		run, err := ScanDir(base, 6.0, 10, zap.NewNop(), nil)
		require.NoError(t, err)

		outcomes := MoveAnomalous(run, base, "rejects", zap.NewNop())
		require.Len(t, outcomes, 1)
		assert.True(t, outcomes[0].OK)
		assert.Contains(t, outcomes[0].Message, "Moved cluster_3 to rejects")

		assert.DirExists(t, filepath.Join(base, "rejects", "cluster_3"))
		assert.NoDirExists(t, filepath.Join(base, QuarantineDirName))
	})

	t.Run("empty quarantine name falls back to the default", func(t *testing.T) {
		base := t.TempDir()
		writeCluster(t, base, 4, 1)

		run, err := ScanDir(base, 6.0, 10, zap.NewNop(), nil)
		require.NoError(t, err)

		outcomes := MoveAnomalous(run, base, "", zap.NewNop())
		require.Len(t, outcomes, 1)
		assert.DirExists(t, filepath.Join(base, QuarantineDirName, "cluster_4"))
	})

	t.Run("one failed move does not stop the rest", func(t *testing.T) {
		base := t.TempDir()
		writeCluster(t, base, 1, 2)
		writeCluster(t, base, 2, 3)

		run, err := ScanDir(base, 6.0, 10, zap.NewNop(), nil)
		require.NoError(t, err)

		// Remove one source folder after analysis so its move fails.
		require.NoError(t, os.RemoveAll(filepath.Join(base, "cluster_1")))

		outcomes := MoveAnomalous(run, base, QuarantineDirName, zap.NewNop())
		require.Len(t, outcomes, 2)
		assert.False(t, outcomes[0].OK)
		assert.Contains(t, outcomes[0].Message, "Failed to move cluster_1")
		assert.True(t, outcomes[1].OK)
		assert.DirExists(t, filepath.Join(base, QuarantineDirName, "cluster_2"))
	})
}

func TestCopyDir(t *testing.T) {
	t.Run("copies nested trees with contents", func(t *testing.T) {
		src := filepath.Join(t.TempDir(), "cluster_9")
		require.NoError(t, os.MkdirAll(filepath.Join(src, "sub"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(src, "coord.xyz"), []byte(clusterXYZ(2)), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(src, "sub", "energies.dat"), []byte("-1.5\n"), 0o644))

		dst := filepath.Join(t.TempDir(), "cluster_9")
		require.NoError(t, copyDir(src, dst))

		data, err := os.ReadFile(filepath.Join(dst, "sub", "energies.dat"))
		require.NoError(t, err)
		assert.Equal(t, "-1.5\n", string(data))
		assert.FileExists(t, filepath.Join(dst, "coord.xyz"))
	})

	t.Run("missing source is an error", func(t *testing.T) {
		err := copyDir(filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "out"))
		assert.Error(t, err)
	})
}
