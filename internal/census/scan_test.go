package census

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates an empty file, failing the test on error.
func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

// categorySum adds up all category counts in a result.
func categorySum(result *Result) int64 {
	var sum int64
	for _, count := range result.Categories {
		sum += count
	}

	return sum
}

func TestScanEmptyRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	var calls [][2]int

	result, err := Scan(context.Background(), root, func(done, total int) {
		calls = append(calls, [2]int{done, total})
	})
	require.NoError(t, err)

	assert.Zero(t, result.Files)
	assert.Zero(t, result.Folders)
	assert.Empty(t, result.Categories)
	assert.Equal(t, int64(1), result.Dirs)

	// The root itself is the only directory, so progress fires once at 100%.
	require.Len(t, calls, 1)
	assert.Equal(t, [2]int{1, 1}, calls[0])
}

func TestScanMixedTree(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"))
	writeFile(t, filepath.Join(root, "b.mp3"))
	writeFile(t, filepath.Join(root, "c.xyz"))
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))

	result, err := Scan(context.Background(), root, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.Files)
	assert.Equal(t, int64(1), result.Folders)
	assert.Equal(t, map[string]int64{
		"Images":      1,
		"Audio":       1,
		CategoryOther: 1,
	}, result.Categories)
	assert.Equal(t, result.Files, categorySum(result))
}

func TestScanProgressMonotonic(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, dir := range []string{"a", "b", "c", filepath.Join("c", "nested")} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}

	var calls [][2]int

	result, err := Scan(context.Background(), root, func(done, total int) {
		calls = append(calls, [2]int{done, total})
	})
	require.NoError(t, err)

	// root, a, b, c, c/nested
	require.Len(t, calls, 5)

	for i, call := range calls {
		assert.Equal(t, i+1, call[0], "progress index must be 1-based and strictly increasing")
		assert.Equal(t, 5, call[1])
	}

	last := calls[len(calls)-1]
	assert.Equal(t, last[1], last[0], "final call must report completion")
	assert.Equal(t, int64(5), result.Dirs)
}

func TestScanCountsPerDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs", "old"), 0o755))
	writeFile(t, filepath.Join(root, "readme.txt"))
	writeFile(t, filepath.Join(root, "docs", "spec.pdf"))
	writeFile(t, filepath.Join(root, "docs", "old", "draft.doc"))
	writeFile(t, filepath.Join(root, "docs", "old", "scan.png"))

	result, err := Scan(context.Background(), root, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(4), result.Files)
	assert.Equal(t, int64(2), result.Folders)
	assert.Equal(t, int64(3), result.Categories["Documents"])
	assert.Equal(t, int64(1), result.Categories["Images"])
	assert.Equal(t, result.Files, categorySum(result))
}

func TestScanNotFound(t *testing.T) {
	t.Parallel()

	result, err := Scan(context.Background(), filepath.Join(t.TempDir(), "missing"), nil)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, result)
}

func TestScanRootIsFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "plain.txt")
	writeFile(t, path)

	_, err := Scan(context.Background(), path, nil)
	require.ErrorContains(t, err, "not a directory")
}

func TestScanSkipsDeniedSubdir(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("permission bits not enforced on windows")
	}

	if os.Geteuid() == 0 {
		t.Skip("running as root bypasses permission checks")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "visible.txt"))

	denied := filepath.Join(root, "denied")
	require.NoError(t, os.Mkdir(denied, 0o755))
	writeFile(t, filepath.Join(denied, "hidden.txt"))
	require.NoError(t, os.Chmod(denied, 0o000))
	t.Cleanup(func() { _ = os.Chmod(denied, 0o755) })

	result, err := Scan(context.Background(), root, nil)
	require.NoError(t, err, "per-subdirectory denial must not fail the scan")

	// The denied directory still counts as a folder entry of root, but its
	// contents are undercounted.
	assert.Equal(t, int64(1), result.Files)
	assert.Equal(t, int64(1), result.Folders)
	assert.Equal(t, int64(1), result.SkippedDirs)
	assert.Equal(t, result.Files, categorySum(result))
}

func TestScanRootDenied(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("permission bits not enforced on windows")
	}

	if os.Geteuid() == 0 {
		t.Skip("running as root bypasses permission checks")
	}

	root := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(root, 0o755))
	writeFile(t, filepath.Join(root, "secret.txt"))
	require.NoError(t, os.Chmod(root, 0o000))
	t.Cleanup(func() { _ = os.Chmod(root, 0o755) })

	result, err := Scan(context.Background(), root, nil)
	require.ErrorIs(t, err, ErrPermission, "an unlistable root is fatal, not a zero-valued success")
	assert.Nil(t, result)
}

func TestScanIdempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))
	writeFile(t, filepath.Join(root, "a.mp4"))
	writeFile(t, filepath.Join(root, "sub", "b.zip"))

	first, err := Scan(context.Background(), root, nil)
	require.NoError(t, err)

	second, err := Scan(context.Background(), root, nil)
	require.NoError(t, err)

	// Elapsed varies between runs; every counted value must not.
	first.Elapsed = 0
	second.Elapsed = 0
	assert.Equal(t, first, second)
}

func TestScanCancelDuringCounting(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, dir := range []string{"a", "b", "c", "d"} {
		require.NoError(t, os.Mkdir(filepath.Join(root, dir), 0o755))
		writeFile(t, filepath.Join(root, dir, "f.txt"))
	}

	ctx, cancel := context.WithCancel(context.Background())

	var calls int

	result, err := Scan(ctx, root, func(_, _ int) {
		calls++
		cancel()
	})
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result, "cancellation must return the partial result")

	assert.Equal(t, 1, calls, "no further progress after cancellation")
	assert.Equal(t, result.Files, categorySum(result), "partial result must keep the invariant")
}

func TestScanCancelledBeforeStart(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Scan(ctx, t.TempDir(), nil)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Zero(t, result.Files)
}
