package census

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
)

var (
	// ErrNotFound reports that the scan root does not exist.
	ErrNotFound = errors.New("path not found")

	// ErrPermission reports that the scan root exists but cannot be listed.
	ErrPermission = errors.New("permission denied")
)

// classifyRootErr maps an OS error on the root path to a sentinel.
// Only root-level errors are fatal; subdirectory errors are skipped.
func classifyRootErr(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("scanning %q: %w", path, ErrNotFound)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("scanning %q: %w", path, ErrPermission)
	default:
		return fmt.Errorf("scanning %q: %w", path, err)
	}
}

// discover enumerates every directory under root, root included, and
// returns them in sorted order. The length of the returned slice is the
// progress denominator for the counting pass.
func discover(ctx context.Context, root string) ([]string, error) {
	var (
		mu   sync.Mutex
		dirs []string
	)

	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// A failure on the root itself means the scan cannot start.
			if path == root {
				return classifyRootErr(path, err)
			}

			return nil // Silently skip unreadable subtrees
		}

		// Check cancellation periodically
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !d.IsDir() {
			return nil
		}

		mu.Lock()
		dirs = append(dirs, path)
		mu.Unlock()

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	// fastwalk visits directories from multiple goroutines; fix an order
	// so progress and counting are deterministic across runs.
	sort.Strings(dirs)

	return dirs, nil
}

// Scan counts files and folders under root and buckets files into
// categories. onProgress, if non-nil, is called after each directory of
// the counting pass with the 1-based directory index and the total.
//
// The context is checked between directories; on cancellation Scan
// returns the partial Result accumulated so far together with ctx.Err(),
// so callers can tell an aborted scan from a completed one.
//
// Directories whose listing fails mid-scan are skipped and tallied in
// Result.SkippedDirs. A missing root fails with ErrNotFound, an
// unlistable root with ErrPermission.
func Scan(ctx context.Context, root string, onProgress ProgressFunc) (*Result, error) {
	if root == "" {
		root = "."
	}

	// Normalize to native format to handle both C:/Path and C:\Path inputs
	root = filepath.Clean(root)

	// validate path exists and is accessible
	if statInfo, err := os.Stat(root); err != nil {
		return nil, classifyRootErr(root, err)
	} else if !statInfo.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", root)
	}

	start := time.Now()

	dirs, err := discover(ctx, root)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// Nothing counted yet; hand back an empty partial result.
			return &Result{Categories: make(map[string]int64), Elapsed: time.Since(start)}, err
		}

		return nil, err
	}

	result := &Result{
		Categories: make(map[string]int64),
		Dirs:       int64(len(dirs)),
	}

	total := len(dirs)

	for i, dir := range dirs {
		select {
		case <-ctx.Done():
			result.Elapsed = time.Since(start)

			return result, ctx.Err()
		default:
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			// Unreadable directories are undercounted, never fatal.
			result.SkippedDirs++
		} else {
			for _, entry := range entries {
				if entry.IsDir() {
					result.Folders++
				} else {
					result.Files++
					result.Categories[Categorize(entry.Name())]++
				}
			}
		}

		if onProgress != nil {
			onProgress(i+1, total)
		}
	}

	result.Elapsed = time.Since(start)

	return result, nil
}
