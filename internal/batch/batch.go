// Package batch drives per-file conversions over a directory tree: file
// discovery, a bounded worker pool, success/failure tallying and duplicate
// output-name resolution. Each file's transform is independent, so one
// corrupt input never stops the rest of the batch.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/semidata/plexconv-cli/internal/logging"
)

// Failure records one file that did not convert.
type Failure struct {
	File string
	Err  error
}

// Result is the final tally of a batch run.
type Result struct {
	Converted int
	Errors    int
	Failures  []Failure
}

// FindFiles walks root and returns every regular file with the given
// extension (case-insensitive), sorted for deterministic logs.
func FindFiles(root, ext string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Run converts every file through fn on a pool of workers. A failed file is
// recorded and logged; the batch continues. No ordering is guaranteed
// between files.
func Run(ctx context.Context, files []string, workers int, log *logging.Logger, fn func(path string) error) Result {
	if workers < 1 {
		workers = 1
	}

	var (
		mu     sync.Mutex
		result Result
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, file := range files {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			err := fn(file)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors++
				result.Failures = append(result.Failures, Failure{File: file, Err: err})
				log.Logf(filepath.Base(file), "failed: %v", err)
				return nil
			}
			result.Converted++
			if result.Converted%50 == 0 {
				log.Logf("", "converted %d/%d files", result.Converted, len(files))
			}
			return nil
		})
	}

	_ = g.Wait()
	return result
}

// UniquePath returns dir/stem+ext, appending an incrementing numeric suffix
// while the name is taken. A prior result is never silently overwritten.
func UniquePath(dir, stem, ext string) string {
	path := filepath.Join(dir, stem+ext)
	for counter := 1; Exists(path); counter++ {
		path = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
	}
	return path
}

// Exists reports whether path is already taken on disk. Callers resolving
// name collisions against their own pending set must check this too, or a
// generated suffix can land on an existing file.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
