package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/Sumatoshi-tech/shapematch/internal/cache"
	"github.com/Sumatoshi-tech/shapematch/internal/lang"
	"github.com/Sumatoshi-tech/shapematch/pkg/tree"
)

// treeCache holds lowered trees across subcommand runs in one process, so a
// path scanned by several patterns is parsed once.
//
//nolint:gochecknoglobals // Process-wide cache shared by subcommands.
var treeCache = cache.NewTreeCache(cache.DefaultTreeCacheSize)

// ErrNoSourceFiles is returned when no supported source files are found.
var ErrNoSourceFiles = errors.New("no supported source files found")

// skipDirs are directory names never descended into during collection.
//
//nolint:gochecknoglobals // Static skip list.
var skipDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"dist":         {},
	"build":        {},
}

// collectSourceFiles expands paths (files or directories) into the sorted
// list of supported source files no larger than maxFileSize bytes.
func collectSourceFiles(paths []string, maxFileSize int) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if !info.IsDir() {
			if lang.IsSupported(path) && info.Size() <= int64(maxFileSize) {
				files = append(files, path)
			}

			continue
		}

		walkErr := filepath.WalkDir(path, func(entry string, dirEntry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if dirEntry.IsDir() {
				if _, skip := skipDirs[dirEntry.Name()]; skip {
					return filepath.SkipDir
				}

				return nil
			}

			if !lang.IsSupported(entry) {
				return nil
			}

			entryInfo, infoErr := dirEntry.Info()
			if infoErr != nil {
				return infoErr
			}

			if entryInfo.Size() > int64(maxFileSize) {
				return nil
			}

			files = append(files, entry)

			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walk %s: %w", path, walkErr)
		}
	}

	if len(files) == 0 {
		return nil, ErrNoSourceFiles
	}

	sort.Strings(files)

	return files, nil
}

// parsedFile pairs a source path with its lowered tree.
type parsedFile struct {
	path string
	root *tree.Node
}

// parseFiles parses every file concurrently, preserving the input order in
// the returned slice. The first parse error aborts the run.
func parseFiles(ctx context.Context, files []string, workers int) ([]parsedFile, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if workers > len(files) {
		workers = len(files)
	}

	results := make([]parsedFile, len(files))
	fileCh := make(chan int, workers)

	var firstErr atomic.Value

	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for idx := range fileCh {
				if firstErr.Load() != nil {
					return
				}

				content, readErr := os.ReadFile(files[idx])
				if readErr != nil {
					firstErr.CompareAndSwap(nil, fmt.Errorf("read %s: %w", files[idx], readErr))

					return
				}

				if cached := treeCache.Get(files[idx], int64(len(content))); cached != nil {
					results[idx] = parsedFile{path: files[idx], root: cached}

					continue
				}

				root, parseErr := lang.ParseFile(ctx, files[idx], content)
				if parseErr != nil {
					firstErr.CompareAndSwap(nil, fmt.Errorf("parse %s: %w", files[idx], parseErr))

					return
				}

				treeCache.Put(files[idx], root, int64(len(content)))

				results[idx] = parsedFile{path: files[idx], root: root}
			}
		}()
	}

	for idx := range files {
		if firstErr.Load() != nil {
			break
		}

		fileCh <- idx
	}

	close(fileCh)
	wg.Wait()

	if errVal := firstErr.Load(); errVal != nil {
		if err, ok := errVal.(error); ok {
			return nil, err
		}
	}

	return results, nil
}
