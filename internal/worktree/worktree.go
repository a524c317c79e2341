// Package worktree snapshots a working directory into a filesystem.Directory.
package worktree

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	billyutil "github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
	"golang.org/x/exp/mmap"

	"github.com/keshon/surf/internal/config"
	"github.com/keshon/surf/internal/filesystem"
	"github.com/keshon/surf/internal/progress"
	"github.com/keshon/surf/internal/util"
)

// MmapThreshold is the size from which files are memory-mapped instead of
// read through the billy filesystem.
const MmapThreshold = 1 << 20

// Options controls how a working tree is read.
type Options struct {
	Ignore *Ignore
	Hidden []string
	// Root is the OS directory behind the filesystem, if any. Large files
	// under it are memory-mapped.
	Root string
	// Progress receives a spinner while files are read. Nil disables it.
	Progress io.Writer
	Workers  int
	Logger   *zap.Logger
}

// OptionsFromConfig derives loader options from the project configuration.
func OptionsFromConfig(fsys billy.Filesystem, cfg config.Config) (Options, error) {
	ignore, err := LoadIgnore(fsys, cfg.Ignore)
	if err != nil {
		return Options{}, fmt.Errorf("load %s: %w", config.IgnoreFile, err)
	}
	return Options{Ignore: ignore, Hidden: cfg.Hidden}, nil
}

// Scan returns the slash separated paths of all files in fsys that are not
// ignored, in lexical order.
func Scan(fsys billy.Filesystem, ignore *Ignore) ([]string, error) {
	if ignore == nil {
		ignore = NewIgnore(config.DefaultIgnoredFiles...)
	}

	var paths []string
	err := billyutil.Walk(fsys, ".", func(name string, info os.FileInfo, err error) error {
		if err != nil {
			if name == "." && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		if name == "." {
			return nil
		}

		clean := filepath.ToSlash(name)

		// Skip ignored directories
		if info.IsDir() {
			if ignore.Match(clean) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isRegularOrLink(info.Mode()) || ignore.Match(clean) {
			return nil
		}

		paths = append(paths, clean)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(paths)
	return paths, nil
}

// Load reads every file of fsys that is not ignored into a Directory.
// Contents are read concurrently; insertion happens in path order.
func Load(ctx context.Context, fsys billy.Filesystem, opts Options) (filesystem.Directory, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = util.WorkerCount()
	}

	names, err := Scan(fsys, opts.Ignore)
	if err != nil {
		return filesystem.Directory{}, fmt.Errorf("scan working tree: %w", err)
	}

	var tracker *progress.ProgressTracker
	if opts.Progress != nil {
		tracker = progress.NewProgress(opts.Progress, len(names), "Reading files")
	}

	type job struct {
		index int
		name  string
	}
	jobs := make([]job, len(names))
	for i, n := range names {
		jobs[i] = job{index: i, name: n}
	}

	contents := make([][]byte, len(names))
	err = util.Parallel(ctx, jobs, workers, func(ctx context.Context, j job) error {
		data, err := readFile(fsys, opts.Root, j.name)
		if err != nil {
			return fmt.Errorf("read %s: %w", j.name, err)
		}
		contents[j.index] = data
		if tracker != nil {
			tracker.Increment()
		}
		return nil
	})
	if tracker != nil {
		tracker.Finish()
	}
	if err != nil {
		return filesystem.Directory{}, err
	}

	hidden := func(name string) bool { return slices.Contains(opts.Hidden, name) }
	dir := filesystem.NewDirectory()
	for i, name := range names {
		p, err := filesystem.ParsePath(strings.TrimPrefix(name, "./"))
		if err != nil {
			return filesystem.Directory{}, fmt.Errorf("path %s: %w", name, err)
		}
		dir.InsertFile(p.WithHidden(hidden), filesystem.NewFile(contents[i]))
	}

	logger.Debug("working tree loaded", zap.Int("files", len(names)), zap.Int("bytes", dir.Size()))
	return dir, nil
}

func isRegularOrLink(mode os.FileMode) bool {
	return mode.IsRegular() || mode&os.ModeSymlink != 0
}

// readFile returns the contents of name. A symbolic link reads as its target,
// which is what git stores for it.
func readFile(fsys billy.Filesystem, root, name string) ([]byte, error) {
	info, err := fsys.Lstat(name)
	if err != nil {
		return nil, err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := fsys.Readlink(name)
		if err != nil {
			return nil, err
		}
		return []byte(filepath.ToSlash(target)), nil
	}
	if root == "" || info.Size() < MmapThreshold {
		return billyutil.ReadFile(fsys, name)
	}

	r, err := mmap.Open(filepath.Join(root, filepath.FromSlash(name)))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data := make([]byte, r.Len())
	if _, err := r.ReadAt(data, 0); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return data, nil
}
