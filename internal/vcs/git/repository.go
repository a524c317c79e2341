// Package git produces directory snapshots, diffs and file histories from a
// git repository.
package git

import (
	"context"
	"fmt"
	"io"
	"slices"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"go.uber.org/zap"

	"github.com/keshon/surf/internal/filesystem"
	"github.com/keshon/surf/internal/patch"
)

// Head is the revision used when none is given.
const Head = "HEAD"

// Options tunes how a Repository reads git data.
type Options struct {
	Logger *zap.Logger
	// Hidden names are marked hidden in snapshots.
	Hidden []string
	// Context is the number of unchanged lines around each hunk change.
	Context int
	// DetectRenames pairs deleted and added files into moves.
	DetectRenames bool
}

// DefaultOptions returns the options used by Open.
func DefaultOptions() Options {
	return Options{
		Logger:        zap.NewNop(),
		Hidden:        []string{".git"},
		Context:       patch.DefaultContext,
		DetectRenames: true,
	}
}

// Repository wraps a go-git repository.
type Repository struct {
	repo *gogit.Repository
	opts Options
}

// Open opens the repository at path, searching parent directories for the
// .git directory.
func Open(path string, opts Options) (*Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}
	return New(repo, opts), nil
}

// New wraps an already opened repository.
func New(repo *gogit.Repository, opts Options) *Repository {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Repository{repo: repo, opts: opts}
}

// Unwrap returns the underlying go-git repository.
func (r *Repository) Unwrap() *gogit.Repository { return r.repo }

func (r *Repository) hidden(name string) bool {
	return slices.Contains(r.opts.Hidden, name)
}

// Commit resolves rev to a commit.
func (r *Repository) Commit(rev string) (*object.Commit, error) {
	if rev == "" {
		rev = Head
	}
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", rev, err)
	}
	c, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("load commit %s: %w", hash, err)
	}
	return c, nil
}

func (r *Repository) tree(rev string) (*object.Tree, error) {
	c, err := r.Commit(rev)
	if err != nil {
		return nil, err
	}
	t, err := c.Tree()
	if err != nil {
		return nil, fmt.Errorf("load tree of %s: %w", c.Hash, err)
	}
	return t, nil
}

// Directory builds a snapshot of every file in the tree of rev.
func (r *Repository) Directory(ctx context.Context, rev string) (filesystem.Directory, error) {
	t, err := r.tree(rev)
	if err != nil {
		return filesystem.Directory{}, err
	}
	return r.snapshot(ctx, t)
}

func (r *Repository) snapshot(ctx context.Context, t *object.Tree) (filesystem.Directory, error) {
	dir := filesystem.NewDirectory()
	if t == nil {
		return dir, nil
	}
	count := 0
	err := t.Files().ForEach(func(f *object.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		path, err := filesystem.ParsePath(f.Name)
		if err != nil {
			return err
		}
		contents, err := readFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f.Name, err)
		}
		dir.InsertFile(path.WithHidden(r.hidden), filesystem.NewFile(contents))
		count++
		return nil
	})
	if err != nil {
		return filesystem.Directory{}, err
	}
	r.opts.Logger.Debug("snapshot built", zap.Stringer("tree", t.Hash), zap.Int("files", count))
	return dir, nil
}

func readFile(f *object.File) ([]byte, error) {
	rd, err := f.Reader()
	if err != nil {
		return nil, err
	}
	defer rd.Close()
	return io.ReadAll(rd)
}
