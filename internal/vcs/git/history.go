package git

import (
	"context"
	"errors"
	"fmt"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"go.uber.org/zap"

	"github.com/keshon/surf/internal/filesystem"
	"github.com/keshon/surf/internal/tree"
)

// Commit is the part of a git commit shown to users.
type Commit struct {
	ID      string
	Author  string
	Email   string
	Summary string
	Time    time.Time

	// seq is the position in the history walk, 0 being the newest.
	seq int
}

func newCommit(c *object.Commit, seq int) Commit {
	return Commit{
		ID:      c.Hash.String(),
		Author:  c.Author.Name,
		Email:   c.Author.Email,
		Summary: summary(c.Message),
		Time:    c.Author.When,
		seq:     seq,
	}
}

func summary(msg string) string {
	for i, r := range msg {
		if r == '\n' {
			return msg[:i]
		}
	}
	return msg
}

// History lists the commits that touched one file, newest first.
type History struct {
	name    filesystem.Label
	Commits []Commit
}

// Key implements tree.Keyed.
func (h History) Key() filesystem.Label { return h.name }

// Name returns the file name the history belongs to.
func (h History) Name() filesystem.Label { return h.name }

// Latest returns the newest commit.
func (h History) Latest() Commit { return h.Commits[0] }

// Histories indexes file histories by path.
type Histories = tree.Forest[filesystem.Label, History]

// FileHistory walks the history reachable from rev and records, for every
// path, the commits that added or changed it.
func (r *Repository) FileHistory(ctx context.Context, rev string) (Histories, error) {
	var histories Histories
	start, err := r.Commit(rev)
	if err != nil {
		return histories, err
	}
	iter, err := r.repo.Log(&gogit.LogOptions{From: start.Hash, Order: gogit.LogOrderCommitterTime})
	if err != nil {
		return histories, fmt.Errorf("log %s: %w", rev, err)
	}
	defer iter.Close()

	seq := 0
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		paths, err := r.touched(ctx, c)
		if err != nil {
			return err
		}
		commit := newCommit(c, seq)
		seq++
		for _, p := range paths {
			dirs, name := p.SplitLast()
			histories.InsertWith(dirs, History{name: name, Commits: []Commit{commit}},
				func(h History) History {
					h.Commits = append(h.Commits, commit)
					return h
				})
		}
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return Histories{}, err
	}
	r.opts.Logger.Debug("file history collected", zap.String("rev", rev), zap.Int("commits", seq))
	return histories, nil
}

// touched returns the paths c changed relative to its first parent.
func (r *Repository) touched(ctx context.Context, c *object.Commit) ([]filesystem.Path, error) {
	t, err := c.Tree()
	if err != nil {
		return nil, err
	}
	var parentTree *object.Tree
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return nil, err
		}
		if parentTree, err = parent.Tree(); err != nil {
			return nil, err
		}
	}
	changes, err := object.DiffTreeWithOptions(ctx, parentTree, t, &object.DiffTreeOptions{})
	if err != nil {
		return nil, err
	}
	paths := make([]filesystem.Path, 0, len(changes))
	for _, ch := range changes {
		name := ch.To.Name
		if name == "" {
			name = ch.From.Name
		}
		p, err := changePath(name)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// LastCommit returns the newest commit reachable from rev that touched
// path, which may name a file or a directory.
func (r *Repository) LastCommit(ctx context.Context, rev string, path filesystem.Path) (Commit, bool, error) {
	histories, err := r.FileHistory(ctx, rev)
	if err != nil {
		return Commit{}, false, err
	}
	if histories.IsEmpty() {
		return Commit{}, false, ErrNoCommits
	}
	c, ok := LastCommitIn(histories, path)
	return c, ok, nil
}

// LastCommitIn finds the newest commit for path in histories. The root
// path covers every file.
func LastCommitIn(histories Histories, path filesystem.Path) (Commit, bool) {
	newest := func(a, b History) int { return b.Latest().seq - a.Latest().seq }

	if path.IsRoot() {
		h, ok := histories.MaximumBy(newest)
		if !ok {
			return Commit{}, false
		}
		return h.Latest(), true
	}
	sub := histories.Find(path.Relative())
	if sub == nil {
		return Commit{}, false
	}
	if sub.IsNode() {
		return sub.Value().Latest(), true
	}
	forest := sub.Forest()
	h, ok := forest.MaximumBy(newest)
	if !ok {
		return Commit{}, false
	}
	return h.Latest(), true
}
