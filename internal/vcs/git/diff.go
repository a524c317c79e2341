package git

import (
	"context"
	"fmt"

	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
	"go.uber.org/zap"

	"github.com/keshon/surf/internal/diff"
	"github.com/keshon/surf/internal/filesystem"
	"github.com/keshon/surf/internal/patch"
)

// changes lists the tree changes from rev from to rev to. An empty from
// compares against the empty tree.
func (r *Repository) changes(ctx context.Context, from, to string) (*object.Tree, *object.Tree, object.Changes, error) {
	var (
		fromTree *object.Tree
		err      error
	)
	if from != "" {
		if fromTree, err = r.tree(from); err != nil {
			return nil, nil, nil, err
		}
	}
	toTree, err := r.tree(to)
	if err != nil {
		return nil, nil, nil, err
	}
	changes, err := r.diffTrees(ctx, fromTree, toTree)
	if err != nil {
		return nil, nil, nil, err
	}
	return fromTree, toTree, changes, nil
}

func (r *Repository) diffTrees(ctx context.Context, from, to *object.Tree) (object.Changes, error) {
	opts := &object.DiffTreeOptions{DetectRenames: false}
	if r.opts.DetectRenames {
		opts = object.DefaultDiffTreeOptions
	}
	changes, err := object.DiffTreeWithOptions(ctx, from, to, opts)
	if err != nil {
		return nil, fmt.Errorf("diff trees: %w", err)
	}
	return changes, nil
}

// Diff maps the git changes between two revisions directly onto a Diff:
// additions become created files, deletions deleted files, renames moves,
// and content changes modified files with hunks.
func (r *Repository) Diff(ctx context.Context, from, to string) (*diff.Diff, error) {
	_, _, changes, err := r.changes(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := &diff.Diff{}
	for _, c := range changes {
		action, err := c.Action()
		if err != nil {
			return nil, err
		}
		switch action {
		case merkletrie.Insert:
			p, err := changePath(c.To.Name)
			if err != nil {
				return nil, err
			}
			out.Created = append(out.Created, diff.CreateFile{Path: p})
		case merkletrie.Delete:
			p, err := changePath(c.From.Name)
			if err != nil {
				return nil, err
			}
			out.Deleted = append(out.Deleted, diff.DeleteFile{Path: p})
		case merkletrie.Modify:
			oldPath, err := changePath(c.From.Name)
			if err != nil {
				return nil, err
			}
			newPath, err := changePath(c.To.Name)
			if err != nil {
				return nil, err
			}
			if !oldPath.Equal(newPath) {
				out.Moved = append(out.Moved, diff.MoveFile{OldPath: oldPath, NewPath: newPath})
				continue
			}
			fd, eof, err := r.patch(c)
			if err != nil {
				return nil, err
			}
			out.Modified = append(out.Modified, diff.ModifiedFile{Path: newPath, Diff: fd, EOF: eof})
		default:
			return nil, &DeltaUnhandledError{Action: fmt.Sprintf("action %d", int(action))}
		}
	}
	r.opts.Logger.Debug("git diff", zap.String("from", from), zap.String("to", to),
		zap.Stringer("stats", out.Stats()))
	return out, nil
}

func changePath(name string) (filesystem.Path, error) {
	if name == "" {
		return filesystem.Path{}, ErrPathUnavailable
	}
	return filesystem.ParsePath(name)
}

// patch converts the patch git computes for c into hunks.
func (r *Repository) patch(c *object.Change) (diff.FileDiff, diff.EofNewLine, error) {
	name := c.To.Name
	p, err := c.Patch()
	if err != nil {
		return diff.FileDiff{}, diff.EofNone, &PatchUnavailableError{Path: name, Err: err}
	}
	fps := p.FilePatches()
	if len(fps) == 0 {
		return diff.FileDiff{}, diff.EofNone, &PatchUnavailableError{Path: name}
	}
	fp := fps[0]
	if fp.IsBinary() {
		return diff.Binary(), diff.EofNone, nil
	}
	chunks := make([]patch.Chunk, 0, len(fp.Chunks()))
	for _, ch := range fp.Chunks() {
		op, err := chunkOp(ch.Type())
		if err != nil {
			return diff.FileDiff{}, diff.EofNone, err
		}
		chunks = append(chunks, patch.Chunk{Op: op, Content: ch.Content()})
	}
	hunks, eof, err := patch.Hunks(chunks, r.opts.Context)
	if err != nil {
		return diff.FileDiff{}, diff.EofNone, err
	}
	return diff.Plain(hunks), eof, nil
}

func chunkOp(op fdiff.Operation) (patch.Op, error) {
	switch op {
	case fdiff.Equal:
		return patch.Equal, nil
	case fdiff.Add:
		return patch.Add, nil
	case fdiff.Delete:
		return patch.Delete, nil
	default:
		return 0, fmt.Errorf("operation %d: %w", op, ErrInvalidLineDiff)
	}
}

// patchSource serves git patches to the structural diff, keyed by path.
type patchSource struct {
	repo    *Repository
	changes map[string]*object.Change
}

func (s *patchSource) Patch(path filesystem.Path, _, _ filesystem.File) (diff.FileDiff, diff.EofNewLine, error) {
	c, ok := s.changes[path.String()]
	if !ok {
		return diff.FileDiff{}, diff.EofNone, &PatchUnavailableError{Path: path.String()}
	}
	return s.repo.patch(c)
}

// StructuralDiff snapshots both revisions, walks them with diff.Differ
// using git patches for modified files, then folds in the renames git
// detected.
func (r *Repository) StructuralDiff(ctx context.Context, from, to string) (*diff.Diff, error) {
	fromTree, toTree, changes, err := r.changes(ctx, from, to)
	if err != nil {
		return nil, err
	}
	base, err := r.snapshot(ctx, fromTree)
	if err != nil {
		return nil, err
	}
	head, err := r.snapshot(ctx, toTree)
	if err != nil {
		return nil, err
	}

	src := &patchSource{repo: r, changes: make(map[string]*object.Change, len(changes))}
	var renames []diff.Rename
	for _, c := range changes {
		if c.From.Name != "" && c.To.Name != "" && c.From.Name != c.To.Name {
			oldPath, err := changePath(c.From.Name)
			if err != nil {
				return nil, err
			}
			newPath, err := changePath(c.To.Name)
			if err != nil {
				return nil, err
			}
			renames = append(renames, diff.Rename{Old: oldPath, New: newPath})
			continue
		}
		if c.To.Name != "" {
			src.changes[c.To.Name] = c
		}
	}

	differ := diff.Differ{Patches: src, Logger: r.opts.Logger}
	out, err := differ.Diff(base, head)
	if err != nil {
		return nil, err
	}
	out.ApplyRenames(renames)
	return out, nil
}

// Compare diffs the snapshot of rev against an arbitrary head directory,
// such as a working tree, using in-memory text patches.
func (r *Repository) Compare(ctx context.Context, rev string, head filesystem.Directory) (*diff.Diff, error) {
	base, err := r.Directory(ctx, rev)
	if err != nil {
		return nil, err
	}
	differ := diff.Differ{Patches: &patch.Text{Context: r.opts.Context}, Logger: r.opts.Logger}
	return differ.Diff(base, head)
}
