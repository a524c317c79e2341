package diff

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/keshon/surf/internal/filesystem"
)

// PatchSource produces the line level change of a file that differs between
// two snapshots.
type PatchSource interface {
	Patch(path filesystem.Path, old, new filesystem.File) (FileDiff, EofNewLine, error)
}

// Differ walks two snapshots side by side. The zero value attaches no hunks
// and logs nothing.
type Differ struct {
	Patches PatchSource
	Logger  *zap.Logger
}

// Compute diffs base against head without hunks.
func Compute(base, head filesystem.Directory) (*Diff, error) {
	var d Differ
	return d.Diff(base, head)
}

// Diff reports the changes that turn base into head. Paths are relative to
// the two directories. Modified files get hunks from d.Patches when set.
func (d *Differ) Diff(base, head filesystem.Directory) (*Diff, error) {
	out := &Diff{}
	if err := d.collect(base, head, nil, out); err != nil {
		return nil, err
	}
	d.logger().Debug("diff computed", zap.Stringer("stats", out.Stats()))
	return out, nil
}

func (d *Differ) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// collect merge-joins the sorted children of base and head. prefix is the
// path of both directories below the snapshot root.
func (d *Differ) collect(base, head filesystem.Directory, prefix []filesystem.Label, out *Diff) error {
	olds, news := base.Entries(), head.Entries()
	i, j := 0, 0
	for i < len(olds) && j < len(news) {
		old, new := olds[i], news[j]
		switch c := new.Label.Compare(old.Label); {
		case c < 0:
			if err := created(new, prefix, out); err != nil {
				return err
			}
			j++
		case c > 0:
			if err := deleted(old, prefix, out); err != nil {
				return err
			}
			i++
		default:
			if err := d.pair(old, new, prefix, out); err != nil {
				return err
			}
			i++
			j++
		}
	}
	for ; j < len(news); j++ {
		if err := created(news[j], prefix, out); err != nil {
			return err
		}
	}
	for ; i < len(olds); i++ {
		if err := deleted(olds[i], prefix, out); err != nil {
			return err
		}
	}
	return nil
}

// pair compares two entries sharing a label.
func (d *Differ) pair(old, new filesystem.Entry, prefix []filesystem.Label, out *Diff) error {
	path := pathOf(prefix, new.Label)
	oldFile, oldIsFile := old.File()
	newFile, newIsFile := new.File()
	oldDir, oldIsDir := old.Directory()
	newDir, newIsDir := new.Directory()

	switch {
	case oldIsFile && newIsFile:
		if oldFile.SameContents(newFile) {
			return nil
		}
		return d.modified(path, oldFile, newFile, out)
	case oldIsDir && newIsFile:
		out.Created = append(out.Created, CreateFile{Path: path})
		return deleted(old, prefix, out)
	case oldIsFile && newIsDir:
		if err := created(new, prefix, out); err != nil {
			return err
		}
		out.Deleted = append(out.Deleted, DeleteFile{Path: path})
		return nil
	case oldIsDir && newIsDir:
		d.logger().Debug("diff directory", zap.Stringer("path", path))
		return d.collect(oldDir, newDir, append(slices.Clip(prefix), new.Label), out)
	default:
		return &Error{Reason: fmt.Sprintf("entry %s is neither a file nor a directory", path)}
	}
}

func (d *Differ) modified(path filesystem.Path, old, new filesystem.File, out *Diff) error {
	m := ModifiedFile{Path: path}
	if d.Patches != nil {
		fd, eof, err := d.Patches.Patch(path, old, new)
		if err != nil {
			return fmt.Errorf("patch %s: %w", path, err)
		}
		m.Diff, m.EOF = fd, eof
	}
	out.Modified = append(out.Modified, m)
	return nil
}

// created records every file at or below e as created.
func created(e filesystem.Entry, prefix []filesystem.Label, out *Diff) error {
	return eachFile(e, prefix, func(p filesystem.Path) {
		out.Created = append(out.Created, CreateFile{Path: p})
	})
}

// deleted records every file at or below e as deleted.
func deleted(e filesystem.Entry, prefix []filesystem.Label, out *Diff) error {
	return eachFile(e, prefix, func(p filesystem.Path) {
		out.Deleted = append(out.Deleted, DeleteFile{Path: p})
	})
}

func eachFile(e filesystem.Entry, prefix []filesystem.Label, fn func(filesystem.Path)) error {
	if _, ok := e.File(); ok {
		fn(pathOf(prefix, e.Label))
		return nil
	}
	dir, ok := e.Directory()
	if !ok {
		return &Error{Reason: fmt.Sprintf("entry %s is neither a file nor a directory", pathOf(prefix, e.Label))}
	}
	base := append(slices.Clip(prefix), e.Label)
	for rel := range dir.Files() {
		fn(pathOf(base, rel.Labels()...))
	}
	return nil
}

func pathOf(prefix []filesystem.Label, rest ...filesystem.Label) filesystem.Path {
	p, err := filesystem.PathFromLabels(append(slices.Clip(prefix), rest...))
	if err != nil {
		// rest always holds at least one label
		panic(err)
	}
	return p
}
