package filesystem

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/keshon/surf/internal/tree"
)

// SystemType tags a directory entry as a file or a sub directory.
type SystemType int

const (
	FileType SystemType = iota
	DirectoryType
)

func (t SystemType) String() string {
	switch t {
	case FileType:
		return "file"
	case DirectoryType:
		return "directory"
	default:
		return fmt.Sprintf("SystemType(%d)", int(t))
	}
}

// Entry is an immediate child of a Directory.
type Entry struct {
	Label Label
	Type  SystemType

	sub *tree.SubTree[Label, File]
}

// File returns the entry as a file. It reports false for directories.
func (e Entry) File() (File, bool) {
	if e.sub == nil || !e.sub.IsNode() {
		return File{}, false
	}
	return e.sub.Value(), true
}

// Directory returns the entry as a sub directory. It reports false for files.
func (e Entry) Directory() (Directory, bool) {
	if e.sub == nil || !e.sub.IsBranch() {
		return Directory{}, false
	}
	return Directory{current: e.Label, entries: e.sub.Forest()}, true
}

// Directory is a forest of files keyed by label. The zero value is an empty
// root directory.
type Directory struct {
	current Label
	entries tree.Forest[Label, File]
}

// NewDirectory returns an empty root directory.
func NewDirectory() Directory {
	return Directory{current: RootLabel()}
}

// FromMap builds a root directory from slash separated paths and contents.
func FromMap(files map[string][]byte) (Directory, error) {
	d := NewDirectory()
	for _, name := range slices.Sorted(maps.Keys(files)) {
		p, err := ParsePath(name)
		if err != nil {
			return Directory{}, err
		}
		d.InsertFile(p, NewFile(files[name]))
	}
	return d, nil
}

// Current returns the label of this directory, the root label for the top.
func (d Directory) Current() Label {
	if d.current == (Label{}) {
		return RootLabel()
	}
	return d.current
}

// IsEmpty reports whether the directory holds no entries.
func (d Directory) IsEmpty() bool { return d.entries.IsEmpty() }

// InsertFile stores file at path. The last label of path names the file.
// An existing file at path is replaced, and a file met along the way is
// turned into a directory.
func (d *Directory) InsertFile(path Path, file File) {
	labels := path.Relative()
	dirs, name := labels[:len(labels)-1], labels[len(labels)-1]
	d.entries.Insert(dirs, file.withName(name))
}

// InsertFiles stores each named file under the directory at prefix. An empty
// prefix means this directory.
func (d *Directory) InsertFiles(prefix []Label, files map[Label]File) {
	names := slices.SortedFunc(maps.Keys(files), Label.Compare)
	for _, name := range names {
		d.entries.Insert(prefix, files[name].withName(name))
	}
}

// FindFile looks up the file at path.
func (d Directory) FindFile(path Path) (File, bool) {
	if path.IsRoot() {
		return File{}, false
	}
	return d.entries.FindNode(path.Relative())
}

// FindDirectory looks up the directory at path. The root path yields d.
func (d Directory) FindDirectory(path Path) (Directory, bool) {
	if path.IsRoot() {
		return d, true
	}
	sub, ok := d.entries.FindBranch(path.Relative())
	if !ok {
		return Directory{}, false
	}
	return Directory{current: path.Last(), entries: sub}, true
}

// Size sums the sizes of every file below d.
func (d Directory) Size() int {
	size := 0
	for f := range d.entries.All() {
		size += f.Size()
	}
	return size
}

// Entries returns every immediate child in label order, hidden ones
// included.
func (d Directory) Entries() []Entry {
	children := d.entries.Children()
	out := make([]Entry, 0, len(children))
	for _, sub := range children {
		e := Entry{Label: sub.Key(), Type: FileType, sub: sub}
		if sub.IsBranch() {
			e.Type = DirectoryType
		}
		out = append(out, e)
	}
	return out
}

// ListDirectory returns the visible immediate children in label order.
func (d Directory) ListDirectory() []Entry {
	entries := d.Entries()
	return slices.DeleteFunc(entries, func(e Entry) bool { return e.Label.Hidden() })
}

// Files yields every file below d with its path relative to d.
func (d Directory) Files() iter.Seq2[Path, File] {
	return func(yield func(Path, File) bool) {
		d.walk(nil, yield)
	}
}

func (d Directory) walk(prefix []Label, yield func(Path, File) bool) bool {
	for _, e := range d.Entries() {
		labels := append(slices.Clip(prefix), e.Label)
		if f, ok := e.File(); ok {
			if !yield(Path{labels: labels}, f) {
				return false
			}
			continue
		}
		sub, _ := e.Directory()
		if !sub.walk(labels, yield) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of d.
func (d Directory) Clone() Directory {
	return Directory{current: d.current, entries: d.entries.Clone()}
}
