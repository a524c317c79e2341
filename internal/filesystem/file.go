package filesystem

import (
	"fmt"

	"github.com/zeebo/xxh3"
)

// File is a leaf of a Directory. The checksum is computed once, when the
// file is created.
type File struct {
	name     Label
	contents []byte
	size     int
	checksum uint64
}

// NewFile wraps contents. The file takes its name from the path it is
// inserted at.
func NewFile(contents []byte) File {
	return File{
		contents: contents,
		size:     len(contents),
		checksum: xxh3.Hash(contents),
	}
}

// NewNamedFile is NewFile with an explicit name.
func NewNamedFile(name Label, contents []byte) File {
	f := NewFile(contents)
	f.name = name
	return f
}

// Key returns the file name so files can be stored in a tree.Forest.
func (f File) Key() Label { return f.name }

// Name returns the file name.
func (f File) Name() Label { return f.name }

// Contents returns the raw bytes. Callers must not modify them.
func (f File) Contents() []byte { return f.contents }

// Size returns the number of bytes in the file.
func (f File) Size() int { return f.size }

// Checksum returns the xxh3 hash of the contents.
func (f File) Checksum() uint64 { return f.checksum }

// SameContents compares size and checksum, never the bytes themselves.
func (f File) SameContents(other File) bool {
	return f.size == other.size && f.checksum == other.checksum
}

func (f File) withName(name Label) File {
	f.name = name
	return f
}

func (f File) String() string {
	return fmt.Sprintf("File{name: %s, size: %d, checksum: %016x}", f.name, f.size, f.checksum)
}
