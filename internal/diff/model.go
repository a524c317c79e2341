// Package diff compares two directory snapshots and reports which files
// were created, deleted, modified, moved or copied.
package diff

import (
	"fmt"
	"slices"

	"github.com/keshon/surf/internal/filesystem"
)

// Error reports a directory walk that reached a state it cannot classify.
type Error struct {
	Reason string
}

func (e *Error) Error() string { return "diff: " + e.Reason }

// LineKind tags a line of a hunk.
type LineKind int

const (
	LineContext LineKind = iota
	LineAddition
	LineDeletion
)

func (k LineKind) String() string {
	switch k {
	case LineAddition:
		return "+"
	case LineDeletion:
		return "-"
	default:
		return " "
	}
}

// LineDiff is a single line of a hunk. Additions carry only a new line
// number, deletions only an old one, context lines both.
type LineDiff struct {
	Kind      LineKind
	Line      []byte
	OldLineNo int
	NewLineNo int
	// NoNewline marks the final line of a side that has no trailing newline.
	NoNewline bool
}

// Addition returns a line added at newLineNo.
func Addition(line []byte, newLineNo int) LineDiff {
	return LineDiff{Kind: LineAddition, Line: line, NewLineNo: newLineNo}
}

// Deletion returns a line removed from oldLineNo.
func Deletion(line []byte, oldLineNo int) LineDiff {
	return LineDiff{Kind: LineDeletion, Line: line, OldLineNo: oldLineNo}
}

// Context returns an unchanged line present at both line numbers.
func Context(line []byte, oldLineNo, newLineNo int) LineDiff {
	return LineDiff{Kind: LineContext, Line: line, OldLineNo: oldLineNo, NewLineNo: newLineNo}
}

// Hunk is one contiguous changed region of a text file.
type Hunk struct {
	Header []byte
	Lines  []LineDiff
}

// FileDiff is the content change of a modified file. Binary files carry no
// hunks.
type FileDiff struct {
	Binary bool
	Hunks  []Hunk
}

// Plain returns a textual FileDiff.
func Plain(hunks []Hunk) FileDiff { return FileDiff{Hunks: hunks} }

// Binary returns a FileDiff for content that has no line structure.
func Binary() FileDiff { return FileDiff{Binary: true} }

// EofNewLine records which side of a modification lacks a trailing newline.
type EofNewLine int

const (
	EofNone EofNewLine = iota
	EofOldMissing
	EofNewMissing
	EofBothMissing
)

func (e EofNewLine) String() string {
	switch e {
	case EofOldMissing:
		return "old missing newline"
	case EofNewMissing:
		return "new missing newline"
	case EofBothMissing:
		return "both missing newline"
	default:
		return "none"
	}
}

// EofFor combines per-side "missing trailing newline" flags.
func EofFor(oldMissing, newMissing bool) EofNewLine {
	switch {
	case oldMissing && newMissing:
		return EofBothMissing
	case oldMissing:
		return EofOldMissing
	case newMissing:
		return EofNewMissing
	default:
		return EofNone
	}
}

type CreateFile struct {
	Path filesystem.Path
}

type DeleteFile struct {
	Path filesystem.Path
}

type MoveFile struct {
	OldPath filesystem.Path
	NewPath filesystem.Path
}

type CopyFile struct {
	OldPath filesystem.Path
	NewPath filesystem.Path
}

type ModifiedFile struct {
	Path filesystem.Path
	Diff FileDiff
	EOF  EofNewLine
}

// Diff is the set of changes between two snapshots. No path appears in more
// than one list.
type Diff struct {
	Created  []CreateFile
	Deleted  []DeleteFile
	Moved    []MoveFile
	Copied   []CopyFile
	Modified []ModifiedFile
}

// IsEmpty reports whether no change was found.
func (d *Diff) IsEmpty() bool {
	return len(d.Created) == 0 && len(d.Deleted) == 0 && len(d.Moved) == 0 &&
		len(d.Copied) == 0 && len(d.Modified) == 0
}

// Stats counts the entries of each kind.
type Stats struct {
	Created  int
	Deleted  int
	Modified int
	Moved    int
	Copied   int
}

// Total is the number of changed files.
func (s Stats) Total() int {
	return s.Created + s.Deleted + s.Modified + s.Moved + s.Copied
}

func (s Stats) String() string {
	return fmt.Sprintf("created %d / deleted %d / modified %d / moved %d / copied %d / total %d",
		s.Created, s.Deleted, s.Modified, s.Moved, s.Copied, s.Total())
}

// Stats returns the entry counts of d.
func (d *Diff) Stats() Stats {
	return Stats{
		Created:  len(d.Created),
		Deleted:  len(d.Deleted),
		Modified: len(d.Modified),
		Moved:    len(d.Moved),
		Copied:   len(d.Copied),
	}
}

// Rename is a move or copy reported by a version control backend.
type Rename struct {
	Old  filesystem.Path
	New  filesystem.Path
	Copy bool
}

// ApplyRenames folds known renames into d. A rename replaces the matching
// create and delete with a move; a copy replaces only the create.
func (d *Diff) ApplyRenames(renames []Rename) {
	for _, r := range renames {
		d.Created = slices.DeleteFunc(d.Created, func(c CreateFile) bool { return c.Path.Equal(r.New) })
		d.Modified = slices.DeleteFunc(d.Modified, func(m ModifiedFile) bool { return m.Path.Equal(r.New) })
		if r.Copy {
			d.Copied = append(d.Copied, CopyFile{OldPath: r.Old, NewPath: r.New})
			continue
		}
		d.Deleted = slices.DeleteFunc(d.Deleted, func(del DeleteFile) bool { return del.Path.Equal(r.Old) })
		d.Moved = append(d.Moved, MoveFile{OldPath: r.Old, NewPath: r.New})
	}
}
