package patch

import (
	"bytes"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/keshon/surf/internal/diff"
	"github.com/keshon/surf/internal/filesystem"
)

// sniffLen is how much of a file is inspected for NUL bytes.
const sniffLen = 8000

// Text is a diff.PatchSource that line-diffs file contents in memory.
type Text struct {
	// Context is the number of unchanged lines around each change. Negative
	// means DefaultContext.
	Context int
}

// NewText returns a Text source with the default context.
func NewText() *Text { return &Text{Context: DefaultContext} }

// Patch implements diff.PatchSource.
func (t *Text) Patch(_ filesystem.Path, old, new filesystem.File) (diff.FileDiff, diff.EofNewLine, error) {
	if IsBinary(old.Contents()) || IsBinary(new.Contents()) {
		return diff.Binary(), diff.EofNone, nil
	}
	hunks, eof, err := Hunks(LineChunks(string(old.Contents()), string(new.Contents())), t.Context)
	if err != nil {
		return diff.FileDiff{}, diff.EofNone, err
	}
	return diff.Plain(hunks), eof, nil
}

// LineChunks computes a line level edit script from a to b.
func LineChunks(a, b string) []Chunk {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	chunks := make([]Chunk, 0, len(diffs))
	for _, d := range diffs {
		var op Op
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = Add
		case diffmatchpatch.DiffDelete:
			op = Delete
		default:
			op = Equal
		}
		chunks = append(chunks, Chunk{Op: op, Content: d.Text})
	}
	return chunks
}

// IsBinary reports whether data looks like binary content, the same NUL byte
// heuristic git uses.
func IsBinary(data []byte) bool {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}
