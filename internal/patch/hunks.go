// Package patch turns line level edit scripts into the hunks attached to
// modified files.
package patch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/keshon/surf/internal/diff"
)

// DefaultContext is the number of unchanged lines kept around each change.
const DefaultContext = 3

var ErrInvalidLineDiff = errors.New("invalid line diff")

// Op is the kind of a chunk.
type Op int

const (
	Equal Op = iota
	Add
	Delete
)

// Chunk is a run of whole lines that share an Op. Chunks cover both files
// completely, unchanged regions included.
type Chunk struct {
	Op      Op
	Content string
}

type line struct {
	op         Op
	text       []byte
	oldNo      int
	newNo      int
	hasOldSide bool
	hasNewSide bool
	noNewline  bool
}

// Hunks groups chunks into hunks with context unchanged lines around each
// change, and reports which sides lack a trailing newline.
func Hunks(chunks []Chunk, context int) ([]diff.Hunk, diff.EofNewLine, error) {
	if context < 0 {
		context = DefaultContext
	}
	lines, eof, err := flatten(chunks)
	if err != nil {
		return nil, diff.EofNone, err
	}

	var hunks []diff.Hunk
	for i := 0; i < len(lines); {
		if lines[i].op == Equal {
			i++
			continue
		}
		lastChange := i
		for j := i; j < len(lines); j++ {
			if lines[j].op != Equal {
				lastChange = j
			} else if j-lastChange > 2*context {
				break
			}
		}
		start := max(0, i-context)
		stop := min(len(lines), lastChange+1+context)
		hunks = append(hunks, hunk(lines, start, stop))
		i = stop
	}
	return hunks, eof, nil
}

func flatten(chunks []Chunk) ([]line, diff.EofNewLine, error) {
	var (
		lines            []line
		oldNo, newNo     int
		oldMiss, newMiss bool
	)
	for _, c := range chunks {
		if c.Content == "" {
			continue
		}
		texts, terminated := splitLines(c.Content)
		for _, text := range texts {
			l := line{op: c.Op, text: []byte(text)}
			switch c.Op {
			case Equal:
				oldNo++
				newNo++
				l.oldNo, l.newNo, l.hasOldSide, l.hasNewSide = oldNo, newNo, true, true
			case Delete:
				oldNo++
				l.oldNo, l.hasOldSide = oldNo, true
			case Add:
				newNo++
				l.newNo, l.hasNewSide = newNo, true
			default:
				return nil, diff.EofNone, fmt.Errorf("chunk op %d: %w", c.Op, ErrInvalidLineDiff)
			}
			lines = append(lines, l)
		}
		switch c.Op {
		case Equal:
			oldMiss, newMiss = !terminated, !terminated
		case Delete:
			oldMiss = !terminated
		case Add:
			newMiss = !terminated
		}
	}
	markFinal(lines, oldMiss, func(l line) bool { return l.hasOldSide })
	markFinal(lines, newMiss, func(l line) bool { return l.hasNewSide })
	return lines, diff.EofFor(oldMiss, newMiss), nil
}

// markFinal flags the last line of one side when that side lacks a trailing
// newline.
func markFinal(lines []line, missing bool, side func(line) bool) {
	if !missing {
		return
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if side(lines[i]) {
			lines[i].noNewline = true
			return
		}
	}
}

// splitLines splits s into lines without their terminators and reports
// whether the final line was terminated.
func splitLines(s string) ([]string, bool) {
	terminated := strings.HasSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n"), terminated
}

func hunk(lines []line, start, stop int) diff.Hunk {
	oldBefore, newBefore := 0, 0
	for _, l := range lines[:start] {
		if l.hasOldSide {
			oldBefore++
		}
		if l.hasNewSide {
			newBefore++
		}
	}

	h := diff.Hunk{Lines: make([]diff.LineDiff, 0, stop-start)}
	oldCount, newCount := 0, 0
	for _, l := range lines[start:stop] {
		var ld diff.LineDiff
		switch l.op {
		case Equal:
			ld = diff.Context(l.text, l.oldNo, l.newNo)
		case Delete:
			ld = diff.Deletion(l.text, l.oldNo)
		case Add:
			ld = diff.Addition(l.text, l.newNo)
		}
		ld.NoNewline = l.noNewline
		h.Lines = append(h.Lines, ld)
		if l.hasOldSide {
			oldCount++
		}
		if l.hasNewSide {
			newCount++
		}
	}
	h.Header = []byte(fmt.Sprintf("@@ -%s +%s @@",
		span(oldBefore, oldCount), span(newBefore, newCount)))
	return h
}

// span formats one side of a hunk header the way unified diffs do.
func span(before, count int) string {
	start := before + 1
	if count == 0 {
		start = before
	}
	if count == 1 {
		return fmt.Sprint(start)
	}
	return fmt.Sprintf("%d,%d", start, count)
}
