// Package render prints diffs, listings and summaries for the terminal.
package render

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/keshon/surf/internal/diff"
	"github.com/keshon/surf/internal/filesystem"
)

type Kind int

const (
	Created Kind = iota
	Deleted
	Modified
	Moved
	Copied
	HunkHeader
	Directory
	Muted
)

// Colors maps each kind of output to a formatting func.
type Colors struct {
	Default func(string, ...any) string
	Map     map[Kind]func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Default: fmt.Sprintf,
		Map: map[Kind]func(string, ...any) string{
			Created:    color.GreenString,
			Deleted:    color.RedString,
			Modified:   color.YellowString,
			Moved:      color.CyanString,
			Copied:     color.MagentaString,
			HunkHeader: color.CyanString,
			Directory:  color.New(color.FgBlue, color.Bold).SprintfFunc(),
			Muted:      color.New(color.Faint).SprintfFunc(),
		},
	}
}

func (c *Colors) Sprintf(k Kind, format string, args ...any) string {
	if f, ok := c.Map[k]; ok {
		return f(format, args...)
	}
	return c.Default(format, args...)
}

// Printer writes coloured output to an io.Writer.
type Printer struct {
	out    io.Writer
	colors *Colors
}

func New(out io.Writer) *Printer {
	return &Printer{out: out, colors: NewColors()}
}

func (p *Printer) line(k Kind, format string, args ...any) {
	fmt.Fprintln(p.out, p.colors.Sprintf(k, format, args...))
}

// Summary prints one line per changed path: created, deleted, moved,
// copied and then modified.
func (p *Printer) Summary(d *diff.Diff) {
	for _, c := range d.Created {
		p.line(Created, "+++ %s", c.Path)
	}
	for _, c := range d.Deleted {
		p.line(Deleted, "--- %s", c.Path)
	}
	for _, m := range d.Moved {
		p.line(Moved, "mv %s -> %s", m.OldPath, m.NewPath)
	}
	for _, c := range d.Copied {
		p.line(Copied, "cp %s -> %s", c.OldPath, c.NewPath)
	}
	for _, m := range d.Modified {
		p.line(Modified, "mod %s", m.Path)
	}
}

// Stats prints the counters of d and how long the diff took.
func (p *Printer) Stats(d *diff.Diff, elapsed time.Duration) {
	fmt.Fprintln(p.out, d.Stats())
	p.line(Muted, "diff took %d micros", elapsed.Microseconds())
}

// Patch prints the hunks of every modified file.
func (p *Printer) Patch(d *diff.Diff) {
	for _, m := range d.Modified {
		p.line(Modified, "mod %s", m.Path)
		if m.Diff.Binary {
			p.line(Muted, "Binary files differ")
			continue
		}
		for _, h := range m.Diff.Hunks {
			p.line(HunkHeader, "%s", h.Header)
			atEnd := false
			for _, l := range h.Lines {
				switch l.Kind {
				case diff.LineAddition:
					p.line(Created, "+%s", l.Line)
				case diff.LineDeletion:
					p.line(Deleted, "-%s", l.Line)
				default:
					fmt.Fprintf(p.out, " %s\n", l.Line)
				}
				atEnd = atEnd || l.NoNewline
			}
			// Only a hunk that shows an unterminated final line gets the note.
			if atEnd && m.EOF != diff.EofNone {
				p.line(Muted, `\ No newline at end of file (%s)`, m.EOF)
			}
		}
	}
}

// Status prints d in short form: A, D, M, R and C followed by the path.
func (p *Printer) Status(d *diff.Diff) {
	if d.IsEmpty() {
		fmt.Fprintln(p.out, "nothing to commit, working tree clean")
		return
	}
	for _, c := range d.Created {
		p.line(Created, "A  %s", c.Path)
	}
	for _, m := range d.Modified {
		p.line(Modified, "M  %s", m.Path)
	}
	for _, c := range d.Deleted {
		p.line(Deleted, "D  %s", c.Path)
	}
	for _, m := range d.Moved {
		p.line(Moved, "R  %s -> %s", m.OldPath, m.NewPath)
	}
	for _, c := range d.Copied {
		p.line(Copied, "C  %s -> %s", c.OldPath, c.NewPath)
	}
}

// Listing prints directory entries, directories with a trailing slash.
func (p *Printer) Listing(entries []filesystem.Entry) {
	for _, e := range entries {
		if e.Type == filesystem.DirectoryType {
			p.line(Directory, "%s%s", e.Label, filesystem.Separator)
			continue
		}
		fmt.Fprintln(p.out, e.Label)
	}
}
