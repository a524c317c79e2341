package filesystem

import (
	"fmt"
	"slices"
	"strings"
)

// Path is a non-empty sequence of labels. A rooted path starts at the root
// label of a snapshot; a parsed path whose only label is "~" names an
// ordinary entry and is not rooted.
type Path struct {
	labels []Label
	rooted bool
}

// NewPath builds a path from at least one label.
func NewPath(first Label, rest ...Label) Path {
	labels := make([]Label, 0, 1+len(rest))
	labels = append(labels, first)
	return Path{labels: append(labels, rest...)}
}

// RootPath returns the path holding only the root label.
func RootPath() Path { return WithRoot() }

// WithRoot returns a path starting with the root label followed by labels.
func WithRoot(labels ...Label) Path {
	p := NewPath(RootLabel(), labels...)
	p.rooted = true
	return p
}

// PathFromLabels builds a path from labels, which must not be empty.
func PathFromLabels(labels []Label) (Path, error) {
	if len(labels) == 0 {
		return Path{}, ErrEmptyPath
	}
	return Path{labels: slices.Clone(labels)}, nil
}

// ParsePath splits s on "/" after trimming trailing separators.
func ParsePath(s string) (Path, error) {
	s = strings.TrimRight(s, Separator)
	if s == "" {
		return Path{}, ErrEmptyPath
	}
	parts := strings.Split(s, Separator)
	labels := make([]Label, 0, len(parts))
	for _, part := range parts {
		l, err := NewLabel(part)
		if err != nil {
			return Path{}, fmt.Errorf("parse path %q: %w", s, err)
		}
		labels = append(labels, l)
	}
	return Path{labels: labels}, nil
}

// MustPath is ParsePath for literals. It panics on invalid input.
func MustPath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Labels returns a copy of the labels in order.
func (p Path) Labels() []Label { return slices.Clone(p.labels) }

// Len returns the number of labels.
func (p Path) Len() int { return len(p.labels) }

// IsRoot reports whether p is the rooted path holding the root label alone.
func (p Path) IsRoot() bool {
	return p.rooted && len(p.labels) == 1 && p.labels[0].IsRoot()
}

// Last returns the trailing label.
func (p Path) Last() Label { return p.labels[len(p.labels)-1] }

// SplitFirst returns the leading label and the labels after it.
func (p Path) SplitFirst() (Label, []Label) {
	return p.labels[0], slices.Clone(p.labels[1:])
}

// SplitLast returns the labels before the trailing one and the trailing
// label. Labels equal to the last one elsewhere in the path are kept.
func (p Path) SplitLast() ([]Label, Label) {
	n := len(p.labels) - 1
	return slices.Clone(p.labels[:n]), p.labels[n]
}

// Join returns a new path with label appended, leaving p untouched.
func (p Path) Join(label Label) Path {
	labels := make([]Label, len(p.labels), len(p.labels)+1)
	copy(labels, p.labels)
	return Path{labels: append(labels, label), rooted: p.rooted}
}

// Append adds every label of other to the end of p.
func (p *Path) Append(other Path) {
	p.labels = append(p.labels, other.labels...)
}

// Push adds label to the end of p.
func (p *Path) Push(label Label) {
	p.labels = append(p.labels, label)
}

// Pop removes and returns the trailing label. A path of one label is left
// as is and Pop reports false.
func (p *Path) Pop() (Label, bool) {
	if len(p.labels) <= 1 {
		return Label{}, false
	}
	n := len(p.labels) - 1
	last := p.labels[n]
	p.labels = p.labels[:n:n]
	return last, true
}

// WithHidden returns a copy of p with every label whose name satisfies
// hidden marked as hidden.
func (p Path) WithHidden(hidden func(name string) bool) Path {
	labels := slices.Clone(p.labels)
	for i, l := range labels {
		if hidden(l.name) {
			labels[i].hidden = true
		}
	}
	return Path{labels: labels, rooted: p.rooted}
}

// Relative drops a leading root label, if the path has more than one label.
func (p Path) Relative() []Label {
	if len(p.labels) > 1 && p.labels[0].IsRoot() {
		return p.labels[1:]
	}
	return p.labels
}

// Equal reports whether p and other hold the same label names.
func (p Path) Equal(other Path) bool { return p.Compare(other) == 0 }

// Compare orders paths label by label, shorter prefixes first.
func (p Path) Compare(other Path) int {
	return slices.CompareFunc(p.labels, other.labels, Label.Compare)
}

func (p Path) String() string {
	names := make([]string, len(p.labels))
	for i, l := range p.labels {
		names[i] = l.name
	}
	return strings.Join(names, Separator)
}
