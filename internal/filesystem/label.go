// Package filesystem models a snapshot of a file tree: validated labels and
// paths, files with cheap checksums, and directories backed by an ordered
// forest.
package filesystem

import (
	"errors"
	"fmt"
	"strings"
)

// Separator splits labels in a textual path.
const Separator = "/"

// RootName is the name of the label at the top of every tree.
const RootName = "~"

var (
	ErrEmptyLabel        = errors.New("label is empty")
	ErrContainsSeparator = errors.New("label contains a path separator")
	ErrEmptyPath         = errors.New("path is empty")
)

// Label is a single path component. Hidden labels are left out of
// directory listings.
type Label struct {
	name   string
	hidden bool
}

// NewLabel validates s as a path component.
func NewLabel(s string) (Label, error) {
	if s == "" {
		return Label{}, ErrEmptyLabel
	}
	if strings.Contains(s, Separator) {
		return Label{}, fmt.Errorf("%q: %w", s, ErrContainsSeparator)
	}
	return Label{name: s}, nil
}

// MustLabel is NewLabel for names known to be valid. It panics otherwise.
func MustLabel(s string) Label {
	l, err := NewLabel(s)
	if err != nil {
		panic(err)
	}
	return l
}

// HiddenLabel validates s and marks the result hidden.
func HiddenLabel(s string) (Label, error) {
	l, err := NewLabel(s)
	if err != nil {
		return Label{}, err
	}
	l.hidden = true
	return l, nil
}

// RootLabel returns the distinguished "~" label.
func RootLabel() Label { return Label{name: RootName} }

func (l Label) String() string { return l.name }

// Hidden reports whether the label is excluded from listings.
func (l Label) Hidden() bool { return l.hidden }

// IsRoot reports whether l is the root label.
func (l Label) IsRoot() bool { return l.name == RootName }

// WithHidden returns a copy of l with the hidden flag set to hidden.
func (l Label) WithHidden(hidden bool) Label {
	l.hidden = hidden
	return l
}

// Compare orders labels lexicographically by name. The hidden flag does not
// take part in ordering, so a lookup by name finds hidden entries too.
func (l Label) Compare(other Label) int {
	return strings.Compare(l.name, other.name)
}
