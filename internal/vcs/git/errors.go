package git

import (
	"errors"
	"fmt"

	"github.com/keshon/surf/internal/patch"
)

var (
	// ErrPathUnavailable is returned when a change carries no file path.
	ErrPathUnavailable = errors.New("couldn't retrieve file path")
	// ErrInvalidLineDiff is returned for a patch line of unknown kind.
	ErrInvalidLineDiff = patch.ErrInvalidLineDiff
	// ErrNoCommits is returned for history queries on an empty repository.
	ErrNoCommits = errors.New("repository has no commits")
)

// PatchUnavailableError is returned when git cannot produce a patch for a
// modified file.
type PatchUnavailableError struct {
	Path string
	Err  error
}

func (e *PatchUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("couldn't retrieve patch for %s: %v", e.Path, e.Err)
	}
	return "couldn't retrieve patch for " + e.Path
}

func (e *PatchUnavailableError) Unwrap() error { return e.Err }

// DeltaUnhandledError is returned for a change kind the diff does not map.
type DeltaUnhandledError struct {
	Action string
}

func (e *DeltaUnhandledError) Error() string {
	return "git delta type is not handled: " + e.Action
}
