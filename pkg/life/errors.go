package life

import (
	"errors"
	"fmt"
)

// ErrStepOutOfRange is raised when Successor is given a step exponent j
// greater than the maximum supported at the node's level (k - 2).
var ErrStepOutOfRange = errors.New("life: step exponent out of range for this node's level")

// StepRangeError carries the offending level and step exponent alongside
// ErrStepOutOfRange, so a caller that wants to report or retry with a
// clamped j doesn't have to re-derive k-2 itself. It wraps ErrStepOutOfRange,
// so errors.Is(err, ErrStepOutOfRange) and pkg/xerrors.AsA[*StepRangeError]
// both see through to it.
type StepRangeError struct {
	Level int
	J     int
}

func (e *StepRangeError) Error() string {
	return fmt.Sprintf("life: step exponent %d exceeds maximum %d for level %d", e.J, e.Level-2, e.Level)
}

func (e *StepRangeError) Unwrap() error { return ErrStepOutOfRange }

// ErrEmptyPattern is returned by Construct when given no cells. Construct
// deliberately surfaces this as a recoverable error rather than silently
// returning an empty node, since an empty cell list is almost always a
// caller mistake (e.g. an unparsed file) rather than an intended pattern;
// callers that do want an empty pattern should ask a Store for a Zero node
// of the desired level directly.
var ErrEmptyPattern = errors.New("life: cannot construct a pattern from an empty cell list")
