package quadtree

import "errors"

// ErrLevelMismatch is raised when Store.Join is given four children that are
// not all at the same level.
var ErrLevelMismatch = errors.New("quadtree: children passed to Join are not all at the same level")

// ErrBaseCaseViolation is raised when a geometry operator that requires a
// node above the base level (Centre, Inner) is given one at or below it.
var ErrBaseCaseViolation = errors.New("quadtree: operator requires a node above the base level")
