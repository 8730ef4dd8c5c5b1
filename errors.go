package interact3d

import "errors"

// Construction errors: Shape.Validate returns this for a shape kind with no
// registered hit-test function. Instantiation does not fail on it:
// reconcile.go logs the error and leaves the element's existing shape in
// place.
var ErrUnknownShapeKind = errors.New("interact3d: unknown shape kind")

// Invariant errors: detected only, never actively raced for. MainLoop
// returns this instead of blocking when called again while a prior call on
// the same Context is still in flight — a Context is not reentrant (§5).
var ErrConcurrencyViolation = errors.New("interact3d: concurrency violation detected during mainloop")

// ErrDuplicateChildID is a Structural error: the offending prototype is
// dropped and logged, never propagated to the caller. Exported so callers
// that want to observe the drop via a custom logger hook can match on it.
var ErrDuplicateChildID = errors.New("interact3d: duplicate child id at same tree level")

// ErrSelfParentID is a Structural error: a child prototype whose id equals
// its own parent's id. Dropped and logged, same as ErrDuplicateChildID.
var ErrSelfParentID = errors.New("interact3d: child id equals parent id")
