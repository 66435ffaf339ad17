package versioning

import "errors"

// ErrOutsideConstraint indicates the computed version does not satisfy the
// configured version constraint.
var ErrOutsideConstraint = errors.New("version is outside the allowed constraint")
