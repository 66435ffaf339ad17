// Package changes provides domain types for classifying commit changes.
package changes

import "errors"

// Domain errors for changes operations.
var (
	// ErrNotTypeHierarchyName indicates a token that names no change type.
	ErrNotTypeHierarchyName = errors.New("not a type hierarchy name")
)
