// Package version provides domain types for semantic versioning.
package version

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors for version operations.
var (
	// ErrNotVersionTag indicates a tag that does not start with the version prefix.
	ErrNotVersionTag = errors.New("not a version tag")

	// ErrTooManyComponents indicates more than three numeric components.
	ErrTooManyComponents = errors.New("too many version components")

	// ErrTooFewComponents indicates fewer than three numeric components.
	ErrTooFewComponents = errors.New("too few version components")

	// ErrMustBeNumber indicates a version component that is not a number.
	ErrMustBeNumber = errors.New("version component must be a number")

	// ErrInvalidPreReleaseFormat indicates pre-release text that is not suffix.id.
	ErrInvalidPreReleaseFormat = errors.New("invalid pre-release format")

	// ErrMajorAlreadyUsed indicates the first production release was already made.
	ErrMajorAlreadyUsed = errors.New("first production release already deployed")

	// ErrMissingRequiredFile indicates required files did not change.
	ErrMissingRequiredFile = errors.New("missing required file")

	// ErrNoFilesListed indicates the changed-file set was never populated.
	ErrNoFilesListed = errors.New("no files have been listed")

	// ErrMinimumChangeLevelNotMet indicates the observed change level is below the minimum.
	ErrMinimumChangeLevelNotMet = errors.New("minimum change level has not been met")
)

// MissingFilesError lists every required file absent from the changed-file set.
type MissingFilesError struct {
	Files []string
}

// Error implements the error interface.
func (e *MissingFilesError) Error() string {
	return fmt.Sprintf("missing the required file(s): %s", strings.Join(e.Files, ", "))
}

// Is matches ErrMissingRequiredFile.
func (e *MissingFilesError) Is(target error) bool {
	return target == ErrMissingRequiredFile
}
