package sourcecontrol

import "errors"

// Domain errors for source control operations.
var (
	// ErrNotARepository indicates the path is not a git repository.
	ErrNotARepository = errors.New("not a git repository")

	// ErrNoVersionTag indicates no tag in the repository parses as a version.
	ErrNoVersionTag = errors.New("no valid version tag found in the repository")

	// ErrTagNotFound indicates the tag was not found.
	ErrTagNotFound = errors.New("tag not found")

	// ErrCommitNotFound indicates the commit was not found.
	ErrCommitNotFound = errors.New("commit not found")

	// ErrNoHead indicates the repository has no commits on HEAD.
	ErrNoHead = errors.New("repository has no HEAD commit")
)
