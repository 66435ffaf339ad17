package cli

import (
	"context"
	"errors"

	"github.com/relicta-tech/nextver/internal/domain/version"
	rperrors "github.com/relicta-tech/nextver/internal/errors"
)

// Process exit codes.
const (
	ExitOK              = 0
	ExitUnexpected      = 10
	ExitNotCalculated   = 12
	ExitMissingRequired = 13
	ExitMinimumNotMet   = 14
	ExitNoFilesListed   = 15
	ExitCanceled        = 130
)

// ExitCode maps an error returned by the commands to a process exit code.
// Repository read failures exit with ExitNotCalculated. Errors without a
// dedicated code, including a missing version tag and invalid input,
// exit with ExitUnexpected.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled), rperrors.IsKind(err, rperrors.KindCanceled):
		return ExitCanceled
	case errors.Is(err, version.ErrMinimumChangeLevelNotMet):
		return ExitMinimumNotMet
	case errors.Is(err, version.ErrMissingRequiredFile):
		return ExitMissingRequired
	case errors.Is(err, version.ErrNoFilesListed):
		return ExitNoFilesListed
	}

	switch rperrors.GetKind(err) {
	case rperrors.KindGit, rperrors.KindTimeout:
		return ExitNotCalculated
	default:
		return ExitUnexpected
	}
}
