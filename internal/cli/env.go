package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/relicta-tech/nextver/internal/config"
	"github.com/relicta-tech/nextver/internal/domain/version"
	rperrors "github.com/relicta-tech/nextver/internal/errors"
)

// githubEnvVar names the file GitHub Actions reads step environment from.
const githubEnvVar = "GITHUB_ENV"

// envLines formats the answer as KEY=VALUE lines.
func envLines(ec config.EnvConfig, a version.Answer) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s=%s\n", ec.LevelVar, a.BumpLevel.String())
	fmt.Fprintf(&sb, "%s=%s\n", ec.VersionVar, a.Version.String())
	fmt.Fprintf(&sb, "%s=%s\n", ec.ChangeVar, changeName(a.ChangeLevel))
	return sb.String()
}

// envTarget returns the env file to append to, or "" for stdout.
func envTarget(ec config.EnvConfig) string {
	if ec.File != "" {
		return ec.File
	}
	return os.Getenv(githubEnvVar)
}

// emitEnv appends the answer's environment variables to the configured env
// file, to $GITHUB_ENV, or writes them to fallback.
func emitEnv(fallback io.Writer, ec config.EnvConfig, a version.Answer) error {
	const op = "cli.emitEnv"

	lines := envLines(ec, a)
	path := envTarget(ec)
	if path == "" {
		_, err := io.WriteString(fallback, lines)
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return rperrors.IOWrap(err, op, "failed to open env file").WithDetail("path", path)
	}
	defer f.Close()

	if _, err := f.WriteString(lines); err != nil {
		return rperrors.IOWrap(err, op, "failed to write env file").WithDetail("path", path)
	}

	logger.Debug("environment written", "path", path)
	return nil
}
