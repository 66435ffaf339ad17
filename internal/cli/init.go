package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/relicta-tech/nextver/internal/config"
	rperrors "github.com/relicta-tech/nextver/internal/errors"
)

var (
	initForce  bool
	initFormat string
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a .nextver configuration file holding the default settings into
the repository directory given by --repo. Refuses when any .nextver config
file is already there unless --force is given.`,
		Example: `  nextver init
  nextver init --format toml
  nextver init --force`,
		RunE: runInit,
	}

	f := cmd.Flags()
	f.BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
	f.StringVar(&initFormat, "format", config.FileFormatYAML, "config file format (yaml, toml, json)")
	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	const op = "cli.init"

	switch initFormat {
	case config.FileFormatYAML, config.FileFormatTOML, config.FileFormatJSON:
	default:
		return rperrors.Validation(op, "unsupported config format").WithDetail("format", initFormat)
	}

	dir := repoPath
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, config.DefaultFileName(initFormat))

	// Any format counts; the loader would pick only one of them.
	if !initForce && config.ConfigExists(dir) {
		existing, _ := config.FindConfigFile(dir)
		fmt.Fprintln(cmd.ErrOrStderr(), styles.Warning.Render("Config file already exists: "+existing))
		fmt.Fprintln(cmd.ErrOrStderr(), styles.Subtle.Render("Use --force to write another"))
		return rperrors.ConflictWrap(os.ErrExist, op, "config file already exists").WithDetail("path", existing)
	}

	if err := config.WriteDefaultConfig(path, initForce); err != nil {
		if rperrors.IsKind(err, rperrors.KindConflict) {
			fmt.Fprintln(cmd.ErrOrStderr(), styles.Warning.Render("Config file already exists: "+path))
			fmt.Fprintln(cmd.ErrOrStderr(), styles.Subtle.Render("Use --force to overwrite"))
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), styles.Success.Render("✓ Created "+path))
	return nil
}
