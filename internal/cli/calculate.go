package cli

import (
	"github.com/spf13/cobra"

	"github.com/relicta-tech/nextver/internal/application/versioning"
	"github.com/relicta-tech/nextver/internal/config"
	"github.com/relicta-tech/nextver/internal/domain/changes"
	"github.com/relicta-tech/nextver/internal/domain/sourcecontrol"
	"github.com/relicta-tech/nextver/internal/domain/version"
	gitinfra "github.com/relicta-tech/nextver/internal/infrastructure/git"
	gitservice "github.com/relicta-tech/nextver/internal/service/git"
)

// Calculate flags
var (
	calcPrefix     string
	calcForce      string
	calcPreRelease string
	calcOutput     string
	calcSetEnv     bool
	calcEnvFile    string
	calcRequire    []string
	calcEnforce    string
	calcConstraint string
)

// calculateFlagBindings maps config keys to calculate flag names.
var calculateFlagBindings = map[string]string{
	"versioning.tag_prefix":  "prefix",
	"versioning.force":       "force",
	"versioning.pre_release": "pre-release",
	"versioning.constraint":  "constraint",
	"output.format":          "output",
	"env.enabled":            "set-env",
	"env.file":               "env-file",
	"check.required_files":   "require",
	"check.enforce_level":    "enforce-level",
}

// openRepository opens the git repository the commands read from.
// collectFiles is only needed when required files are checked.
var openRepository = func(gc config.GitConfig, collectFiles bool) (sourcecontrol.Repository, error) {
	return gitinfra.Open(gc.RepoPath,
		gitservice.WithDetectDotGit(gc.SearchParents),
		gitservice.WithCollectFiles(collectFiles),
	)
}

func newCalculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "calculate",
		Aliases: []string{"calc"},
		Short:   "Calculate the next version",
		Long: `Calculate the next version from the conventional commits made since the
latest version tag.

Breaking changes bump major, features bump minor and any other conventional
commit bumps patch. Before 1.0.0 each level is demoted one step. A current
pre-release is released, or moved along its pre-release train when
--pre-release names a suffix.`,
		Example: `  nextver calculate
  nextver calc --output version
  nextver calculate --pre-release rc --set-env
  nextver calculate --require CHANGELOG.md --enforce-level feature
  nextver calculate --force first`,
		RunE: runCalculate,
	}
	addCalculateFlags(cmd)
	return cmd
}

func addCalculateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&calcPrefix, "prefix", "v", "prefix version tags start with")
	f.StringVar(&calcForce, "force", "", "force the bump (major, minor, patch, first)")
	f.StringVar(&calcPreRelease, "pre-release", "", "calculate a pre-release with this suffix (e.g. alpha, rc)")
	f.StringVarP(&calcOutput, "output", "o", config.FormatText, "output format (text, json, yaml, version, level)")
	f.BoolVar(&calcSetEnv, "set-env", false, "emit NEXTVER_* environment variables")
	f.StringVar(&calcEnvFile, "env-file", "", "file to append environment variables to (default: $GITHUB_ENV or stdout)")
	f.StringSliceVar(&calcRequire, "require", nil, "file that must change at the enforce level (repeatable)")
	f.StringVar(&calcEnforce, "enforce-level", "feature", "change type at which required files are enforced")
	f.StringVar(&calcConstraint, "constraint", "", "semver range the next version must satisfy")
}

// calculateInput builds use case input from the loaded configuration.
func calculateInput(c *config.Config) (versioning.CalculateVersionInput, error) {
	input := versioning.CalculateVersionInput{
		TagPrefix:     c.Versioning.TagPrefix,
		PreRelease:    c.Versioning.PreRelease,
		RequiredFiles: c.Check.RequiredFiles,
		Constraint:    c.Versioning.Constraint,
	}

	if c.Versioning.Force != "" {
		force, err := version.ParseForceLevel(c.Versioning.Force)
		if err != nil {
			return input, err
		}
		input.Force = force
	}

	enforce, err := changes.ParseChangeType(c.Check.EnforceLevel)
	if err != nil {
		return input, err
	}
	input.EnforceLevel = enforce

	return input, nil
}

func runCalculate(cmd *cobra.Command, _ []string) error {
	input, err := calculateInput(cfg)
	if err != nil {
		return err
	}

	repo, err := openRepository(cfg.Git, len(input.RequiredFiles) > 0)
	if err != nil {
		return err
	}

	out, err := versioning.NewCalculateVersionUseCase(repo).Execute(cmd.Context(), input)
	if err != nil {
		return err
	}

	result := newCalculateResult(out)
	if err := renderCalculateResult(cmd.OutOrStdout(), cfg.Output.Format, result); err != nil {
		return err
	}

	if cfg.Env.Enabled {
		// Machine-readable stdout stays parseable.
		fallback := cmd.ErrOrStderr()
		if cfg.Output.Format == config.FormatText {
			fallback = cmd.OutOrStdout()
		}
		return emitEnv(fallback, cfg.Env, out.Answer)
	}
	return nil
}
