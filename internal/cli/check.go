package cli

import (
	"github.com/spf13/cobra"

	"github.com/relicta-tech/nextver/internal/application/versioning"
	"github.com/relicta-tech/nextver/internal/config"
	"github.com/relicta-tech/nextver/internal/domain/changes"
)

// Check flags
var (
	checkMinimum string
	checkPrefix  string
	checkOutput  string
)

// checkFlagBindings maps config keys to check flag names.
var checkFlagBindings = map[string]string{
	"check.minimum_level": "minimum",
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the changes reach a minimum change level",
		Long: `Check the highest change type since the latest version tag against a
minimum. Change types rank other < fix < feature < breaking.

Exits 0 when the minimum is met and 14 when it is not, so a pipeline can
skip the release steps.`,
		Example: `  nextver check --minimum feature
  nextver check --minimum fix --output level`,
		RunE: runCheck,
	}

	f := cmd.Flags()
	f.StringVar(&checkMinimum, "minimum", "fix", "minimum change type (other, fix, feature, breaking)")
	f.StringVar(&checkPrefix, "prefix", "v", "prefix version tags start with")
	f.StringVarP(&checkOutput, "output", "o", config.FormatText, "output format (text, json, yaml, version, level)")
	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	minimum, err := changes.ParseChangeType(cfg.Check.MinimumLevel)
	if err != nil {
		return err
	}

	repo, err := openRepository(cfg.Git, false)
	if err != nil {
		return err
	}

	out, err := versioning.NewCheckMinimumUseCase(repo).Execute(cmd.Context(), versioning.CheckMinimumInput{
		TagPrefix: cfg.Versioning.TagPrefix,
		Minimum:   minimum,
	})
	if out == nil {
		return err
	}

	if rerr := renderCheckResult(cmd.OutOrStdout(), cfg.Output.Format, newCheckResult(out)); rerr != nil {
		return rerr
	}
	return err
}
