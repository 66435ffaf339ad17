package cli

import (
	"github.com/spf13/cobra"

	"github.com/relicta-tech/nextver/internal/application/versioning"
	"github.com/relicta-tech/nextver/internal/config"
	rperrors "github.com/relicta-tech/nextver/internal/errors"
)

// Tags flags
var (
	tagsPrefix string
	tagsOutput string
)

func newTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List the version tags",
		Long: `List every tag that parses as a version under the prefix, highest
version first. Tags that do not parse are skipped.`,
		Example: `  nextver tags
  nextver tags --prefix release- --output version`,
		RunE: runTags,
	}

	f := cmd.Flags()
	f.StringVar(&tagsPrefix, "prefix", "v", "prefix version tags start with")
	f.StringVarP(&tagsOutput, "output", "o", config.FormatText, "output format (text, json, yaml, version)")
	return cmd
}

func runTags(cmd *cobra.Command, _ []string) error {
	const op = "cli.tags"

	if cfg.Output.Format == config.FormatLevel {
		return rperrors.Validation(op, "tags has no level output").WithDetail("format", cfg.Output.Format)
	}

	repo, err := openRepository(cfg.Git, false)
	if err != nil {
		return err
	}

	out, err := versioning.NewListVersionsUseCase(repo).Execute(cmd.Context(), versioning.ListVersionsInput{
		TagPrefix: cfg.Versioning.TagPrefix,
	})
	if err != nil {
		return err
	}

	return renderTagsResult(cmd.OutOrStdout(), cfg.Output.Format, newTagsResult(out))
}
