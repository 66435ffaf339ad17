package versioning

import (
	"context"
	"log/slog"

	"github.com/relicta-tech/nextver/internal/domain/sourcecontrol"
	"github.com/relicta-tech/nextver/internal/domain/version"
)

// ListVersionsInput represents input for the ListVersions use case.
type ListVersionsInput struct {
	TagPrefix string
}

// ListVersionsOutput represents output of the ListVersions use case.
type ListVersionsOutput struct {
	Tags   sourcecontrol.TagList
	Latest *sourcecontrol.Tag
}

// ListVersionsUseCase lists the version tags under a prefix.
type ListVersionsUseCase struct {
	repo   sourcecontrol.TagReader
	logger *slog.Logger
}

// NewListVersionsUseCase creates a new ListVersionsUseCase.
func NewListVersionsUseCase(repo sourcecontrol.TagReader) *ListVersionsUseCase {
	return &ListVersionsUseCase{
		repo:   repo,
		logger: slog.Default().With("usecase", "list_versions"),
	}
}

// Execute returns every version tag, highest version first. An empty
// list is not an error.
func (uc *ListVersionsUseCase) Execute(ctx context.Context, input ListVersionsInput) (*ListVersionsOutput, error) {
	prefix := input.TagPrefix
	if prefix == "" {
		prefix = version.DefaultPrefix
	}

	discovery := sourcecontrol.NewVersionDiscovery(prefix)
	tags, err := discovery.DiscoverAllTags(ctx, uc.repo)
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("version tags listed", "prefix", discovery.TagPrefix(), "tags", len(tags))
	return &ListVersionsOutput{Tags: tags, Latest: tags.Latest()}, nil
}
