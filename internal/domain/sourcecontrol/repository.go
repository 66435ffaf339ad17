package sourcecontrol

import (
	"context"

	"github.com/relicta-tech/nextver/internal/domain/version"
)

// TagReader provides read access to version tags.
type TagReader interface {
	// ListVersionTags returns every tag that parses as a version under
	// prefix, highest version first.
	ListVersionTags(ctx context.Context, prefix string) (TagList, error)
	// LatestVersionTag returns the highest version tag under prefix, or
	// ErrNoVersionTag.
	LatestVersionTag(ctx context.Context, prefix string) (*Tag, error)
}

// CommitReader provides read access to commit history.
type CommitReader interface {
	// CommitsSince returns the commits reachable from HEAD but not from the
	// named tag, each with the paths it changed.
	CommitsSince(ctx context.Context, tagName string) (History, error)
}

// Repository is the version-control collaborator used to calculate the
// next version. Implemented in the infrastructure layer.
type Repository interface {
	TagReader
	CommitReader
}

// VersionDiscovery finds the current version from tags.
type VersionDiscovery struct {
	tagPrefix string
}

// NewVersionDiscovery creates a new VersionDiscovery.
func NewVersionDiscovery(tagPrefix string) *VersionDiscovery {
	return &VersionDiscovery{tagPrefix: tagPrefix}
}

// TagPrefix returns the prefix version tags must start with.
func (vd *VersionDiscovery) TagPrefix() string {
	return vd.tagPrefix
}

// DiscoverCurrentVersion returns the latest version tag and its version.
func (vd *VersionDiscovery) DiscoverCurrentVersion(ctx context.Context, repo TagReader) (*Tag, version.SemanticVersion, error) {
	tag, err := repo.LatestVersionTag(ctx, vd.tagPrefix)
	if err != nil {
		return nil, version.Zero, err
	}
	return tag, tag.Version(), nil
}

// DiscoverAllTags returns every version tag, highest version first.
func (vd *VersionDiscovery) DiscoverAllTags(ctx context.Context, repo TagReader) (TagList, error) {
	tags, err := repo.ListVersionTags(ctx, vd.tagPrefix)
	if err != nil {
		return nil, err
	}
	tags.SortDescending()
	return tags, nil
}
