// Package git provides infrastructure adapters for git operations.
package git

import (
	"context"
	"time"

	"github.com/relicta-tech/nextver/internal/domain/sourcecontrol"
	gitservice "github.com/relicta-tech/nextver/internal/service/git"
)

// DefaultLocalTimeout bounds local git operations so a huge or corrupt
// repository cannot hang a run.
const DefaultLocalTimeout = 30 * time.Second

// withLocalTimeout applies a timeout for local git operations.
func withLocalTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	// Don't override if context already has a shorter deadline
	if deadline, ok := ctx.Deadline(); ok {
		if time.Until(deadline) < DefaultLocalTimeout {
			return ctx, func() {}
		}
	}
	return context.WithTimeout(ctx, DefaultLocalTimeout)
}

// Ensure Adapter implements the domain repository.
var _ sourcecontrol.Repository = (*Adapter)(nil)

// Adapter adapts the git service to the domain repository interface.
type Adapter struct {
	svc gitservice.Service
}

// NewAdapter creates a new git adapter.
func NewAdapter(svc gitservice.Service) *Adapter {
	return &Adapter{svc: svc}
}

// Open opens the repository at path and wraps it in an adapter. Options
// after the path override the service defaults.
func Open(path string, opts ...gitservice.ServiceOption) (*Adapter, error) {
	svc, err := gitservice.NewService(append([]gitservice.ServiceOption{gitservice.WithRepoPath(path)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return NewAdapter(svc), nil
}

// Root returns the repository root directory.
func (a *Adapter) Root(ctx context.Context) (string, error) {
	return a.svc.GetRepositoryRoot(ctx)
}

// ListVersionTags retrieves every version tag under prefix, highest first.
func (a *Adapter) ListVersionTags(ctx context.Context, prefix string) (sourcecontrol.TagList, error) {
	ctx, cancel := withLocalTimeout(ctx)
	defer cancel()

	tags, err := a.svc.ListVersionTags(ctx, prefix)
	if err != nil {
		return nil, err
	}

	result := make(sourcecontrol.TagList, len(tags))
	for i := range tags {
		result[i] = convertTag(&tags[i])
	}
	return result, nil
}

// LatestVersionTag retrieves the highest version tag under prefix.
func (a *Adapter) LatestVersionTag(ctx context.Context, prefix string) (*sourcecontrol.Tag, error) {
	ctx, cancel := withLocalTimeout(ctx)
	defer cancel()

	tag, err := a.svc.GetLatestVersionTag(ctx, prefix)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, sourcecontrol.ErrNoVersionTag
	}
	return convertTag(tag), nil
}

// CommitsSince retrieves the commits made after the named tag.
func (a *Adapter) CommitsSince(ctx context.Context, tagName string) (sourcecontrol.History, error) {
	ctx, cancel := withLocalTimeout(ctx)
	defer cancel()

	commits, err := a.svc.GetCommitsSince(ctx, tagName)
	if err != nil {
		return nil, err
	}
	return convertCommits(commits), nil
}

func convertTag(t *gitservice.Tag) *sourcecontrol.Tag {
	hash := sourcecontrol.CommitHash(t.Hash)
	if t.IsAnnotated {
		return sourcecontrol.NewAnnotatedTag(t.Name, hash, t.Version, t.Message)
	}
	return sourcecontrol.NewTag(t.Name, hash, t.Version)
}

func convertCommit(c *gitservice.Commit) *sourcecontrol.Commit {
	if c == nil {
		return nil
	}
	commit := sourcecontrol.NewCommit(
		sourcecontrol.CommitHash(c.Hash),
		c.Message,
		sourcecontrol.Author{Name: c.Author.Name, Email: c.Author.Email},
		c.Date,
	)

	parents := make([]sourcecontrol.CommitHash, len(c.Parents))
	for i, p := range c.Parents {
		parents[i] = sourcecontrol.CommitHash(p)
	}
	commit.SetParents(parents)
	commit.SetFiles(c.Files)
	return commit
}

func convertCommits(commits []gitservice.Commit) sourcecontrol.History {
	result := make(sourcecontrol.History, len(commits))
	for i := range commits {
		result[i] = convertCommit(&commits[i])
	}
	return result
}
