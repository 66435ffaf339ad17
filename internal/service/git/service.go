// Package git provides git operations for nextver.
package git

import (
	"context"
	"time"

	"github.com/relicta-tech/nextver/internal/domain/version"
)

// Service defines the read-only git operations nextver needs.
type Service interface {
	// GetRepositoryRoot returns the worktree root of the repository.
	GetRepositoryRoot(ctx context.Context) (string, error)

	// ListVersionTags returns every tag whose name parses as a version under
	// prefix, highest version first.
	ListVersionTags(ctx context.Context, prefix string) ([]Tag, error)

	// GetLatestVersionTag returns the highest version tag under prefix.
	GetLatestVersionTag(ctx context.Context, prefix string) (*Tag, error)

	// GetCommitsSince returns the commits reachable from HEAD but not from
	// ref. An empty ref returns the whole history of HEAD.
	GetCommitsSince(ctx context.Context, ref string) ([]Commit, error)
}

// Commit represents a git commit.
type Commit struct {
	// Hash is the commit SHA.
	Hash string `json:"hash"`
	// ShortHash is the abbreviated commit SHA (7 characters).
	ShortHash string `json:"short_hash"`
	// Message is the full commit message.
	Message string `json:"message"`
	// Subject is the first line of the commit message.
	Subject string `json:"subject"`
	// Body is everything after the first line.
	Body string `json:"body"`
	// Author is the commit author.
	Author Author `json:"author"`
	// Date is the author date.
	Date time.Time `json:"date"`
	// Parents are the parent commit hashes.
	Parents []string `json:"parents"`
	// Files are the paths changed against the first parent.
	Files []string `json:"files,omitempty"`
}

// Author represents a git author.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Tag represents a version tag. Annotated tags are peeled so Hash is always
// the target commit.
type Tag struct {
	Name        string                  `json:"name"`
	Hash        string                  `json:"hash"`
	Message     string                  `json:"message,omitempty"`
	IsAnnotated bool                    `json:"is_annotated"`
	Version     version.SemanticVersion `json:"-"`
}

// ServiceConfig configures the git service.
type ServiceConfig struct {
	// RepoPath is the path inside the repository to open.
	RepoPath string
	// DetectDotGit searches parent directories for the repository root.
	DetectDotGit bool
	// CollectFiles records the changed paths of every walked commit.
	CollectFiles bool
}

// DefaultServiceConfig returns the default service configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		RepoPath:     ".",
		DetectDotGit: true,
		CollectFiles: true,
	}
}

// ServiceOption configures the git service.
type ServiceOption func(*ServiceConfig)

// WithRepoPath sets the repository path.
func WithRepoPath(path string) ServiceOption {
	return func(c *ServiceConfig) {
		c.RepoPath = path
	}
}

// WithDetectDotGit toggles searching parent directories for the repository.
func WithDetectDotGit(detect bool) ServiceOption {
	return func(c *ServiceConfig) {
		c.DetectDotGit = detect
	}
}

// WithCollectFiles toggles changed-file collection during history walks.
func WithCollectFiles(collect bool) ServiceOption {
	return func(c *ServiceConfig) {
		c.CollectFiles = collect
	}
}
