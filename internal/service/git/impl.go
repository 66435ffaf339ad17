package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/relicta-tech/nextver/internal/domain/sourcecontrol"
	"github.com/relicta-tech/nextver/internal/domain/version"
	rperrors "github.com/relicta-tech/nextver/internal/errors"
)

// Ensure ServiceImpl implements Service.
var _ Service = (*ServiceImpl)(nil)

// ServiceImpl is the go-git implementation of the git service.
type ServiceImpl struct {
	cfg  ServiceConfig
	repo *git.Repository
	root string
}

// NewService opens the repository at the configured path.
func NewService(opts ...ServiceOption) (*ServiceImpl, error) {
	const op = "git.NewService"

	cfg := DefaultServiceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	absPath, err := filepath.Abs(cfg.RepoPath)
	if err != nil {
		return nil, rperrors.GitWrap(err, op, "failed to get absolute path")
	}

	repo, err := git.PlainOpenWithOptions(absPath, &git.PlainOpenOptions{DetectDotGit: cfg.DetectDotGit})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			err = fmt.Errorf("%w: %s", sourcecontrol.ErrNotARepository, absPath)
		}
		return nil, rperrors.GitWrap(err, op, "failed to open repository").
			WithDetail("path", absPath)
	}

	root := absPath
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}

	return &ServiceImpl{cfg: cfg, repo: repo, root: root}, nil
}

// GetRepositoryRoot returns the absolute path to the repository root. Bare
// repositories report the path they were opened from.
func (s *ServiceImpl) GetRepositoryRoot(_ context.Context) (string, error) {
	return s.root, nil
}

// ListVersionTags returns the tags that parse as versions under prefix,
// highest version first. Tags that do not parse are skipped.
func (s *ServiceImpl) ListVersionTags(ctx context.Context, prefix string) ([]Tag, error) {
	const op = "git.ListVersionTags"

	iter, err := s.repo.Tags()
	if err != nil {
		return nil, rperrors.GitWrap(err, op, "failed to list tags")
	}
	defer iter.Close()

	var tags []Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := ref.Name().Short()
		v, perr := version.Parse(name, prefix)
		if perr != nil {
			return nil
		}

		tag, err := s.convertTag(ref)
		if err != nil {
			return err
		}
		tag.Version = v
		tags = append(tags, *tag)
		return nil
	})
	if err != nil {
		return nil, wrapWalkErr(err, op, "failed to iterate tags")
	}

	slices.SortStableFunc(tags, func(a, b Tag) int {
		if c := b.Version.Compare(a.Version); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	return tags, nil
}

// GetLatestVersionTag returns the highest version tag under prefix.
func (s *ServiceImpl) GetLatestVersionTag(ctx context.Context, prefix string) (*Tag, error) {
	const op = "git.GetLatestVersionTag"

	tags, err := s.ListVersionTags(ctx, prefix)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, rperrors.NotFoundWrap(sourcecontrol.ErrNoVersionTag, op, "no version tags").
			WithDetail("prefix", prefix)
	}
	return &tags[0], nil
}

// GetCommitsSince returns the commits reachable from HEAD that are not
// reachable from ref, newest first.
func (s *ServiceImpl) GetCommitsSince(ctx context.Context, ref string) ([]Commit, error) {
	const op = "git.GetCommitsSince"

	head, err := s.headCommit(op)
	if err != nil {
		return nil, err
	}

	hidden := make(map[plumbing.Hash]struct{})
	if ref != "" {
		from, err := s.resolveCommit(ref)
		if err != nil {
			return nil, rperrors.GitWrap(err, op, "failed to resolve reference").WithDetail("ref", ref)
		}
		if err := s.collectAncestors(ctx, from, hidden); err != nil {
			return nil, wrapWalkErr(err, op, "failed to walk tagged history")
		}
	}

	iter, err := s.repo.Log(&git.LogOptions{From: head.Hash, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, rperrors.GitWrap(err, op, "failed to get commit log")
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := hidden[c.Hash]; ok {
			return nil
		}
		converted, err := s.convertCommit(ctx, c)
		if err != nil {
			return err
		}
		commits = append(commits, *converted)
		return nil
	})
	if err != nil {
		return nil, wrapWalkErr(err, op, "failed to iterate commits")
	}

	return commits, nil
}

// collectAncestors adds from and every commit reachable from it to seen.
func (s *ServiceImpl) collectAncestors(ctx context.Context, from plumbing.Hash, seen map[plumbing.Hash]struct{}) error {
	iter, err := s.repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return err
	}
	defer iter.Close()

	return iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[c.Hash] = struct{}{}
		return nil
	})
}

// headCommit returns the commit HEAD points to.
func (s *ServiceImpl) headCommit(op string) (*object.Commit, error) {
	ref, err := s.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			err = sourcecontrol.ErrNoHead
		}
		return nil, rperrors.GitWrap(err, op, "failed to get HEAD")
	}

	c, err := s.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, rperrors.GitWrap(err, op, "failed to get HEAD commit")
	}
	return c, nil
}

// resolveCommit resolves a tag name, branch or hash to a commit, peeling
// annotated tags.
func (s *ServiceImpl) resolveCommit(ref string) (plumbing.Hash, error) {
	if tagRef, err := s.repo.Tag(ref); err == nil {
		return s.peel(tagRef)
	} else if !errors.Is(err, git.ErrTagNotFound) {
		return plumbing.ZeroHash, err
	}

	if plumbing.IsHash(ref) {
		h := plumbing.NewHash(ref)
		if _, err := s.repo.CommitObject(h); err != nil {
			return plumbing.ZeroHash, fmt.Errorf("%w: %s", sourcecontrol.ErrCommitNotFound, ref)
		}
		return h, nil
	}

	h, err := s.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("%w: %s", sourcecontrol.ErrTagNotFound, ref)
	}
	return *h, nil
}

// peel returns the commit a tag reference points to.
func (s *ServiceImpl) peel(ref *plumbing.Reference) (plumbing.Hash, error) {
	tagObj, err := s.repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		c, err := tagObj.Commit()
		if err != nil {
			return plumbing.ZeroHash, err
		}
		return c.Hash, nil
	case errors.Is(err, plumbing.ErrObjectNotFound):
		return ref.Hash(), nil
	default:
		return plumbing.ZeroHash, err
	}
}

// changedFiles lists the paths c changed against its first parent. Root
// commits are compared with the empty tree.
func (s *ServiceImpl) changedFiles(ctx context.Context, c *object.Commit) ([]string, error) {
	to, err := c.Tree()
	if err != nil {
		return nil, err
	}

	from := &object.Tree{}
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return nil, err
		}
		if from, err = parent.Tree(); err != nil {
			return nil, err
		}
	}

	changes, err := from.DiffContext(ctx, to)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(changes))
	for _, ch := range changes {
		if ch.To.Name != "" {
			files = append(files, ch.To.Name)
		}
		if ch.From.Name != "" && ch.From.Name != ch.To.Name {
			files = append(files, ch.From.Name)
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// convertTag converts a tag reference, peeling annotated tags.
func (s *ServiceImpl) convertTag(ref *plumbing.Reference) (*Tag, error) {
	tag := &Tag{Name: ref.Name().Short(), Hash: ref.Hash().String()}

	tagObj, err := s.repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		c, err := tagObj.Commit()
		if err != nil {
			return nil, err
		}
		tag.Hash = c.Hash.String()
		tag.Message = strings.TrimSpace(tagObj.Message)
		tag.IsAnnotated = true
	case !errors.Is(err, plumbing.ErrObjectNotFound):
		return nil, err
	}

	return tag, nil
}

// convertCommit converts a go-git commit, collecting changed files when
// configured.
func (s *ServiceImpl) convertCommit(ctx context.Context, c *object.Commit) (*Commit, error) {
	subject, body := splitMessage(c.Message)

	parents := make([]string, 0, len(c.ParentHashes))
	for _, parent := range c.ParentHashes {
		parents = append(parents, parent.String())
	}

	hashStr := c.Hash.String()
	commit := &Commit{
		Hash:      hashStr,
		ShortHash: hashStr[:7],
		Message:   c.Message,
		Subject:   subject,
		Body:      body,
		Author: Author{
			Name:  c.Author.Name,
			Email: c.Author.Email,
		},
		Date:    c.Author.When,
		Parents: parents,
	}

	if s.cfg.CollectFiles {
		files, err := s.changedFiles(ctx, c)
		if err != nil {
			return nil, err
		}
		commit.Files = files
	}

	return commit, nil
}

// wrapWalkErr keeps context cancellation recognizable while wrapping other
// failures as git errors.
func wrapWalkErr(err error, op, msg string) error {
	switch {
	case errors.Is(err, context.Canceled):
		return rperrors.Wrap(err, rperrors.KindCanceled, op, "operation canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return rperrors.Wrap(err, rperrors.KindTimeout, op, "operation timed out")
	default:
		return rperrors.GitWrap(err, op, msg)
	}
}

// splitMessage splits a commit message into subject and body.
func splitMessage(message string) (subject, body string) {
	lines := strings.SplitN(strings.TrimSpace(message), "\n", 2)
	subject = strings.TrimSpace(lines[0])
	if len(lines) > 1 {
		body = strings.TrimSpace(lines[1])
	}
	return subject, body
}
