package sourcecontrol

import (
	"slices"

	"github.com/relicta-tech/nextver/internal/domain/version"
)

// Tag represents a version tag and the commit it points to. Annotated tags
// are peeled to their target commit.
type Tag struct {
	name      string
	hash      CommitHash
	version   version.SemanticVersion
	annotated bool
	message   string
}

// NewTag creates a lightweight version tag.
func NewTag(name string, hash CommitHash, v version.SemanticVersion) *Tag {
	return &Tag{name: name, hash: hash, version: v}
}

// NewAnnotatedTag creates an annotated version tag.
func NewAnnotatedTag(name string, hash CommitHash, v version.SemanticVersion, message string) *Tag {
	return &Tag{name: name, hash: hash, version: v, annotated: true, message: message}
}

// Name returns the tag name.
func (t *Tag) Name() string {
	return t.name
}

// Hash returns the commit hash the tag points to.
func (t *Tag) Hash() CommitHash {
	return t.hash
}

// Version returns the version parsed from the tag name.
func (t *Tag) Version() version.SemanticVersion {
	return t.version
}

// IsAnnotated returns true for annotated tags.
func (t *Tag) IsAnnotated() bool {
	return t.annotated
}

// Message returns the tag message (for annotated tags).
func (t *Tag) Message() string {
	return t.message
}

// TagList is a list of version tags.
type TagList []*Tag

// SortDescending orders the list highest version first. Tags with equal
// precedence keep name order so the result is deterministic.
func (tl TagList) SortDescending() {
	slices.SortStableFunc(tl, func(a, b *Tag) int {
		if c := b.version.Compare(a.version); c != 0 {
			return c
		}
		if a.name < b.name {
			return -1
		}
		if a.name > b.name {
			return 1
		}
		return 0
	})
}

// Latest returns the highest version tag, or nil for an empty list.
func (tl TagList) Latest() *Tag {
	var latest *Tag
	for _, t := range tl {
		if latest == nil || t.version.GreaterThan(latest.version) {
			latest = t
		}
	}
	return latest
}

// Names returns the tag names in list order.
func (tl TagList) Names() []string {
	out := make([]string, len(tl))
	for i, t := range tl {
		out[i] = t.name
	}
	return out
}
