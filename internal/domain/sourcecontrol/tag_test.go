package sourcecontrol

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/relicta-tech/nextver/internal/domain/version"
)

func newTag(name string) *Tag {
	return NewTag(name, CommitHash("h-"+name), version.MustParse(name, "v"))
}

func TestTag_Accessors(t *testing.T) {
	v := version.MustParse("v1.2.3", "v")
	light := NewTag("v1.2.3", "abc", v)
	annotated := NewAnnotatedTag("v1.2.3", "abc", v, "release 1.2.3")

	if light.IsAnnotated() || !annotated.IsAnnotated() {
		t.Error("IsAnnotated() mismatch")
	}
	if annotated.Message() != "release 1.2.3" {
		t.Errorf("Message() = %q", annotated.Message())
	}
	if light.Name() != "v1.2.3" || light.Hash() != "abc" || light.Version().String() != v.String() {
		t.Errorf("accessors = %s %s %s", light.Name(), light.Hash(), light.Version())
	}
}

func TestTagList_SortDescending(t *testing.T) {
	tags := TagList{
		newTag("v0.9.0"),
		newTag("v1.0.0-rc.1"),
		newTag("v1.0.0"),
		newTag("v0.10.0"),
		newTag("v1.0.0-rc.0"),
	}

	tags.SortDescending()

	want := []string{"v1.0.0", "v1.0.0-rc.1", "v1.0.0-rc.0", "v0.10.0", "v0.9.0"}
	if got := tags.Names(); !slices.Equal(got, want) {
		t.Errorf("SortDescending() = %v, want %v", got, want)
	}
}

func TestTagList_Latest(t *testing.T) {
	if (TagList{}).Latest() != nil {
		t.Error("Latest() of empty list should be nil")
	}

	tags := TagList{newTag("v0.2.0"), newTag("v0.10.0"), newTag("v0.10.0-rc.3")}
	if got := tags.Latest().Name(); got != "v0.10.0" {
		t.Errorf("Latest() = %s, want v0.10.0", got)
	}
}

type stubTagReader struct {
	tags TagList
	err  error
}

func (s stubTagReader) ListVersionTags(_ context.Context, _ string) (TagList, error) {
	return s.tags, s.err
}

func (s stubTagReader) LatestVersionTag(_ context.Context, _ string) (*Tag, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.tags) == 0 {
		return nil, ErrNoVersionTag
	}
	return s.tags.Latest(), nil
}

func TestVersionDiscovery(t *testing.T) {
	ctx := context.Background()
	vd := NewVersionDiscovery("v")
	if vd.TagPrefix() != "v" {
		t.Errorf("TagPrefix() = %q", vd.TagPrefix())
	}

	repo := stubTagReader{tags: TagList{newTag("v1.1.0"), newTag("v1.0.0")}}

	tag, current, err := vd.DiscoverCurrentVersion(ctx, repo)
	if err != nil {
		t.Fatalf("DiscoverCurrentVersion() error = %v", err)
	}
	if tag.Name() != "v1.1.0" || current.String() != "v1.1.0" {
		t.Errorf("DiscoverCurrentVersion() = %s %s", tag.Name(), current)
	}

	unordered := stubTagReader{tags: TagList{newTag("v1.0.0"), newTag("v1.1.0-rc.0"), newTag("v1.1.0")}}
	all, err := vd.DiscoverAllTags(ctx, unordered)
	if err != nil {
		t.Fatalf("DiscoverAllTags() error = %v", err)
	}
	if got, want := all.Names(), []string{"v1.1.0", "v1.1.0-rc.0", "v1.0.0"}; !slices.Equal(got, want) {
		t.Errorf("DiscoverAllTags() = %v, want %v", got, want)
	}

	_, _, err = vd.DiscoverCurrentVersion(ctx, stubTagReader{})
	if !errors.Is(err, ErrNoVersionTag) {
		t.Errorf("error = %v, want ErrNoVersionTag", err)
	}

	boom := errors.New("boom")
	if _, err := vd.DiscoverAllTags(ctx, stubTagReader{err: boom}); !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
}
