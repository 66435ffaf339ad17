package changes

import (
	"maps"
	"slices"
)

// Classifier aggregates commit messages into per-type counts, a breaking
// flag and the highest change type seen. The aggregate does not depend on
// the order in which messages are pushed.
//
// A Classifier is not safe for concurrent use; build one per calculation.
type Classifier struct {
	commits  []string
	counts   map[CommitType]int
	breaking bool
	notes    []string
	topType  ChangeType
}

// NewClassifier returns an empty classifier.
func NewClassifier() *Classifier {
	return &Classifier{counts: make(map[CommitType]int)}
}

// ClassifyAll returns a classifier fed with every message.
func ClassifyAll(messages []string) *Classifier {
	c := NewClassifier()
	for _, m := range messages {
		c.Push(m)
	}
	return c
}

// Push classifies one commit message. The summary line is always recorded;
// messages that are not conventional commits contribute no counts.
func (c *Classifier) Push(message string) *Classifier {
	summary := Summary(message)
	if summary == "" {
		return c
	}
	c.commits = append(c.commits, summary)

	cc := ParseConventionalCommit("", message)
	if cc == nil {
		return c
	}

	c.counts[cc.Type()]++
	if cc.IsBreaking() {
		c.breaking = true
		note := cc.BreakingMessage()
		if note == "" {
			note = cc.Subject()
		}
		c.notes = append(c.notes, note)
	}
	c.raise(cc.ChangeType())
	return c
}

func (c *Classifier) raise(ct ChangeType) {
	c.topType = MaxChangeType(c.topType, ct)
}

// Counts returns a copy of the per-type commit counts.
func (c *Classifier) Counts() map[CommitType]int {
	return maps.Clone(c.counts)
}

// CommitsByType returns the number of commits of the given type, or 0.
func (c *Classifier) CommitsByType(t CommitType) int {
	return c.counts[t]
}

// CommitsAllTypes returns the number of conventional commits classified.
func (c *Classifier) CommitsAllTypes() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Breaking reports whether any classified commit was breaking.
func (c *Classifier) Breaking() bool {
	return c.breaking
}

// BreakingNotes returns the BREAKING CHANGE footer of every breaking
// commit, or its subject when it has none. Sorted and without repeats.
func (c *Classifier) BreakingNotes() []string {
	return slices.Compact(slices.Sorted(slices.Values(c.notes)))
}

// TopType returns the highest change type seen, or ChangeTypeNone.
func (c *Classifier) TopType() ChangeType {
	return c.topType
}

// Commits returns the summary line of every pushed message, conventional or not.
func (c *Classifier) Commits() []string {
	return slices.Clone(c.commits)
}

// Types returns the commit types seen, sorted by name.
func (c *Classifier) Types() []CommitType {
	return slices.Sorted(maps.Keys(c.counts))
}

// SetBreaking sets the breaking flag. Setting it raises the top type to
// ChangeTypeBreaking.
func (c *Classifier) SetBreaking(flag bool) *Classifier {
	c.breaking = flag
	if flag {
		c.raise(ChangeTypeBreaking)
	}
	return c
}

// SetOneFeat records exactly one feature commit.
func (c *Classifier) SetOneFeat() *Classifier {
	c.counts[CommitTypeFeat] = 1
	c.raise(ChangeTypeFeature)
	return c
}

// SetOneFix records exactly one fix commit.
func (c *Classifier) SetOneFix() *Classifier {
	c.counts[CommitTypeFix] = 1
	c.raise(ChangeTypeFix)
	return c
}
